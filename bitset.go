package fixedmap

import (
	"iter"
	"math/bits"
)

// BitSet is the bit-packed set storage for unit-only enumerated key types
// that fit in a machine word. Bit i (zero-indexed, LSB first) encodes the
// presence of the variant with ordinal i; that raw value is the
// serialization contract, exposed through Raw and BitSetFromRaw.
//
// B must be the smallest of uint8, uint16, uint32 and uint64 with at least
// K.NumVariants() bits; fixedmap-gen picks it when the key type carries the
// bitset attribute and documents the chosen width.
type BitSet[K Enumerated[K], B RawBits] struct {
	bits B
}

// Returns a new, empty bit-packed set storage.
func NewBitSet[K Enumerated[K], B RawBits]() *BitSet[K, B] {
	return &BitSet[K, B]{}
}

// BitSetFromRaw builds a set from a raw presence value. Bits at or above
// K.NumVariants() are discarded, so BitSetFromRaw(s.Raw()) always equals s.
func BitSetFromRaw[K Enumerated[K], B RawBits](raw B) *BitSet[K, B] {
	var zero K
	if n := zero.NumVariants(); n < bits.OnesCount64(uint64(^B(0))) {
		raw &= B(1)<<n - 1
	}
	return &BitSet[K, B]{bits: raw}
}

// Raw returns the packed presence value.
func (s *BitSet[K, B]) Raw() B {
	return s.bits
}

func (s *BitSet[K, B]) Len() int {
	return bits.OnesCount64(uint64(s.bits))
}

func (s *BitSet[K, B]) IsEmpty() bool {
	return s.bits == 0
}

func (s *BitSet[K, B]) Has(key K) bool {
	return s.bits&(B(1)<<key.Ordinal()) != 0
}

func (s *BitSet[K, B]) Put(key K) bool {
	mask := B(1) << key.Ordinal()
	added := s.bits&mask == 0
	s.bits |= mask
	return added
}

func (s *BitSet[K, B]) Delete(key K) bool {
	mask := B(1) << key.Ordinal()
	removed := s.bits&mask != 0
	s.bits &^= mask
	return removed
}

func (s *BitSet[K, B]) Retain(keep func(K) bool) {
	var zero K
	for i := range zero.NumVariants() {
		mask := B(1) << i
		if s.bits&mask != 0 && !keep(zero.FromOrdinal(i)) {
			s.bits &^= mask
		}
	}
}

func (s *BitSet[K, B]) Clear() {
	s.bits = 0
}

func (s *BitSet[K, B]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		var zero K
		rest := uint64(s.bits)
		for rest != 0 {
			i := bits.TrailingZeros64(rest)
			rest &= rest - 1
			if !yield(zero.FromOrdinal(i)) {
				return
			}
		}
	}
}

func (s *BitSet[K, B]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		var zero K
		rest := uint64(s.bits)
		for rest != 0 {
			i := 63 - bits.LeadingZeros64(rest)
			rest &^= 1 << i
			if !yield(zero.FromOrdinal(i)) {
				return
			}
		}
	}
}

func (s *BitSet[K, B]) CompareStorage(other SetStorage[K]) (int, bool) {
	o, ok := other.(*BitSet[K, B])
	if !ok {
		return 0, false
	}
	var zero K
	for i := range zero.NumVariants() {
		mask := B(1) << i
		if c := comparePresence(s.bits&mask != 0, o.bits&mask != 0); c != 0 {
			return c, true
		}
	}
	return 0, true
}
