package fixedmap

import (
	"iter"
	"math/bits"

	"github.com/homier/fixedmap/bucket"
)

// BoolMap is the map storage for bool keys: two cells, indexed by the truth
// value. Iteration visits true before false; Backward reverses that.
type BoolMap[V any] struct {
	t bucket.Cell[V]
	f bucket.Cell[V]
}

// Returns a new, empty boolean map storage.
func NewBoolMap[V any]() *BoolMap[V] {
	return &BoolMap[V]{}
}

func (s *BoolMap[V]) cell(key bool) *bucket.Cell[V] {
	if key {
		return &s.t
	}
	return &s.f
}

func (s *BoolMap[V]) Len() int {
	n := 0
	if s.t.Present() {
		n++
	}
	if s.f.Present() {
		n++
	}
	return n
}

func (s *BoolMap[V]) IsEmpty() bool {
	return !s.t.Present() && !s.f.Present()
}

func (s *BoolMap[V]) Get(key bool) (V, bool) {
	return s.cell(key).Get()
}

func (s *BoolMap[V]) Ptr(key bool) *V {
	return s.cell(key).Ptr()
}

func (s *BoolMap[V]) Has(key bool) bool {
	return s.cell(key).Present()
}

func (s *BoolMap[V]) Put(key bool, value V) (V, bool) {
	return s.cell(key).Set(value)
}

func (s *BoolMap[V]) Delete(key bool) (V, bool) {
	return s.cell(key).Take()
}

func (s *BoolMap[V]) Retain(keep func(bool, *V) bool) {
	if p := s.t.Ptr(); p != nil && !keep(true, p) {
		s.t.Clear()
	}
	if p := s.f.Ptr(); p != nil && !keep(false, p) {
		s.f.Clear()
	}
}

func (s *BoolMap[V]) Clear() {
	s.t.Clear()
	s.f.Clear()
}

func (s *BoolMap[V]) Entry(key bool) Entry[bool, V] {
	return CellEntry(key, s.cell(key))
}

func (s *BoolMap[V]) All() iter.Seq2[bool, V] {
	return func(yield func(bool, V) bool) {
		if value, ok := s.t.Get(); ok && !yield(true, value) {
			return
		}
		if value, ok := s.f.Get(); ok {
			yield(false, value)
		}
	}
}

func (s *BoolMap[V]) AllPtr() iter.Seq2[bool, *V] {
	return func(yield func(bool, *V) bool) {
		if p := s.t.Ptr(); p != nil && !yield(true, p) {
			return
		}
		if p := s.f.Ptr(); p != nil {
			yield(false, p)
		}
	}
}

func (s *BoolMap[V]) Backward() iter.Seq2[bool, V] {
	return func(yield func(bool, V) bool) {
		if value, ok := s.f.Get(); ok && !yield(false, value) {
			return
		}
		if value, ok := s.t.Get(); ok {
			yield(true, value)
		}
	}
}

func (s *BoolMap[V]) CompareStorage(other MapStorage[bool, V], cmp func(a, b V) int) (int, bool) {
	o, ok := other.(*BoolMap[V])
	if !ok {
		return 0, false
	}
	if c := compareCells(s.t.Ptr(), o.t.Ptr(), cmp); c != 0 {
		return c, true
	}
	return compareCells(s.f.Ptr(), o.f.Ptr(), cmp), true
}

const (
	trueBit  uint8 = 0b10
	falseBit uint8 = 0b01
)

// BoolSet is the bit-packed set storage for bool keys: one byte with one
// designated bit per truth value. Iteration visits the true bit first.
type BoolSet struct {
	bits uint8
}

// Returns a new, empty boolean set storage.
func NewBoolSet() *BoolSet {
	return &BoolSet{}
}

func bitFor(key bool) uint8 {
	if key {
		return trueBit
	}
	return falseBit
}

func (s *BoolSet) Len() int {
	return bits.OnesCount8(s.bits)
}

func (s *BoolSet) IsEmpty() bool {
	return s.bits == 0
}

func (s *BoolSet) Has(key bool) bool {
	return s.bits&bitFor(key) != 0
}

func (s *BoolSet) Put(key bool) bool {
	bit := bitFor(key)
	added := s.bits&bit == 0
	s.bits |= bit
	return added
}

func (s *BoolSet) Delete(key bool) bool {
	bit := bitFor(key)
	removed := s.bits&bit != 0
	s.bits &^= bit
	return removed
}

func (s *BoolSet) Retain(keep func(bool) bool) {
	if s.bits&trueBit != 0 && !keep(true) {
		s.bits &^= trueBit
	}
	if s.bits&falseBit != 0 && !keep(false) {
		s.bits &^= falseBit
	}
}

func (s *BoolSet) Clear() {
	s.bits = 0
}

func (s *BoolSet) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		if s.bits&trueBit != 0 && !yield(true) {
			return
		}
		if s.bits&falseBit != 0 {
			yield(false)
		}
	}
}

func (s *BoolSet) Backward() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		if s.bits&falseBit != 0 && !yield(false) {
			return
		}
		if s.bits&trueBit != 0 {
			yield(true)
		}
	}
}

func (s *BoolSet) CompareStorage(other SetStorage[bool]) (int, bool) {
	o, ok := other.(*BoolSet)
	if !ok {
		return 0, false
	}
	if c := comparePresence(s.bits&trueBit != 0, o.bits&trueBit != 0); c != 0 {
		return c, true
	}
	return comparePresence(s.bits&falseBit != 0, o.bits&falseBit != 0), true
}
