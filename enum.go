package fixedmap

import (
	"iter"

	"github.com/homier/fixedmap/bucket"
)

// EnumMap is the map storage for unit-only enumerated key types: a fixed
// array of optional cells, one per variant, in declaration order. Every
// operation is a direct index into the array by the key's ordinal.
type EnumMap[K Enumerated[K], V any] struct {
	cells []bucket.Cell[V]
}

// Returns a new, empty enumerated-array map storage.
func NewEnumMap[K Enumerated[K], V any]() *EnumMap[K, V] {
	var zero K
	return &EnumMap[K, V]{cells: make([]bucket.Cell[V], zero.NumVariants())}
}

// ensure sizes the cell array, so that the zero EnumMap is usable.
func (s *EnumMap[K, V]) ensure() {
	if s.cells == nil {
		var zero K
		s.cells = make([]bucket.Cell[V], zero.NumVariants())
	}
}

func (s *EnumMap[K, V]) Len() int {
	n := 0
	for i := range s.cells {
		if s.cells[i].Present() {
			n++
		}
	}
	return n
}

func (s *EnumMap[K, V]) IsEmpty() bool {
	return s.Len() == 0
}

func (s *EnumMap[K, V]) Get(key K) (V, bool) {
	if s.cells == nil {
		var zero V
		return zero, false
	}
	return s.cells[key.Ordinal()].Get()
}

func (s *EnumMap[K, V]) Ptr(key K) *V {
	if s.cells == nil {
		return nil
	}
	return s.cells[key.Ordinal()].Ptr()
}

func (s *EnumMap[K, V]) Has(key K) bool {
	return s.cells != nil && s.cells[key.Ordinal()].Present()
}

func (s *EnumMap[K, V]) Put(key K, value V) (V, bool) {
	s.ensure()
	return s.cells[key.Ordinal()].Set(value)
}

func (s *EnumMap[K, V]) Delete(key K) (V, bool) {
	if s.cells == nil {
		var zero V
		return zero, false
	}
	return s.cells[key.Ordinal()].Take()
}

func (s *EnumMap[K, V]) Retain(keep func(K, *V) bool) {
	var zero K
	for i := range s.cells {
		c := &s.cells[i]
		if p := c.Ptr(); p != nil && !keep(zero.FromOrdinal(i), p) {
			c.Clear()
		}
	}
}

func (s *EnumMap[K, V]) Clear() {
	for i := range s.cells {
		s.cells[i].Clear()
	}
}

func (s *EnumMap[K, V]) Entry(key K) Entry[K, V] {
	s.ensure()
	return CellEntry(key, &s.cells[key.Ordinal()])
}

func (s *EnumMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var zero K
		for i := range s.cells {
			if value, ok := s.cells[i].Get(); ok && !yield(zero.FromOrdinal(i), value) {
				return
			}
		}
	}
}

func (s *EnumMap[K, V]) AllPtr() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		var zero K
		for i := range s.cells {
			if p := s.cells[i].Ptr(); p != nil && !yield(zero.FromOrdinal(i), p) {
				return
			}
		}
	}
}

func (s *EnumMap[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var zero K
		for i := len(s.cells) - 1; i >= 0; i-- {
			if value, ok := s.cells[i].Get(); ok && !yield(zero.FromOrdinal(i), value) {
				return
			}
		}
	}
}

func (s *EnumMap[K, V]) CompareStorage(other MapStorage[K, V], cmp func(a, b V) int) (int, bool) {
	o, ok := other.(*EnumMap[K, V])
	if !ok {
		return 0, false
	}
	var zero K
	for i := range zero.NumVariants() {
		var ap, bp *V
		if s.cells != nil {
			ap = s.cells[i].Ptr()
		}
		if o.cells != nil {
			bp = o.cells[i].Ptr()
		}
		if c := compareCells(ap, bp, cmp); c != 0 {
			return c, true
		}
	}
	return 0, true
}

// EnumSet is the array-backed set storage for unit-only enumerated key
// types: one presence flag per variant, in declaration order. The
// bit-packed alternative is BitSet.
type EnumSet[K Enumerated[K]] struct {
	elems []bool
}

// Returns a new, empty enumerated-array set storage.
func NewEnumSet[K Enumerated[K]]() *EnumSet[K] {
	var zero K
	return &EnumSet[K]{elems: make([]bool, zero.NumVariants())}
}

func (s *EnumSet[K]) ensure() {
	if s.elems == nil {
		var zero K
		s.elems = make([]bool, zero.NumVariants())
	}
}

func (s *EnumSet[K]) Len() int {
	n := 0
	for _, present := range s.elems {
		if present {
			n++
		}
	}
	return n
}

func (s *EnumSet[K]) IsEmpty() bool {
	return s.Len() == 0
}

func (s *EnumSet[K]) Has(key K) bool {
	return s.elems != nil && s.elems[key.Ordinal()]
}

func (s *EnumSet[K]) Put(key K) bool {
	s.ensure()
	i := key.Ordinal()
	added := !s.elems[i]
	s.elems[i] = true
	return added
}

func (s *EnumSet[K]) Delete(key K) bool {
	if s.elems == nil {
		return false
	}
	i := key.Ordinal()
	removed := s.elems[i]
	s.elems[i] = false
	return removed
}

func (s *EnumSet[K]) Retain(keep func(K) bool) {
	var zero K
	for i, present := range s.elems {
		if present && !keep(zero.FromOrdinal(i)) {
			s.elems[i] = false
		}
	}
}

func (s *EnumSet[K]) Clear() {
	for i := range s.elems {
		s.elems[i] = false
	}
}

func (s *EnumSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		var zero K
		for i, present := range s.elems {
			if present && !yield(zero.FromOrdinal(i)) {
				return
			}
		}
	}
}

func (s *EnumSet[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		var zero K
		for i := len(s.elems) - 1; i >= 0; i-- {
			if s.elems[i] && !yield(zero.FromOrdinal(i)) {
				return
			}
		}
	}
}

func (s *EnumSet[K]) CompareStorage(other SetStorage[K]) (int, bool) {
	o, ok := other.(*EnumSet[K])
	if !ok {
		return 0, false
	}
	var zero K
	for i := range zero.NumVariants() {
		a := s.elems != nil && s.elems[i]
		b := o.elems != nil && o.elems[i]
		if c := comparePresence(a, b); c != 0 {
			return c, true
		}
	}
	return 0, true
}
