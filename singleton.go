package fixedmap

import (
	"iter"

	"github.com/homier/fixedmap/bucket"
)

// SingletonMap is the map storage for key types with a single inhabitant.
// The key argument of every operation is ignored; iteration emits the zero
// key.
type SingletonMap[K comparable, V any] struct {
	cell bucket.Cell[V]
}

// Returns a new, empty singleton map storage.
func NewSingletonMap[K comparable, V any]() *SingletonMap[K, V] {
	return &SingletonMap[K, V]{}
}

func (s *SingletonMap[K, V]) Len() int {
	if s.cell.Present() {
		return 1
	}
	return 0
}

func (s *SingletonMap[K, V]) IsEmpty() bool {
	return !s.cell.Present()
}

func (s *SingletonMap[K, V]) Get(K) (V, bool) {
	return s.cell.Get()
}

func (s *SingletonMap[K, V]) Ptr(K) *V {
	return s.cell.Ptr()
}

func (s *SingletonMap[K, V]) Has(K) bool {
	return s.cell.Present()
}

func (s *SingletonMap[K, V]) Put(_ K, value V) (V, bool) {
	return s.cell.Set(value)
}

func (s *SingletonMap[K, V]) Delete(K) (V, bool) {
	return s.cell.Take()
}

func (s *SingletonMap[K, V]) Retain(keep func(K, *V) bool) {
	var zero K
	if p := s.cell.Ptr(); p != nil && !keep(zero, p) {
		s.cell.Clear()
	}
}

func (s *SingletonMap[K, V]) Clear() {
	s.cell.Clear()
}

func (s *SingletonMap[K, V]) Entry(key K) Entry[K, V] {
	return CellEntry(key, &s.cell)
}

func (s *SingletonMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var zero K
		if value, ok := s.cell.Get(); ok {
			yield(zero, value)
		}
	}
}

func (s *SingletonMap[K, V]) AllPtr() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		var zero K
		if p := s.cell.Ptr(); p != nil {
			yield(zero, p)
		}
	}
}

// Backward is identical to All: there is only one slot.
func (s *SingletonMap[K, V]) Backward() iter.Seq2[K, V] {
	return s.All()
}

func (s *SingletonMap[K, V]) CompareStorage(other MapStorage[K, V], cmp func(a, b V) int) (int, bool) {
	o, ok := other.(*SingletonMap[K, V])
	if !ok {
		return 0, false
	}
	return compareCells(s.cell.Ptr(), o.cell.Ptr(), cmp), true
}

// SingletonSet is the set storage for key types with a single inhabitant.
type SingletonSet[K comparable] struct {
	present bool
}

// Returns a new, empty singleton set storage.
func NewSingletonSet[K comparable]() *SingletonSet[K] {
	return &SingletonSet[K]{}
}

func (s *SingletonSet[K]) Len() int {
	if s.present {
		return 1
	}
	return 0
}

func (s *SingletonSet[K]) IsEmpty() bool {
	return !s.present
}

func (s *SingletonSet[K]) Has(K) bool {
	return s.present
}

func (s *SingletonSet[K]) Put(K) bool {
	added := !s.present
	s.present = true
	return added
}

func (s *SingletonSet[K]) Delete(K) bool {
	removed := s.present
	s.present = false
	return removed
}

func (s *SingletonSet[K]) Retain(keep func(K) bool) {
	var zero K
	if s.present && !keep(zero) {
		s.present = false
	}
}

func (s *SingletonSet[K]) Clear() {
	s.present = false
}

func (s *SingletonSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		var zero K
		if s.present {
			yield(zero)
		}
	}
}

func (s *SingletonSet[K]) Backward() iter.Seq[K] {
	return s.All()
}

func (s *SingletonSet[K]) CompareStorage(other SetStorage[K]) (int, bool) {
	o, ok := other.(*SingletonSet[K])
	if !ok {
		return 0, false
	}
	return comparePresence(s.present, o.present), true
}
