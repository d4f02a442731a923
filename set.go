package fixedmap

import "iter"

// Set is a set keyed by a fixed key type, a thin forwarder over the
// associated set storage. Use the generated NewXxxSet constructor for a key
// type, or wire a storage explicitly with NewSet.
type Set[K comparable] struct {
	storage SetStorage[K]
}

// Returns a new set over the given storage.
func NewSet[K comparable](storage SetStorage[K]) *Set[K] {
	return &Set[K]{storage: storage}
}

// Storage exposes the backing storage, e.g. for raw access to a bit-packed
// set.
func (s *Set[K]) Storage() SetStorage[K] {
	return s.storage
}

// Len returns the number of stored keys.
func (s *Set[K]) Len() int {
	return s.storage.Len()
}

// IsEmpty reports whether the set is empty.
func (s *Set[K]) IsEmpty() bool {
	return s.storage.IsEmpty()
}

// Has reports whether key is in the set.
func (s *Set[K]) Has(key K) bool {
	return s.storage.Has(key)
}

// Put adds key to the set. Returns true iff the key was newly added.
func (s *Set[K]) Put(key K) bool {
	return s.storage.Put(key)
}

// Delete removes key from the set. Returns true iff it was present.
func (s *Set[K]) Delete(key K) bool {
	return s.storage.Delete(key)
}

// Retain visits every stored key in iteration order and removes those for
// which keep returns false.
func (s *Set[K]) Retain(keep func(key K) bool) {
	s.storage.Retain(keep)
}

// Clear removes every key.
func (s *Set[K]) Clear() {
	s.storage.Clear()
}

// All iterates over stored keys. Array-backed storages iterate variants in
// declaration order; the open storage in unspecified order.
func (s *Set[K]) All() iter.Seq[K] {
	return s.storage.All()
}

// Backward iterates over stored keys in the exact reverse of All's order.
func (s *Set[K]) Backward() iter.Seq[K] {
	return s.storage.Backward()
}

// Drain iterates over stored keys and leaves the set empty once iteration
// stops, whether or not it ran to completion.
func (s *Set[K]) Drain() iter.Seq[K] {
	return func(yield func(K) bool) {
		defer s.storage.Clear()
		for key := range s.storage.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Intersect iterates over the keys present in both sets. The smaller set is
// iterated and the larger probed, so the yield order is the smaller set's
// iteration order.
func (s *Set[K]) Intersect(other *Set[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		small, large := s, other
		if large.storage.Len() < small.storage.Len() {
			small, large = large, small
		}
		for key := range small.storage.All() {
			if large.storage.Has(key) && !yield(key) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same keys.
func (s *Set[K]) Equal(other *Set[K]) bool {
	if s.storage.Len() != other.storage.Len() {
		return false
	}
	for key := range s.storage.All() {
		if !other.storage.Has(key) {
			return false
		}
	}
	return true
}

// Compare orders two sets by their presence vectors in declaration order, a
// present key ordering before an absent one at the same index. Defined only
// for storages with a declaration order; ok is false for the open storage
// or mismatched storage kinds.
func (s *Set[K]) Compare(other *Set[K]) (c int, ok bool) {
	comparer, ok := s.storage.(SetStorageComparer[K])
	if !ok {
		return 0, false
	}
	return comparer.CompareStorage(other.storage)
}
