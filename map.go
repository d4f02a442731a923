package fixedmap

import "iter"

// Map is a map keyed by a fixed key type. It is a thin forwarder over the
// storage associated with the key type; use the generated NewXxxMap
// constructor for a key type, or wire a storage explicitly with NewMap.
type Map[K comparable, V any] struct {
	storage MapStorage[K, V]
}

// Returns a new map over the given storage.
func NewMap[K comparable, V any](storage MapStorage[K, V]) *Map[K, V] {
	return &Map[K, V]{storage: storage}
}

// Storage exposes the backing storage, e.g. for open-storage statistics.
func (m *Map[K, V]) Storage() MapStorage[K, V] {
	return m.storage
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.storage.Len()
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.storage.IsEmpty()
}

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.storage.Get(key)
}

// Ptr returns a pointer to the value stored for key for in-place mutation,
// or nil if absent.
func (m *Map[K, V]) Ptr(key K) *V {
	return m.storage.Ptr(key)
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	return m.storage.Has(key)
}

// Put stores value for key. Returns the previously stored value, if any.
func (m *Map[K, V]) Put(key K, value V) (V, bool) {
	return m.storage.Put(key, value)
}

// Delete removes key. Returns the previously stored value, if any.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	return m.storage.Delete(key)
}

// Retain visits every entry in iteration order and deletes those for which
// keep returns false.
func (m *Map[K, V]) Retain(keep func(key K, value *V) bool) {
	m.storage.Retain(keep)
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	m.storage.Clear()
}

// Entry probes the slot for key once and returns a mutation handle.
func (m *Map[K, V]) Entry(key K) Entry[K, V] {
	return m.storage.Entry(key)
}

// All iterates over entries. Array-backed storages iterate variants in
// declaration order; the open storage in unspecified order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.storage.All()
}

// AllPtr iterates over entries, yielding value pointers for in-place
// mutation.
func (m *Map[K, V]) AllPtr() iter.Seq2[K, *V] {
	return m.storage.AllPtr()
}

// Backward iterates over entries in the exact reverse of All's order.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return m.storage.Backward()
}

// Keys iterates over present keys, in All's order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range m.storage.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Values iterates over stored values, in All's order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range m.storage.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// ValuesPtr iterates over pointers to stored values, in All's order.
func (m *Map[K, V]) ValuesPtr() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for _, p := range m.storage.AllPtr() {
			if !yield(p) {
				return
			}
		}
	}
}

// Drain iterates over entries and leaves the map empty once iteration
// stops, whether or not it ran to completion.
func (m *Map[K, V]) Drain() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		defer m.storage.Clear()
		for key, value := range m.storage.All() {
			if !yield(key, value) {
				return
			}
		}
	}
}

// Equal reports whether both maps hold the same keys with equal values.
func (m *Map[K, V]) Equal(other *Map[K, V], eq func(a, b V) bool) bool {
	if m.storage.Len() != other.storage.Len() {
		return false
	}
	for key, value := range m.storage.All() {
		ov, ok := other.storage.Get(key)
		if !ok || !eq(value, ov) {
			return false
		}
	}
	return true
}

// Compare orders two maps slot-by-slot in declaration order, an occupied
// slot ordering before an absent one at the same index. Defined only for
// storages with a declaration order; ok is false for the open storage or
// mismatched storage kinds.
func (m *Map[K, V]) Compare(other *Map[K, V], cmp func(a, b V) int) (c int, ok bool) {
	comparer, ok := m.storage.(MapStorageComparer[K, V])
	if !ok {
		return 0, false
	}
	return comparer.CompareStorage(other.storage, cmp)
}
