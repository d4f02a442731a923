package fixedmap

import (
	"iter"

	"github.com/homier/fixedmap/internal/swiss"
)

// HashFunc hashes a key to 64 bits.
type HashFunc[K comparable] func(K) uint64

// OpenOption configures an open storage.
type OpenOption[K comparable] func(*openConfig[K])

type openConfig[K comparable] struct {
	hash     HashFunc[K]
	capacity int
}

// WithHash overrides the default hash function.
func WithHash[K comparable](hash HashFunc[K]) OpenOption[K] {
	return func(cfg *openConfig[K]) {
		cfg.hash = hash
	}
}

// WithCapacity pre-sizes the backing table for the given number of entries.
func WithCapacity[K comparable](capacity int) OpenOption[K] {
	return func(cfg *openConfig[K]) {
		cfg.capacity = capacity
	}
}

// OpenStats reports occupancy of an open storage's backing table.
type OpenStats struct {
	Live       int
	Tombstones int
	Capacity   int
}

// OpenMap is the map storage for open (non-finite) key types such as
// integers and strings: the escape hatch of the strategy algebra. It is
// backed by a growing swiss table; iteration order is unspecified and the
// storage has no defined comparison order.
type OpenMap[K comparable, V any] struct {
	table *swiss.Table[K, V]
}

// Returns a new, empty open map storage.
func NewOpenMap[K comparable, V any](opts ...OpenOption[K]) *OpenMap[K, V] {
	var cfg openConfig[K]
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OpenMap[K, V]{table: swiss.New[K, V](swiss.HashFunc[K](cfg.hash), cfg.capacity)}
}

func (s *OpenMap[K, V]) Len() int {
	return s.table.Len()
}

func (s *OpenMap[K, V]) IsEmpty() bool {
	return s.table.Len() == 0
}

func (s *OpenMap[K, V]) Get(key K) (V, bool) {
	return s.table.Get(key)
}

func (s *OpenMap[K, V]) Ptr(key K) *V {
	return s.table.Ptr(key)
}

func (s *OpenMap[K, V]) Has(key K) bool {
	return s.table.Has(key)
}

func (s *OpenMap[K, V]) Put(key K, value V) (V, bool) {
	return s.table.Put(key, value)
}

func (s *OpenMap[K, V]) Delete(key K) (V, bool) {
	return s.table.Delete(key)
}

func (s *OpenMap[K, V]) Retain(keep func(K, *V) bool) {
	s.table.Retain(keep)
}

func (s *OpenMap[K, V]) Clear() {
	s.table.Clear()
}

func (s *OpenMap[K, V]) Entry(key K) Entry[K, V] {
	if ref, ok := s.table.Find(key); ok {
		return OccupiedEntry[K, V](openOccupied[K, V]{key: key, ref: ref})
	}
	return VacantEntry[K, V](openVacant[K, V]{key: key, table: s.table})
}

func (s *OpenMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key, p := range s.table.All() {
			if !yield(key, *p) {
				return
			}
		}
	}
}

func (s *OpenMap[K, V]) AllPtr() iter.Seq2[K, *V] {
	return s.table.All()
}

func (s *OpenMap[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key, p := range s.table.Backward() {
			if !yield(key, *p) {
				return
			}
		}
	}
}

// Stats exposes live and tombstone counts of the backing table.
func (s *OpenMap[K, V]) Stats() OpenStats {
	return OpenStats(s.table.Stats())
}

// openOccupied holds a direct slot reference; no operation probes again.
type openOccupied[K comparable, V any] struct {
	key K
	ref swiss.Ref[K, V]
}

func (o openOccupied[K, V]) Key() K    { return o.key }
func (o openOccupied[K, V]) Get() V    { return *o.ref.Ptr() }
func (o openOccupied[K, V]) Ptr() *V   { return o.ref.Ptr() }
func (o openOccupied[K, V]) Remove() V { return o.ref.Delete() }
func (o openOccupied[K, V]) Replace(value V) V {
	p := o.ref.Ptr()
	prev := *p
	*p = value
	return prev
}

// openVacant re-probes on Insert: insertion may grow the table, so a slot
// cannot be pinned up front. Observationally identical to the one-probe
// contract.
type openVacant[K comparable, V any] struct {
	key   K
	table *swiss.Table[K, V]
}

func (v openVacant[K, V]) Key() K            { return v.key }
func (v openVacant[K, V]) Insert(value V) *V { return v.table.PutPtr(v.key, value) }

// OpenSet is the set storage for open key types.
type OpenSet[K comparable] struct {
	table *swiss.Table[K, struct{}]
}

// Returns a new, empty open set storage.
func NewOpenSet[K comparable](opts ...OpenOption[K]) *OpenSet[K] {
	var cfg openConfig[K]
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OpenSet[K]{table: swiss.New[K, struct{}](swiss.HashFunc[K](cfg.hash), cfg.capacity)}
}

func (s *OpenSet[K]) Len() int {
	return s.table.Len()
}

func (s *OpenSet[K]) IsEmpty() bool {
	return s.table.Len() == 0
}

func (s *OpenSet[K]) Has(key K) bool {
	return s.table.Has(key)
}

func (s *OpenSet[K]) Put(key K) bool {
	_, added := s.table.PutIfAbsent(key, struct{}{})
	return added
}

func (s *OpenSet[K]) Delete(key K) bool {
	_, removed := s.table.Delete(key)
	return removed
}

func (s *OpenSet[K]) Retain(keep func(K) bool) {
	s.table.Retain(func(key K, _ *struct{}) bool {
		return keep(key)
	})
}

func (s *OpenSet[K]) Clear() {
	s.table.Clear()
}

func (s *OpenSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range s.table.All() {
			if !yield(key) {
				return
			}
		}
	}
}

func (s *OpenSet[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range s.table.Backward() {
			if !yield(key) {
				return
			}
		}
	}
}
