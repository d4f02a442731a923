package fixedmap

import "github.com/homier/fixedmap/bucket"

// Occupied is a view into an occupied slot. It is obtained from
// MapStorage.Entry and performs no lookups of its own.
type Occupied[K, V any] interface {
	// Key returns a copy of the key of the entry.
	Key() K

	// Get returns a copy of the stored value.
	Get() V

	// Ptr returns a pointer to the stored value, valid for as long as the
	// caller retains exclusive access to the storage.
	Ptr() *V

	// Replace stores value and returns the previous one.
	Replace(value V) V

	// Remove empties the slot and returns the stored value. The entry
	// must not be used afterwards.
	Remove() V
}

// Vacant is a view into a vacant slot.
type Vacant[K, V any] interface {
	// Key returns a copy of the key of the entry.
	Key() K

	// Insert stores value in the slot and returns a pointer to it. The
	// entry must not be used afterwards.
	Insert(value V) *V
}

// Entry is a handle to a single slot, holding exactly one of an Occupied or
// a Vacant view. Constructing an Entry probes the storage once; mutating
// through the handle performs no further lookups.
type Entry[K, V any] struct {
	occ Occupied[K, V]
	vac Vacant[K, V]
}

// OccupiedEntry wraps an Occupied view into an Entry.
func OccupiedEntry[K, V any](occ Occupied[K, V]) Entry[K, V] {
	return Entry[K, V]{occ: occ}
}

// VacantEntry wraps a Vacant view into an Entry.
func VacantEntry[K, V any](vac Vacant[K, V]) Entry[K, V] {
	return Entry[K, V]{vac: vac}
}

// Occupied returns the occupied view, if the slot was occupied.
func (e Entry[K, V]) Occupied() (Occupied[K, V], bool) {
	return e.occ, e.occ != nil
}

// Vacant returns the vacant view, if the slot was vacant.
func (e Entry[K, V]) Vacant() (Vacant[K, V], bool) {
	return e.vac, e.vac != nil
}

// Key returns a copy of the key of the entry.
func (e Entry[K, V]) Key() K {
	if e.occ != nil {
		return e.occ.Key()
	}
	return e.vac.Key()
}

// OrInsert stores value if the slot is vacant and returns a pointer to the
// stored value either way.
func (e Entry[K, V]) OrInsert(value V) *V {
	if e.occ != nil {
		return e.occ.Ptr()
	}
	return e.vac.Insert(value)
}

// OrInsertWith is OrInsert with a lazily computed default.
func (e Entry[K, V]) OrInsertWith(f func() V) *V {
	if e.occ != nil {
		return e.occ.Ptr()
	}
	return e.vac.Insert(f())
}

// OrInsertWithKey is OrInsertWith, passing the key to the default function.
func (e Entry[K, V]) OrInsertWithKey(f func(K) V) *V {
	if e.occ != nil {
		return e.occ.Ptr()
	}
	return e.vac.Insert(f(e.vac.Key()))
}

// OrDefault stores the zero value if the slot is vacant and returns a
// pointer to the stored value either way.
func (e Entry[K, V]) OrDefault() *V {
	if e.occ != nil {
		return e.occ.Ptr()
	}
	var zero V
	return e.vac.Insert(zero)
}

// AndModify applies f to the stored value if the slot is occupied. No-op on
// vacant entries. Returns the entry for chaining.
func (e Entry[K, V]) AndModify(f func(*V)) Entry[K, V] {
	if e.occ != nil {
		f(e.occ.Ptr())
	}
	return e
}

// cellOccupied backs entries of every cell-based slot.
type cellOccupied[K, V any] struct {
	key  K
	some bucket.Some[V]
}

func (o cellOccupied[K, V]) Key() K            { return o.key }
func (o cellOccupied[K, V]) Get() V            { return *o.some.Value() }
func (o cellOccupied[K, V]) Ptr() *V           { return o.some.Value() }
func (o cellOccupied[K, V]) Replace(value V) V { return o.some.Replace(value) }
func (o cellOccupied[K, V]) Remove() V         { return o.some.Take() }

type cellVacant[K, V any] struct {
	key  K
	none bucket.None[V]
}

func (v cellVacant[K, V]) Key() K            { return v.key }
func (v cellVacant[K, V]) Insert(value V) *V { return v.none.Insert(value) }

// CellEntry builds an Entry over a single optional cell. This is the entry
// implementation shared by the singleton, boolean, enumerated-array and
// optional-wrap storages, and by unit variants of generated composite
// storages.
func CellEntry[K, V any](key K, c *bucket.Cell[V]) Entry[K, V] {
	if some, ok := bucket.AsSome(c); ok {
		return OccupiedEntry[K, V](cellOccupied[K, V]{key: key, some: some})
	}
	none, _ := bucket.AsNone(c)
	return VacantEntry[K, V](cellVacant[K, V]{key: key, none: none})
}

type remapOccupied[K, U, V any] struct {
	key   K
	inner Occupied[U, V]
}

func (o remapOccupied[K, U, V]) Key() K            { return o.key }
func (o remapOccupied[K, U, V]) Get() V            { return o.inner.Get() }
func (o remapOccupied[K, U, V]) Ptr() *V           { return o.inner.Ptr() }
func (o remapOccupied[K, U, V]) Replace(value V) V { return o.inner.Replace(value) }
func (o remapOccupied[K, U, V]) Remove() V         { return o.inner.Remove() }

type remapVacant[K, U, V any] struct {
	key   K
	inner Vacant[U, V]
}

func (v remapVacant[K, U, V]) Key() K            { return v.key }
func (v remapVacant[K, U, V]) Insert(value V) *V { return v.inner.Insert(value) }

// RemapEntry adapts a child storage's entry to a composite key. Composite
// storages use it to dispatch Entry calls for payload variants to the
// payload's storage while reporting the full key.
func RemapEntry[K, U, V any](key K, e Entry[U, V]) Entry[K, V] {
	if occ, ok := e.Occupied(); ok {
		return OccupiedEntry[K, V](remapOccupied[K, U, V]{key: key, inner: occ})
	}
	vac, _ := e.Vacant()
	return VacantEntry[K, V](remapVacant[K, U, V]{key: key, inner: vac})
}
