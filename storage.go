// Package fixedmap provides maps and sets keyed by closed, enumerated key
// types. The storage backing a container is selected from the structure of
// the key type, so that for array-backed keys the usual map operations
// compile down to direct slot indexing instead of hashing.
//
// The key-to-storage binding is produced by the fixedmap-gen tool (see
// cmd/fixedmap-gen), which emits constructors such as NewMyKeyMap and
// NewMyKeySet for every declared key type. The storage strategies themselves
// (SingletonMap, BoolMap, EnumMap, BitSet, OptionMap, OpenMap and their set
// counterparts) are ordinary exported types and can also be wired by hand.
package fixedmap

import "iter"

// MapStorage is the contract every map storage strategy implements.
//
// All storages agree on the following invariants: Len equals the number of
// entries yielded by All; array-backed storages iterate variants in
// declaration order and Backward visits the exact reverse; the open storage
// iterates in unspecified order.
type MapStorage[K comparable, V any] interface {
	// Len returns the number of occupied slots.
	Len() int

	// IsEmpty reports whether no slot is occupied.
	IsEmpty() bool

	// Get returns the value stored for key.
	Get(key K) (V, bool)

	// Ptr returns a pointer to the value stored for key, or nil if the
	// slot is vacant. The pointer stays valid until the storage is
	// mutated through another operation.
	Ptr(key K) *V

	// Has reports whether the slot for key is occupied.
	Has(key K) bool

	// Put stores value at the slot for key and returns the previously
	// stored value, if any.
	Put(key K, value V) (V, bool)

	// Delete empties the slot for key and returns the previously stored
	// value, if any.
	Delete(key K) (V, bool)

	// Retain visits every occupied slot in iteration order, invoking keep
	// exactly once per entry, and deletes the entries for which keep
	// returns false.
	Retain(keep func(key K, value *V) bool)

	// Clear empties every slot.
	Clear()

	// Entry probes the slot for key once and returns a handle for
	// mutating it without further lookups.
	Entry(key K) Entry[K, V]

	// All iterates over occupied slots.
	All() iter.Seq2[K, V]

	// AllPtr iterates over occupied slots, yielding value pointers for
	// in-place mutation. Pointers are valid only during their yield.
	AllPtr() iter.Seq2[K, *V]

	// Backward iterates over occupied slots in reverse iteration order.
	Backward() iter.Seq2[K, V]
}

// SetStorage is the contract every set storage strategy implements.
type SetStorage[K comparable] interface {
	// Len returns the number of stored keys.
	Len() int

	// IsEmpty reports whether the set is empty.
	IsEmpty() bool

	// Has reports whether key is in the set.
	Has(key K) bool

	// Put adds key to the set. Returns true iff the key was newly added.
	Put(key K) bool

	// Delete removes key from the set. Returns true iff it was present.
	Delete(key K) bool

	// Retain visits every stored key in iteration order, invoking keep
	// exactly once per key, and removes the keys for which keep returns
	// false.
	Retain(keep func(key K) bool)

	// Clear removes every key.
	Clear()

	// All iterates over stored keys.
	All() iter.Seq[K]

	// Backward iterates over stored keys in reverse iteration order.
	Backward() iter.Seq[K]
}

// Enumerated is the constraint satisfied by unit-only enumerated key types.
// The methods are normally emitted by fixedmap-gen and must be callable on
// the zero value.
type Enumerated[K any] interface {
	comparable

	// Ordinal returns the declaration index of this variant.
	Ordinal() int

	// FromOrdinal returns the variant at the given declaration index.
	// The receiver value is ignored.
	FromOrdinal(ordinal int) K

	// NumVariants returns the number of declared variants. The receiver
	// value is ignored.
	NumVariants() int
}

// RawBits enumerates the unsigned integer widths a BitSet can be packed
// into. fixedmap-gen picks the smallest member with at least NumVariants
// bits.
type RawBits interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// MapStorageComparer is implemented by map storages with a defined order.
//
// Comparison runs slot-by-slot in declaration order: values of two occupied
// slots are compared with cmp, and at an index where exactly one side is
// occupied, the occupied side orders first. The open storage has no defined
// order and does not implement this interface.
type MapStorageComparer[K comparable, V any] interface {
	CompareStorage(other MapStorage[K, V], cmp func(a, b V) int) (int, bool)
}

// SetStorageComparer is the set counterpart of MapStorageComparer: presence
// vectors are compared in declaration order, and at an index where exactly
// one side holds the key, that side orders first.
type SetStorageComparer[K comparable] interface {
	CompareStorage(other SetStorage[K]) (int, bool)
}

// compareCells orders two optional slots at the same index: occupied before
// absent, values compared when both are occupied.
func compareCells[V any](av *V, bv *V, cmp func(a, b V) int) int {
	switch {
	case av != nil && bv != nil:
		return cmp(*av, *bv)
	case av != nil:
		return -1
	case bv != nil:
		return 1
	default:
		return 0
	}
}

// comparePresence orders two presence bits at the same index: present
// before absent.
func comparePresence(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}
