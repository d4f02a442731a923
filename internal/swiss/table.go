// Package swiss implements the hash table backing the open storage
// strategy: a swiss table with 8-slot groups, quadratic probing and
// tombstoned deletes. Unlike a fixed-capacity table it grows by rehashing
// into a larger group array once the load factor is reached, so callers
// never observe a full table.
package swiss

import (
	"iter"
	"math/bits"
	"unsafe"
)

const (
	groupSize = 8

	slotEmpty   = 0x80
	slotDeleted = 0xFE

	// One group. Smallest table we bother allocating.
	minCapacity = 8
)

type group[K comparable, V any] struct {
	// 8 bytes of metadata (h2 or control states), loadable as a single
	// uint64.
	ctrls [groupSize]uint8

	// 8 keys stored immediately after the metadata.
	slots [groupSize]K

	// 8 values stored after the keys.
	values [groupSize]V
}

// Table is a growable swiss table. The zero value is empty and ready to
// use with the default hash.
type Table[K comparable, V any] struct {
	groups []group[K, V]

	capacity          uintptr
	numGroupsMask     uintptr
	capacityEffective uintptr

	live uintptr
	dead uintptr

	hash HashFunc[K]
}

// Stats reports occupancy of the table, for rehash observability.
type Stats struct {
	Live       int
	Tombstones int
	Capacity   int
}

// New returns an empty table. A nil hash selects DefaultHash.
func New[K comparable, V any](hash HashFunc[K], capacity int) *Table[K, V] {
	t := &Table[K, V]{hash: hash}
	if capacity > 0 {
		t.init(capacity)
	}
	return t
}

func nextPowerOf2(v uint32) uint32 {
	return uint32(1) << min(bits.Len32(v-1), 31)
}

func (t *Table[K, V]) init(capacity int) {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	normalized := uintptr(nextPowerOf2(uint32(capacity)))
	numGroups := normalized / groupSize

	t.groups = make([]group[K, V], numGroups)
	t.capacity = normalized
	t.numGroupsMask = numGroups - 1
	t.capacityEffective = normalized * 7 / 8

	for i := range t.groups {
		for j := range t.groups[i].ctrls {
			t.groups[i].ctrls[j] = slotEmpty
		}
	}

	if t.hash == nil {
		t.hash = DefaultHash[K]()
	}
}

func (t *Table[K, V]) ensure() {
	if t.groups == nil {
		t.init(minCapacity)
	}
}

func (t *Table[K, V]) Len() int {
	return int(t.live)
}

func (t *Table[K, V]) Stats() Stats {
	return Stats{
		Live:       int(t.live),
		Tombstones: int(t.dead),
		Capacity:   int(t.capacity),
	}
}

// find locates the group and slot holding key.
func (t *Table[K, V]) find(key K) (gi uintptr, si uintptr, ok bool) {
	if t.groups == nil {
		return 0, 0, false
	}

	h1, h2 := HashSplit(t.hash(key))
	mask := t.numGroupsMask
	start := (h1 / groupSize) & mask

	for p, offset := uintptr(0), start; p <= mask; p++ {
		g := &t.groups[offset]
		ctrl := *(*uint64)(unsafe.Pointer(&g.ctrls))

		matches := matchH2(ctrl, h2)
		for matches != 0 {
			idx := matches.first()
			if g.slots[idx] == key {
				return offset, idx, true
			}
			matches = matches.removeFirst()
		}

		// Termination: an empty slot means the key cannot be further
		// along the probe chain.
		if matchEmpty(ctrl) != 0 {
			return 0, 0, false
		}

		offset = (start + (p+1)*(p+2)/2) & mask
	}

	return 0, 0, false
}

func (t *Table[K, V]) Get(key K) (V, bool) {
	if gi, si, ok := t.find(key); ok {
		return t.groups[gi].values[si], true
	}
	var zero V
	return zero, false
}

func (t *Table[K, V]) Ptr(key K) *V {
	if gi, si, ok := t.find(key); ok {
		return &t.groups[gi].values[si]
	}
	return nil
}

func (t *Table[K, V]) Has(key K) bool {
	_, _, ok := t.find(key)
	return ok
}

// Put stores value for key and returns the previously stored value.
func (t *Table[K, V]) Put(key K, value V) (V, bool) {
	if gi, si, ok := t.find(key); ok {
		g := &t.groups[gi]
		prev := g.values[si]
		g.values[si] = value
		return prev, true
	}
	t.PutPtr(key, value)
	var zero V
	return zero, false
}

// PutPtr stores value for key and returns a pointer to the stored value.
// The pointer stays valid until the next insertion.
func (t *Table[K, V]) PutPtr(key K, value V) *V {
	t.ensure()

	// Grow before the load factor is reached so a free slot always
	// exists. Rehashing also drops tombstones.
	if t.live+t.dead >= t.capacityEffective {
		t.rehash()
	}

	for {
		if p, ok := t.putSlot(key, value); ok {
			return p
		}
		// Probe chain exhausted without a usable slot; force a grow.
		t.rehash()
	}
}

// putSlot performs one probe pass: replace the existing slot for key, or
// claim the first empty-or-deleted slot on the chain.
func (t *Table[K, V]) putSlot(key K, value V) (*V, bool) {
	h1, h2 := HashSplit(t.hash(key))
	mask := t.numGroupsMask
	start := (h1 / groupSize) & mask

	var (
		targetGroup *group[K, V]
		targetSlot  uintptr
		foundSlot   bool
	)

	for p, offset := uintptr(0), start; p <= mask; p++ {
		g := &t.groups[offset]
		ctrl := *(*uint64)(unsafe.Pointer(&g.ctrls))

		// 1. Existing check.
		matches := matchH2(ctrl, h2)
		for matches != 0 {
			idx := matches.first()
			if g.slots[idx] == key {
				g.values[idx] = value
				return &g.values[idx], true
			}
			matches = matches.removeFirst()
		}

		// 2. Cache first available slot.
		if !foundSlot {
			if m := matchEmptyOrDeleted(ctrl); m != 0 {
				targetGroup = g
				targetSlot = m.first()
				foundSlot = true
			}
		}

		// 3. Termination condition.
		if matchEmpty(ctrl) != 0 {
			if foundSlot {
				if targetGroup.ctrls[targetSlot] == slotDeleted {
					t.dead--
				}
				targetGroup.ctrls[targetSlot] = h2
				targetGroup.slots[targetSlot] = key
				targetGroup.values[targetSlot] = value
				t.live++
				return &targetGroup.values[targetSlot], true
			}
			return nil, false
		}

		offset = (start + (p+1)*(p+2)/2) & mask
	}

	return nil, false
}

// PutIfAbsent stores value for key only when absent, returning the pointer
// to the previously stored value otherwise.
func (t *Table[K, V]) PutIfAbsent(key K, value V) (*V, bool) {
	if gi, si, ok := t.find(key); ok {
		return &t.groups[gi].values[si], false
	}
	return t.PutPtr(key, value), true
}

// Delete empties the slot for key, returning what was stored.
func (t *Table[K, V]) Delete(key K) (V, bool) {
	gi, si, ok := t.find(key)
	if !ok {
		var zero V
		return zero, false
	}
	return t.deleteSlot(gi, si), true
}

func (t *Table[K, V]) deleteSlot(gi, si uintptr) V {
	g := &t.groups[gi]
	value := g.values[si]

	// Mark as deleted to preserve the probe chain; drop the contents so
	// nothing is retained.
	g.ctrls[si] = slotDeleted
	var zeroK K
	var zeroV V
	g.slots[si] = zeroK
	g.values[si] = zeroV

	t.live--
	t.dead++
	return value
}

// rehash reinserts all live entries into a fresh group array. The table
// doubles while at least half of the effective capacity is live; otherwise
// the same capacity is kept and only tombstones are dropped.
func (t *Table[K, V]) rehash() {
	capacity := int(t.capacity)
	if t.live*2 >= t.capacityEffective {
		capacity *= 2
	}

	old := t.groups
	t.init(capacity)
	t.live = 0
	t.dead = 0

	for i := range old {
		g := &old[i]
		for j := range uintptr(groupSize) {
			if g.ctrls[j] < 0x80 {
				t.putSlot(g.slots[j], g.values[j])
			}
		}
	}
}

// Clear empties the table, keeping its capacity.
func (t *Table[K, V]) Clear() {
	for i := range t.groups {
		t.groups[i] = group[K, V]{}
		for j := range t.groups[i].ctrls {
			t.groups[i].ctrls[j] = slotEmpty
		}
	}
	t.live = 0
	t.dead = 0
}

// Ref is a handle to an occupied slot, valid until the next insertion.
type Ref[K comparable, V any] struct {
	t  *Table[K, V]
	gi uintptr
	si uintptr
}

// Find returns a handle to the slot holding key.
func (t *Table[K, V]) Find(key K) (Ref[K, V], bool) {
	gi, si, ok := t.find(key)
	if !ok {
		return Ref[K, V]{}, false
	}
	return Ref[K, V]{t: t, gi: gi, si: si}, true
}

// Ptr returns a pointer to the referenced value.
func (r Ref[K, V]) Ptr() *V {
	return &r.t.groups[r.gi].values[r.si]
}

// Delete empties the referenced slot and returns the stored value.
func (r Ref[K, V]) Delete() V {
	return r.t.deleteSlot(r.gi, r.si)
}

// All iterates over the table. Order is unspecified. The yielded pointers
// are valid during their yield only.
func (t *Table[K, V]) All() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for i := range t.groups {
			g := &t.groups[i]
			for j := range groupSize {
				if g.ctrls[j] < 0x80 && !yield(g.slots[j], &g.values[j]) {
					return
				}
			}
		}
	}
}

// Backward iterates in the reverse of All's (unspecified) order.
func (t *Table[K, V]) Backward() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for i := len(t.groups) - 1; i >= 0; i-- {
			g := &t.groups[i]
			for j := groupSize - 1; j >= 0; j-- {
				if g.ctrls[j] < 0x80 && !yield(g.slots[j], &g.values[j]) {
					return
				}
			}
		}
	}
}

// Retain invokes keep once per entry and deletes the entries for which it
// returns false.
func (t *Table[K, V]) Retain(keep func(K, *V) bool) {
	for i := range t.groups {
		g := &t.groups[i]
		for j := range uintptr(groupSize) {
			if g.ctrls[j] < 0x80 && !keep(g.slots[j], &g.values[j]) {
				t.deleteSlot(uintptr(i), j)
			}
		}
	}
}
