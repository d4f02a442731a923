// Package bucket provides a mutable optional cell and two single-probe views
// over it: Some for a cell known to be occupied, None for a cell known to be
// vacant.
//
// The views check the cell's state exactly once, at construction. Every
// mutation they perform keeps the presence bit in sync with the stored value,
// so code holding a view never has to re-probe the cell.
package bucket

// Cell is a mutable optional slot: a value plus a presence bit.
//
// The zero value is a vacant cell.
type Cell[V any] struct {
	value V
	full  bool
}

// Filled returns an occupied cell holding value.
func Filled[V any](value V) Cell[V] {
	return Cell[V]{value: value, full: true}
}

// Present reports whether the cell holds a value.
func (c *Cell[V]) Present() bool {
	return c.full
}

// Get returns the stored value, if any.
func (c *Cell[V]) Get() (V, bool) {
	return c.value, c.full
}

// Ptr returns a pointer to the stored value, or nil if the cell is vacant.
func (c *Cell[V]) Ptr() *V {
	if !c.full {
		return nil
	}
	return &c.value
}

// Set stores value in the cell and returns the previously stored value.
func (c *Cell[V]) Set(value V) (V, bool) {
	prev, had := c.value, c.full
	c.value = value
	c.full = true
	return prev, had
}

// Take empties the cell and returns what was stored.
func (c *Cell[V]) Take() (V, bool) {
	if !c.full {
		var zero V
		return zero, false
	}
	value := c.value
	var zero V
	c.value = zero
	c.full = false
	return value, true
}

// Clear empties the cell.
func (c *Cell[V]) Clear() {
	var zero V
	c.value = zero
	c.full = false
}

// Some is a view over a cell that was occupied when the view was constructed.
type Some[V any] struct {
	cell *Cell[V]
}

// AsSome probes the cell once. The returned view is valid only when ok is
// true, and only for as long as the caller retains exclusive access to the
// cell.
func AsSome[V any](c *Cell[V]) (Some[V], bool) {
	if !c.full {
		return Some[V]{}, false
	}
	return Some[V]{cell: c}, true
}

// Value returns a pointer to the stored value.
func (s Some[V]) Value() *V {
	return &s.cell.value
}

// Replace stores value and returns the previous one.
func (s Some[V]) Replace(value V) V {
	prev := s.cell.value
	s.cell.value = value
	return prev
}

// Take empties the cell and returns the stored value. The view must not be
// used afterwards.
func (s Some[V]) Take() V {
	value := s.cell.value
	var zero V
	s.cell.value = zero
	s.cell.full = false
	return value
}

// None is a view over a cell that was vacant when the view was constructed.
type None[V any] struct {
	cell *Cell[V]
}

// AsNone probes the cell once. The returned view is valid only when ok is
// true, and only for as long as the caller retains exclusive access to the
// cell.
func AsNone[V any](c *Cell[V]) (None[V], bool) {
	if c.full {
		return None[V]{}, false
	}
	return None[V]{cell: c}, true
}

// Insert stores value in the cell and returns a pointer to it. There is no
// previous value to drop. The view must not be used afterwards.
func (n None[V]) Insert(value V) *V {
	n.cell.value = value
	n.cell.full = true
	return &n.cell.value
}
