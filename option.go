package fixedmap

import (
	"iter"

	"github.com/homier/fixedmap/bucket"
)

// Option is a comparable optional value, usable as a key. A key type
// Option[U] is stored in an OptionMap/OptionSet layered over U's storage.
type Option[U any] struct {
	value U
	some  bool
}

// Some returns an Option holding value.
func Some[U any](value U) Option[U] {
	return Option[U]{value: value, some: true}
}

// None returns the absent Option.
func None[U any]() Option[U] {
	return Option[U]{}
}

// IsSome reports whether the option holds a value.
func (o Option[U]) IsSome() bool {
	return o.some
}

// IsNone reports whether the option is absent.
func (o Option[U]) IsNone() bool {
	return !o.some
}

// Get returns the held value, if any.
func (o Option[U]) Get() (U, bool) {
	return o.value, o.some
}

// MustGet returns the held value, panicking on the absent option.
func (o Option[U]) MustGet() U {
	if !o.some {
		panic("fixedmap: MustGet on absent Option")
	}
	return o.value
}

// OptionMap is the map storage for Option[U] keys: the child storage for U
// plus one dedicated cell for the absent key. Iteration yields the child's
// entries first and the absent slot last.
type OptionMap[U comparable, V any] struct {
	some MapStorage[U, V]
	none bucket.Cell[V]
}

// Returns a new, empty optional-wrap map storage over the given child
// storage for U.
func NewOptionMap[U comparable, V any](child MapStorage[U, V]) *OptionMap[U, V] {
	return &OptionMap[U, V]{some: child}
}

func (s *OptionMap[U, V]) Len() int {
	n := s.some.Len()
	if s.none.Present() {
		n++
	}
	return n
}

func (s *OptionMap[U, V]) IsEmpty() bool {
	return s.some.IsEmpty() && !s.none.Present()
}

func (s *OptionMap[U, V]) Get(key Option[U]) (V, bool) {
	if u, ok := key.Get(); ok {
		return s.some.Get(u)
	}
	return s.none.Get()
}

func (s *OptionMap[U, V]) Ptr(key Option[U]) *V {
	if u, ok := key.Get(); ok {
		return s.some.Ptr(u)
	}
	return s.none.Ptr()
}

func (s *OptionMap[U, V]) Has(key Option[U]) bool {
	if u, ok := key.Get(); ok {
		return s.some.Has(u)
	}
	return s.none.Present()
}

func (s *OptionMap[U, V]) Put(key Option[U], value V) (V, bool) {
	if u, ok := key.Get(); ok {
		return s.some.Put(u, value)
	}
	return s.none.Set(value)
}

func (s *OptionMap[U, V]) Delete(key Option[U]) (V, bool) {
	if u, ok := key.Get(); ok {
		return s.some.Delete(u)
	}
	return s.none.Take()
}

func (s *OptionMap[U, V]) Retain(keep func(Option[U], *V) bool) {
	s.some.Retain(func(u U, value *V) bool {
		return keep(Some(u), value)
	})
	if p := s.none.Ptr(); p != nil && !keep(None[U](), p) {
		s.none.Clear()
	}
}

func (s *OptionMap[U, V]) Clear() {
	s.some.Clear()
	s.none.Clear()
}

func (s *OptionMap[U, V]) Entry(key Option[U]) Entry[Option[U], V] {
	if u, ok := key.Get(); ok {
		return RemapEntry(key, s.some.Entry(u))
	}
	return CellEntry(key, &s.none)
}

func (s *OptionMap[U, V]) All() iter.Seq2[Option[U], V] {
	return func(yield func(Option[U], V) bool) {
		for u, value := range s.some.All() {
			if !yield(Some(u), value) {
				return
			}
		}
		if value, ok := s.none.Get(); ok {
			yield(None[U](), value)
		}
	}
}

func (s *OptionMap[U, V]) AllPtr() iter.Seq2[Option[U], *V] {
	return func(yield func(Option[U], *V) bool) {
		for u, p := range s.some.AllPtr() {
			if !yield(Some(u), p) {
				return
			}
		}
		if p := s.none.Ptr(); p != nil {
			yield(None[U](), p)
		}
	}
}

func (s *OptionMap[U, V]) Backward() iter.Seq2[Option[U], V] {
	return func(yield func(Option[U], V) bool) {
		if value, ok := s.none.Get(); ok && !yield(None[U](), value) {
			return
		}
		for u, value := range s.some.Backward() {
			if !yield(Some(u), value) {
				return
			}
		}
	}
}

func (s *OptionMap[U, V]) CompareStorage(other MapStorage[Option[U], V], cmp func(a, b V) int) (int, bool) {
	o, ok := other.(*OptionMap[U, V])
	if !ok {
		return 0, false
	}
	child, ok := s.some.(MapStorageComparer[U, V])
	if !ok {
		return 0, false
	}
	c, ok := child.CompareStorage(o.some, cmp)
	if !ok {
		return 0, false
	}
	if c != 0 {
		return c, true
	}
	return compareCells(s.none.Ptr(), o.none.Ptr(), cmp), true
}

// OptionSet is the set storage for Option[U] keys.
type OptionSet[U comparable] struct {
	some SetStorage[U]
	none bool
}

// Returns a new, empty optional-wrap set storage over the given child
// storage for U.
func NewOptionSet[U comparable](child SetStorage[U]) *OptionSet[U] {
	return &OptionSet[U]{some: child}
}

func (s *OptionSet[U]) Len() int {
	n := s.some.Len()
	if s.none {
		n++
	}
	return n
}

func (s *OptionSet[U]) IsEmpty() bool {
	return s.some.IsEmpty() && !s.none
}

func (s *OptionSet[U]) Has(key Option[U]) bool {
	if u, ok := key.Get(); ok {
		return s.some.Has(u)
	}
	return s.none
}

func (s *OptionSet[U]) Put(key Option[U]) bool {
	if u, ok := key.Get(); ok {
		return s.some.Put(u)
	}
	added := !s.none
	s.none = true
	return added
}

func (s *OptionSet[U]) Delete(key Option[U]) bool {
	if u, ok := key.Get(); ok {
		return s.some.Delete(u)
	}
	removed := s.none
	s.none = false
	return removed
}

func (s *OptionSet[U]) Retain(keep func(Option[U]) bool) {
	s.some.Retain(func(u U) bool {
		return keep(Some(u))
	})
	if s.none && !keep(None[U]()) {
		s.none = false
	}
}

func (s *OptionSet[U]) Clear() {
	s.some.Clear()
	s.none = false
}

func (s *OptionSet[U]) All() iter.Seq[Option[U]] {
	return func(yield func(Option[U]) bool) {
		for u := range s.some.All() {
			if !yield(Some(u)) {
				return
			}
		}
		if s.none {
			yield(None[U]())
		}
	}
}

func (s *OptionSet[U]) Backward() iter.Seq[Option[U]] {
	return func(yield func(Option[U]) bool) {
		if s.none && !yield(None[U]()) {
			return
		}
		for u := range s.some.Backward() {
			if !yield(Some(u)) {
				return
			}
		}
	}
}

func (s *OptionSet[U]) CompareStorage(other SetStorage[Option[U]]) (int, bool) {
	o, ok := other.(*OptionSet[U])
	if !ok {
		return 0, false
	}
	child, ok := s.some.(SetStorageComparer[U])
	if !ok {
		return 0, false
	}
	c, ok := child.CompareStorage(o.some)
	if !ok {
		return 0, false
	}
	if c != 0 {
		return c, true
	}
	return comparePresence(s.none, o.none), true
}
