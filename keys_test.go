package fixedmap

import (
	"iter"

	"github.com/homier/fixedmap/bucket"
)

// The key types below mirror what fixedmap-gen emits, so the tests exercise
// the exact binding surface generated code relies on.

// testPart is a unit-only enumeration with two variants.
type testPart int

const (
	partA testPart = iota
	partB
)

func (k testPart) Ordinal() int             { return int(k) }
func (testPart) FromOrdinal(i int) testPart { return testPart(i) }
func (testPart) NumVariants() int           { return 2 }

// testColor is a unit-only enumeration with three variants.
type testColor int

const (
	colorOne testColor = iota
	colorTwo
	colorThree
)

func (k testColor) Ordinal() int              { return int(k) }
func (testColor) FromOrdinal(i int) testColor { return testColor(i) }
func (testColor) NumVariants() int            { return 3 }

func newColorMap[V any]() *Map[testColor, V] {
	return NewMap[testColor, V](NewEnumMap[testColor, V]())
}

func newColorSet() *Set[testColor] {
	return NewSet[testColor](NewEnumSet[testColor]())
}

// testWide is a ten-variant unit-only enumeration carrying the bitset
// attribute; its set storage packs into a uint16.
type testWide int

const (
	wide0 testWide = iota
	wide1
	wide2
	wide3
	wide4
	wide5
	wide6
	wide7
	wide8
	wide9
)

func (k testWide) Ordinal() int             { return int(k) }
func (testWide) FromOrdinal(i int) testWide { return testWide(i) }
func (testWide) NumVariants() int           { return 10 }

func newWideSet() *Set[testWide] {
	return NewSet[testWide](NewBitSet[testWide, uint16]())
}

// testKey is a composite enumeration: Simple is a unit variant, Comp
// carries a testPart payload and Name carries an open string payload.
type testKey interface{ isTestKey() }

type simpleKey struct{}

type compKey struct{ Part testPart }

type nameKey struct{ Name string }

func (simpleKey) isTestKey() {}
func (compKey) isTestKey()   {}
func (nameKey) isTestKey()   {}

// testKeyMapStorage is the composite map storage for testKey: one slot per
// variant in declaration order. A key outside the declared variants, such as
// a nil interface value, panics.
type testKeyMapStorage[V any] struct {
	simple bucket.Cell[V]
	comp   *EnumMap[testPart, V]
	name   *OpenMap[string, V]
}

func newTestKeyMapStorage[V any]() *testKeyMapStorage[V] {
	return &testKeyMapStorage[V]{
		comp: NewEnumMap[testPart, V](),
		name: NewOpenMap[string, V](),
	}
}

func newTestKeyMap[V any]() *Map[testKey, V] {
	return NewMap[testKey, V](newTestKeyMapStorage[V]())
}

func (s *testKeyMapStorage[V]) Len() int {
	n := s.comp.Len() + s.name.Len()
	if s.simple.Present() {
		n++
	}
	return n
}

func (s *testKeyMapStorage[V]) IsEmpty() bool {
	return s.Len() == 0
}

func (s *testKeyMapStorage[V]) Get(key testKey) (V, bool) {
	switch k := key.(type) {
	case simpleKey:
		return s.simple.Get()
	case compKey:
		return s.comp.Get(k.Part)
	case nameKey:
		return s.name.Get(k.Name)
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeyMapStorage[V]) Ptr(key testKey) *V {
	switch k := key.(type) {
	case simpleKey:
		return s.simple.Ptr()
	case compKey:
		return s.comp.Ptr(k.Part)
	case nameKey:
		return s.name.Ptr(k.Name)
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeyMapStorage[V]) Has(key testKey) bool {
	switch k := key.(type) {
	case simpleKey:
		return s.simple.Present()
	case compKey:
		return s.comp.Has(k.Part)
	case nameKey:
		return s.name.Has(k.Name)
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeyMapStorage[V]) Put(key testKey, value V) (V, bool) {
	switch k := key.(type) {
	case simpleKey:
		return s.simple.Set(value)
	case compKey:
		return s.comp.Put(k.Part, value)
	case nameKey:
		return s.name.Put(k.Name, value)
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeyMapStorage[V]) Delete(key testKey) (V, bool) {
	switch k := key.(type) {
	case simpleKey:
		return s.simple.Take()
	case compKey:
		return s.comp.Delete(k.Part)
	case nameKey:
		return s.name.Delete(k.Name)
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeyMapStorage[V]) Retain(keep func(testKey, *V) bool) {
	if p := s.simple.Ptr(); p != nil && !keep(simpleKey{}, p) {
		s.simple.Clear()
	}
	s.comp.Retain(func(part testPart, value *V) bool {
		return keep(compKey{Part: part}, value)
	})
	s.name.Retain(func(name string, value *V) bool {
		return keep(nameKey{Name: name}, value)
	})
}

func (s *testKeyMapStorage[V]) Clear() {
	s.simple.Clear()
	s.comp.Clear()
	s.name.Clear()
}

func (s *testKeyMapStorage[V]) Entry(key testKey) Entry[testKey, V] {
	switch k := key.(type) {
	case simpleKey:
		return CellEntry[testKey](key, &s.simple)
	case compKey:
		return RemapEntry(key, s.comp.Entry(k.Part))
	case nameKey:
		return RemapEntry(key, s.name.Entry(k.Name))
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeyMapStorage[V]) All() iter.Seq2[testKey, V] {
	return func(yield func(testKey, V) bool) {
		if value, ok := s.simple.Get(); ok && !yield(simpleKey{}, value) {
			return
		}
		for part, value := range s.comp.All() {
			if !yield(compKey{Part: part}, value) {
				return
			}
		}
		for name, value := range s.name.All() {
			if !yield(nameKey{Name: name}, value) {
				return
			}
		}
	}
}

func (s *testKeyMapStorage[V]) AllPtr() iter.Seq2[testKey, *V] {
	return func(yield func(testKey, *V) bool) {
		if p := s.simple.Ptr(); p != nil && !yield(simpleKey{}, p) {
			return
		}
		for part, p := range s.comp.AllPtr() {
			if !yield(compKey{Part: part}, p) {
				return
			}
		}
		for name, p := range s.name.AllPtr() {
			if !yield(nameKey{Name: name}, p) {
				return
			}
		}
	}
}

func (s *testKeyMapStorage[V]) Backward() iter.Seq2[testKey, V] {
	return func(yield func(testKey, V) bool) {
		for name, value := range s.name.Backward() {
			if !yield(nameKey{Name: name}, value) {
				return
			}
		}
		for part, value := range s.comp.Backward() {
			if !yield(compKey{Part: part}, value) {
				return
			}
		}
		if value, ok := s.simple.Get(); ok {
			yield(simpleKey{}, value)
		}
	}
}

// testKeySetStorage is the composite set storage for testKey.
type testKeySetStorage struct {
	simple bool
	comp   *EnumSet[testPart]
	name   *OpenSet[string]
}

func newTestKeySetStorage() *testKeySetStorage {
	return &testKeySetStorage{
		comp: NewEnumSet[testPart](),
		name: NewOpenSet[string](),
	}
}

func newTestKeySet() *Set[testKey] {
	return NewSet[testKey](newTestKeySetStorage())
}

func (s *testKeySetStorage) Len() int {
	n := s.comp.Len() + s.name.Len()
	if s.simple {
		n++
	}
	return n
}

func (s *testKeySetStorage) IsEmpty() bool {
	return s.Len() == 0
}

func (s *testKeySetStorage) Has(key testKey) bool {
	switch k := key.(type) {
	case simpleKey:
		return s.simple
	case compKey:
		return s.comp.Has(k.Part)
	case nameKey:
		return s.name.Has(k.Name)
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeySetStorage) Put(key testKey) bool {
	switch k := key.(type) {
	case simpleKey:
		added := !s.simple
		s.simple = true
		return added
	case compKey:
		return s.comp.Put(k.Part)
	case nameKey:
		return s.name.Put(k.Name)
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeySetStorage) Delete(key testKey) bool {
	switch k := key.(type) {
	case simpleKey:
		removed := s.simple
		s.simple = false
		return removed
	case compKey:
		return s.comp.Delete(k.Part)
	case nameKey:
		return s.name.Delete(k.Name)
	}
	panic("fixedmap: unknown testKey variant")
}

func (s *testKeySetStorage) Retain(keep func(testKey) bool) {
	if s.simple && !keep(simpleKey{}) {
		s.simple = false
	}
	s.comp.Retain(func(part testPart) bool {
		return keep(compKey{Part: part})
	})
	s.name.Retain(func(name string) bool {
		return keep(nameKey{Name: name})
	})
}

func (s *testKeySetStorage) Clear() {
	s.simple = false
	s.comp.Clear()
	s.name.Clear()
}

func (s *testKeySetStorage) All() iter.Seq[testKey] {
	return func(yield func(testKey) bool) {
		if s.simple && !yield(simpleKey{}) {
			return
		}
		for part := range s.comp.All() {
			if !yield(compKey{Part: part}) {
				return
			}
		}
		for name := range s.name.All() {
			if !yield(nameKey{Name: name}) {
				return
			}
		}
	}
}

func (s *testKeySetStorage) Backward() iter.Seq[testKey] {
	return func(yield func(testKey) bool) {
		for name := range s.name.Backward() {
			if !yield(nameKey{Name: name}) {
				return
			}
		}
		for part := range s.comp.Backward() {
			if !yield(compKey{Part: part}) {
				return
			}
		}
		if s.simple {
			yield(simpleKey{})
		}
	}
}
