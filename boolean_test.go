package fixedmap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolMap_Basic(t *testing.T) {
	m := NewMap[bool, string](NewBoolMap[string]())

	_, had := m.Put(true, "yes")
	require.False(t, had)
	_, had = m.Put(false, "no")
	require.False(t, had)

	assert.Equal(t, 2, m.Len())

	v, ok := m.Get(true)
	require.True(t, ok)
	assert.Equal(t, "yes", v)

	prev, had := m.Put(true, "aye")
	require.True(t, had)
	assert.Equal(t, "yes", prev)

	prev, removed := m.Delete(false)
	require.True(t, removed)
	assert.Equal(t, "no", prev)
	assert.False(t, m.Has(false))
	assert.Equal(t, 1, m.Len())
}

func TestBoolMap_IterationOrder(t *testing.T) {
	m := NewMap[bool, int](NewBoolMap[int]())

	m.Put(false, 0)
	m.Put(true, 1)

	keys, values := collect2(m.All())
	assert.Equal(t, []bool{true, false}, keys)
	assert.Equal(t, []int{1, 0}, values)

	keys, values = collect2(m.Backward())
	assert.Equal(t, []bool{false, true}, keys)
	assert.Equal(t, []int{0, 1}, values)
}

func TestBoolMap_Retain(t *testing.T) {
	m := NewMap[bool, int](NewBoolMap[int]())

	m.Put(true, 1)
	m.Put(false, 2)

	m.Retain(func(_ bool, v *int) bool { return *v%2 == 1 })

	assert.True(t, m.Has(true))
	assert.False(t, m.Has(false))
}

func TestBoolSet_Basic(t *testing.T) {
	s := NewSet[bool](NewBoolSet())

	require.True(t, s.IsEmpty())
	require.True(t, s.Put(false))
	require.False(t, s.Put(false))

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has(false))
	assert.False(t, s.Has(true))

	s.Put(true)
	assert.Equal(t, []bool{true, false}, slices.Collect(s.All()))
	assert.Equal(t, []bool{false, true}, slices.Collect(s.Backward()))

	require.True(t, s.Delete(true))
	require.False(t, s.Delete(true))

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestBoolSet_Retain(t *testing.T) {
	s := NewSet[bool](NewBoolSet())

	s.Put(true)
	s.Put(false)

	s.Retain(func(k bool) bool { return !k })

	assert.Equal(t, []bool{false}, slices.Collect(s.All()))
}

func TestSingletonMap_Basic(t *testing.T) {
	m := NewMap[struct{}, int](NewSingletonMap[struct{}, int]())

	require.True(t, m.IsEmpty())

	_, had := m.Put(struct{}{}, 1)
	require.False(t, had)
	assert.Equal(t, 1, m.Len())

	prev, had := m.Put(struct{}{}, 2)
	require.True(t, had)
	assert.Equal(t, 1, prev)

	v, ok := m.Get(struct{}{})
	require.True(t, ok)
	assert.Equal(t, 2, v)

	keys, values := collect2(m.All())
	assert.Equal(t, []struct{}{{}}, keys)
	assert.Equal(t, []int{2}, values)

	back, _ := collect2(m.Backward())
	assert.Equal(t, keys, back)

	prev, removed := m.Delete(struct{}{})
	require.True(t, removed)
	assert.Equal(t, 2, prev)
	assert.True(t, m.IsEmpty())
}

func TestSingletonMap_Retain(t *testing.T) {
	m := NewMap[struct{}, int](NewSingletonMap[struct{}, int]())

	m.Put(struct{}{}, 3)
	m.Retain(func(_ struct{}, v *int) bool { return *v > 5 })
	assert.True(t, m.IsEmpty())

	m.Put(struct{}{}, 7)
	m.Retain(func(_ struct{}, v *int) bool { return *v > 5 })
	assert.Equal(t, 1, m.Len())
}

func TestSingletonSet_Basic(t *testing.T) {
	s := NewSet[struct{}](NewSingletonSet[struct{}]())

	require.False(t, s.Has(struct{}{}))
	require.True(t, s.Put(struct{}{}))
	require.False(t, s.Put(struct{}{}))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []struct{}{{}}, slices.Collect(s.All()))

	require.True(t, s.Delete(struct{}{}))
	require.False(t, s.Delete(struct{}{}))
	assert.True(t, s.IsEmpty())
}
