package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_Basic(t *testing.T) {
	var c Cell[int]

	require.False(t, c.Present())

	_, ok := c.Get()
	require.False(t, ok)
	require.Nil(t, c.Ptr())

	prev, had := c.Set(42)
	require.False(t, had)
	assert.Equal(t, 0, prev)
	require.True(t, c.Present())

	v, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	prev, had = c.Set(100)
	require.True(t, had)
	assert.Equal(t, 42, prev)

	v, ok = c.Take()
	require.True(t, ok)
	assert.Equal(t, 100, v)
	require.False(t, c.Present())

	_, ok = c.Take()
	require.False(t, ok)
}

func TestCell_Filled(t *testing.T) {
	c := Filled("x")

	require.True(t, c.Present())

	v, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestCell_TakeDropsValue(t *testing.T) {
	c := Filled([]int{1, 2, 3})

	_, ok := c.Take()
	require.True(t, ok)

	// The cell must not retain the old slice.
	p := &c.value
	assert.Nil(t, *p)
}

func TestSome(t *testing.T) {
	c := Filled(12)

	some, ok := AsSome(&c)
	require.True(t, ok)

	assert.Equal(t, 12, *some.Value())

	*some.Value() = 13
	v, _ := c.Get()
	assert.Equal(t, 13, v)

	prev := some.Replace(20)
	assert.Equal(t, 13, prev)

	v = some.Take()
	assert.Equal(t, 20, v)
	assert.False(t, c.Present())
}

func TestSome_OnVacant(t *testing.T) {
	var c Cell[int]

	_, ok := AsSome(&c)
	require.False(t, ok)
}

func TestNone(t *testing.T) {
	var c Cell[int]

	none, ok := AsNone(&c)
	require.True(t, ok)

	p := none.Insert(7)
	require.NotNil(t, p)
	assert.Equal(t, 7, *p)
	require.True(t, c.Present())

	// The returned pointer aliases the cell contents.
	*p = 8
	v, _ := c.Get()
	assert.Equal(t, 8, v)
}

func TestNone_OnOccupied(t *testing.T) {
	c := Filled(1)

	_, ok := AsNone(&c)
	require.False(t, ok)
}
