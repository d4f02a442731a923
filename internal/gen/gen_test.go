package gen

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_UnitEnums(t *testing.T) {
	pkg, err := Parse("testdata/unit", nil)
	require.NoError(t, err)
	require.Equal(t, "unit", pkg.Name)
	require.Len(t, pkg.Keys, 2)

	color := pkg.Keys[0]
	assert.Equal(t, "Color", color.Name)
	assert.False(t, color.Composite())
	assert.Equal(t, []string{"Red", "Green", "Blue"}, color.Variants)
	assert.False(t, color.Bitset)

	weekday := pkg.Keys[1]
	assert.Equal(t, "Weekday", weekday.Name)
	assert.True(t, weekday.Bitset)
	assert.Len(t, weekday.Variants, 7)
	assert.Equal(t, "uint8", weekday.Raw)
}

func TestParse_Composite(t *testing.T) {
	pkg, err := Parse("testdata/composite", nil)
	require.NoError(t, err)
	require.Len(t, pkg.Keys, 2)

	key := pkg.Keys[1]
	require.Equal(t, "Key", key.Name)
	require.True(t, key.Composite())
	assert.Equal(t, "isKey", key.Marker)

	require.Len(t, key.Sum, 4)
	assert.Equal(t, Variant{TypeName: "Simple", Payload: PayloadNone}, key.Sum[0])
	assert.Equal(t, Variant{TypeName: "WithPart", Field: "Part", Payload: PayloadEnum, PayloadType: "Part"}, key.Sum[1])
	assert.Equal(t, Variant{TypeName: "WithName", Field: "Name", Payload: PayloadOpen, PayloadType: "string"}, key.Sum[2])
	assert.Equal(t, Variant{TypeName: "WithFlag", Field: "On", Payload: PayloadBool, PayloadType: "bool"}, key.Sum[3])
}

func TestParse_TypeFilter(t *testing.T) {
	pkg, err := Parse("testdata/unit", []string{"Color"})
	require.NoError(t, err)
	require.Len(t, pkg.Keys, 1)
	assert.Equal(t, "Color", pkg.Keys[0].Name)

	_, err = Parse("testdata/unit", []string{"Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		dir  string
		want string
	}{
		{"multi-field variant", "testdata/invalid/multifield", "single field"},
		{"bitset on composite", "testdata/invalid/bitset", "bitset"},
		{"non-contiguous consts", "testdata/invalid/gaps", "contiguous"},
		{"unsupported shape", "testdata/invalid/shape", "integer enumeration or a sealed interface"},
		{"unsupported payload", "testdata/invalid/payload", "payload type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.dir, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRawWidth(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "uint8"},
		{8, "uint8"},
		{9, "uint16"},
		{16, "uint16"},
		{17, "uint32"},
		{33, "uint64"},
		{64, "uint64"},
	}
	for _, tc := range cases {
		got, err := rawWidth(tc.n)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "n=%d", tc.n)
	}

	_, err := rawWidth(65)
	require.Error(t, err)
}

func TestGenerate_UnitEnum(t *testing.T) {
	pkg, err := Parse("testdata/unit", nil)
	require.NoError(t, err)

	src, err := Generate(pkg)
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "package unit")
	assert.Contains(t, out, "func (k Color) Ordinal() int")
	assert.Contains(t, out, "func (Color) FromOrdinal(i int) Color")
	assert.Contains(t, out, "return 3 }")
	assert.Contains(t, out, "func NewColorMap[V any]() *fixedmap.Map[Color, V]")
	assert.Contains(t, out, "fixedmap.NewEnumMap[Color, V]()")
	assert.Contains(t, out, "fixedmap.NewEnumSet[Color]()")
	assert.Contains(t, out, "fixedmap.NewBitSet[Weekday, uint8]()")
	assert.NotContains(t, out, "\"iter\"")

	parseGenerated(t, src)
}

func TestGenerate_Composite(t *testing.T) {
	pkg, err := Parse("testdata/composite", nil)
	require.NoError(t, err)

	src, err := Generate(pkg)
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "type keyMapStorage[V any] struct")
	assert.Contains(t, out, "simple   bucket.Cell[V]")
	assert.Contains(t, out, "withPart *fixedmap.EnumMap[Part, V]")
	assert.Contains(t, out, "withName *fixedmap.OpenMap[string, V]")
	assert.Contains(t, out, "withFlag *fixedmap.BoolMap[V]")
	assert.Contains(t, out, "func NewKeyMap[V any]() *fixedmap.Map[Key, V]")
	assert.Contains(t, out, "switch k := key.(type)")
	assert.Contains(t, out, "return s.withPart.Get(k.Part)")
	assert.Contains(t, out, "fixedmap.CellEntry[Key](key, &s.simple)")
	assert.Contains(t, out, "fixedmap.RemapEntry(key, s.withName.Entry(k.Name))")
	assert.Contains(t, out, "type keySetStorage struct")
	assert.Contains(t, out, "func NewKeySet() *fixedmap.Set[Key]")

	// Every dispatch method rejects a key outside the declared variants the
	// same way: map Get, Ptr, Has, Put, Delete, Entry plus set Has, Put,
	// Delete all panic.
	assert.Equal(t, 9, strings.Count(out, `panic("composite: unknown Key variant")`))

	// Unit enums marked alongside the sum still get their own bindings.
	assert.Contains(t, out, "func (k Part) Ordinal() int")
	assert.Contains(t, out, "func NewPartMap[V any]()")

	parseGenerated(t, src)
}

// parseGenerated asserts the emitted source is syntactically valid Go.
func parseGenerated(t *testing.T, src []byte) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, 0)
	require.NoError(t, err)
}
