// Package gen implements the fixedmap-gen pipeline: it parses a package,
// collects the types marked with a //fixedmap:key directive, classifies each
// as a unit enumeration or a sealed sum, validates the key-shape rules and
// emits the storage bindings for them.
package gen

import "fmt"

// Package is the generation model for one parsed package.
type Package struct {
	Name string
	Keys []*Key
}

// Key is one marked key type.
type Key struct {
	Name   string
	Bitset bool

	// Unit enumeration: variant constant names in declaration order, and
	// the raw integer width when the bitset attribute is present.
	Variants []string
	Raw      string

	// Composite enumeration: the marker method and the variant structs in
	// declaration order.
	Marker string
	Sum    []Variant
}

// Composite reports whether the key is a sealed sum.
func (k *Key) Composite() bool {
	return k.Marker != ""
}

// Variant is one struct of a sealed sum.
type Variant struct {
	TypeName    string
	Field       string
	Payload     PayloadKind
	PayloadType string
}

// PayloadKind classifies the single payload field of a variant, selecting
// the child storage.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota // unit variant, one cell
	PayloadBool
	PayloadOpen
	PayloadEnum
	PayloadComposite
)

// rawWidth picks the smallest unsigned integer with at least n bits.
func rawWidth(n int) (string, error) {
	switch {
	case n <= 8:
		return "uint8", nil
	case n <= 16:
		return "uint16", nil
	case n <= 32:
		return "uint32", nil
	case n <= 64:
		return "uint64", nil
	}
	return "", fmt.Errorf("bitset requires at most 64 variants, got %d", n)
}
