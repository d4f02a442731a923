package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"text/template"
	"unicode"
	"unicode/utf8"
)

type fileData struct {
	Package    string
	NeedIter   bool
	NeedBucket bool
	Enums      []enumData
	Composites []compositeData
}

type enumData struct {
	Name   string
	Base   string
	Ctor   string
	N      int
	Bitset bool
	Raw    string
}

type compositeData struct {
	Package       string
	Name          string
	Base          string
	Ctor          string
	MapStorage    string
	SetStorage    string
	NewMapStorage string
	NewSetStorage string
	HasPayload    bool
	Variants      []variantData
	Reversed      []variantData
}

type variantData struct {
	TypeName    string
	Slot        string
	Unit        bool
	Field       string
	PayloadType string
	MapType     string
	MapNew      string
	SetType     string
	SetNew      string
}

// Lit renders a key literal for the variant with val as the payload.
func (v variantData) Lit(val string) string {
	if v.Unit {
		return v.TypeName + "{}"
	}
	return fmt.Sprintf("%s{%s: %s}", v.TypeName, v.Field, val)
}

// Generate renders the bindings for every key of pkg as one gofmt-ed file.
func Generate(pkg *Package) ([]byte, error) {
	data := fileData{Package: pkg.Name}
	for _, key := range pkg.Keys {
		if !key.Composite() {
			data.Enums = append(data.Enums, enumData{
				Name:   key.Name,
				Base:   upperFirst(key.Name),
				Ctor:   ctorPrefix(key.Name),
				N:      len(key.Variants),
				Bitset: key.Bitset,
				Raw:    key.Raw,
			})
			continue
		}

		data.NeedIter = true
		c := compositeData{
			Package:       pkg.Name,
			Name:          key.Name,
			Base:          upperFirst(key.Name),
			Ctor:          ctorPrefix(key.Name),
			MapStorage:    lowerFirst(key.Name) + "MapStorage",
			SetStorage:    lowerFirst(key.Name) + "SetStorage",
			NewMapStorage: "new" + upperFirst(key.Name) + "MapStorage",
			NewSetStorage: "new" + upperFirst(key.Name) + "SetStorage",
		}
		for _, v := range key.Sum {
			vd := variantModel(v)
			if vd.Unit {
				data.NeedBucket = true
			} else {
				c.HasPayload = true
			}
			c.Variants = append(c.Variants, vd)
		}
		for i := len(c.Variants) - 1; i >= 0; i-- {
			c.Reversed = append(c.Reversed, c.Variants[i])
		}
		data.Composites = append(data.Composites, c)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}

func variantModel(v Variant) variantData {
	d := variantData{
		TypeName:    v.TypeName,
		Slot:        lowerFirst(v.TypeName),
		Field:       v.Field,
		PayloadType: v.PayloadType,
	}
	switch v.Payload {
	case PayloadNone:
		d.Unit = true
	case PayloadBool:
		d.MapType = "*fixedmap.BoolMap[V]"
		d.MapNew = "fixedmap.NewBoolMap[V]()"
		d.SetType = "*fixedmap.BoolSet"
		d.SetNew = "fixedmap.NewBoolSet()"
	case PayloadOpen:
		d.MapType = fmt.Sprintf("*fixedmap.OpenMap[%s, V]", v.PayloadType)
		d.MapNew = fmt.Sprintf("fixedmap.NewOpenMap[%s, V]()", v.PayloadType)
		d.SetType = fmt.Sprintf("*fixedmap.OpenSet[%s]", v.PayloadType)
		d.SetNew = fmt.Sprintf("fixedmap.NewOpenSet[%s]()", v.PayloadType)
	case PayloadEnum:
		d.MapType = fmt.Sprintf("*fixedmap.EnumMap[%s, V]", v.PayloadType)
		d.MapNew = fmt.Sprintf("fixedmap.NewEnumMap[%s, V]()", v.PayloadType)
		d.SetType = fmt.Sprintf("*fixedmap.EnumSet[%s]", v.PayloadType)
		d.SetNew = fmt.Sprintf("fixedmap.NewEnumSet[%s]()", v.PayloadType)
	case PayloadComposite:
		d.MapType = "*" + lowerFirst(v.PayloadType) + "MapStorage[V]"
		d.MapNew = "new" + upperFirst(v.PayloadType) + "MapStorage[V]()"
		d.SetType = "*" + lowerFirst(v.PayloadType) + "SetStorage"
		d.SetNew = "new" + upperFirst(v.PayloadType) + "SetStorage()"
	}
	return d
}

func ctorPrefix(name string) string {
	if ast.IsExported(name) {
		return "New"
	}
	return "new"
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

var fileTemplate = template.Must(template.New("bindings").Parse(`// Code generated by fixedmap-gen. DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedIter}}
	"iter"
{{end}}
	"github.com/homier/fixedmap"
{{- if .NeedBucket}}
	"github.com/homier/fixedmap/bucket"
{{- end}}
)
{{range .Enums}}
func (k {{.Name}}) Ordinal() int { return int(k) }

func ({{.Name}}) FromOrdinal(i int) {{.Name}} { return {{.Name}}(i) }

func ({{.Name}}) NumVariants() int { return {{.N}} }

// {{.Ctor}}{{.Base}}Map returns a map keyed by {{.Name}}, stored as an array
// of {{.N}} slots in declaration order.
func {{.Ctor}}{{.Base}}Map[V any]() *fixedmap.Map[{{.Name}}, V] {
	return fixedmap.NewMap[{{.Name}}, V](fixedmap.NewEnumMap[{{.Name}}, V]())
}
{{if .Bitset}}
// {{.Ctor}}{{.Base}}Set returns a set keyed by {{.Name}}, bit-packed into a
// {{.Raw}} with bit i encoding the presence of the variant with ordinal i.
func {{.Ctor}}{{.Base}}Set() *fixedmap.Set[{{.Name}}] {
	return fixedmap.NewSet[{{.Name}}](fixedmap.NewBitSet[{{.Name}}, {{.Raw}}]())
}
{{else}}
// {{.Ctor}}{{.Base}}Set returns a set keyed by {{.Name}}, stored as an array
// of {{.N}} presence slots in declaration order.
func {{.Ctor}}{{.Base}}Set() *fixedmap.Set[{{.Name}}] {
	return fixedmap.NewSet[{{.Name}}](fixedmap.NewEnumSet[{{.Name}}]())
}
{{end}}
{{- end}}
{{- range .Composites}}{{$c := .}}
// {{.MapStorage}} is the map storage for {{.Name}}: one slot per variant in
// declaration order. A key outside the declared variants, such as a nil
// interface value, panics.
type {{.MapStorage}}[V any] struct {
{{- range .Variants}}
	{{.Slot}} {{if .Unit}}bucket.Cell[V]{{else}}{{.MapType}}{{end}}
{{- end}}
}

func {{.NewMapStorage}}[V any]() *{{.MapStorage}}[V] {
	return &{{.MapStorage}}[V]{
{{- range .Variants}}{{if not .Unit}}
		{{.Slot}}: {{.MapNew}},
{{- end}}{{end}}
	}
}

// {{.Ctor}}{{.Base}}Map returns a map keyed by {{.Name}}.
func {{.Ctor}}{{.Base}}Map[V any]() *fixedmap.Map[{{.Name}}, V] {
	return fixedmap.NewMap[{{.Name}}, V]({{.NewMapStorage}}[V]())
}

func (s *{{.MapStorage}}[V]) Len() int {
	n := 0
{{- range .Variants}}
{{- if .Unit}}
	if s.{{.Slot}}.Present() {
		n++
	}
{{- else}}
	n += s.{{.Slot}}.Len()
{{- end}}
{{- end}}
	return n
}

func (s *{{.MapStorage}}[V]) IsEmpty() bool {
	return s.Len() == 0
}

func (s *{{.MapStorage}}[V]) Get(key {{.Name}}) (V, bool) {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		return s.{{.Slot}}.Get()
{{- else}}
		return s.{{.Slot}}.Get(k.{{.Field}})
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.MapStorage}}[V]) Ptr(key {{.Name}}) *V {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		return s.{{.Slot}}.Ptr()
{{- else}}
		return s.{{.Slot}}.Ptr(k.{{.Field}})
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.MapStorage}}[V]) Has(key {{.Name}}) bool {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		return s.{{.Slot}}.Present()
{{- else}}
		return s.{{.Slot}}.Has(k.{{.Field}})
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.MapStorage}}[V]) Put(key {{.Name}}, value V) (V, bool) {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		return s.{{.Slot}}.Set(value)
{{- else}}
		return s.{{.Slot}}.Put(k.{{.Field}}, value)
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.MapStorage}}[V]) Delete(key {{.Name}}) (V, bool) {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		return s.{{.Slot}}.Take()
{{- else}}
		return s.{{.Slot}}.Delete(k.{{.Field}})
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.MapStorage}}[V]) Retain(keep func({{.Name}}, *V) bool) {
{{- range .Variants}}
{{- if .Unit}}
	if p := s.{{.Slot}}.Ptr(); p != nil && !keep({{.TypeName}}{}, p) {
		s.{{.Slot}}.Clear()
	}
{{- else}}
	s.{{.Slot}}.Retain(func(u {{.PayloadType}}, value *V) bool {
		return keep({{.Lit "u"}}, value)
	})
{{- end}}
{{- end}}
}

func (s *{{.MapStorage}}[V]) Clear() {
{{- range .Variants}}
	s.{{.Slot}}.Clear()
{{- end}}
}

func (s *{{.MapStorage}}[V]) Entry(key {{.Name}}) fixedmap.Entry[{{.Name}}, V] {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		return fixedmap.CellEntry[{{$c.Name}}](key, &s.{{.Slot}})
{{- else}}
		return fixedmap.RemapEntry(key, s.{{.Slot}}.Entry(k.{{.Field}}))
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.MapStorage}}[V]) All() iter.Seq2[{{.Name}}, V] {
	return func(yield func({{.Name}}, V) bool) {
{{- range .Variants}}
{{- if .Unit}}
		if value, ok := s.{{.Slot}}.Get(); ok && !yield({{.TypeName}}{}, value) {
			return
		}
{{- else}}
		for u, value := range s.{{.Slot}}.All() {
			if !yield({{.Lit "u"}}, value) {
				return
			}
		}
{{- end}}
{{- end}}
	}
}

func (s *{{.MapStorage}}[V]) AllPtr() iter.Seq2[{{.Name}}, *V] {
	return func(yield func({{.Name}}, *V) bool) {
{{- range .Variants}}
{{- if .Unit}}
		if p := s.{{.Slot}}.Ptr(); p != nil && !yield({{.TypeName}}{}, p) {
			return
		}
{{- else}}
		for u, p := range s.{{.Slot}}.AllPtr() {
			if !yield({{.Lit "u"}}, p) {
				return
			}
		}
{{- end}}
{{- end}}
	}
}

func (s *{{.MapStorage}}[V]) Backward() iter.Seq2[{{.Name}}, V] {
	return func(yield func({{.Name}}, V) bool) {
{{- range .Reversed}}
{{- if .Unit}}
		if value, ok := s.{{.Slot}}.Get(); ok && !yield({{.TypeName}}{}, value) {
			return
		}
{{- else}}
		for u, value := range s.{{.Slot}}.Backward() {
			if !yield({{.Lit "u"}}, value) {
				return
			}
		}
{{- end}}
{{- end}}
	}
}

// {{.SetStorage}} is the set storage for {{.Name}}.
type {{.SetStorage}} struct {
{{- range .Variants}}
	{{.Slot}} {{if .Unit}}bool{{else}}{{.SetType}}{{end}}
{{- end}}
}

func {{.NewSetStorage}}() *{{.SetStorage}} {
	return &{{.SetStorage}}{
{{- range .Variants}}{{if not .Unit}}
		{{.Slot}}: {{.SetNew}},
{{- end}}{{end}}
	}
}

// {{.Ctor}}{{.Base}}Set returns a set keyed by {{.Name}}.
func {{.Ctor}}{{.Base}}Set() *fixedmap.Set[{{.Name}}] {
	return fixedmap.NewSet[{{.Name}}]({{.NewSetStorage}}())
}

func (s *{{.SetStorage}}) Len() int {
	n := 0
{{- range .Variants}}
{{- if .Unit}}
	if s.{{.Slot}} {
		n++
	}
{{- else}}
	n += s.{{.Slot}}.Len()
{{- end}}
{{- end}}
	return n
}

func (s *{{.SetStorage}}) IsEmpty() bool {
	return s.Len() == 0
}

func (s *{{.SetStorage}}) Has(key {{.Name}}) bool {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		return s.{{.Slot}}
{{- else}}
		return s.{{.Slot}}.Has(k.{{.Field}})
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.SetStorage}}) Put(key {{.Name}}) bool {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		added := !s.{{.Slot}}
		s.{{.Slot}} = true
		return added
{{- else}}
		return s.{{.Slot}}.Put(k.{{.Field}})
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.SetStorage}}) Delete(key {{.Name}}) bool {
	switch {{if .HasPayload}}k := key.(type){{else}}key.(type){{end}} {
{{- range .Variants}}
	case {{.TypeName}}:
{{- if .Unit}}
		removed := s.{{.Slot}}
		s.{{.Slot}} = false
		return removed
{{- else}}
		return s.{{.Slot}}.Delete(k.{{.Field}})
{{- end}}
{{- end}}
	}
	panic("{{.Package}}: unknown {{.Name}} variant")
}

func (s *{{.SetStorage}}) Retain(keep func({{.Name}}) bool) {
{{- range .Variants}}
{{- if .Unit}}
	if s.{{.Slot}} && !keep({{.TypeName}}{}) {
		s.{{.Slot}} = false
	}
{{- else}}
	s.{{.Slot}}.Retain(func(u {{.PayloadType}}) bool {
		return keep({{.Lit "u"}})
	})
{{- end}}
{{- end}}
}

func (s *{{.SetStorage}}) Clear() {
{{- range .Variants}}
{{- if .Unit}}
	s.{{.Slot}} = false
{{- else}}
	s.{{.Slot}}.Clear()
{{- end}}
{{- end}}
}

func (s *{{.SetStorage}}) All() iter.Seq[{{.Name}}] {
	return func(yield func({{.Name}}) bool) {
{{- range .Variants}}
{{- if .Unit}}
		if s.{{.Slot}} && !yield({{.TypeName}}{}) {
			return
		}
{{- else}}
		for u := range s.{{.Slot}}.All() {
			if !yield({{.Lit "u"}}) {
				return
			}
		}
{{- end}}
{{- end}}
	}
}

func (s *{{.SetStorage}}) Backward() iter.Seq[{{.Name}}] {
	return func(yield func({{.Name}}) bool) {
{{- range .Reversed}}
{{- if .Unit}}
		if s.{{.Slot}} && !yield({{.TypeName}}{}) {
			return
		}
{{- else}}
		for u := range s.{{.Slot}}.Backward() {
			if !yield({{.Lit "u"}}) {
				return
			}
		}
{{- end}}
{{- end}}
	}
}
{{end}}`))
