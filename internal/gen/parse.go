package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"maps"
	"slices"
	"strings"
)

const directive = "//fixedmap:key"

var intKinds = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true,
}

const (
	shapeEnum = iota
	shapeComposite
)

type markedType struct {
	name  string
	attrs []string
	spec  *ast.TypeSpec
	pos   token.Pos
	shape int
}

// Parse reads the package in dir and builds the generation model from its
// marked types. A non-empty only list restricts generation to those names;
// every requested name must carry the directive.
func Parse(dir string, only []string) (*Package, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi fs.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var astPkg *ast.Package
	for name, p := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		if astPkg != nil {
			return nil, fmt.Errorf("%s: more than one package", dir)
		}
		astPkg = p
	}
	if astPkg == nil {
		return nil, fmt.Errorf("%s: no Go package", dir)
	}

	var files []*ast.File
	for _, name := range slices.Sorted(maps.Keys(astPkg.Files)) {
		files = append(files, astPkg.Files[name])
	}

	marked, err := collectMarked(fset, files)
	if err != nil {
		return nil, err
	}
	if len(only) > 0 {
		byName := map[string]bool{}
		for _, m := range marked {
			byName[m.name] = true
		}
		for _, name := range only {
			if !byName[name] {
				return nil, fmt.Errorf("type %s not found or not marked with %s", name, directive)
			}
		}
		want := map[string]bool{}
		for _, name := range only {
			want[name] = true
		}
		marked = slices.DeleteFunc(marked, func(m *markedType) bool {
			return !want[m.name]
		})
	}

	// Payload classification needs the full shape table, so shapes are
	// settled for all marked types before any variant is resolved.
	shapes := map[string]int{}
	for _, m := range marked {
		switch t := m.spec.Type.(type) {
		case *ast.Ident:
			if !intKinds[t.Name] {
				return nil, errf(fset, m.pos, "key type %s: underlying type %s is not an integer", m.name, t.Name)
			}
			m.shape = shapeEnum
		case *ast.InterfaceType:
			m.shape = shapeComposite
		default:
			return nil, errf(fset, m.pos, "key type %s must be an integer enumeration or a sealed interface", m.name)
		}
		shapes[m.name] = m.shape
	}

	pkg := &Package{Name: astPkg.Name}
	for _, m := range marked {
		key, err := buildKey(fset, files, shapes, m)
		if err != nil {
			return nil, err
		}
		pkg.Keys = append(pkg.Keys, key)
	}
	return pkg, nil
}

func errf(fset *token.FileSet, pos token.Pos, format string, args ...any) error {
	return fmt.Errorf("%s: %s", fset.Position(pos), fmt.Sprintf(format, args...))
}

func collectMarked(fset *token.FileSet, files []*ast.File) ([]*markedType, error) {
	var marked []*markedType
	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil {
					doc = gd.Doc
				}
				attrs, ok := directiveAttrs(doc)
				if !ok {
					continue
				}
				m := &markedType{name: ts.Name.Name, spec: ts, pos: ts.Pos()}
				for _, attr := range attrs {
					if attr != "bitset" {
						return nil, errf(fset, ts.Pos(), "key type %s: unknown attribute %q", m.name, attr)
					}
					m.attrs = append(m.attrs, attr)
				}
				marked = append(marked, m)
			}
		}
	}
	return marked, nil
}

func directiveAttrs(doc *ast.CommentGroup) (attrs []string, found bool) {
	if doc == nil {
		return nil, false
	}
	for _, c := range doc.List {
		if c.Text == directive {
			return nil, true
		}
		if rest, ok := strings.CutPrefix(c.Text, directive+" "); ok {
			return strings.Fields(rest), true
		}
	}
	return nil, false
}

func buildKey(fset *token.FileSet, files []*ast.File, shapes map[string]int, m *markedType) (*Key, error) {
	key := &Key{Name: m.name, Bitset: slices.Contains(m.attrs, "bitset")}

	if m.shape == shapeComposite {
		if key.Bitset {
			return nil, errf(fset, m.pos, "key type %s: the bitset attribute is only valid on unit enumerations", m.name)
		}
		return buildComposite(fset, files, shapes, m, key)
	}

	variants, err := enumVariants(fset, files, m)
	if err != nil {
		return nil, err
	}
	key.Variants = variants
	if key.Bitset {
		raw, err := rawWidth(len(variants))
		if err != nil {
			return nil, errf(fset, m.pos, "key type %s: %v", m.name, err)
		}
		key.Raw = raw
	}
	return key, nil
}

// enumVariants collects the constant names of a unit enumeration. The
// ordinal space must be contiguous from zero: one iota block, one constant
// per line, no explicit values past the first.
func enumVariants(fset *token.FileSet, files []*ast.File, m *markedType) ([]string, error) {
	var variants []string
	found := false
	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST || len(gd.Specs) == 0 {
				continue
			}
			first, ok := gd.Specs[0].(*ast.ValueSpec)
			if !ok {
				continue
			}
			ident, ok := first.Type.(*ast.Ident)
			if !ok || ident.Name != m.name {
				continue
			}
			if found {
				return nil, errf(fset, gd.Pos(), "key type %s: more than one const block", m.name)
			}
			found = true

			for i, spec := range gd.Specs {
				vs := spec.(*ast.ValueSpec)
				if len(vs.Names) != 1 {
					return nil, errf(fset, vs.Pos(), "key type %s: one constant per line required", m.name)
				}
				name := vs.Names[0].Name
				if name == "_" {
					return nil, errf(fset, vs.Pos(), "key type %s: blank constant breaks the contiguous ordinal space", m.name)
				}
				if i == 0 {
					if len(vs.Values) != 1 || !isIota(vs.Values[0]) {
						return nil, errf(fset, vs.Pos(), "key type %s: const block must start with %s = iota for a contiguous ordinal space", m.name, name)
					}
				} else if vs.Type != nil || len(vs.Values) != 0 {
					return nil, errf(fset, vs.Pos(), "key type %s: explicit constant values break the contiguous ordinal space", m.name)
				}
				variants = append(variants, name)
			}
		}
	}
	if !found {
		return nil, errf(fset, m.pos, "key type %s: no const block of variants", m.name)
	}
	return variants, nil
}

func isIota(expr ast.Expr) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == "iota"
}

func buildComposite(fset *token.FileSet, files []*ast.File, shapes map[string]int, m *markedType, key *Key) (*Key, error) {
	it := m.spec.Type.(*ast.InterfaceType)
	if it.Methods == nil || len(it.Methods.List) != 1 || len(it.Methods.List[0].Names) != 1 {
		return nil, errf(fset, m.pos, "key type %s: a sealed sum declares exactly one marker method", m.name)
	}
	mf := it.Methods.List[0]
	marker := mf.Names[0].Name
	if ast.IsExported(marker) {
		return nil, errf(fset, mf.Pos(), "key type %s: marker method %s must be unexported to seal the sum", m.name, marker)
	}
	ft, ok := mf.Type.(*ast.FuncType)
	if !ok || len(ft.Params.List) != 0 || ft.Results != nil {
		return nil, errf(fset, mf.Pos(), "key type %s: marker method %s must take and return nothing", m.name, marker)
	}
	key.Marker = marker

	// Variant order is the declaration order of the structs, not of their
	// marker methods.
	recv := map[string]bool{}
	for _, file := range files {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Name.Name != marker || fd.Recv == nil || len(fd.Recv.List) != 1 {
				continue
			}
			t := fd.Recv.List[0].Type
			if star, ok := t.(*ast.StarExpr); ok {
				t = star.X
			}
			if id, ok := t.(*ast.Ident); ok {
				recv[id.Name] = true
			}
		}
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				if !recv[ts.Name.Name] {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					return nil, errf(fset, ts.Pos(), "key type %s: variant %s must be a struct", m.name, ts.Name.Name)
				}
				variant, err := structVariant(fset, shapes, m.name, ts.Name.Name, st)
				if err != nil {
					return nil, err
				}
				key.Sum = append(key.Sum, variant)
			}
		}
	}
	if len(key.Sum) == 0 {
		return nil, errf(fset, m.pos, "key type %s: no variant structs implement %s", m.name, marker)
	}
	return key, nil
}

func structVariant(fset *token.FileSet, shapes map[string]int, keyName, name string, st *ast.StructType) (Variant, error) {
	v := Variant{TypeName: name}

	total := 0
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			return v, errf(fset, f.Pos(), "key type %s: variant %s: embedded fields are not supported", keyName, name)
		}
		total += len(f.Names)
	}
	switch {
	case total == 0:
		v.Payload = PayloadNone
		return v, nil
	case total > 1:
		return v, errf(fset, st.Pos(), "key type %s: variant %s: a payload must be a single field, got %d", keyName, name, total)
	}

	f := st.Fields.List[0]
	v.Field = f.Names[0].Name
	kind, typeName, err := classifyPayload(fset, shapes, f.Type)
	if err != nil {
		return v, fmt.Errorf("key type %s: variant %s: %w", keyName, name, err)
	}
	v.Payload = kind
	v.PayloadType = typeName
	return v, nil
}

func classifyPayload(fset *token.FileSet, shapes map[string]int, expr ast.Expr) (PayloadKind, string, error) {
	id, ok := expr.(*ast.Ident)
	if !ok {
		return 0, "", errf(fset, expr.Pos(), "unsupported payload type")
	}
	switch {
	case id.Name == "bool":
		return PayloadBool, "bool", nil
	case id.Name == "string" || intKinds[id.Name]:
		return PayloadOpen, id.Name, nil
	}
	if shape, ok := shapes[id.Name]; ok {
		if shape == shapeComposite {
			return PayloadComposite, id.Name, nil
		}
		return PayloadEnum, id.Name, nil
	}
	return 0, "", errf(fset, expr.Pos(), "payload type %s is not a marked key type or open primitive", id.Name)
}
