// Package gohost turns Go named types into class declarations.
//
// Go has no inheritance, so the mapping is:
//   - every named struct becomes a class extending lang.Object followed by
//     its embedded named fields, in field order;
//   - every named interface becomes an interface extending its embedded
//     named interfaces;
//   - type parameters become variables; the named interfaces embedded in a
//     constraint become its bounds, anything else (any, unions) leaves the
//     variable bounded by lang.Object;
//   - non-embedded struct fields become members.
//
// Named types outside the loaded packages are seen as lang.Object.
package gohost

import (
	"context"
	"fmt"
	"go/types"
	"os"
	"strings"

	"github.com/funvibe/typewalk/internal/config"
	"github.com/funvibe/typewalk/internal/registry"
	"golang.org/x/tools/go/packages"
)

// Load loads the Go packages matching patterns, relative to dir, and returns
// the declarations of their named struct and interface types.
func Load(ctx context.Context, dir string, patterns ...string) ([]registry.ClassDecl, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedTypes,
		Dir:     dir,
		Env:     append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	var errs []string
	var typed []*types.Package
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
		if pkg.Types != nil {
			typed = append(typed, pkg.Types)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}

	return Decls(typed...), nil
}

// Decls maps the named struct and interface types of pkgs to declarations.
func Decls(pkgs ...*types.Package) []registry.ClassDecl {
	m := &mapper{declared: make(map[*types.TypeName]bool)}
	var named []*types.Named
	for _, pkg := range pkgs {
		scope := pkg.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || tn.IsAlias() {
				continue
			}
			n, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			switch n.Underlying().(type) {
			case *types.Struct, *types.Interface:
				m.declared[tn] = true
				named = append(named, n)
			}
		}
	}

	decls := make([]registry.ClassDecl, 0, len(named))
	for _, n := range named {
		decls = append(decls, m.decl(n))
	}
	return decls
}

type mapper struct {
	declared map[*types.TypeName]bool
}

func className(tn *types.TypeName) string {
	if tn.Pkg() == nil {
		return tn.Name()
	}
	return tn.Pkg().Path() + "." + tn.Name()
}

func (m *mapper) decl(n *types.Named) registry.ClassDecl {
	d := registry.ClassDecl{Name: className(n.Obj())}

	tparams := n.TypeParams()
	for i := 0; i < tparams.Len(); i++ {
		tp := tparams.At(i)
		d.Params = append(d.Params, registry.ParamDecl{
			Name:   tp.Obj().Name(),
			Bounds: m.constraintBounds(tp),
		})
	}

	switch u := n.Underlying().(type) {
	case *types.Struct:
		d.Kind = registry.KindClass
		d.Extends = []string{config.ObjectTypeName}
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if f.Embedded() {
				if super, ok := m.namedExpr(deref(f.Type())); ok {
					d.Extends = append(d.Extends, super)
				}
				continue
			}
			d.Fields = append(d.Fields, registry.FieldDecl{Name: f.Name(), Type: m.typeExpr(f.Type())})
		}
	case *types.Interface:
		d.Kind = registry.KindInterface
		for i := 0; i < u.NumEmbeddeds(); i++ {
			if super, ok := m.namedExpr(u.EmbeddedType(i)); ok {
				d.Extends = append(d.Extends, super)
			}
		}
	}
	return d
}

// constraintBounds returns the named interfaces a type parameter must implement.
func (m *mapper) constraintBounds(tp *types.TypeParam) []string {
	constraint := tp.Constraint()
	if constraint == nil {
		return nil
	}
	if expr, ok := m.namedExpr(constraint); ok {
		return []string{expr}
	}
	iface, ok := constraint.Underlying().(*types.Interface)
	if !ok {
		return nil
	}
	var bounds []string
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if expr, ok := m.namedExpr(iface.EmbeddedType(i)); ok {
			bounds = append(bounds, expr)
		}
	}
	return bounds
}

// namedExpr renders t when it is a declared named type.
func (m *mapper) namedExpr(t types.Type) (string, bool) {
	n, ok := t.(*types.Named)
	if !ok || !m.declared[n.Origin().Obj()] {
		return "", false
	}
	return m.typeExpr(n), true
}

func deref(t types.Type) types.Type {
	if p, ok := t.(*types.Pointer); ok {
		return p.Elem()
	}
	return t
}

// typeExpr renders a Go type as a type expression over the declared classes.
func (m *mapper) typeExpr(t types.Type) string {
	switch t := t.(type) {
	case *types.Basic:
		return basicExpr(t)
	case *types.TypeParam:
		return t.Obj().Name()
	case *types.Pointer:
		return m.typeExpr(t.Elem())
	case *types.Slice:
		return m.typeExpr(t.Elem()) + config.ArraySuffix
	case *types.Array:
		return m.typeExpr(t.Elem()) + config.ArraySuffix
	case *types.Map:
		return config.MapTypeName + "<" + m.argExpr(t.Key()) + ", " + m.argExpr(t.Elem()) + ">"
	case *types.Named:
		if !m.declared[t.Origin().Obj()] {
			return config.ObjectTypeName
		}
		name := className(t.Origin().Obj())
		targs := t.TypeArgs()
		if targs.Len() == 0 {
			return name
		}
		args := make([]string, targs.Len())
		for i := 0; i < targs.Len(); i++ {
			args[i] = m.argExpr(targs.At(i))
		}
		return name + "<" + strings.Join(args, ", ") + ">"
	default:
		return config.ObjectTypeName
	}
}

// argExpr renders a type argument; primitives are boxed.
func (m *mapper) argExpr(t types.Type) string {
	expr := m.typeExpr(t)
	if boxed, ok := boxedNames[expr]; ok {
		return boxed
	}
	return expr
}

var boxedNames = map[string]string{
	config.BooleanKeyword: config.BooleanTypeName,
	config.ByteKeyword:    config.ByteTypeName,
	config.CharKeyword:    config.CharacterTypeName,
	config.DoubleKeyword:  config.DoubleTypeName,
	config.FloatKeyword:   config.FloatTypeName,
	config.IntKeyword:     config.IntegerTypeName,
	config.LongKeyword:    config.LongTypeName,
	config.ShortKeyword:   config.ShortTypeName,
}

func basicExpr(t *types.Basic) string {
	switch t.Kind() {
	case types.Bool:
		return config.BooleanKeyword
	case types.Int8, types.Uint8:
		return config.ByteKeyword
	case types.Int16, types.Uint16:
		return config.ShortKeyword
	case types.Int32, types.Uint32:
		return config.IntKeyword
	case types.Int, types.Int64, types.Uint, types.Uint64, types.Uintptr:
		return config.LongKeyword
	case types.Float32:
		return config.FloatKeyword
	case types.Float64:
		return config.DoubleKeyword
	case types.String:
		return config.StringTypeName
	default:
		return config.ObjectTypeName
	}
}
