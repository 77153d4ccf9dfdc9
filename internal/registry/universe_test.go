package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/funvibe/typewalk/internal/names"
	"github.com/funvibe/typewalk/internal/typesystem"
)

func TestNewUniverse_Prelude(t *testing.T) {
	u := NewUniverse()
	for _, name := range []string{
		"lang.Comparable", "lang.Iterable", "util.Collection", "util.List", "util.Set",
		"util.Map", "util.ArrayList", "util.LinkedList", "util.HashSet", "util.HashMap",
	} {
		if _, ok := u.Lookup(name); !ok {
			t.Errorf("prelude class %s missing", name)
		}
	}
	if c, ok := u.Lookup("lang.Object"); !ok || c != typesystem.Object {
		t.Errorf("lang.Object lookup = %v", c)
	}
	if len(u.Decls()) != 0 {
		t.Errorf("prelude should not be reported by Decls, got %d", len(u.Decls()))
	}

	list, _ := u.Lookup("util.List")
	if !list.IsInterface() || !list.Element || len(list.Params) != 1 {
		t.Errorf("util.List = %+v", list)
	}
	hashMap, _ := u.Lookup("util.HashMap")
	if hashMap.Element {
		t.Error("util.HashMap is not an element container")
	}
}

func TestNewEmptyUniverse(t *testing.T) {
	u := NewEmptyUniverse()
	if _, ok := u.Lookup("util.List"); ok {
		t.Error("empty universe should not hold the prelude")
	}
	if _, ok := u.Lookup("lang.String"); !ok {
		t.Error("built-ins should always resolve")
	}
}

func TestDefine_ForwardReferences(t *testing.T) {
	u := NewUniverse()
	err := u.Define(
		ClassDecl{Name: "shapes.Square", Extends: []string{"shapes.Shape<lang.Integer>"}},
		ClassDecl{
			Name:   "shapes.Shape",
			Params: []ParamDecl{{Name: "N", Bounds: []string{"lang.Number"}}},
			Fields: []FieldDecl{{Name: "sides", Type: "N[]"}},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	square, ok := u.Lookup("shapes.Square")
	if !ok {
		t.Fatal("shapes.Square not defined")
	}
	shape, _ := u.Lookup("shapes.Shape")
	if len(square.Supers) != 1 {
		t.Fatalf("supers = %v", square.Supers)
	}
	app, ok := square.Supers[0].(typesystem.TApp)
	if !ok || app.Raw != shape {
		t.Errorf("super = %v, want shapes.Shape<lang.Integer>", square.Supers[0])
	}
	if shape.Supers[0] != typesystem.Object {
		t.Errorf("classes extend lang.Object by default, got %v", shape.Supers)
	}
	if b := shape.Params[0].Bounds(); b[0] != typesystem.Number {
		t.Errorf("bound = %v, want lang.Number", b)
	}
	if got := names.CanonicalName(shape.Fields[0].Type); got != "N[]" {
		t.Errorf("field type = %s, want N[]", got)
	}

	decls := u.Decls()
	if len(decls) != 2 || decls[0].Name != "shapes.Shape" || decls[1].Name != "shapes.Square" {
		t.Errorf("Decls = %v", decls)
	}
}

func TestDefine_SelfReferentialBound(t *testing.T) {
	u := NewUniverse()
	err := u.Define(ClassDecl{
		Name:   "demo.Sorted",
		Params: []ParamDecl{{Name: "E", Bounds: []string{"lang.Comparable<E>"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sorted, _ := u.Lookup("demo.Sorted")
	e := sorted.Params[0]
	bound, ok := e.Bounds()[0].(typesystem.TApp)
	if !ok {
		t.Fatalf("bound = %v", e.Bounds())
	}
	if v, ok := bound.Args[0].(typesystem.TVar); !ok || v.Key() != e.Key() {
		t.Errorf("bound argument = %v, want E", bound.Args[0])
	}
}

func TestDefine_ChainedVariableBound(t *testing.T) {
	u := NewUniverse()
	err := u.Define(ClassDecl{
		Name:   "demo.Chain",
		Params: []ParamDecl{{Name: "T", Bounds: []string{"U"}}, {Name: "U", Bounds: []string{"lang.Number"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chain, _ := u.Lookup("demo.Chain")
	if v, ok := chain.Params[0].Bounds()[0].(typesystem.TVar); !ok || v.Key() != chain.Params[1].Key() {
		t.Errorf("T bound = %v, want U", chain.Params[0].Bounds())
	}
}

func TestDefine_Interfaces(t *testing.T) {
	u := NewUniverse()
	err := u.Define(ClassDecl{Name: "demo.Named", Kind: KindInterface})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	named, _ := u.Lookup("demo.Named")
	if !named.IsInterface() {
		t.Error("expected interface")
	}
	if len(named.Supers) != 0 {
		t.Errorf("interfaces have no default supertype, got %v", named.Supers)
	}
}

func TestDefine_Errors(t *testing.T) {
	tests := []struct {
		name  string
		decls []ClassDecl
	}{
		{"unnamed", []ClassDecl{{}}},
		{"builtin", []ClassDecl{{Name: "lang.String"}}},
		{"primitive", []ClassDecl{{Name: "int"}}},
		{"prelude", []ClassDecl{{Name: "util.List"}}},
		{"twice", []ClassDecl{{Name: "a.A"}, {Name: "a.A"}}},
		{"bad kind", []ClassDecl{{Name: "a.A", Kind: "struct"}}},
		{"unknown super", []ClassDecl{{Name: "a.A", Extends: []string{"a.Missing"}}}},
		{"primitive super", []ClassDecl{{Name: "a.A", Extends: []string{"int"}}}},
		{"array super", []ClassDecl{{Name: "a.A", Extends: []string{"lang.String[]"}}}},
		{"variable super", []ClassDecl{{Name: "a.A", Params: []ParamDecl{{Name: "T"}}, Extends: []string{"T"}}}},
		{"arity", []ClassDecl{{Name: "a.A", Extends: []string{"util.List<lang.String, lang.String>"}}}},
		{"duplicate param", []ClassDecl{{Name: "a.A", Params: []ParamDecl{{Name: "T"}, {Name: "T"}}}}},
		{"duplicate field", []ClassDecl{{Name: "a.A", Fields: []FieldDecl{{Name: "x", Type: "int"}, {Name: "x", Type: "int"}}}}},
		{"bad field", []ClassDecl{{Name: "a.A", Fields: []FieldDecl{{Name: "x", Type: "util.List<"}}}}},
		{"bad bound", []ClassDecl{{Name: "a.A", Params: []ParamDecl{{Name: "T", Bounds: []string{"a.Missing"}}}}}},
		{"element arity", []ClassDecl{{Name: "a.A", Element: true}}},
		{"self bound", []ClassDecl{{Name: "a.A", Params: []ParamDecl{{Name: "T", Bounds: []string{"T"}}}}}},
		{"cyclic bounds", []ClassDecl{{
			Name:   "a.A",
			Params: []ParamDecl{{Name: "T", Bounds: []string{"U"}}, {Name: "U", Bounds: []string{"T"}}},
			Fields: []FieldDecl{{Name: "v", Type: "T"}},
		}}},
		{"cyclic second bound", []ClassDecl{{
			Name: "a.A",
			Params: []ParamDecl{
				{Name: "T", Bounds: []string{"lang.Number", "U"}},
				{Name: "U", Bounds: []string{"T"}},
			},
		}}},
		{"cycle", []ClassDecl{
			{Name: "a.A", Extends: []string{"a.B"}},
			{Name: "a.B", Extends: []string{"a.A"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUniverse()
			err := u.Define(tt.decls...)
			var de *typesystem.DeclarationError
			if !errors.As(err, &de) {
				t.Fatalf("expected DeclarationError, got %v", err)
			}
			if len(u.Decls()) != 0 {
				t.Errorf("failed batch should define nothing, got %v", u.Decls())
			}
			if _, ok := u.Lookup("a.A"); ok {
				t.Error("a.A should not be defined")
			}
		})
	}
}

func TestDefine_Redeclare(t *testing.T) {
	u := NewUniverse()
	if err := u.Define(ClassDecl{Name: "a.A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.Define(ClassDecl{Name: "a.A"}); err == nil {
		t.Error("expected error redeclaring a.A")
	}
}

func TestDefine_ErrorCause(t *testing.T) {
	u := NewUniverse()
	err := u.Define(ClassDecl{Name: "a.A", Fields: []FieldDecl{{Name: "x", Type: "a.Missing"}}})
	var nre *typesystem.NameResolutionError
	if !errors.As(err, &nre) {
		t.Fatalf("expected wrapped NameResolutionError, got %v", err)
	}
	if nre.Name != "a.Missing" {
		t.Errorf("name = %s", nre.Name)
	}
}

func TestUniverse_ConcurrentLookup(t *testing.T) {
	u := NewUniverse()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "c.C" + string(rune('A'+i))
			if err := u.Define(ClassDecl{Name: name}); err != nil {
				t.Errorf("define %s: %v", name, err)
			}
			for j := 0; j < 100; j++ {
				u.Lookup("util.List")
				u.Names()
			}
		}(i)
	}
	wg.Wait()
	if got := len(u.Decls()); got != 8 {
		t.Errorf("Decls = %d, want 8", got)
	}
}
