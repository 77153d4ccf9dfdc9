package hierarchy_test

import (
	"errors"
	"testing"

	"github.com/funvibe/typewalk/internal/erasure"
	"github.com/funvibe/typewalk/internal/hierarchy"
	"github.com/funvibe/typewalk/internal/names"
	"github.com/funvibe/typewalk/internal/registry"
	"github.com/funvibe/typewalk/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func universe(t *testing.T) *registry.Universe {
	t.Helper()
	u := registry.NewUniverse()
	err := u.Define(
		registry.ClassDecl{
			Name:   "demo.Box",
			Params: []registry.ParamDecl{{Name: "T"}},
			Fields: []registry.FieldDecl{{Name: "value", Type: "T"}},
		},
		registry.ClassDecl{Name: "demo.IntBox", Extends: []string{"demo.Box<lang.Integer>"}},
		registry.ClassDecl{Name: "demo.ConcreteIntBox", Extends: []string{"demo.IntBox"}},

		registry.ClassDecl{
			Name:   "demo.Thing",
			Params: []registry.ParamDecl{{Name: "T"}},
			Fields: []registry.FieldDecl{{Name: "thing", Type: "T"}},
		},
		registry.ClassDecl{
			Name:    "demo.NumberThing",
			Params:  []registry.ParamDecl{{Name: "N", Bounds: []string{"lang.Number"}}},
			Extends: []string{"demo.Thing<N>"},
		},
		registry.ClassDecl{Name: "demo.IntegerThing", Extends: []string{"demo.NumberThing<lang.Integer>"}},
		registry.ClassDecl{
			Name:    "demo.ComplexThing",
			Params:  []registry.ParamDecl{{Name: "T", Bounds: []string{"lang.Serializable", "lang.Cloneable"}}},
			Extends: []string{"demo.Thing<T>"},
		},

		registry.ClassDecl{
			Name:   "demo.Pair",
			Params: []registry.ParamDecl{{Name: "A"}, {Name: "B"}},
			Fields: []registry.FieldDecl{{Name: "first", Type: "A"}, {Name: "second", Type: "B"}},
		},
		registry.ClassDecl{
			Name:    "demo.Swap",
			Params:  []registry.ParamDecl{{Name: "X"}, {Name: "Y"}},
			Extends: []string{"demo.Pair<Y, X>"},
		},

		registry.ClassDecl{
			Name:   "demo.Holder",
			Params: []registry.ParamDecl{{Name: "K"}},
			Fields: []registry.FieldDecl{
				{Name: "index", Type: "util.Map<K, K[]>"},
				{Name: "items", Type: "util.List<? extends K>"},
			},
		},
		registry.ClassDecl{Name: "demo.StringHolder", Extends: []string{"demo.Holder<lang.String>"}},
		registry.ClassDecl{Name: "demo.Unrelated"},
	)
	require.NoError(t, err)
	return u
}

func class(t *testing.T, u *registry.Universe, name string) *typesystem.Class {
	t.Helper()
	c, ok := u.Lookup(name)
	require.True(t, ok, name)
	return c
}

func parse(t *testing.T, u *registry.Universe, text string) typesystem.Type {
	t.Helper()
	typ, err := names.ParseType(u, text, nil)
	require.NoError(t, err, text)
	return typ
}

func memberType(t *testing.T, u *registry.Universe, leaf, member string) typesystem.Type {
	t.Helper()
	leafType := parse(t, u, leaf)
	f, err := hierarchy.Field(erasure.Erase(leafType), member)
	require.NoError(t, err)
	resolved, err := hierarchy.ResolveMemberType(f, leafType)
	require.NoError(t, err)
	return resolved
}

func TestResolveMemberTypeThroughPlainLink(t *testing.T) {
	u := universe(t)
	got := memberType(t, u, "demo.ConcreteIntBox", "value")
	assert.Same(t, typesystem.BoxedInteger, got)

	got = memberType(t, u, "demo.IntBox", "value")
	assert.Same(t, typesystem.BoxedInteger, got)

	got = memberType(t, u, "demo.Box<lang.String>", "value")
	assert.Same(t, typesystem.String, got)
}

func TestResolveMemberTypeCaptures(t *testing.T) {
	u := universe(t)

	tests := []struct {
		leaf  string
		raws  []*typesystem.Class
		exact bool
	}{
		{"demo.Thing", []*typesystem.Class{typesystem.Object}, false},
		{"demo.NumberThing", []*typesystem.Class{typesystem.Number}, false},
		{"demo.IntegerThing", []*typesystem.Class{typesystem.BoxedInteger}, true},
		{"demo.ComplexThing", []*typesystem.Class{typesystem.Serializable, typesystem.Cloneable}, false},
	}
	for _, tt := range tests {
		t.Run(tt.leaf, func(t *testing.T) {
			got := memberType(t, u, tt.leaf, "thing")
			assert.Equal(t, tt.raws, erasure.AllErasures(got))
			if tt.exact {
				assert.Same(t, tt.raws[0], got)
				return
			}
			assert.Equal(t, "capture of ?", got.String())
			_, ok := got.(typesystem.TCapture)
			assert.True(t, ok)
		})
	}
}

func TestResolveMemberTypeComposite(t *testing.T) {
	u := universe(t)

	got := memberType(t, u, "demo.StringHolder", "index")
	assert.Equal(t, "util.Map<lang.String, lang.String[]>", names.CanonicalName(got))

	got = memberType(t, u, "demo.StringHolder", "items")
	assert.Equal(t, "util.List<? extends lang.String>", names.CanonicalName(got))

	// A raw generic leaf leaves nested variables in place; only a top-level
	// variable is captured.
	got = memberType(t, u, "demo.Holder", "index")
	assert.Equal(t, "util.Map<K, K[]>", names.CanonicalName(got))
}

func TestResolveMemberTypeReorderedArguments(t *testing.T) {
	u := universe(t)
	assert.Same(t, typesystem.BoxedInteger, memberType(t, u, "demo.Swap<lang.String, lang.Integer>", "first"))
	assert.Same(t, typesystem.String, memberType(t, u, "demo.Swap<lang.String, lang.Integer>", "second"))
}

func TestResolveParameter(t *testing.T) {
	u := universe(t)
	pair := class(t, u, "demo.Pair")
	binding := parse(t, u, "demo.Pair<lang.String, lang.Integer>")

	got, err := hierarchy.ResolveParameter(binding, pair, 0)
	require.NoError(t, err)
	assert.Same(t, typesystem.String, got)

	got, err = hierarchy.ResolveParameter(binding, pair, 1)
	require.NoError(t, err)
	assert.Same(t, typesystem.BoxedInteger, got)

	for _, index := range []int{2, -1} {
		_, err = hierarchy.ResolveParameter(binding, pair, index)
		var pie *typesystem.ParameterIndexError
		require.True(t, errors.As(err, &pie), "index %d: %v", index, err)
		assert.Equal(t, index, pie.Index)
		assert.Equal(t, 2, pie.Arity)
	}
}

func TestResolveParameterOfContainer(t *testing.T) {
	u := universe(t)

	got, err := hierarchy.ResolveParameter(parse(t, u, "util.List<int[]>"), class(t, u, "util.List"), 0)
	require.NoError(t, err)
	assert.Same(t, typesystem.Int.ArrayClass(), erasure.Erase(got))

	got, err = hierarchy.ResolveParameter(parse(t, u, "util.ArrayList<lang.String>"), class(t, u, "lang.Iterable"), 0)
	require.NoError(t, err)
	assert.Same(t, typesystem.String, got)

	got, err = hierarchy.ResolveParameter(parse(t, u, "util.HashMap<lang.String, lang.Long>"), class(t, u, "util.Map"), 1)
	require.NoError(t, err)
	assert.Same(t, typesystem.BoxedLong, got)

	got, err = hierarchy.ResolveParameter(class(t, u, "util.ArrayList"), class(t, u, "util.Collection"), 0)
	require.NoError(t, err)
	assert.IsType(t, typesystem.TCapture{}, got)
}

func TestExactSuperType(t *testing.T) {
	u := universe(t)

	got, err := hierarchy.ExactSuperType(parse(t, u, "util.HashMap<lang.String, int[]>"), class(t, u, "util.Map"))
	require.NoError(t, err)
	assert.Equal(t, "util.Map<lang.String, int[]>", names.CanonicalName(got))

	got, err = hierarchy.ExactSuperType(class(t, u, "demo.IntegerThing"), class(t, u, "demo.Thing"))
	require.NoError(t, err)
	assert.Equal(t, "demo.Thing<lang.Integer>", names.CanonicalName(got))

	got, err = hierarchy.ExactSuperType(class(t, u, "demo.IntBox"), typesystem.Object)
	require.NoError(t, err)
	assert.Same(t, typesystem.Object, got)
}

func TestBindings(t *testing.T) {
	u := universe(t)
	thing := class(t, u, "demo.Thing")

	ctx, err := hierarchy.Bindings(class(t, u, "demo.IntegerThing"), thing)
	require.NoError(t, err)
	got, ok := ctx.Lookup(thing.Params[0])
	require.True(t, ok)
	assert.Same(t, typesystem.BoxedInteger, got)
}

func TestField(t *testing.T) {
	u := universe(t)

	f, err := hierarchy.Field(class(t, u, "demo.ConcreteIntBox"), "value")
	require.NoError(t, err)
	assert.Equal(t, "value", f.Name)
	assert.Same(t, class(t, u, "demo.Box"), f.Declaring)
	v, ok := f.Type.(typesystem.TVar)
	require.True(t, ok)
	assert.Equal(t, "T", v.Name)
	assert.Same(t, typesystem.Object, erasure.Erase(f.Type))

	_, err = hierarchy.Field(class(t, u, "demo.ConcreteIntBox"), "missing")
	var mnf *typesystem.MemberNotFoundError
	require.True(t, errors.As(err, &mnf), "got %v", err)
	assert.Equal(t, "demo.ConcreteIntBox", mnf.Class)
	assert.Equal(t, "missing", mnf.Member)
}

func TestUnrelatedLeaf(t *testing.T) {
	u := universe(t)
	f, err := hierarchy.Field(class(t, u, "demo.Box"), "value")
	require.NoError(t, err)

	_, err = hierarchy.ResolveMemberType(f, class(t, u, "demo.Unrelated"))
	var ute *typesystem.UnrelatedTypeError
	require.True(t, errors.As(err, &ute), "got %v", err)
	assert.Equal(t, "demo.Unrelated", ute.Leaf)
	assert.Equal(t, "demo.Box", ute.Declaring)
}

func TestWalkLogsFrames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	hierarchy.SetLogger(zap.New(core))
	defer hierarchy.SetLogger(zap.NewNop())

	u := universe(t)
	memberType(t, u, "demo.ConcreteIntBox", "value")

	frames := logs.FilterMessage("hierarchy frame").All()
	require.Len(t, frames, 1)
	assert.Equal(t, "demo.Box<lang.Integer>", frames[0].ContextMap()["edge"])
	assert.Equal(t, 1, logs.FilterMessage("resolved member").Len())
}
