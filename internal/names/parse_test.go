package names_test

import (
	"errors"
	"testing"

	"github.com/funvibe/typewalk/internal/names"
	"github.com/funvibe/typewalk/internal/registry"
	"github.com/funvibe/typewalk/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	u := registry.NewUniverse()
	v := typesystem.NewTVar("demo.Thing", "T")
	scope := names.Scope{"T": v}

	tests := []struct {
		text string
		want string
	}{
		{"int", "int"},
		{"  lang.String  ", "lang.String"},
		{"int[][]", "int[][]"},
		{"[I", "int[]"},
		{"T", "T"},
		{"T[]", "T[]"},
		{"util.List<T>", "util.List<T>"},
		{"util.Map<lang.String, util.List<int[]>>", "util.Map<lang.String, util.List<int[]>>"},
		{"util.List<?>", "util.List<?>"},
		{"util.List<? extends lang.Number>", "util.List<? extends lang.Number>"},
		{"util.List<? extends lang.Serializable & lang.Cloneable>", "util.List<? extends lang.Serializable & lang.Cloneable>"},
		{"util.List<? super T>[]", "util.List<? super T>[]"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := names.ParseType(u, tt.text, scope)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names.CanonicalName(got))
		})
	}
}

func TestParseTypeShapes(t *testing.T) {
	u := registry.NewUniverse()
	v := typesystem.NewTVar("demo.Thing", "T")

	got, err := names.ParseType(u, "T[][]", names.Scope{"T": v})
	require.NoError(t, err)
	assert.Equal(t, typesystem.TArray{Elem: v, Dims: 2}, got)

	got, err = names.ParseType(u, "lang.Number[]", nil)
	require.NoError(t, err)
	assert.Same(t, typesystem.Number.ArrayClass(), got)

	got, err = names.ParseType(u, "util.List<lang.String>", nil)
	require.NoError(t, err)
	app, ok := got.(typesystem.TApp)
	require.True(t, ok)
	assert.Same(t, mustLookup(t, u, "util.List"), app.Raw)
	assert.Equal(t, []typesystem.Type{typesystem.String}, app.Args)
}

func TestParseTypeErrors(t *testing.T) {
	u := registry.NewUniverse()
	scope := names.Scope{"T": typesystem.NewTVar("demo.Thing", "T")}

	t.Run("unknown name", func(t *testing.T) {
		_, err := names.ParseType(u, "util.List<nope>", scope)
		var nre *typesystem.NameResolutionError
		require.True(t, errors.As(err, &nre), "got %v", err)
		assert.Equal(t, "nope", nre.Name)
	})

	t.Run("arity", func(t *testing.T) {
		_, err := names.ParseType(u, "util.Map<lang.String>", scope)
		var ae *typesystem.ArityError
		require.True(t, errors.As(err, &ae), "got %v", err)
		assert.Equal(t, 2, ae.Want)
		assert.Equal(t, 1, ae.Got)
	})

	t.Run("void array", func(t *testing.T) {
		_, err := names.ParseType(u, "void[]", scope)
		var ice *typesystem.InvalidArrayComponentError
		require.True(t, errors.As(err, &ice), "got %v", err)
	})

	for _, text := range []string{"", "util.List<", "util.List<T", "int[", "T<int>", "int int", "util.List<T>>", "?x", "a;b"} {
		t.Run("syntax "+text, func(t *testing.T) {
			_, err := names.ParseType(u, text, scope)
			var se *names.SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
		})
	}
}
