// Package hierarchy resolves member and parameter types of generic classes in
// the context of a concrete leaf type.
//
// Resolution walks the supertype edges from the leaf class up to the class
// declaring the member. Every edge whose supertype is parameterized
// contributes one frame binding the supertype's formal parameters to the
// arguments written on the edge, after substituting what is already known.
// Frames compose from the leaf towards the declaring class, so by the time
// the walk reaches the declaring class every one of its parameters is bound
// to whatever the leaf made of it.
package hierarchy

import (
	"github.com/funvibe/typewalk/internal/erasure"
	"github.com/funvibe/typewalk/internal/typesystem"
	"go.uber.org/zap"
)

// Field finds the member called name on c or, failing that, on the first
// supertype declaring it.
func Field(c *typesystem.Class, name string) (*typesystem.Field, error) {
	if f, ok := findField(c, name, map[*typesystem.Class]bool{}); ok {
		return f, nil
	}
	return nil, typesystem.NewMemberNotFoundError(c, name)
}

func findField(c *typesystem.Class, name string, visited map[*typesystem.Class]bool) (*typesystem.Field, bool) {
	if c == nil || visited[c] {
		return nil, false
	}
	visited[c] = true
	if f, ok := c.DeclaredField(name); ok {
		return f, true
	}
	for _, s := range c.Supers {
		if f, ok := findField(erasure.Erase(s), name, visited); ok {
			return f, true
		}
	}
	return nil, false
}

// Bindings builds the binding context seen from leaf when walking up to
// declaring. A raw generic leaf leaves its own parameters unbound.
func Bindings(leaf typesystem.Type, declaring *typesystem.Class) (typesystem.Subst, error) {
	leafClass, leafArgs := split(leaf)
	if leafClass == nil {
		return nil, typesystem.NewUnrelatedTypeError(typesystem.Object, declaring)
	}

	path, ok := pathTo(leafClass, declaring, map[*typesystem.Class]bool{})
	if !ok {
		return nil, typesystem.NewUnrelatedTypeError(leafClass, declaring)
	}

	ctx := typesystem.Subst{}
	if len(leafArgs) > 0 {
		ctx = typesystem.Frame(leafClass, leafArgs, ctx)
	}
	for _, super := range path {
		app, ok := super.(typesystem.TApp)
		if !ok {
			continue
		}
		frame := typesystem.Frame(app.Raw, app.Args, ctx)
		Logger().Debug("hierarchy frame",
			zap.String("leaf", leafClass.Name),
			zap.String("edge", app.String()),
			zap.Int("bindings", len(frame)))
		ctx = ctx.Merge(frame)
	}
	return ctx, nil
}

// split returns the class a walk starts from and the arguments bound to its
// parameters, if any.
func split(t typesystem.Type) (*typesystem.Class, []typesystem.Type) {
	switch typ := t.(type) {
	case *typesystem.Class:
		return typ, nil
	case typesystem.TApp:
		return typ.Raw, typ.Args
	default:
		return erasure.Erase(t), nil
	}
}

// pathTo returns the supertype edges leading from c to target, in walk order.
// Superclass edges are tried before interface edges.
func pathTo(c, target *typesystem.Class, visited map[*typesystem.Class]bool) ([]typesystem.Type, bool) {
	if c == target {
		return nil, true
	}
	if visited[c] {
		return nil, false
	}
	visited[c] = true
	for _, s := range c.Supers {
		rest, ok := pathTo(erasure.Erase(s), target, visited)
		if ok {
			return append([]typesystem.Type{s}, rest...), true
		}
	}
	return nil, false
}

// ResolveMemberType resolves the declared type of f as seen from leaf. When
// the result is a variable no argument pinned, a capture over the variable's
// bounds is returned instead.
func ResolveMemberType(f *typesystem.Field, leaf typesystem.Type) (typesystem.Type, error) {
	ctx, err := Bindings(leaf, f.Declaring)
	if err != nil {
		return nil, err
	}
	resolved := capture(f.Type.Apply(ctx), ctx)
	Logger().Debug("resolved member",
		zap.String("member", f.Declaring.Name+"."+f.Name),
		zap.String("leaf", leaf.String()),
		zap.String("type", resolved.String()))
	return resolved, nil
}

// ResolveParameter returns the argument bound to the index-th type parameter
// of declaring, as seen from t.
func ResolveParameter(t typesystem.Type, declaring *typesystem.Class, index int) (typesystem.Type, error) {
	if index < 0 || index >= len(declaring.Params) {
		return nil, typesystem.NewParameterIndexError(declaring, index)
	}
	ctx, err := Bindings(t, declaring)
	if err != nil {
		return nil, err
	}
	return capture(declaring.Params[index].Apply(ctx), ctx), nil
}

// ExactSuperType returns ancestor parameterized with the arguments t gives it.
// Ancestors without parameters are returned raw.
func ExactSuperType(t typesystem.Type, ancestor *typesystem.Class) (typesystem.Type, error) {
	ctx, err := Bindings(t, ancestor)
	if err != nil {
		return nil, err
	}
	if len(ancestor.Params) == 0 {
		return ancestor, nil
	}
	args := make([]typesystem.Type, len(ancestor.Params))
	for i, p := range ancestor.Params {
		args[i] = p.Apply(ctx)
	}
	return typesystem.TApp{Raw: ancestor, Args: args}, nil
}

func capture(t typesystem.Type, ctx typesystem.Subst) typesystem.Type {
	v, ok := t.(typesystem.TVar)
	if !ok {
		return t
	}
	declared := v.Bounds()
	bounds := make([]typesystem.Type, len(declared))
	for i, b := range declared {
		bounds[i] = b.Apply(ctx)
	}
	return typesystem.NewTCapture(v, bounds)
}
