// Package erasure computes raw classes underlying type descriptors.
package erasure

import "github.com/funvibe/typewalk/internal/typesystem"

// Erase returns the raw class underlying t. Variables, wildcards and captures
// erase to their first upper bound.
func Erase(t typesystem.Type) *typesystem.Class {
	switch typ := t.(type) {
	case nil:
		return nil
	case *typesystem.Class:
		return typ
	case typesystem.TApp:
		return typ.Raw
	case typesystem.TArray:
		return eraseArray(typ)
	case typesystem.TVar:
		return Erase(typ.Bounds()[0])
	case typesystem.TWildcard:
		return Erase(typ.UpperBounds()[0])
	case typesystem.TCapture:
		return Erase(typ.Bounds[0])
	default:
		return typesystem.Object
	}
}

// eraseArray erases the component and wraps it back in the same number of
// dimensions. Arrays of void have no raw class; they erase to nil.
func eraseArray(t typesystem.TArray) *typesystem.Class {
	c := Erase(t.Elem)
	if c == nil || c.IsVoid() {
		return nil
	}
	for i := 0; i < t.Dims; i++ {
		c = c.ArrayClass()
	}
	return c
}

// AllErasures returns the erasure of every upper bound of a variable,
// wildcard or capture, in declaration order. Every other descriptor yields
// its single erasure.
func AllErasures(t typesystem.Type) []*typesystem.Class {
	var bounds []typesystem.Type
	switch typ := t.(type) {
	case typesystem.TVar:
		bounds = typ.Bounds()
	case typesystem.TWildcard:
		bounds = typ.UpperBounds()
	case typesystem.TCapture:
		bounds = typ.Bounds
	default:
		if c := Erase(t); c != nil {
			return []*typesystem.Class{c}
		}
		return nil
	}

	out := make([]*typesystem.Class, 0, len(bounds))
	for _, b := range bounds {
		out = append(out, Erase(b))
	}
	return out
}

// Component returns the element type of an array-like descriptor: the
// component of an array class or generic array, or the sole argument of a
// parameterized single-element container. The boolean is false otherwise.
func Component(t typesystem.Type) (typesystem.Type, bool) {
	switch typ := t.(type) {
	case *typesystem.Class:
		if typ.IsArray() {
			return typ.Component, true
		}
	case typesystem.TArray:
		if typ.Dims == 1 {
			return typ.Elem, true
		}
		return typesystem.NewTArray(typ.Elem, typ.Dims-1), true
	case typesystem.TApp:
		if typ.Raw.Element && len(typ.Raw.Params) == 1 && len(typ.Args) == 1 {
			return typ.Args[0], true
		}
	}
	return nil, false
}

// IsAssignable reports whether a value of raw class from can be stored in a
// slot of raw class to, following supertype edges. Primitives are only
// assignable to themselves.
func IsAssignable(to, from *typesystem.Class) bool {
	if to == nil || from == nil {
		return false
	}
	if to == from {
		return true
	}
	if from.IsPrimitive() || to.IsPrimitive() {
		return false
	}
	if to == typesystem.Object {
		return true
	}
	if from.IsArray() && to.IsArray() {
		return IsAssignable(to.Component, from.Component)
	}
	for _, s := range from.Supers {
		if IsAssignable(to, Erase(s)) {
			return true
		}
	}
	return false
}
