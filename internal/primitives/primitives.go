// Package primitives covers boxing, zero values and array class construction.
package primitives

import "github.com/funvibe/typewalk/internal/typesystem"

var boxes = map[*typesystem.Class]*typesystem.Class{
	typesystem.Boolean: typesystem.BoxedBoolean,
	typesystem.Byte:    typesystem.BoxedByte,
	typesystem.Char:    typesystem.BoxedCharacter,
	typesystem.Double:  typesystem.BoxedDouble,
	typesystem.Float:   typesystem.BoxedFloat,
	typesystem.Int:     typesystem.BoxedInteger,
	typesystem.Long:    typesystem.BoxedLong,
	typesystem.Short:   typesystem.BoxedShort,
	typesystem.Void:    typesystem.BoxedVoid,
}

var unboxes map[*typesystem.Class]*typesystem.Class

var zeros = map[*typesystem.Class]any{
	typesystem.Boolean: false,
	typesystem.Byte:    int8(0),
	typesystem.Char:    rune(0),
	typesystem.Double:  float64(0),
	typesystem.Float:   float32(0),
	typesystem.Int:     int32(0),
	typesystem.Long:    int64(0),
	typesystem.Short:   int16(0),
}

func init() {
	unboxes = make(map[*typesystem.Class]*typesystem.Class, len(boxes))
	for p, b := range boxes {
		unboxes[b] = p
	}
}

// BoxedForm returns the wrapper class of a primitive and c itself for any
// other class.
func BoxedForm(c *typesystem.Class) *typesystem.Class {
	if b, ok := boxes[c]; ok {
		return b
	}
	return c
}

// Unbox returns the primitive behind a wrapper class.
func Unbox(c *typesystem.Class) (*typesystem.Class, bool) {
	p, ok := unboxes[c]
	return p, ok
}

// DefaultValue returns the zero value of a primitive class as a Go value:
// false, int8(0), rune(0), float64(0), float32(0), int32(0), int64(0) or
// int16(0). Reference classes and void have no default value.
func DefaultValue(c *typesystem.Class) (any, bool) {
	v, ok := zeros[c]
	return v, ok
}

// MakeArrayType returns the array class nested dims deep over component.
// dims of 0 returns component unchanged.
func MakeArrayType(component *typesystem.Class, dims int) (*typesystem.Class, error) {
	if dims < 0 {
		return nil, typesystem.NewInvalidDimensionError(dims)
	}
	if dims == 0 {
		return component, nil
	}
	if component.IsVoid() {
		return nil, typesystem.NewInvalidArrayComponentError(component)
	}
	c := component
	for i := 0; i < dims; i++ {
		c = c.ArrayClass()
	}
	return c, nil
}

// ArrayDims splits an array class into its innermost component and the
// number of dimensions. Non-array classes report zero dimensions.
func ArrayDims(c *typesystem.Class) (*typesystem.Class, int) {
	dims := 0
	for c.IsArray() {
		c = c.Component
		dims++
	}
	return c, dims
}
