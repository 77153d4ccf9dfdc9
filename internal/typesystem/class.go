package typesystem

import (
	"sync"

	"github.com/funvibe/typewalk/internal/config"
)

// Sort tells what a raw class stands for.
type Sort uint8

const (
	SortClass Sort = iota
	SortInterface
	SortPrimitive
	SortArray
)

func (s Sort) String() string {
	switch s {
	case SortClass:
		return "class"
	case SortInterface:
		return "interface"
	case SortPrimitive:
		return "primitive"
	case SortArray:
		return "array"
	default:
		return "unknown"
	}
}

// Class is a raw type identity. Classes are compared by pointer: two lookups of
// the same name, or two array constructions over the same component, yield the
// same *Class.
//
// A Class is filled in while it is being declared and must not be changed once
// it is reachable from a registry.
type Class struct {
	Name string
	Sort Sort

	// Params are the declared type parameters, in order.
	Params []TVar
	// Supers are the direct supertypes: superclass first, then interfaces.
	// Arguments are expressed in terms of Params.
	Supers []Type
	// Fields are the members declared directly on this class.
	Fields []*Field
	// Element marks a single-parameter container whose argument is its element type.
	Element bool

	// Component is set for array classes only.
	Component *Class

	arrayOnce sync.Once
	array     *Class
}

// Field is a member declared on a class, with its unsubstituted generic type.
type Field struct {
	Name      string
	Type      Type
	Declaring *Class
}

func (c *Class) String() string {
	return c.Name
}

func (c *Class) Apply(Subst) Type {
	return c
}

func (c *Class) FreeTypeVariables() []TVar {
	return nil
}

// Kind is * for non-generic classes and * -> ... -> * for generic ones.
func (c *Class) Kind() Kind {
	return KindOfArity(len(c.Params))
}

func (c *Class) IsPrimitive() bool { return c.Sort == SortPrimitive }
func (c *Class) IsInterface() bool { return c.Sort == SortInterface }
func (c *Class) IsArray() bool     { return c.Sort == SortArray }
func (c *Class) IsVoid() bool      { return c == Void }

// ArrayClass returns the one-dimensional array class over c. The result is
// created once per component. It returns nil for void.
func (c *Class) ArrayClass() *Class {
	if c.IsVoid() {
		return nil
	}
	c.arrayOnce.Do(func() {
		c.array = &Class{
			Name:      c.Name + config.ArraySuffix,
			Sort:      SortArray,
			Supers:    []Type{Object, Cloneable, Serializable},
			Component: c,
		}
	})
	return c.array
}

// DeclaredField returns the field declared directly on c.
func (c *Class) DeclaredField(name string) (*Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// AddField declares a field on c.
func (c *Class) AddField(name string, t Type) *Field {
	f := &Field{Name: name, Type: t, Declaring: c}
	c.Fields = append(c.Fields, f)
	return f
}
