package typesystem

import "fmt"

// NameResolutionError indicates a textual type name matched no loadable type.
type NameResolutionError struct {
	Name string
}

func (e *NameResolutionError) Error() string {
	return fmt.Sprintf("type not found: %s", e.Name)
}

func NewNameResolutionError(name string) *NameResolutionError {
	return &NameResolutionError{Name: name}
}

// MemberNotFoundError indicates a field name absent on a class and its supertypes.
type MemberNotFoundError struct {
	Class  string
	Member string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("member not found: %s.%s", e.Class, e.Member)
}

func NewMemberNotFoundError(class *Class, member string) *MemberNotFoundError {
	return &MemberNotFoundError{Class: class.Name, Member: member}
}

// InvalidArrayComponentError indicates an attempt to build an array of void.
type InvalidArrayComponentError struct {
	Component string
}

func (e *InvalidArrayComponentError) Error() string {
	return fmt.Sprintf("invalid array component type: %s", e.Component)
}

func NewInvalidArrayComponentError(component *Class) *InvalidArrayComponentError {
	return &InvalidArrayComponentError{Component: component.Name}
}

// InvalidDimensionError indicates a negative array dimension.
type InvalidDimensionError struct {
	Dims int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid array dimension: %d", e.Dims)
}

func NewInvalidDimensionError(dims int) *InvalidDimensionError {
	return &InvalidDimensionError{Dims: dims}
}

// ParameterIndexError indicates a type parameter index outside a class's arity.
type ParameterIndexError struct {
	Class string
	Index int
	Arity int
}

func (e *ParameterIndexError) Error() string {
	return fmt.Sprintf("type parameter index %d out of range for %s (arity %d)", e.Index, e.Class, e.Arity)
}

func NewParameterIndexError(class *Class, index int) *ParameterIndexError {
	return &ParameterIndexError{Class: class.Name, Index: index, Arity: len(class.Params)}
}

// ArityError indicates a parameterized type whose argument count does not
// match the declared parameter count of its raw class.
type ArityError struct {
	Class string
	Got   int
	Want  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s expects %d type arguments, got %d", e.Class, e.Want, e.Got)
}

func NewArityError(class *Class, got int) *ArityError {
	return &ArityError{Class: class.Name, Got: got, Want: len(class.Params)}
}

// UnrelatedTypeError indicates that a class is not reachable from a leaf type
// through its supertype edges.
type UnrelatedTypeError struct {
	Leaf      string
	Declaring string
}

func (e *UnrelatedTypeError) Error() string {
	return fmt.Sprintf("%s is not a subtype of %s", e.Leaf, e.Declaring)
}

func NewUnrelatedTypeError(leaf, declaring *Class) *UnrelatedTypeError {
	return &UnrelatedTypeError{Leaf: leaf.Name, Declaring: declaring.Name}
}

// DeclarationError reports a malformed class declaration.
type DeclarationError struct {
	Class  string
	Detail string
	Cause  error
}

func (e *DeclarationError) Error() string {
	msg := fmt.Sprintf("declaring %s: %s", e.Class, e.Detail)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DeclarationError) Unwrap() error {
	return e.Cause
}

func NewDeclarationError(class, detail string, cause error) *DeclarationError {
	return &DeclarationError{Class: class, Detail: detail, Cause: cause}
}
