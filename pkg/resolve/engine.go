// Package resolve is the public entry point of typewalk.
//
// An Engine owns a class universe and answers questions about it: which class
// a name denotes, what a descriptor erases to, and what a generic member or
// parameter becomes when seen from a concrete subtype.
//
//	e := resolve.New()
//	if err := e.LoadFile("typewalk.yaml"); err != nil { ... }
//	t, err := e.MemberType("demo.IntBox", "value")
package resolve

import (
	"context"

	"github.com/funvibe/typewalk/internal/catalog"
	"github.com/funvibe/typewalk/internal/erasure"
	"github.com/funvibe/typewalk/internal/gohost"
	"github.com/funvibe/typewalk/internal/hierarchy"
	"github.com/funvibe/typewalk/internal/names"
	"github.com/funvibe/typewalk/internal/primitives"
	"github.com/funvibe/typewalk/internal/protohost"
	"github.com/funvibe/typewalk/internal/registry"
	"github.com/funvibe/typewalk/internal/typesystem"
	"go.uber.org/zap"
)

type (
	Type      = typesystem.Type
	Class     = typesystem.Class
	Field     = typesystem.Field
	TVar      = typesystem.TVar
	TApp      = typesystem.TApp
	TArray    = typesystem.TArray
	TWildcard = typesystem.TWildcard
	TCapture  = typesystem.TCapture
	ClassDecl = registry.ClassDecl
	ParamDecl = registry.ParamDecl
	FieldDecl = registry.FieldDecl
	Scope     = names.Scope
)

type (
	NameResolutionError        = typesystem.NameResolutionError
	MemberNotFoundError        = typesystem.MemberNotFoundError
	InvalidArrayComponentError = typesystem.InvalidArrayComponentError
	InvalidDimensionError      = typesystem.InvalidDimensionError
	ParameterIndexError        = typesystem.ParameterIndexError
	ArityError                 = typesystem.ArityError
	UnrelatedTypeError         = typesystem.UnrelatedTypeError
	DeclarationError           = typesystem.DeclarationError
	SyntaxError                = names.SyntaxError
)

// Engine resolves names and generic types against one class universe.
// It is safe for concurrent use.
type Engine struct {
	universe *registry.Universe
	log      *zap.Logger
}

// New creates an engine over the built-in classes and collection prelude.
func New() *Engine {
	return NewWithUniverse(registry.NewUniverse())
}

// NewWithUniverse creates an engine over an existing universe.
func NewWithUniverse(u *registry.Universe) *Engine {
	return &Engine{universe: u, log: Logger()}
}

// Universe exposes the engine's class universe.
func (e *Engine) Universe() *registry.Universe {
	return e.universe
}

// Define adds class declarations to the universe.
func (e *Engine) Define(decls ...ClassDecl) error {
	return e.universe.Define(decls...)
}

// LoadFile defines the classes of a typewalk.yaml declaration file.
func (e *Engine) LoadFile(path string) error {
	e.log.Debug("loading declarations", zap.String("path", path))
	return e.universe.LoadFile(path)
}

// LoadGoPackages defines the named struct and interface types of the Go
// packages matching patterns.
func (e *Engine) LoadGoPackages(ctx context.Context, dir string, patterns ...string) error {
	decls, err := gohost.Load(ctx, dir, patterns...)
	if err != nil {
		return err
	}
	e.log.Debug("loaded go packages", zap.Strings("patterns", patterns), zap.Int("classes", len(decls)))
	return e.universe.Define(decls...)
}

// LoadProto defines the messages and enums of the given .proto files.
func (e *Engine) LoadProto(ctx context.Context, importPaths []string, files ...string) error {
	decls, err := protohost.Load(ctx, importPaths, files...)
	if err != nil {
		return err
	}
	e.log.Debug("loaded proto files", zap.Strings("files", files), zap.Int("classes", len(decls)))
	return e.universe.Define(decls...)
}

// Snapshot writes the declared classes to a SQLite catalog.
func (e *Engine) Snapshot(ctx context.Context, path string) error {
	return catalog.Snapshot(ctx, e.universe, path, e.log)
}

// Restore creates an engine from a SQLite catalog.
func Restore(ctx context.Context, path string) (*Engine, error) {
	u, err := catalog.Restore(ctx, path, Logger())
	if err != nil {
		return nil, err
	}
	return NewWithUniverse(u), nil
}

// ResolveByName maps a class name, a "T[]" name or a packed descriptor to a
// class. With failSilently, an unknown name yields (nil, false, nil).
func (e *Engine) ResolveByName(name string, failSilently bool) (*Class, bool, error) {
	return names.ResolveByName(e.universe, name, failSilently)
}

// Class resolves name, failing with a NameResolutionError when unknown.
func (e *Engine) Class(name string) (*Class, error) {
	c, ok, err := names.ResolveByName(e.universe, name, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, typesystem.NewNameResolutionError(name)
	}
	return c, nil
}

// CanonicalName renders t with dotted names and "[]" array suffixes.
func (e *Engine) CanonicalName(t Type) string {
	return names.CanonicalName(t)
}

// PackedName renders c in packed descriptor form.
func (e *Engine) PackedName(c *Class) string {
	return names.PackedName(c)
}

// ParseType parses a type expression such as "util.Map<K, int[]>". Free
// variables are looked up in scope.
func (e *Engine) ParseType(text string, scope Scope) (Type, error) {
	return names.ParseType(e.universe, text, scope)
}

// Erase returns the raw class of t; nil for arrays of void.
func (e *Engine) Erase(t Type) *Class {
	return erasure.Erase(t)
}

// AllErasures returns the erasure of every upper bound of t.
func (e *Engine) AllErasures(t Type) []*Class {
	return erasure.AllErasures(t)
}

// Component returns the element type of an array or single-element container.
func (e *Engine) Component(t Type) (Type, bool) {
	return erasure.Component(t)
}

// IsAssignable reports whether raw class from is assignable to raw class to.
func (e *Engine) IsAssignable(to, from *Class) bool {
	return erasure.IsAssignable(to, from)
}

// Field finds a member on c or its supertypes.
func (e *Engine) Field(c *Class, name string) (*Field, error) {
	return hierarchy.Field(c, name)
}

// ResolveMemberType resolves the type of f as seen from leaf.
func (e *Engine) ResolveMemberType(f *Field, leaf Type) (Type, error) {
	return hierarchy.ResolveMemberType(f, leaf)
}

// ResolveParameter resolves the index-th parameter of declaring as seen from t.
func (e *Engine) ResolveParameter(t Type, declaring *Class, index int) (Type, error) {
	return hierarchy.ResolveParameter(t, declaring, index)
}

// ExactSuperType returns ancestor as parameterized by t.
func (e *Engine) ExactSuperType(t Type, ancestor *Class) (Type, error) {
	return hierarchy.ExactSuperType(t, ancestor)
}

// MemberType parses leaf, finds member on its class and resolves it.
func (e *Engine) MemberType(leaf, member string) (Type, error) {
	t, err := e.ParseType(leaf, nil)
	if err != nil {
		return nil, err
	}
	c := erasure.Erase(t)
	if c == nil {
		return nil, typesystem.NewNameResolutionError(leaf)
	}
	f, err := hierarchy.Field(c, member)
	if err != nil {
		return nil, err
	}
	return hierarchy.ResolveMemberType(f, t)
}

// ParameterType parses t, resolves declaring by name and resolves its
// index-th parameter.
func (e *Engine) ParameterType(t, declaring string, index int) (Type, error) {
	leaf, err := e.ParseType(t, nil)
	if err != nil {
		return nil, err
	}
	d, err := e.Class(declaring)
	if err != nil {
		return nil, err
	}
	return hierarchy.ResolveParameter(leaf, d, index)
}

// BoxedForm returns the wrapper class of a primitive; other classes map to
// themselves.
func (e *Engine) BoxedForm(c *Class) *Class {
	return primitives.BoxedForm(c)
}

// Unbox returns the primitive a wrapper class boxes.
func (e *Engine) Unbox(c *Class) (*Class, bool) {
	return primitives.Unbox(c)
}

// DefaultValue returns the zero value of a non-void primitive.
func (e *Engine) DefaultValue(c *Class) (any, bool) {
	return primitives.DefaultValue(c)
}

// MakeArrayType builds the dims-dimensional array class over component.
func (e *Engine) MakeArrayType(component *Class, dims int) (*Class, error) {
	return primitives.MakeArrayType(component, dims)
}

// ArrayDims splits an array class into its innermost component and depth.
func (e *Engine) ArrayDims(c *Class) (*Class, int) {
	return primitives.ArrayDims(c)
}
