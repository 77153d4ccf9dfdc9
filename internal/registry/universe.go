// Package registry provides the name→class registry consumed by the resolver.
//
// A Universe starts out with the built-in classes and the generic collection
// prelude, and is extended with ClassDecl records coming from declaration
// files, catalogs, Go packages or protobuf schemas.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/funvibe/typewalk/internal/config"
	"github.com/funvibe/typewalk/internal/names"
	"github.com/funvibe/typewalk/internal/typesystem"
	"go.uber.org/zap"
)

// Registry is a read-only name→class lookup.
type Registry interface {
	Lookup(name string) (*typesystem.Class, bool)
}

// Universe is an in-memory Registry. Lookups may run concurrently with each
// other and with Define.
type Universe struct {
	mu      sync.RWMutex
	classes map[string]*typesystem.Class
	decls   map[string]ClassDecl
}

// NewUniverse creates a universe holding the built-in classes and the
// collection prelude.
func NewUniverse() *Universe {
	u := NewEmptyUniverse()
	if err := u.Define(prelude...); err != nil {
		panic(fmt.Sprintf("registry: invalid prelude: %v", err))
	}
	u.decls = make(map[string]ClassDecl)
	return u
}

// NewEmptyUniverse creates a universe holding only the non-generic built-ins.
func NewEmptyUniverse() *Universe {
	return &Universe{
		classes: make(map[string]*typesystem.Class),
		decls:   make(map[string]ClassDecl),
	}
}

// Lookup returns the class registered under name.
func (u *Universe) Lookup(name string) (*typesystem.Class, bool) {
	if c, ok := typesystem.Builtin(name); ok {
		return c, true
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	c, ok := u.classes[name]
	return c, ok
}

// Names returns the names of all declared (non built-in) classes, sorted.
func (u *Universe) Names() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]string, 0, len(u.classes))
	for name := range u.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Decls returns the declarations defined after construction, sorted by name.
// The prelude is not included.
func (u *Universe) Decls() []ClassDecl {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]ClassDecl, 0, len(u.decls))
	for _, d := range u.decls {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Define adds a batch of declarations. Declarations in one batch may refer to
// each other in any order. On error nothing from the batch is registered.
func (u *Universe) Define(decls ...ClassDecl) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	pending := make(map[string]*typesystem.Class, len(decls))
	for _, d := range decls {
		if d.Name == "" {
			return typesystem.NewDeclarationError("<unnamed>", "name is required", nil)
		}
		if _, ok := typesystem.Builtin(d.Name); ok {
			return typesystem.NewDeclarationError(d.Name, "redeclares a built-in class", nil)
		}
		if _, ok := typesystem.PrimitiveByKeyword(d.Name); ok {
			return typesystem.NewDeclarationError(d.Name, "redeclares a primitive", nil)
		}
		if _, ok := u.classes[d.Name]; ok {
			return typesystem.NewDeclarationError(d.Name, "already declared", nil)
		}
		if _, ok := pending[d.Name]; ok {
			return typesystem.NewDeclarationError(d.Name, "declared twice in one batch", nil)
		}
		pending[d.Name] = shell(d)
	}

	lookup := batchLookup{u: u, pending: pending}
	for _, d := range decls {
		if err := fill(pending[d.Name], d, lookup); err != nil {
			return err
		}
	}
	for _, d := range decls {
		if err := checkAcyclic(pending[d.Name]); err != nil {
			return err
		}
	}

	for _, d := range decls {
		u.classes[d.Name] = pending[d.Name]
		u.decls[d.Name] = d
	}
	Logger().Debug("registry defined classes", zap.Int("count", len(decls)))
	return nil
}

// batchLookup sees the registered classes plus the batch being defined.
// It is used with u.mu already held.
type batchLookup struct {
	u       *Universe
	pending map[string]*typesystem.Class
}

func (b batchLookup) Lookup(name string) (*typesystem.Class, bool) {
	if c, ok := b.pending[name]; ok {
		return c, true
	}
	if c, ok := typesystem.Builtin(name); ok {
		return c, true
	}
	c, ok := b.u.classes[name]
	return c, ok
}

func shell(d ClassDecl) *typesystem.Class {
	c := &typesystem.Class{Name: d.Name, Element: d.Element}
	if d.Kind == KindInterface {
		c.Sort = typesystem.SortInterface
	}
	for _, p := range d.Params {
		c.Params = append(c.Params, typesystem.NewTVar(d.Name, p.Name))
	}
	return c
}

func fill(c *typesystem.Class, d ClassDecl, reg names.Registry) error {
	switch d.Kind {
	case "", KindClass, KindInterface:
	default:
		return typesystem.NewDeclarationError(d.Name, fmt.Sprintf("unknown kind %q", d.Kind), nil)
	}

	scope := names.Scope{}
	for _, p := range c.Params {
		if _, dup := scope[p.Name]; dup {
			return typesystem.NewDeclarationError(d.Name, "duplicate type parameter "+p.Name, nil)
		}
		scope[p.Name] = p
	}

	for i, p := range d.Params {
		bounds := make([]typesystem.Type, 0, len(p.Bounds))
		for _, text := range p.Bounds {
			b, err := names.ParseType(reg, text, scope)
			if err != nil {
				return typesystem.NewDeclarationError(d.Name, "bound of "+p.Name, err)
			}
			bounds = append(bounds, b)
		}
		c.Params[i].SetBounds(bounds...)
	}
	if err := checkBoundCycles(d.Name, c.Params); err != nil {
		return err
	}

	extends := d.Extends
	if len(extends) == 0 && c.Sort == typesystem.SortClass {
		extends = []string{config.ObjectTypeName}
	}
	for _, text := range extends {
		s, err := names.ParseType(reg, text, scope)
		if err != nil {
			return typesystem.NewDeclarationError(d.Name, "supertype "+text, err)
		}
		switch st := s.(type) {
		case *typesystem.Class:
			if st.IsPrimitive() || st.IsArray() {
				return typesystem.NewDeclarationError(d.Name, "cannot extend "+st.Name, nil)
			}
		case typesystem.TApp:
		default:
			return typesystem.NewDeclarationError(d.Name, "supertype must be a class: "+text, nil)
		}
		c.Supers = append(c.Supers, s)
	}

	for _, fd := range d.Fields {
		if _, dup := c.DeclaredField(fd.Name); dup {
			return typesystem.NewDeclarationError(d.Name, "duplicate field "+fd.Name, nil)
		}
		t, err := names.ParseType(reg, fd.Type, scope)
		if err != nil {
			return typesystem.NewDeclarationError(d.Name, "field "+fd.Name, err)
		}
		c.AddField(fd.Name, t)
	}

	if d.Element && len(c.Params) != 1 {
		return typesystem.NewDeclarationError(d.Name, "element containers take exactly one type parameter", nil)
	}
	return nil
}

// checkBoundCycles rejects parameters whose bounds reach themselves through
// bare variables (T extends U, U extends T). Erasure follows such chains.
func checkBoundCycles(class string, params []typesystem.TVar) error {
	state := map[typesystem.VarKey]int{}
	var visit func(typesystem.TVar) bool
	visit = func(v typesystem.TVar) bool {
		switch state[v.Key()] {
		case 1:
			return false
		case 2:
			return true
		}
		state[v.Key()] = 1
		for _, b := range v.Bounds() {
			if next, ok := b.(typesystem.TVar); ok && !visit(next) {
				return false
			}
		}
		state[v.Key()] = 2
		return true
	}
	for _, p := range params {
		if !visit(p) {
			return typesystem.NewDeclarationError(class, "cyclic bound of "+p.Name, nil)
		}
	}
	return nil
}

func checkAcyclic(c *typesystem.Class) error {
	state := map[*typesystem.Class]int{}
	var visit func(*typesystem.Class) bool
	visit = func(k *typesystem.Class) bool {
		switch state[k] {
		case 1:
			return false
		case 2:
			return true
		}
		state[k] = 1
		for _, s := range k.Supers {
			if !visit(rawOf(s)) {
				return false
			}
		}
		state[k] = 2
		return true
	}
	if !visit(c) {
		return typesystem.NewDeclarationError(c.Name, "cyclic supertype chain", nil)
	}
	return nil
}

func rawOf(t typesystem.Type) *typesystem.Class {
	if app, ok := t.(typesystem.TApp); ok {
		return app.Raw
	}
	return t.(*typesystem.Class)
}
