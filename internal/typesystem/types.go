package typesystem

import (
	"strings"

	"github.com/funvibe/typewalk/internal/config"
	"github.com/google/uuid"
)

// Type is the interface for all type descriptors.
// Descriptors are immutable; Apply always builds new values.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// VarKey identifies a type variable: the same name declared at two sites
// denotes two different variables.
type VarKey struct {
	Site string
	Name string
}

func (k VarKey) String() string {
	return k.Site + "#" + k.Name
}

// TVar represents a type variable declared by a generic class or member.
type TVar struct {
	Site string
	Name string
	// bounds is shared by every copy of the variable, so that bounds may refer
	// back to the variable itself (T extends Comparable<T>).
	bounds *[]Type
}

// NewTVar creates a variable declared at site. Without bounds, the variable
// is bounded by Object.
func NewTVar(site, name string, bounds ...Type) TVar {
	b := append([]Type(nil), bounds...)
	return TVar{Site: site, Name: name, bounds: &b}
}

// SetBounds fills in the bounds of a variable created while its declaring
// site is still being built. All copies of v observe the change.
func (v TVar) SetBounds(bounds ...Type) {
	if v.bounds == nil {
		return
	}
	*v.bounds = append([]Type(nil), bounds...)
}

// Bounds returns the ordered upper bounds; never empty.
func (v TVar) Bounds() []Type {
	if v.bounds == nil || len(*v.bounds) == 0 {
		return []Type{Object}
	}
	return *v.bounds
}

func (v TVar) Key() VarKey {
	return VarKey{Site: v.Site, Name: v.Name}
}

func (v TVar) String() string {
	return v.Name
}

func (v TVar) Apply(s Subst) Type {
	if replacement, ok := s[v.Key()]; ok {
		return replacement
	}
	return v
}

func (v TVar) FreeTypeVariables() []TVar {
	return []TVar{v}
}

// TApp represents a parameterized type (util.Map<lang.String, T>).
type TApp struct {
	Raw  *Class
	Args []Type
}

// NewTApp builds a parameterized type, checking the argument count against
// the raw class's arity.
func NewTApp(raw *Class, args ...Type) (TApp, error) {
	t := TApp{Raw: raw, Args: append([]Type(nil), args...)}
	if err := KindCheck(t); err != nil {
		return TApp{}, err
	}
	return t, nil
}

func (t TApp) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return t.Raw.Name + "<" + strings.Join(args, ", ") + ">"
}

func (t TApp) Apply(s Subst) Type {
	newArgs := make([]Type, len(t.Args))
	for i, arg := range t.Args {
		newArgs[i] = arg.Apply(s)
	}
	return TApp{Raw: t.Raw, Args: newArgs}
}

func (t TApp) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, arg := range t.Args {
		vars = append(vars, arg.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TArray represents an array over a non-raw component (T[], util.List<lang.String>[][]).
type TArray struct {
	Elem Type
	Dims int
}

// NewTArray wraps elem in dims array dimensions. A dims of 0 yields elem
// itself, nested arrays are flattened, and arrays over a raw class (other than
// void) collapse to the raw array class. Void has no array class, so an array
// of void stays a TArray and erases to nil; name resolution and ParseType
// reject it before it is built.
func NewTArray(elem Type, dims int) Type {
	if dims <= 0 {
		return elem
	}
	switch e := elem.(type) {
	case TArray:
		return NewTArray(e.Elem, e.Dims+dims)
	case *Class:
		if e.IsVoid() {
			return TArray{Elem: e, Dims: dims}
		}
		c := e
		for i := 0; i < dims; i++ {
			c = c.ArrayClass()
		}
		return c
	}
	return TArray{Elem: elem, Dims: dims}
}

func (t TArray) String() string {
	return t.Elem.String() + strings.Repeat(config.ArraySuffix, t.Dims)
}

func (t TArray) Apply(s Subst) Type {
	return NewTArray(t.Elem.Apply(s), t.Dims)
}

func (t TArray) FreeTypeVariables() []TVar {
	return t.Elem.FreeTypeVariables()
}

// TWildcard represents "?", "? extends A & B" or "? super B".
type TWildcard struct {
	Upper []Type
	Lower Type
}

// UpperBounds returns the ordered upper bounds; never empty.
func (t TWildcard) UpperBounds() []Type {
	if len(t.Upper) == 0 {
		return []Type{Object}
	}
	return t.Upper
}

func (t TWildcard) String() string {
	if t.Lower != nil {
		return "? super " + t.Lower.String()
	}
	if len(t.Upper) == 0 {
		return "?"
	}
	if c, ok := t.Upper[0].(*Class); ok && c == Object && len(t.Upper) == 1 {
		return "?"
	}
	return "? extends " + joinTypes(t.Upper, " & ")
}

func (t TWildcard) Apply(s Subst) Type {
	var upper []Type
	if len(t.Upper) > 0 {
		upper = make([]Type, len(t.Upper))
		for i, b := range t.Upper {
			upper[i] = b.Apply(s)
		}
	}
	var lower Type
	if t.Lower != nil {
		lower = t.Lower.Apply(s)
	}
	return TWildcard{Upper: upper, Lower: lower}
}

func (t TWildcard) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, b := range t.Upper {
		vars = append(vars, b.FreeTypeVariables()...)
	}
	if t.Lower != nil {
		vars = append(vars, t.Lower.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TCapture stands for some unknown type satisfying Bounds. It is produced when
// a resolution ends at a variable that no subtype pinned to an argument.
type TCapture struct {
	ID     uuid.UUID
	Var    TVar
	Bounds []Type
}

func NewTCapture(v TVar, bounds []Type) TCapture {
	if len(bounds) == 0 {
		bounds = []Type{Object}
	}
	return TCapture{ID: uuid.New(), Var: v, Bounds: append([]Type(nil), bounds...)}
}

func (t TCapture) String() string {
	return config.CaptureName
}

func (t TCapture) Apply(Subst) Type {
	return t
}

func (t TCapture) FreeTypeVariables() []TVar {
	return nil
}

func joinTypes(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

func uniqueTVars(vars []TVar) []TVar {
	unique := []TVar{}
	seen := map[VarKey]bool{}
	for _, v := range vars {
		if !seen[v.Key()] {
			seen[v.Key()] = true
			unique = append(unique, v)
		}
	}
	return unique
}
