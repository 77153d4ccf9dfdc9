// Package names maps textual type names to type descriptors and back.
//
// Three spellings are understood by ResolveByName:
//   - primitive keywords ("int", "void") and the alias "string";
//   - bracket arrays over any of those or a fully qualified name ("int[][]", "util.List[]");
//   - packed descriptors ("[I", "[[D", "[Llang.Number;").
//
// Fully qualified names are looked up through an injected Registry.
// ParseType additionally understands full generic type expressions.
package names

import (
	"strings"

	"github.com/funvibe/typewalk/internal/config"
	"github.com/funvibe/typewalk/internal/typesystem"
)

// Registry is the name→class lookup consumed by the resolver.
type Registry interface {
	Lookup(name string) (*typesystem.Class, bool)
}

type loadStatus int

const (
	loaded loadStatus = iota
	notFound
	// impossible marks names that are well-formed but can never denote a
	// type, such as arrays of void.
	impossible
)

// ResolveByName loads the class named by text. The boolean result is false
// when nothing was loaded. Arrays of void are reported as absent whatever
// failSilently says; any other failure is returned as a *NameResolutionError
// unless failSilently is set.
func ResolveByName(reg Registry, text string, failSilently bool) (*typesystem.Class, bool, error) {
	c, status := load(reg, strings.TrimSpace(text))
	switch status {
	case loaded:
		return c, true, nil
	case impossible:
		return nil, false, nil
	}
	if failSilently {
		return nil, false, nil
	}
	return nil, false, typesystem.NewNameResolutionError(text)
}

func load(reg Registry, text string) (*typesystem.Class, loadStatus) {
	if text == "" {
		return nil, notFound
	}

	if strings.HasSuffix(text, config.ArraySuffix) {
		base, dims := splitArraySuffix(text)
		c, status := load(reg, base)
		if status != loaded {
			return nil, status
		}
		return arrayOf(c, dims)
	}

	if text[0] == config.PackedArrayPrefix {
		return loadPacked(reg, text)
	}

	if p, ok := typesystem.PrimitiveByKeyword(text); ok {
		return p, loaded
	}
	return loadNamed(reg, text)
}

func loadPacked(reg Registry, text string) (*typesystem.Class, loadStatus) {
	dims := 0
	for dims < len(text) && text[dims] == config.PackedArrayPrefix {
		dims++
	}
	rest := text[dims:]
	if rest == "" {
		return nil, notFound
	}

	if len(rest) == 1 {
		keyword, ok := config.PackedPrimitiveCodes[rest[0]]
		if !ok {
			return nil, notFound
		}
		p, _ := typesystem.PrimitiveByKeyword(keyword)
		return arrayOf(p, dims)
	}

	if rest[0] != config.PackedRefPrefix || rest[len(rest)-1] != config.PackedRefSuffix {
		return nil, notFound
	}
	c, status := loadNamed(reg, rest[1:len(rest)-1])
	if status != loaded {
		return nil, status
	}
	return arrayOf(c, dims)
}

func loadNamed(reg Registry, name string) (*typesystem.Class, loadStatus) {
	if name == config.StringAlias {
		return typesystem.String, loaded
	}
	if c, ok := typesystem.Builtin(name); ok {
		return c, loaded
	}
	if reg != nil {
		if c, ok := reg.Lookup(name); ok {
			return c, loaded
		}
	}
	return nil, notFound
}

func arrayOf(c *typesystem.Class, dims int) (*typesystem.Class, loadStatus) {
	if c.IsVoid() {
		return nil, impossible
	}
	for i := 0; i < dims; i++ {
		c = c.ArrayClass()
	}
	return c, loaded
}

func splitArraySuffix(text string) (string, int) {
	dims := 0
	for strings.HasSuffix(text, config.ArraySuffix) {
		text = strings.TrimSpace(strings.TrimSuffix(text, config.ArraySuffix))
		dims++
	}
	return text, dims
}

// CanonicalName renders a descriptor for humans: primitives print their
// keyword, arrays print "[]" per dimension and parameterized types print
// their arguments in angle brackets.
func CanonicalName(t typesystem.Type) string {
	switch typ := t.(type) {
	case nil:
		return ""
	case *typesystem.Class:
		if typ.IsArray() {
			return CanonicalName(typ.Component) + config.ArraySuffix
		}
		return typ.Name
	case typesystem.TApp:
		args := make([]string, len(typ.Args))
		for i, arg := range typ.Args {
			args[i] = CanonicalName(arg)
		}
		return CanonicalName(typ.Raw) + "<" + strings.Join(args, ", ") + ">"
	case typesystem.TArray:
		return CanonicalName(typ.Elem) + strings.Repeat(config.ArraySuffix, typ.Dims)
	case typesystem.TWildcard:
		if typ.Lower != nil {
			return "? super " + CanonicalName(typ.Lower)
		}
		upper := typ.UpperBounds()
		if len(upper) == 1 && typesystem.Equal(upper[0], typesystem.Object) {
			return "?"
		}
		return "? extends " + joinCanonical(upper, " & ")
	default:
		return t.String()
	}
}

// PackedName renders a raw class in packed descriptor form when it is an
// array ("[I", "[Llang.String;") and by its plain name otherwise.
func PackedName(c *typesystem.Class) string {
	if !c.IsArray() {
		return c.Name
	}
	var b strings.Builder
	base := c
	for base.IsArray() {
		b.WriteByte(config.PackedArrayPrefix)
		base = base.Component
	}
	if base.IsPrimitive() {
		for code, keyword := range config.PackedPrimitiveCodes {
			if keyword == base.Name {
				b.WriteByte(code)
				return b.String()
			}
		}
	}
	b.WriteByte(config.PackedRefPrefix)
	b.WriteString(base.Name)
	b.WriteByte(config.PackedRefSuffix)
	return b.String()
}

func joinCanonical(ts []typesystem.Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = CanonicalName(t)
	}
	return strings.Join(parts, sep)
}
