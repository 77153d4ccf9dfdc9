package typesystem

import "github.com/funvibe/typewalk/internal/config"

// Primitive classes. Their names are the primitive keywords.
var (
	Boolean = primitive(config.BooleanKeyword)
	Byte    = primitive(config.ByteKeyword)
	Char    = primitive(config.CharKeyword)
	Double  = primitive(config.DoubleKeyword)
	Float   = primitive(config.FloatKeyword)
	Int     = primitive(config.IntKeyword)
	Long    = primitive(config.LongKeyword)
	Short   = primitive(config.ShortKeyword)
	Void    = primitive(config.VoidKeyword)
)

// Object is the universal top type and the implicit bound of every variable.
var Object = &Class{Name: config.ObjectTypeName}

var (
	Serializable = &Class{Name: config.SerializableTypeName, Sort: SortInterface, Supers: []Type{Object}}
	Cloneable    = &Class{Name: config.CloneableTypeName, Sort: SortInterface, Supers: []Type{Object}}
	String       = &Class{Name: config.StringTypeName, Supers: []Type{Object, Serializable}}
	Number       = &Class{Name: config.NumberTypeName, Supers: []Type{Object, Serializable}}
)

// Boxed wrapper classes.
var (
	BoxedBoolean   = &Class{Name: config.BooleanTypeName, Supers: []Type{Object, Serializable}}
	BoxedByte      = &Class{Name: config.ByteTypeName, Supers: []Type{Number}}
	BoxedCharacter = &Class{Name: config.CharacterTypeName, Supers: []Type{Object, Serializable}}
	BoxedDouble    = &Class{Name: config.DoubleTypeName, Supers: []Type{Number}}
	BoxedFloat     = &Class{Name: config.FloatTypeName, Supers: []Type{Number}}
	BoxedInteger   = &Class{Name: config.IntegerTypeName, Supers: []Type{Number}}
	BoxedLong      = &Class{Name: config.LongTypeName, Supers: []Type{Number}}
	BoxedShort     = &Class{Name: config.ShortTypeName, Supers: []Type{Number}}
	BoxedVoid      = &Class{Name: config.VoidTypeName, Supers: []Type{Object}}
)

// Primitives lists the nine primitive classes, void last.
var Primitives = []*Class{Boolean, Byte, Char, Double, Float, Int, Long, Short, Void}

var builtins map[string]*Class

func init() {
	builtins = make(map[string]*Class)
	for _, c := range []*Class{
		Object, Serializable, Cloneable, String, Number,
		BoxedBoolean, BoxedByte, BoxedCharacter, BoxedDouble, BoxedFloat,
		BoxedInteger, BoxedLong, BoxedShort, BoxedVoid,
	} {
		builtins[c.Name] = c
	}
}

func primitive(keyword string) *Class {
	return &Class{Name: keyword, Sort: SortPrimitive}
}

// Builtin returns the non-generic built-in class with the given fully qualified
// name. Primitive keywords are not looked up here.
func Builtin(name string) (*Class, bool) {
	c, ok := builtins[name]
	return c, ok
}

// PrimitiveByKeyword returns the primitive class for a keyword such as "int".
func PrimitiveByKeyword(keyword string) (*Class, bool) {
	for _, p := range Primitives {
		if p.Name == keyword {
			return p, true
		}
	}
	return nil, false
}
