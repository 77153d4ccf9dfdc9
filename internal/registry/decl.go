package registry

// Config is the top-level layout of a typewalk.yaml declaration file.
type Config struct {
	// Classes lists the class and interface declarations, in any order.
	// Declarations may refer to each other regardless of order.
	Classes []ClassDecl `yaml:"classes"`
}

// ClassDecl declares one class or interface.
type ClassDecl struct {
	// Name is the fully qualified name (e.g. "shapes.Box").
	Name string `yaml:"name"`

	// Kind is "class" or "interface". Defaults to "class".
	Kind string `yaml:"kind,omitempty"`

	// Params are the type parameters, in order.
	Params []ParamDecl `yaml:"params,omitempty"`

	// Extends lists the direct supertypes as type expressions over Params,
	// superclass first (e.g. ["shapes.Shape", "util.List<T>"]).
	// Defaults to ["lang.Object"] for classes.
	Extends []string `yaml:"extends,omitempty"`

	// Fields lists the members declared directly on the class.
	Fields []FieldDecl `yaml:"fields,omitempty"`

	// Element marks a single-parameter container whose argument is the
	// element type, so that the component of Box<T> is T.
	Element bool `yaml:"element,omitempty"`
}

// ParamDecl declares one type parameter.
type ParamDecl struct {
	// Name is the variable name (e.g. "T").
	Name string `yaml:"name"`

	// Bounds are the upper bounds as type expressions; several bounds form an
	// intersection. Defaults to lang.Object.
	Bounds []string `yaml:"bounds,omitempty"`
}

// FieldDecl declares one member.
type FieldDecl struct {
	// Name is the member name.
	Name string `yaml:"name"`

	// Type is the declared generic type (e.g. "util.Map<K, V[]>").
	Type string `yaml:"type"`
}

const (
	KindClass     = "class"
	KindInterface = "interface"
)
