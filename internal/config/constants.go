package config

// DeclFileNames are the declaration file names searched by FindConfig, in order.
var DeclFileNames = []string{"typewalk.yaml", "typewalk.yml"}

// CatalogFileExt is the extension used for SQLite catalog snapshots.
const CatalogFileExt = ".twdb"

// Primitive keywords
const (
	BooleanKeyword = "boolean"
	ByteKeyword    = "byte"
	CharKeyword    = "char"
	DoubleKeyword  = "double"
	FloatKeyword   = "float"
	IntKeyword     = "int"
	LongKeyword    = "long"
	ShortKeyword   = "short"
	VoidKeyword    = "void"
)

// StringAlias is accepted by the name resolver as a shorthand for StringTypeName.
const StringAlias = "string"

// Built-in type names
const (
	ObjectTypeName       = "lang.Object"
	StringTypeName       = "lang.String"
	NumberTypeName       = "lang.Number"
	SerializableTypeName = "lang.Serializable"
	CloneableTypeName    = "lang.Cloneable"
	ComparableTypeName   = "lang.Comparable"
	IterableTypeName     = "lang.Iterable"

	BooleanTypeName   = "lang.Boolean"
	ByteTypeName      = "lang.Byte"
	CharacterTypeName = "lang.Character"
	DoubleTypeName    = "lang.Double"
	FloatTypeName     = "lang.Float"
	IntegerTypeName   = "lang.Integer"
	LongTypeName      = "lang.Long"
	ShortTypeName     = "lang.Short"
	VoidTypeName      = "lang.Void"

	CollectionTypeName = "util.Collection"
	ListTypeName       = "util.List"
	ArrayListTypeName  = "util.ArrayList"
	LinkedListTypeName = "util.LinkedList"
	SetTypeName        = "util.Set"
	HashSetTypeName    = "util.HashSet"
	MapTypeName        = "util.Map"
	HashMapTypeName    = "util.HashMap"
)

// Packed array descriptor syntax: "[I", "[[D", "[Lutil.List;".
const (
	PackedArrayPrefix = '['
	PackedRefPrefix   = 'L'
	PackedRefSuffix   = ';'
)

// PackedPrimitiveCodes maps one-letter packed codes to primitive keywords.
var PackedPrimitiveCodes = map[byte]string{
	'Z': BooleanKeyword,
	'B': ByteKeyword,
	'C': CharKeyword,
	'D': DoubleKeyword,
	'F': FloatKeyword,
	'I': IntKeyword,
	'J': LongKeyword,
	'S': ShortKeyword,
	'V': VoidKeyword,
}

// ArraySuffix marks one array dimension in display names.
const ArraySuffix = "[]"

// CaptureName is how an unpinned capture prints.
const CaptureName = "capture of ?"
