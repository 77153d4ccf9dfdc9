package registry

import "github.com/funvibe/typewalk/internal/config"

// prelude declares the generic built-ins every Universe starts with.
var prelude = []ClassDecl{
	{
		Name:   config.ComparableTypeName,
		Kind:   KindInterface,
		Params: []ParamDecl{{Name: "T"}},
	},
	{
		Name:    config.IterableTypeName,
		Kind:    KindInterface,
		Params:  []ParamDecl{{Name: "T"}},
		Element: true,
	},
	{
		Name:    config.CollectionTypeName,
		Kind:    KindInterface,
		Params:  []ParamDecl{{Name: "E"}},
		Extends: []string{config.IterableTypeName + "<E>"},
		Element: true,
	},
	{
		Name:    config.ListTypeName,
		Kind:    KindInterface,
		Params:  []ParamDecl{{Name: "E"}},
		Extends: []string{config.CollectionTypeName + "<E>"},
		Element: true,
	},
	{
		Name:    config.SetTypeName,
		Kind:    KindInterface,
		Params:  []ParamDecl{{Name: "E"}},
		Extends: []string{config.CollectionTypeName + "<E>"},
		Element: true,
	},
	{
		Name:   config.MapTypeName,
		Kind:   KindInterface,
		Params: []ParamDecl{{Name: "K"}, {Name: "V"}},
	},
	{
		Name:   config.ArrayListTypeName,
		Params: []ParamDecl{{Name: "E"}},
		Extends: []string{
			config.ObjectTypeName,
			config.ListTypeName + "<E>",
			config.CloneableTypeName,
			config.SerializableTypeName,
		},
		Element: true,
	},
	{
		Name:   config.LinkedListTypeName,
		Params: []ParamDecl{{Name: "E"}},
		Extends: []string{
			config.ObjectTypeName,
			config.ListTypeName + "<E>",
			config.CloneableTypeName,
			config.SerializableTypeName,
		},
		Element: true,
	},
	{
		Name:   config.HashSetTypeName,
		Params: []ParamDecl{{Name: "E"}},
		Extends: []string{
			config.ObjectTypeName,
			config.SetTypeName + "<E>",
			config.CloneableTypeName,
			config.SerializableTypeName,
		},
		Element: true,
	},
	{
		Name:   config.HashMapTypeName,
		Params: []ParamDecl{{Name: "K"}, {Name: "V"}},
		Extends: []string{
			config.ObjectTypeName,
			config.MapTypeName + "<K, V>",
			config.CloneableTypeName,
			config.SerializableTypeName,
		},
	},
}
