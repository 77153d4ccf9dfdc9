// Package protohost turns protobuf schemas into class declarations.
//
// Messages become classes extending lang.Object and enums become classes
// extending lang.Comparable of themselves. Repeated fields are typed
// util.List<T> and map fields util.Map<K, V>, with scalar arguments boxed.
// Imported files are declared too, so every message reference resolves.
package protohost

import (
	"context"
	"fmt"

	"github.com/funvibe/typewalk/internal/config"
	"github.com/funvibe/typewalk/internal/registry"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Load parses the given .proto files, searching importPaths for them and
// their imports.
func Load(ctx context.Context, importPaths []string, files ...string) ([]registry.ClassDecl, error) {
	if len(importPaths) == 0 {
		importPaths = []string{"."}
	}
	return parse(ctx, protoparse.Parser{ImportPaths: importPaths}, files...)
}

// LoadSources parses .proto sources held in memory, keyed by file name.
func LoadSources(ctx context.Context, sources map[string]string, files ...string) ([]registry.ClassDecl, error) {
	return parse(ctx, protoparse.Parser{Accessor: protoparse.FileContentsFromMap(sources)}, files...)
}

func parse(ctx context.Context, parser protoparse.Parser, files ...string) ([]registry.ClassDecl, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fds, err := parser.ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proto: %w", err)
	}
	return Decls(fds...), nil
}

// Decls maps the messages and enums of fds, and of everything they import,
// to declarations.
func Decls(fds ...*desc.FileDescriptor) []registry.ClassDecl {
	var all []*desc.FileDescriptor
	seen := make(map[string]bool)
	var visit func(fd *desc.FileDescriptor)
	visit = func(fd *desc.FileDescriptor) {
		if seen[fd.GetName()] {
			return
		}
		seen[fd.GetName()] = true
		for _, dep := range fd.GetDependencies() {
			visit(dep)
		}
		all = append(all, fd)
	}
	for _, fd := range fds {
		visit(fd)
	}

	var decls []registry.ClassDecl
	for _, fd := range all {
		for _, ed := range fd.GetEnumTypes() {
			decls = append(decls, enumDecl(ed))
		}
		for _, md := range fd.GetMessageTypes() {
			decls = appendMessage(decls, md)
		}
	}
	return decls
}

func enumDecl(ed *desc.EnumDescriptor) registry.ClassDecl {
	return registry.ClassDecl{
		Name: ed.GetFullyQualifiedName(),
		Kind: registry.KindClass,
		Extends: []string{
			config.ObjectTypeName,
			config.ComparableTypeName + "<" + ed.GetFullyQualifiedName() + ">",
		},
	}
}

func appendMessage(decls []registry.ClassDecl, md *desc.MessageDescriptor) []registry.ClassDecl {
	if md.IsMapEntry() {
		return decls
	}
	d := registry.ClassDecl{
		Name:    md.GetFullyQualifiedName(),
		Kind:    registry.KindClass,
		Extends: []string{config.ObjectTypeName},
	}
	for _, fd := range md.GetFields() {
		d.Fields = append(d.Fields, registry.FieldDecl{Name: fd.GetName(), Type: fieldExpr(fd)})
	}
	decls = append(decls, d)

	for _, ed := range md.GetNestedEnumTypes() {
		decls = append(decls, enumDecl(ed))
	}
	for _, nested := range md.GetNestedMessageTypes() {
		decls = appendMessage(decls, nested)
	}
	return decls
}

func fieldExpr(fd *desc.FieldDescriptor) string {
	if fd.IsMap() {
		return config.MapTypeName + "<" + argExpr(fd.GetMapKeyType()) + ", " + argExpr(fd.GetMapValueType()) + ">"
	}
	if fd.IsRepeated() {
		return config.ListTypeName + "<" + argExpr(fd) + ">"
	}
	return singleExpr(fd)
}

// argExpr renders the element type of fd as a type argument.
func argExpr(fd *desc.FieldDescriptor) string {
	expr := singleExpr(fd)
	if boxed, ok := boxedNames[expr]; ok {
		return boxed
	}
	return expr
}

var boxedNames = map[string]string{
	config.BooleanKeyword: config.BooleanTypeName,
	config.DoubleKeyword:  config.DoubleTypeName,
	config.FloatKeyword:   config.FloatTypeName,
	config.IntKeyword:     config.IntegerTypeName,
	config.LongKeyword:    config.LongTypeName,
}

func singleExpr(fd *desc.FieldDescriptor) string {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32, descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32, descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return config.IntKeyword
	case descriptorpb.FieldDescriptorProto_TYPE_INT64, descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64, descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return config.LongKeyword
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return config.FloatKeyword
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return config.DoubleKeyword
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return config.BooleanKeyword
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return config.StringTypeName
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return config.ByteKeyword + config.ArraySuffix
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return fd.GetMessageType().GetFullyQualifiedName()
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return fd.GetEnumType().GetFullyQualifiedName()
	default:
		return config.ObjectTypeName
	}
}
