package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/typewalk/pkg/resolve"
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

type command struct {
	args int
	use  string
	run  func(ctx context.Context, e *resolve.Engine, out *printer, args []string) error
}

var commands = map[string]command{
	"classes":  {0, "classes", cmdClasses},
	"name":     {1, "name <name>", cmdName},
	"parse":    {1, "parse <type>", cmdParse},
	"erase":    {1, "erase <type>", cmdErase},
	"raws":     {1, "raws <type>", cmdRaws},
	"member":   {2, "member <leaf> <member>", cmdMember},
	"param":    {3, "param <type> <declaring> <index>", cmdParam},
	"super":    {2, "super <type> <ancestor>", cmdSuper},
	"box":      {1, "box <primitive>", cmdBox},
	"zero":     {1, "zero <primitive>", cmdZero},
	"array":    {2, "array <component> <dims>", cmdArray},
	"snapshot": {1, "snapshot <file.twdb>", cmdSnapshot},
}

func dispatch(ctx context.Context, e *resolve.Engine, out *printer, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return &usageError{msg: fmt.Sprintf("unknown command %q", name)}
	}
	if len(args) != cmd.args {
		return &usageError{msg: "usage: typewalk " + cmd.use}
	}
	return cmd.run(ctx, e, out, args)
}

func cmdClasses(_ context.Context, e *resolve.Engine, out *printer, _ []string) error {
	for _, name := range e.Universe().Names() {
		out.line(name)
	}
	return nil
}

func cmdName(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	c, err := e.Class(args[0])
	if err != nil {
		return err
	}
	out.field("name", e.CanonicalName(c))
	out.field("packed", e.PackedName(c))
	out.field("sort", c.Sort.String())
	return nil
}

func cmdParse(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	t, err := e.ParseType(args[0], nil)
	if err != nil {
		return err
	}
	out.line(e.CanonicalName(t))
	return nil
}

func cmdErase(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	t, err := e.ParseType(args[0], nil)
	if err != nil {
		return err
	}
	c := e.Erase(t)
	if c == nil {
		return fmt.Errorf("%s has no raw class", args[0])
	}
	out.line(e.CanonicalName(c))
	return nil
}

func cmdRaws(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	t, err := e.ParseType(args[0], nil)
	if err != nil {
		return err
	}
	for _, c := range e.AllErasures(t) {
		out.line(e.CanonicalName(c))
	}
	return nil
}

func cmdMember(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	t, err := e.MemberType(args[0], args[1])
	if err != nil {
		return err
	}
	printResolved(e, out, t)
	return nil
}

func cmdParam(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	index, err := strconv.Atoi(args[2])
	if err != nil {
		return &usageError{msg: fmt.Sprintf("index must be an integer, got %q", args[2])}
	}
	t, err := e.ParameterType(args[0], args[1], index)
	if err != nil {
		return err
	}
	printResolved(e, out, t)
	return nil
}

// printResolved prints a resolved type; captures also list their bounds.
func printResolved(e *resolve.Engine, out *printer, t resolve.Type) {
	out.field("type", e.CanonicalName(t))
	if c, ok := t.(resolve.TCapture); ok {
		bounds := make([]string, len(c.Bounds))
		for i, b := range c.Bounds {
			bounds[i] = e.CanonicalName(b)
		}
		out.field("bounds", strings.Join(bounds, " & "))
	}
	if raw := e.Erase(t); raw != nil {
		out.field("raw", e.CanonicalName(raw))
	}
}

func cmdSuper(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	t, err := e.ParseType(args[0], nil)
	if err != nil {
		return err
	}
	ancestor, err := e.Class(args[1])
	if err != nil {
		return err
	}
	st, err := e.ExactSuperType(t, ancestor)
	if err != nil {
		return err
	}
	out.line(e.CanonicalName(st))
	return nil
}

func primitiveArg(e *resolve.Engine, name string) (*resolve.Class, error) {
	c, err := e.Class(name)
	if err != nil {
		return nil, err
	}
	if !c.IsPrimitive() {
		return nil, fmt.Errorf("%s is not a primitive", name)
	}
	return c, nil
}

func cmdBox(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	c, err := e.Class(args[0])
	if err != nil {
		return err
	}
	out.line(e.CanonicalName(e.BoxedForm(c)))
	return nil
}

func cmdZero(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	c, err := primitiveArg(e, args[0])
	if err != nil {
		return err
	}
	v, ok := e.DefaultValue(c)
	if !ok {
		return fmt.Errorf("%s has no default value", args[0])
	}
	out.field("value", fmt.Sprintf("%v", v))
	out.field("go", fmt.Sprintf("%T", v))
	return nil
}

func cmdArray(_ context.Context, e *resolve.Engine, out *printer, args []string) error {
	dims, err := strconv.Atoi(args[1])
	if err != nil {
		return &usageError{msg: fmt.Sprintf("dims must be an integer, got %q", args[1])}
	}
	c, err := e.Class(args[0])
	if err != nil {
		return err
	}
	arr, err := e.MakeArrayType(c, dims)
	if err != nil {
		return err
	}
	out.field("name", e.CanonicalName(arr))
	out.field("packed", e.PackedName(arr))
	return nil
}

func cmdSnapshot(ctx context.Context, e *resolve.Engine, out *printer, args []string) error {
	if err := e.Snapshot(ctx, args[0]); err != nil {
		return err
	}
	out.field("classes", strconv.Itoa(len(e.Universe().Decls())))
	out.field("catalog", args[0])
	return nil
}
