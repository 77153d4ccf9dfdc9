package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/typewalk/internal/registry"
	"github.com/funvibe/typewalk/pkg/resolve"
	"go.uber.org/zap"
)

const usage = `Usage: typewalk [flags] <command> [args...]

Commands:
  classes                          list declared classes
  name <name>                      resolve a class name or packed descriptor
  parse <type>                     parse a type expression
  erase <type>                     print the raw class of a type
  raws <type>                      print the erasure of every upper bound
  member <leaf> <member>           resolve a member type as seen from leaf
  param <type> <declaring> <index> resolve a type parameter as seen from type
  super <type> <ancestor>          print ancestor as parameterized by type
  box <primitive>                  print the wrapper class of a primitive
  zero <primitive>                 print the zero value of a primitive
  array <component> <dims>         build an array class
  snapshot <file.twdb>             write the declared classes to a catalog

Flags:
`

type options struct {
	decls    string
	catalog  string
	goDir    string
	goPkgs   string
	protos   string
	imports  string
	verbose  bool
	noDecls  bool
	colorize bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("typewalk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.decls, "decls", "", "declaration file (default: typewalk.yaml found from the working directory up)")
	fs.BoolVar(&opts.noDecls, "no-decls", false, "do not search for a declaration file")
	fs.StringVar(&opts.catalog, "catalog", "", "start from a catalog snapshot")
	fs.StringVar(&opts.goPkgs, "go", "", "Go package patterns to declare (comma-separated)")
	fs.StringVar(&opts.goDir, "go-dir", ".", "directory the Go package patterns are relative to")
	fs.StringVar(&opts.protos, "proto", "", ".proto files to declare (comma-separated)")
	fs.StringVar(&opts.imports, "I", ".", "proto import paths (comma-separated)")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	opts.colorize = colorEnabled(stdout)

	if opts.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer log.Sync()
		resolve.SetLogger(log)
	}

	ctx := context.Background()
	e, err := buildEngine(ctx, opts)
	if err != nil {
		fmt.Fprintln(stderr, errorLine(opts.colorize, err))
		return 1
	}

	out := &printer{w: stdout, color: opts.colorize}
	if err := dispatch(ctx, e, out, fs.Arg(0), fs.Args()[1:]); err != nil {
		fmt.Fprintln(stderr, errorLine(opts.colorize, err))
		if _, ok := err.(*usageError); ok {
			return 2
		}
		return 1
	}
	return 0
}

func buildEngine(ctx context.Context, opts options) (*resolve.Engine, error) {
	var e *resolve.Engine
	if opts.catalog != "" {
		restored, err := resolve.Restore(ctx, opts.catalog)
		if err != nil {
			return nil, err
		}
		e = restored
	} else {
		e = resolve.New()
	}

	path := opts.decls
	if path == "" && !opts.noDecls {
		found, err := registry.FindConfig(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path != "" {
		if err := e.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if pkgs := splitList(opts.goPkgs); len(pkgs) > 0 {
		if err := e.LoadGoPackages(ctx, opts.goDir, pkgs...); err != nil {
			return nil, err
		}
	}
	if files := splitList(opts.protos); len(files) > 0 {
		if err := e.LoadProto(ctx, splitList(opts.imports), files...); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
