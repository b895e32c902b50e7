package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	builder "github.com/hanpama/querygraph/internal/builder"
	"github.com/hanpama/querygraph/internal/eventbus"
	"github.com/hanpama/querygraph/internal/otel"
	"github.com/hanpama/querygraph/internal/schema"
)

const rootUsage = `querygraph — schema-driven GraphQL operation construction tools

USAGE:
  querygraph <command> [flags]

COMMANDS:
  expand                Print the wildcard-expanded query for a root field
  compile-sdl           Validate SDL and print the normalized schema
  import-introspection  Convert an introspection JSON result to SDL
  help                  Show help for any command
`

const expandUsage = `expand FLAGS:
  -schema <file>        GraphQL SDL schema file (required)
  -field <name>         Root query field to expand (required)
  -otel.endpoint <addr> OTLP collector endpoint
  -otel.service <name>  OpenTelemetry service name (default: querygraph)
`

const compileSDLUsage = `compile-sdl FLAGS:
  -schema <file>  GraphQL SDL schema file (required)
  -out <file>     Write normalized SDL to file (default: stdout)
  (Validation always runs; exits non-zero on errors)
`

const importIntrospectionUsage = `import-introspection FLAGS:
  -in <file>   Introspection JSON result (required)
  -out <file>  Write SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := args[0]
	cmdArgs := args[1:]
	switch cmd {
	case "expand":
		return cmdExpand(cmdArgs)
	case "compile-sdl":
		return cmdCompileSDL(cmdArgs)
	case "import-introspection":
		return cmdImportIntrospection(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "expand":
		fmt.Print(expandUsage)
	case "compile-sdl":
		fmt.Print(compileSDLUsage)
	case "import-introspection":
		fmt.Print(importIntrospectionUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdExpand(args []string) error {
	schemaFile := ""
	field := ""
	otelEndpoint := ""
	otelService := "querygraph"

	fs := flag.NewFlagSet("expand", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&field, "field", field, "Root query field to expand")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, expandUsage)
		return err
	}
	if schemaFile == "" || field == "" {
		fmt.Fprint(os.Stderr, expandUsage)
		return fmt.Errorf("-schema and -field are required")
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	sch, err := loadSDL(schemaFile)
	if err != nil {
		return err
	}

	op, err := builder.New(sch).Query(func(q *builder.Object) any {
		return []any{q.Field(field)}
	})
	if err != nil {
		return err
	}
	fmt.Println(op.Text)
	return nil
}

func cmdCompileSDL(args []string) error {
	schemaFile := ""
	outFile := ""
	fs := flag.NewFlagSet("compile-sdl", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&outFile, "out", outFile, "Write normalized SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, compileSDLUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, compileSDLUsage)
		return fmt.Errorf("-schema is required")
	}

	sch, err := loadSDL(schemaFile)
	if err != nil {
		return err
	}
	return writeOut(outFile, schema.Render(sch))
}

func cmdImportIntrospection(args []string) error {
	inFile := ""
	outFile := ""
	fs := flag.NewFlagSet("import-introspection", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&inFile, "in", inFile, "Introspection JSON result")
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, importIntrospectionUsage)
		return err
	}
	if inFile == "" {
		fmt.Fprint(os.Stderr, importIntrospectionUsage)
		return fmt.Errorf("-in is required")
	}

	data, err := os.ReadFile(inFile)
	if err != nil {
		return err
	}
	sch, err := schema.BuildFromIntrospection(data)
	if err != nil {
		return fmt.Errorf("import introspection: %w", err)
	}
	return writeOut(outFile, schema.Render(sch))
}

func loadSDL(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sch, err := schema.BuildFromSDL(string(data))
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return sch, nil
}

func writeOut(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	return os.WriteFile(path, []byte(content), 0644)
}
