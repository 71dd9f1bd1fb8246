// FILE: lixenwraith/params/cmd/paramsdemo/main.go
// Demo module: resolves a nested schema, logs the result and writes a summary
// through the configured sink.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lixenwraith/params"
)

func schema() *params.Schema {
	render := params.MustSchema("Render", "",
		params.Leaf("host", params.KindString, params.Describe("url of render host, needed unless --print_doc is set")),
		params.Leaf("port", params.KindInt, params.Default(80), params.Describe("port of render host"),
			params.WithValidators(params.Range(1, 65535))),
		params.Leaf("owner", params.KindString, params.Default("demo"), params.Describe("name of default render owner")),
	)
	return params.MustSchema("RenderDemo", "a demo module reading render connection parameters",
		params.Nested("render", render, params.Describe("parameters for connecting to the render host")),
		params.List("stacks", params.KindString, params.SingleArgument(), params.Default([]any{}),
			params.Describe("stacks to process, e.g. \"['a', 'b']\"")),
		params.Leaf("mode", params.KindString, params.Default("dry"),
			params.WithValidators(params.OneOf("dry", "apply"))),
		params.Leaf("print_doc", params.KindBool, params.Default(false),
			params.Describe("print the parameter documentation and exit")),
		params.LogLevelField("WARNING"),
	)
}

func outputSchema() *params.Schema {
	return params.MustSchema("RenderDemoOutput", "",
		params.Leaf("endpoint", params.KindString, params.Required()),
		params.Leaf("stack_count", params.KindInt, params.Required()),
		params.Leaf("mode", params.KindString),
	)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run resolves parameters from args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	s := schema()

	p, err := params.NewBuilder().
		WithSchema(s).
		WithOutputSchema(outputSchema()).
		WithArgs(args).
		WithUsageOutput(stderr).
		WithSources(params.NewJSONSource, params.NewYAMLSource, params.NewTOMLSource, params.NewHCLSource, params.NewURLSource).
		WithSinks(params.JSONSinkFactory(2), params.NewYAMLSink).
		WithFileDiscovery(params.DefaultDiscoveryOptions("paramsdemo")).
		Build()
	if err != nil {
		if errors.Is(err, params.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		var usage *params.UsageError
		if errors.As(err, &usage) {
			return usage.Code
		}
		return 1
	}

	if printDoc, _ := p.Bool("print_doc"); printDoc {
		fmt.Fprint(stdout, params.RenderMarkdown(s))
		return 0
	}

	host, _ := p.String("render.host")
	if host == "" {
		fmt.Fprintln(stderr, "render.host is required, set it with --render.host")
		return 2
	}

	logger := p.Logger()
	flat := params.Flatten(p.Args())
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		logger.Info("parameter", "path", path, "value", flat[path], "origin", p.Origin(path))
	}

	port, _ := p.Int64("render.port")
	stacks, _ := p.StringSlice("stacks")
	mode, _ := p.String("mode")

	output := params.Tree{
		"endpoint":    fmt.Sprintf("http://%s:%d", host, port),
		"stack_count": len(stacks),
		"mode":        mode,
	}
	if err := p.Output(context.Background(), output); err != nil {
		if errors.Is(err, params.ErrNoSink) {
			fmt.Fprintf(stdout, "endpoint=%s stacks=%d mode=%s\n", output["endpoint"], len(stacks), mode)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
