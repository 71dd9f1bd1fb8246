// FILE: lixenwraith/params/convenience.go
package params

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Quick resolves parameters for a struct of defaults with a single call,
// reading os.Args[1:] and the default JSON source and sink. inputData may be
// nil.
func Quick(structDefaults any, inputData Tree) (*Parser, error) {
	return NewBuilder().
		WithDefaults(structDefaults).
		WithInputData(inputData).
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(structDefaults any, inputData Tree) *Parser {
	p, err := Quick(structDefaults, inputData)
	if err != nil {
		panic(fmt.Sprintf("params initialization failed: %v", err))
	}
	return p
}

// Debug returns a formatted string showing all resolved values and the layer
// each one came from
func (p *Parser) Debug() string {
	flat := Flatten(p.args)
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("Parameters Debug Info:\n")
	if p.source != nil {
		b.WriteString(fmt.Sprintf("Source: %s\n", p.source.Name()))
	}
	if p.sink != nil {
		b.WriteString(fmt.Sprintf("Sink: %s\n", p.sink.Name()))
	}
	b.WriteString(fmt.Sprintf("Log level: %s\n", p.LogLevel()))
	b.WriteString("Resolved values:\n")
	for _, path := range paths {
		b.WriteString(fmt.Sprintf("  %s = %v (%s)\n", path, flat[path], p.Origin(path)))
	}
	return b.String()
}

// Dump writes the resolved parameters to w in TOML format. A nil w writes to
// stdout.
func (p *Parser) Dump(w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	data, err := encodeTree(FormatTOML, p.args, 0)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
