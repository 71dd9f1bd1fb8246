// FILE: lixenwraith/params/parser.go
package params

import (
	"context"
	"fmt"
	"log/slog"
)

// Parser holds the outcome of one resolution: the validated parameter tree,
// the input source and output sink that were selected, and the logger whose
// level follows the resolved log level.
//
// A Parser is read-only after Build and safe for concurrent reads.
type Parser struct {
	schema       *Schema
	outputSchema *Schema
	args         Tree
	origins      map[string]Origin
	source       Source
	sink         Sink
	logger       *slog.Logger
	level        *slog.LevelVar
}

// Args returns a deep copy of the resolved parameter tree.
func (p *Parser) Args() Tree {
	return DeepCopy(p.args)
}

// Schema returns the input schema.
func (p *Parser) Schema() *Schema {
	return p.schema
}

// Source returns the input source that supplied the base tree, or nil.
func (p *Parser) Source() Source {
	return p.source
}

// Sink returns the output sink selected during resolution, or nil.
func (p *Parser) Sink() Sink {
	return p.sink
}

// Logger returns the parser's logger.
func (p *Parser) Logger() *slog.Logger {
	return p.logger
}

// LogLevel returns the level applied after resolution.
func (p *Parser) LogLevel() slog.Level {
	return p.level.Level()
}

// Get returns the resolved value at a dotted path.
func (p *Parser) Get(path string) (any, bool) {
	value, ok := getNestedValue(p.args, path)
	if !ok {
		return nil, false
	}
	return deepCopyValue(value), true
}

// OutputTree fills defaults into tree and validates it against the output
// schema. Without an output schema the tree is returned unvalidated.
func (p *Parser) OutputTree(tree Tree) (Tree, error) {
	if p.outputSchema == nil {
		p.logger.Warn("output schema not defined, the output won't be validated")
		return DeepCopy(tree), nil
	}
	filled, err := FillDefaults(p.outputSchema, tree)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	out, err := Validate(p.outputSchema, filled)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	return out, nil
}

// Output validates tree and writes it through the sink selected during
// resolution. It returns ErrNoSink when no sink was configured.
func (p *Parser) Output(ctx context.Context, tree Tree) error {
	return p.OutputTo(ctx, tree, p.sink)
}

// OutputTo validates tree and writes it through sink, which must already be
// configured (see ConfigureSink).
func (p *Parser) OutputTo(ctx context.Context, tree Tree, sink Sink) error {
	if sink == nil {
		return ErrNoSink
	}
	out, err := p.OutputTree(tree)
	if err != nil {
		return err
	}
	if err := sink.Put(ctx, out); err != nil {
		return fmt.Errorf("%s sink: %w", sink.Name(), err)
	}
	p.logger.Debug("output written", "sink", sink.Name())
	return nil
}
