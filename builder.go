// FILE: lixenwraith/params/builder.go
package params

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ValidatorFunc validates a resolved Parser. It runs after schema validation
// and after the log level has been applied.
type ValidatorFunc func(p *Parser) error

// Builder provides a fluent interface for resolving parameters
type Builder struct {
	schema       *Schema
	outputSchema *Schema
	inputData    Tree
	args         []string
	sources      []SourceFactory
	sinks        []SinkFactory
	mergeKeys    []string
	logger       *slog.Logger
	level        *slog.LevelVar
	logLevelPath string
	usageOutput  io.Writer
	validators   []ValidatorFunc
	discovered   string
	err          error
}

// NewBuilder creates a new builder reading os.Args[1:], with the JSON source
// and the JSON sink registered.
func NewBuilder() *Builder {
	return &Builder{
		args:         os.Args[1:],
		sources:      []SourceFactory{NewJSONSource},
		sinks:        []SinkFactory{NewJSONSink},
		logLevelPath: DefaultLogLevelPath,
		usageOutput:  os.Stderr,
		validators:   make([]ValidatorFunc, 0),
	}
}

// WithSchema sets the schema parameters are resolved against
func (b *Builder) WithSchema(schema *Schema) *Builder {
	b.schema = schema
	return b
}

// WithDefaults derives the schema from a struct, as SchemaFromStruct does.
// Its non-zero field values become defaults.
func (b *Builder) WithDefaults(structWithDefaults any) *Builder {
	schema, err := SchemaFromStruct("Parameters", structWithDefaults)
	if err != nil {
		b.err = fmt.Errorf("failed to register defaults: %w", err)
		return b
	}
	b.schema = schema
	return b
}

// WithOutputSchema sets the schema Output validates against
func (b *Builder) WithOutputSchema(schema *Schema) *Builder {
	b.outputSchema = schema
	return b
}

// WithInputData sets the lowest precedence parameter tree. It may also hold
// provider keys, such as input_json, selecting a source.
func (b *Builder) WithInputData(data Tree) *Builder {
	b.inputData = data
	return b
}

// WithArgs sets the command-line arguments
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithSources replaces the registered input sources
func (b *Builder) WithSources(factories ...SourceFactory) *Builder {
	b.sources = factories
	return b
}

// WithSinks replaces the registered output sinks
func (b *Builder) WithSinks(factories ...SinkFactory) *Builder {
	b.sinks = factories
	return b
}

// WithMergeKeys lists keys whose command-line values are combined with the
// base value instead of replacing it
func (b *Builder) WithMergeKeys(keys ...string) *Builder {
	b.mergeKeys = append(b.mergeKeys, keys...)
	return b
}

// WithLogger sets the parser's logger. To have the resolved log level apply
// to it, build its handler on the LevelVar given to WithLevelVar.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithLevelVar sets the LevelVar that receives the resolved log level
func (b *Builder) WithLevelVar(level *slog.LevelVar) *Builder {
	b.level = level
	return b
}

// WithLogLevelPath sets the tree path read for the log level. An empty path
// disables applying it.
func (b *Builder) WithLogLevelPath(path string) *Builder {
	b.logLevelPath = path
	return b
}

// WithUsageOutput sets where -h/--help output is written
func (b *Builder) WithUsageOutput(w io.Writer) *Builder {
	b.usageOutput = w
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build resolves parameters with a background context
func (b *Builder) Build() (*Parser, error) {
	return b.BuildContext(context.Background())
}

// BuildContext resolves parameters: it parses the command line, selects the
// input source from the input data and then from the command line, merges
// the command line over that base, selects the output sink, fills defaults,
// validates and finally applies the log level. Any failure aborts the build.
func (b *Builder) BuildContext(ctx context.Context) (*Parser, error) {
	if b.err != nil {
		return nil, b.err
	}

	schema := b.schema
	if schema == nil {
		return nil, ErrNoSchema
	}

	level := b.level
	if level == nil {
		level = new(slog.LevelVar)
		level.Set(slog.LevelWarn)
	}
	logger := b.logger
	if logger == nil {
		logger = newLogger(os.Stderr, level)
	}

	// Command line
	var ioSchemas []*Schema
	for _, s := range b.newSources() {
		ioSchemas = append(ioSchemas, s.ConfigSchema())
	}
	for _, s := range b.newSinks() {
		ioSchemas = append(ioSchemas, s.ConfigSchema())
	}
	cl := NewCommandLine(schema, ioSchemas, logger)
	cl.SetOutput(b.usageOutput)
	cliTree, err := cl.Parse(b.args)
	if err != nil {
		if errors.Is(err, ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("command line: %w", err)
	}
	logger.Debug("command line parsed", "args", cliTree)

	// Input source, probed against the input data and then the command line
	base := DeepCopy(b.inputData)
	if base == nil {
		base = make(Tree)
	}
	if _, set := base["input_file"]; b.discovered != "" && !set {
		base["input_file"] = b.discovered
	}
	baseOrigin := OriginInputData
	var source Source
	for _, candidate := range []Tree{base, cliTree} {
		src, tree, err := ResolveSource(ctx, b.newSources(), candidate)
		if err != nil {
			return nil, fmt.Errorf("input source: %w", err)
		}
		if src != nil {
			logger.Debug("input source configured", "source", src.Name())
			source, base, baseOrigin = src, tree, OriginSource
		}
	}
	baseCopy := DeepCopy(base)

	merged, err := SmartMerge(base, cliTree, WithMergeKeys(b.mergeKeys...))
	if err != nil {
		return nil, fmt.Errorf("merge command line: %w", err)
	}
	logger.Debug("args after merge", "args", merged)

	sink, err := ResolveSink(b.newSinks(), merged)
	if err != nil {
		return nil, fmt.Errorf("output sink: %w", err)
	}

	filled, err := FillDefaults(schema, merged)
	if err != nil {
		return nil, err
	}
	resolved, err := Validate(schema, filled)
	if err != nil {
		return nil, fmt.Errorf("validate parameters: %w", err)
	}

	p := &Parser{
		schema:       schema,
		outputSchema: b.outputSchema,
		args:         resolved,
		origins: computeOrigins(resolved,
			originLayer{OriginCLI, cliTree},
			originLayer{baseOrigin, baseCopy},
		),
		source: source,
		sink:   sink,
		logger: logger,
		level:  level,
	}

	if err := p.applyLogLevel(b.logLevelPath); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(p); err != nil {
			return nil, fmt.Errorf("parameter validation failed: %w", err)
		}
	}
	return p, nil
}

// applyLogLevel sets the parser's level from the resolved value at path.
func (p *Parser) applyLogLevel(path string) error {
	if path == "" {
		return nil
	}
	value, ok := getNestedValue(p.args, path)
	if !ok || value == nil {
		return nil
	}
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("log level at %s must be a string, got %T", path, value)
	}
	lvl, err := ParseLogLevel(name)
	if err != nil {
		return err
	}
	p.level.Set(lvl)
	p.logger.Debug("log level applied", "level", lvl)
	return nil
}

func (b *Builder) newSources() []Source {
	out := make([]Source, 0, len(b.sources))
	for _, f := range b.sources {
		out = append(out, f())
	}
	return out
}

func (b *Builder) newSinks() []Sink {
	out := make([]Sink, 0, len(b.sinks))
	for _, f := range b.sinks {
		out = append(out, f())
	}
	return out
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Parser {
	p, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("params build failed: %v", err))
	}
	return p
}

// BuildAndScan builds and decodes the resolved parameters into the provided
// target struct pointer
func (b *Builder) BuildAndScan(target any) error {
	p, err := b.Build()
	if err != nil {
		return err
	}
	if err := p.Scan("", target); err != nil {
		return fmt.Errorf("failed to scan resolved parameters into target: %w", err)
	}
	return nil
}
