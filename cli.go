// FILE: lixenwraith/params/cli.go
package params

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NArgs tells how many command-line tokens an argument consumes.
type NArgs int

const (
	// NArgsOne takes exactly one token
	NArgsOne NArgs = iota
	// NArgsVariable takes every following token up to the next flag
	NArgsVariable
)

// occurrenceMarker starts each occurrence of a multi-token flag. It clears
// the tokens collected so far, so the last occurrence wins.
const occurrenceMarker = "\x00"

// Argument is one generated command-line flag.
type Argument struct {
	Name  string // dotted path, also the flag name
	Help  string
	Kind  Kind
	Elem  Kind
	NArgs NArgs
}

// Flag returns the flag as typed on the command line.
func (a Argument) Flag() string {
	return "--" + a.Name
}

// ArgumentGroup collects the flags generated from one schema level.
type ArgumentGroup struct {
	Title       string
	Description string
	Arguments   []Argument
}

// BuildArgumentGroups walks schema depth-first and returns one group per
// schema level holding leaf flags. The root group comes first. A nil logger
// discards the warnings about skipped and deprecated fields.
func BuildArgumentGroups(schema *Schema, logger *slog.Logger) []ArgumentGroup {
	if schema == nil {
		return nil
	}
	if logger == nil {
		logger = discardLogger()
	}

	var groups []ArgumentGroup
	visited := make(schemaPath)
	visited.enter(schema)
	buildGroups(schema, nil, schema.Doc, visited, logger, &groups)

	// The root group is collected last.
	n := len(groups)
	if n > 1 {
		root := groups[n-1]
		copy(groups[1:], groups[:n-1])
		groups[0] = root
	}
	return groups
}

func buildGroups(schema *Schema, path []string, description string, visited schemaPath, logger *slog.Logger, groups *[]ArgumentGroup) {
	group := ArgumentGroup{Title: schema.Name, Description: description}
	if len(path) > 0 {
		group.Title = strings.Join(path, ".")
	}

	for _, f := range orderedFields(schema) {
		name := strings.Join(append(append([]string(nil), path...), f.Name), ".")

		if f.Type == FieldNested {
			if f.Many {
				logger.Warn("many=true nested fields are not supported on the command line", "field", name)
				continue
			}
			if !visited.enter(f.Schema) {
				logger.Debug("recursive schema reference not expanded on the command line", "field", name)
				continue
			}
			buildGroups(f.Schema, append(append([]string(nil), path...), f.Name), f.Description, visited, logger, groups)
			visited.leave(f.Schema)
			continue
		}

		if f.Kind == KindDict {
			logger.Warn("dict fields are not supported on the command line", "field", name)
			continue
		}

		arg := Argument{
			Name:  name,
			Help:  fieldHelp(f),
			Kind:  f.Kind,
			Elem:  f.Elem,
			NArgs: NArgsOne,
		}
		if f.Kind == KindList && !f.SingleArg {
			logger.Warn("flag uses deprecated multi-token list syntax, declare the field with SingleArgument to pass one literal instead",
				"flag", arg.Flag())
			arg.NArgs = NArgsVariable
		}
		group.Arguments = append(group.Arguments, arg)
	}

	*groups = append(*groups, group)
}

// orderedFields sorts required fields without a default first, then required
// fields with one, then other defaulted fields, keeping declaration order
// within each rank.
func orderedFields(schema *Schema) []*Field {
	fields := schema.Fields()
	rank := func(f *Field) int {
		switch {
		case f.Required && !f.HasDefault:
			return 0
		case f.Required:
			return 1
		case f.HasDefault:
			return 2
		default:
			return 3
		}
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return rank(fields[i]) < rank(fields[j])
	})
	return fields
}

func fieldHelp(f *Field) string {
	parts := []string{}
	if f.Description != "" {
		parts = append(parts, f.Description)
	}
	if f.HasDefault {
		parts = append(parts, fmt.Sprintf("(default=%v)", f.Default))
	}
	if f.Required {
		parts = append(parts, "(REQUIRED)")
	}
	for _, v := range f.Validators {
		if h := v.Help(); h != "" {
			parts = append(parts, h)
		}
	}
	return strings.Join(parts, " ")
}

// rawValue records the raw tokens given for one flag. Casting happens after
// parsing so that every bad flag can be reported together.
type rawValue struct {
	arg    Argument
	tokens []string
	set    bool
}

func (v *rawValue) String() string {
	return strings.Join(v.tokens, " ")
}

func (v *rawValue) Set(s string) error {
	v.set = true
	if v.arg.NArgs != NArgsVariable {
		v.tokens = []string{s}
		return nil
	}
	if s == occurrenceMarker {
		v.tokens = nil
		return nil
	}
	v.tokens = append(v.tokens, s)
	return nil
}

func (v *rawValue) Type() string {
	if v.arg.NArgs == NArgsVariable {
		return strings.ToLower(v.arg.Elem.String()) + "..."
	}
	return strings.ToLower(v.arg.Kind.String())
}

// CommandLine is the flag surface generated from a schema plus the
// configuration schemas of the registered providers.
type CommandLine struct {
	name   string
	doc    string
	groups []ArgumentGroup
	multi  map[string]bool
	output io.Writer
	logger *slog.Logger
}

// NewCommandLine builds the command-line surface for schema. Provider schemas
// in ioSchemas contribute their own groups; a flag already generated by an
// earlier schema is not generated again.
func NewCommandLine(schema *Schema, ioSchemas []*Schema, logger *slog.Logger) *CommandLine {
	if logger == nil {
		logger = discardLogger()
	}
	c := &CommandLine{
		multi:  make(map[string]bool),
		output: os.Stderr,
		logger: logger,
	}
	if schema != nil {
		c.name, c.doc = schema.Name, schema.Doc
	}

	seen := make(map[string]bool)
	add := func(groups []ArgumentGroup) {
		for _, g := range groups {
			kept := g
			kept.Arguments = nil
			for _, a := range g.Arguments {
				if seen[a.Name] {
					logger.Debug("flag already defined, skipping", "flag", a.Flag(), "group", g.Title)
					continue
				}
				seen[a.Name] = true
				if a.NArgs == NArgsVariable {
					c.multi[a.Name] = true
				}
				kept.Arguments = append(kept.Arguments, a)
			}
			if len(kept.Arguments) > 0 || len(c.groups) == 0 {
				c.groups = append(c.groups, kept)
			}
		}
	}

	add(BuildArgumentGroups(schema, logger))
	for _, s := range ioSchemas {
		add(BuildArgumentGroups(s, logger))
	}
	return c
}

// Groups returns the generated argument groups, root first.
func (c *CommandLine) Groups() []ArgumentGroup {
	out := make([]ArgumentGroup, len(c.groups))
	copy(out, c.groups)
	return out
}

// SetOutput sets where help output is written. Defaults to os.Stderr.
func (c *CommandLine) SetOutput(w io.Writer) {
	if w != nil {
		c.output = w
	}
}

// flagSets creates a fresh FlagSet over new values, plus one FlagSet per
// group for grouped usage output.
func (c *CommandLine) flagSets() (*pflag.FlagSet, []*pflag.FlagSet, map[string]*rawValue) {
	fs := pflag.NewFlagSet(c.name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	values := make(map[string]*rawValue)
	groupSets := make([]*pflag.FlagSet, 0, len(c.groups))
	for _, g := range c.groups {
		gs := pflag.NewFlagSet(g.Title, pflag.ContinueOnError)
		gs.SortFlags = false
		for _, a := range g.Arguments {
			v := &rawValue{arg: a}
			values[a.Name] = v
			gs.Var(v, a.Name, a.Help)
		}
		fs.AddFlagSet(gs)
		groupSets = append(groupSets, gs)
	}
	return fs, groupSets, values
}

// Usage renders the grouped help text.
func (c *CommandLine) Usage() string {
	_, groupSets, _ := c.flagSets()
	return c.usage(groupSets)
}

func (c *CommandLine) usage(groupSets []*pflag.FlagSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage of %s:\n", c.name)
	for i, g := range c.groups {
		b.WriteString("\n")
		b.WriteString(g.Title + ":\n")
		if g.Description != "" {
			b.WriteString("  " + g.Description + "\n")
		}
		b.WriteString(groupSets[i].FlagUsages())
	}
	return b.String()
}

// Parse parses args and returns the tree of the flags actually given, cast to
// their kinds. Cast failures are aggregated into one *ValidationError.
// Unknown flags and stray positional arguments return a *UsageError; -h and
// --help print usage and return ErrHelp.
func (c *CommandLine) Parse(args []string) (Tree, error) {
	fs, groupSets, values := c.flagSets()
	fs.Usage = func() {
		fmt.Fprint(c.output, c.usage(groupSets))
	}

	if err := fs.Parse(c.expandMultiTokens(args)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, &UsageError{Code: 2, Message: err.Error()}
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, &UsageError{Code: 2, Message: fmt.Sprintf("unrecognized arguments: %s", strings.Join(rest, " "))}
	}

	flat := make(map[string]any)
	verr := &ValidationError{}
	for name, v := range values {
		if !v.set {
			continue
		}
		value, err := castArgument(v.arg, v.tokens)
		if err != nil {
			verr.add(name, fmt.Sprintf("Command-line argument can't cast to %s", v.arg.Kind))
			continue
		}
		flat[name] = value
	}
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}
	return PruneNil(Unflatten(flat)), nil
}

// expandMultiTokens rewrites "--list 1 2 3" as "--list=1 --list=2 --list=3"
// for multi-token flags, so the flag parser sees one value per occurrence.
// Every occurrence is preceded by an occurrenceMarker.
func (c *CommandLine) expandMultiTokens(args []string) []string {
	if len(c.multi) == 0 {
		return args
	}
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			out = append(out, args[i:]...)
			break
		}
		name, ok := strings.CutPrefix(tok, "--")
		if !ok {
			out = append(out, tok)
			continue
		}
		name, _, inline := strings.Cut(name, "=")
		if !c.multi[name] {
			out = append(out, tok)
			continue
		}

		out = append(out, "--"+name+"="+occurrenceMarker)
		if inline {
			out = append(out, tok)
			continue
		}
		for i+1 < len(args) && !looksLikeFlag(args[i+1]) {
			i++
			out = append(out, tok+"="+args[i])
		}
	}
	return out
}

// looksLikeFlag reports whether tok starts a new option. Negative numbers are
// values.
func looksLikeFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	return true
}

// ParseCommandLine builds the command-line surface for schema and ioSchemas
// and parses args with it.
func ParseCommandLine(schema *Schema, ioSchemas []*Schema, args []string) (Tree, error) {
	return NewCommandLine(schema, ioSchemas, nil).Parse(args)
}
