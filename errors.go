// FILE: lixenwraith/params/errors.go
package params

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

var (
	// ErrNotConfigured signals that none of a provider's configuration keys
	// were present. Resolution treats it as "try the next provider"; only
	// ConfigureSink returns it.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrHelp is returned by parsing when -h or --help was requested.
	ErrHelp = pflag.ErrHelp

	// ErrNoSink is returned by Output when no sink was configured or given.
	ErrNoSink = errors.New("no output sink configured")

	// ErrNoSchema is returned by Build when no schema was set.
	ErrNoSchema = errors.New("no schema provided")
)

// ValidationError aggregates per-field messages keyed by dotted path.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", p, strings.Join(e.Fields[p], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(path, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[path] = append(e.Fields[path], msg)
}

// errOrNil returns e as an error only when it carries messages, so callers
// never return a typed nil.
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// MisconfiguredError reports a provider whose keys were partially present or
// present but invalid.
type MisconfiguredError struct {
	Provider  string
	Candidate Tree
	Err       error
}

func (e *MisconfiguredError) Error() string {
	return fmt.Sprintf("%s provider incorrectly configured in %v: %v", e.Provider, e.Candidate, e.Err)
}

func (e *MisconfiguredError) Unwrap() error { return e.Err }

// MultipleConfiguredError reports more than one configured provider of the
// same kind in a single candidate tree.
type MultipleConfiguredError struct {
	Kind      string // "source" or "sink"
	Providers []string
}

func (e *MultipleConfiguredError) Error() string {
	return fmt.Sprintf("more than one %s configured: %s", e.Kind, strings.Join(e.Providers, ", "))
}

// MergeConflictError reports a mergeable key whose two values cannot be combined.
type MergeConflictError struct {
	Key   string
	Left  any
	Right any
	Err   error
}

func (e *MergeConflictError) Error() string {
	msg := fmt.Sprintf("cannot merge key %q for values %v and %v of types %T and %T", e.Key, e.Left, e.Right, e.Left, e.Right)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MergeConflictError) Unwrap() error { return e.Err }

// UsageError reports a malformed command line. Code is the exit status a CLI
// embedding should use.
type UsageError struct {
	Code    int
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}
