// FILE: lixenwraith/params/provider.go
package params

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
)

// Provider is a pluggable configuration provider. Its configuration schema is
// flat; the keys it declares select and configure the provider when they
// appear in a candidate tree.
type Provider interface {
	Name() string
	ConfigSchema() *Schema
	// Configure receives the provider's validated configuration subtree.
	Configure(cfg Tree) error
}

// Source is a provider that reads a parameter tree.
type Source interface {
	Provider
	Get(ctx context.Context) (Tree, error)
}

// Sink is a provider that writes a parameter tree.
type Sink interface {
	Provider
	Put(ctx context.Context, tree Tree) error
}

// SourceFactory creates a fresh source for one resolution.
type SourceFactory func() Source

// SinkFactory creates a fresh sink for one resolution.
type SinkFactory func() Sink

// Outcome is the result of probing a provider against a candidate tree.
type Outcome int

const (
	// NotConfigured means none of the provider's keys were present
	NotConfigured Outcome = iota
	// Misconfigured means the keys were partially present or invalid
	Misconfigured
	// Configured means the provider's configuration is complete and valid
	Configured
)

func (o Outcome) String() string {
	switch o {
	case NotConfigured:
		return "not configured"
	case Misconfigured:
		return "misconfigured"
	case Configured:
		return "configured"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ProbeResult carries the outcome of Probe. Err is set for Misconfigured.
// Config holds the validated, default-filled configuration for Configured.
type ProbeResult struct {
	Outcome Outcome
	Err     error
	Config  Tree
}

// Probe classifies candidate against the configuration schema of p without
// side effects. A provider that declares no keys is always configured.
func Probe(p Provider, candidate Tree) ProbeResult {
	schema := p.ConfigSchema()
	if schema.Len() == 0 {
		return ProbeResult{Outcome: Configured, Config: make(Tree)}
	}
	if !containsAnyField(schema, candidate) {
		return ProbeResult{Outcome: NotConfigured}
	}

	declared := make(Tree)
	for _, f := range schema.fields {
		if v, ok := candidate[f.Name]; ok {
			declared[f.Name] = v
		}
	}

	filled, err := FillDefaults(schema, declared)
	if err != nil {
		return ProbeResult{Outcome: Misconfigured, Err: err}
	}
	cfg, err := Validate(schema, filled)
	if err != nil {
		return ProbeResult{Outcome: Misconfigured, Err: err}
	}
	return ProbeResult{Outcome: Configured, Config: cfg}
}

// containsAnyField reports whether any key declared by schema is present in
// tree with a non-nil value.
func containsAnyField(schema *Schema, tree Tree) bool {
	for _, f := range schema.fields {
		if v, ok := tree[f.Name]; ok && v != nil {
			return true
		}
	}
	return false
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// getStructValidator returns the shared validator reporting fields by their
// `params` tag.
func getStructValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get(TagName), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return structValidator
}

// ConfigureStruct decodes cfg into target, fills fields still at their zero
// value from base (when non-nil, of the same type as *target) and validates
// target's `validate` tags. Providers call it from Configure.
func ConfigureStruct(cfg Tree, target any, base any) error {
	if err := decodeTree(cfg, target); err != nil {
		return err
	}
	if base != nil {
		if err := mergo.Merge(target, base); err != nil {
			return fmt.Errorf("apply provider defaults: %w", err)
		}
	}

	err := getStructValidator().Struct(target)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
		}
		verr.add(fe.Field(), msg)
	}
	return verr.errOrNil()
}
