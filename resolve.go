// FILE: lixenwraith/params/resolve.go
package params

import (
	"context"
	"fmt"
)

// ResolveSource probes each source in order against candidate and reads the
// tree of the single configured one.
//
// A misconfigured source fails immediately with *MisconfiguredError, and a
// second configured source fails with *MultipleConfiguredError. When no
// source is configured, all three results are nil.
func ResolveSource(ctx context.Context, sources []Source, candidate Tree) (Source, Tree, error) {
	providers := make([]Provider, len(sources))
	for i, s := range sources {
		providers[i] = s
	}

	winner, err := resolveProvider("source", providers, candidate)
	if err != nil || winner == nil {
		return nil, nil, err
	}

	source := winner.(Source)
	tree, err := source.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s source: %w", source.Name(), err)
	}
	if tree == nil {
		tree = make(Tree)
	}
	return source, tree, nil
}

// ResolveSink probes each sink in order against candidate and returns the
// single configured one, or nil when none is configured. Failures follow
// ResolveSource.
func ResolveSink(sinks []Sink, candidate Tree) (Sink, error) {
	providers := make([]Provider, len(sinks))
	for i, s := range sinks {
		providers[i] = s
	}

	winner, err := resolveProvider("sink", providers, candidate)
	if err != nil || winner == nil {
		return nil, err
	}
	return winner.(Sink), nil
}

func resolveProvider(kind string, providers []Provider, candidate Tree) (Provider, error) {
	var winner Provider
	for _, p := range providers {
		result := Probe(p, candidate)
		switch result.Outcome {
		case NotConfigured:
			continue
		case Misconfigured:
			return nil, &MisconfiguredError{Provider: p.Name(), Candidate: candidate, Err: result.Err}
		case Configured:
			if winner != nil {
				return nil, &MultipleConfiguredError{Kind: kind, Providers: []string{winner.Name(), p.Name()}}
			}
			if err := p.Configure(result.Config); err != nil {
				return nil, &MisconfiguredError{Provider: p.Name(), Candidate: candidate, Err: err}
			}
			winner = p
		}
	}
	return winner, nil
}

// ConfigureSink configures sink from cfg as resolution would, for use with
// Parser.OutputTo. cfg must configure the sink.
func ConfigureSink(sink Sink, cfg Tree) (Sink, error) {
	result := Probe(sink, cfg)
	switch result.Outcome {
	case NotConfigured:
		return nil, fmt.Errorf("%s sink: %w", sink.Name(), ErrNotConfigured)
	case Misconfigured:
		return nil, &MisconfiguredError{Provider: sink.Name(), Candidate: cfg, Err: result.Err}
	}
	if err := sink.Configure(result.Config); err != nil {
		return nil, &MisconfiguredError{Provider: sink.Name(), Candidate: cfg, Err: err}
	}
	return sink, nil
}
