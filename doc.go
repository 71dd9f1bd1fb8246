// FILE: lixenwraith/params/doc.go

// Package params resolves the parameters of a program from a declared schema
// and several competing inputs: a literal tree supplied by the program, one
// configuration provider (a JSON, YAML, TOML or HCL file, or an HTTP
// endpoint) and command-line flags generated from the schema.
//
// Features:
//   - Declarative schemas of leaf and nested fields, including recursive ones
//   - One dotted flag per leaf (--nest.one), with help text built from the schema
//   - Null-safe recursive merging with opt-in additive keys
//   - Pluggable sources and sinks selected by their own configuration keys
//   - Default filling, typed coercion and aggregated validation errors
//   - Origin tracking to see which layer supplied each value
//   - Schema documentation as Markdown or HTML
//
// Quick Start:
//
//	schema := params.MustSchema("Job", "process one batch",
//	    params.Leaf("a", params.KindInt, params.Required()),
//	    params.Nested("nest", params.MustSchema("Nest", "",
//	        params.Leaf("one", params.KindInt, params.Required()),
//	        params.Leaf("two", params.KindBool, params.Default(false)),
//	    )),
//	    params.LogLevelField("WARNING"),
//	)
//
//	p, err := params.NewBuilder().
//	    WithSchema(schema).
//	    WithInputData(params.Tree{"a": 5, "nest": params.Tree{"one": 7}}).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	one, _ := p.Int64("nest.one")
//
// Precedence (highest to lowest):
//  1. Command-line flags (--nest.one 9)
//  2. The configured source (--input_json params.json)
//  3. Input data given to the builder
//  4. Schema defaults
//
// A source replaces the input data as the base rather than merging with it.
// Keys registered with WithMergeKeys combine the command-line value with the
// base value instead of replacing it.
//
// Exactly zero or one source, and zero or one sink, may be configured by a
// single candidate tree; two configured providers are an error.
package params
