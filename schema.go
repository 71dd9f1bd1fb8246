// FILE: lixenwraith/params/schema.go
package params

import (
	"fmt"
	"strings"
)

// FieldType tags the variant held by a Field.
type FieldType int

const (
	// FieldLeaf is a scalar- or sequence-valued field
	FieldLeaf FieldType = iota
	// FieldNested is a field described by a child schema
	FieldNested
)

// Kind is the value kind of a leaf field. It drives CLI casting, coercion
// during validation and the generated help text.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindList
	KindDict
	KindLogLevel
	KindAny
)

var kindNames = map[Kind]string{
	KindString:   "String",
	KindInt:      "Int",
	KindFloat:    "Float",
	KindBool:     "Boolean",
	KindList:     "List",
	KindDict:     "Dict",
	KindLogLevel: "LogLevel",
	KindAny:      "Raw",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field describes one entry of a Schema: either a leaf or a nested schema.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool

	// Leaf fields
	Kind       Kind
	Elem       Kind // element kind for KindList
	HasDefault bool
	Default    any
	Validators []Validator
	// SingleArg makes a list leaf take its whole value from one CLI token.
	SingleArg bool

	// Nested fields
	Schema *Schema
	Many   bool
}

// FieldOption configures a Field at construction.
type FieldOption func(*Field)

// Required marks the field as mandatory.
func Required() FieldOption {
	return func(f *Field) { f.Required = true }
}

// Default declares the value used when the field is absent.
func Default(value any) FieldOption {
	return func(f *Field) {
		f.HasDefault = true
		f.Default = value
	}
}

// Describe sets the help/documentation text.
func Describe(text string) FieldOption {
	return func(f *Field) { f.Description = text }
}

// WithValidators attaches validators to a leaf.
func WithValidators(validators ...Validator) FieldOption {
	return func(f *Field) { f.Validators = append(f.Validators, validators...) }
}

// SingleArgument makes a list leaf parse its CLI value from a single token
// holding a literal sequence, e.g. --ids "[1,2,3]".
func SingleArgument() FieldOption {
	return func(f *Field) { f.SingleArg = true }
}

// Many marks a nested field as holding a list of records.
func Many() FieldOption {
	return func(f *Field) { f.Many = true }
}

// Leaf creates a leaf field of the given kind.
func Leaf(name string, kind Kind, opts ...FieldOption) *Field {
	f := &Field{Name: name, Type: FieldLeaf, Kind: kind, Elem: KindAny}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// List creates a sequence-valued leaf whose elements are of kind elem.
func List(name string, elem Kind, opts ...FieldOption) *Field {
	f := Leaf(name, KindList, opts...)
	f.Elem = elem
	return f
}

// Nested creates a field described by a child schema.
func Nested(name string, schema *Schema, opts ...FieldOption) *Field {
	f := &Field{Name: name, Type: FieldNested, Schema: schema}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LogLevelField returns the conventional log_level leaf. Its resolved value
// is applied to the parser's logger once resolution completes.
func LogLevelField(defaultLevel string) *Field {
	return Leaf(DefaultLogLevelPath, KindLogLevel,
		Default(defaultLevel),
		Describe("set the logging level"),
		WithValidators(OneOf(logLevelChoices()...)),
	)
}

// Schema is a declarative, immutable description of a parameter tree.
// Schemas are safe for concurrent use once construction is complete.
type Schema struct {
	Name   string
	Doc    string
	fields []*Field
	index  map[string]int
}

// NewSchema creates a schema, rejecting invalid or duplicate field names.
func NewSchema(name, doc string, fields ...*Field) (*Schema, error) {
	s := &Schema{Name: name, Doc: doc, index: make(map[string]int)}
	var errs []string
	for _, f := range fields {
		if err := s.Add(f); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("schema %s: failed to register %d field(s): %s", name, len(errs), strings.Join(errs, "; "))
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(name, doc string, fields ...*Field) *Schema {
	s, err := NewSchema(name, doc, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends a field. It exists so that self-referential schemas can be
// wired after the schema value exists; it must not be called once the schema
// is shared.
func (s *Schema) Add(f *Field) error {
	if f == nil {
		return fmt.Errorf("nil field")
	}
	if !isValidKeySegment(f.Name) {
		return fmt.Errorf("invalid field name %q", f.Name)
	}
	if f.Type == FieldNested && f.Schema == nil {
		return fmt.Errorf("nested field %q has no schema", f.Name)
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[f.Name]; exists {
		return fmt.Errorf("duplicate field name %q", f.Name)
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
	return nil
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// schemaPath tracks the schemas entered along the current traversal path.
// Traversals stop descending when a schema repeats, so self-referential
// schemas terminate.
type schemaPath map[*Schema]bool

// enter marks s as visited and reports false if it already was.
func (p schemaPath) enter(s *Schema) bool {
	if p[s] {
		return false
	}
	p[s] = true
	return true
}

func (p schemaPath) leave(s *Schema) {
	delete(p, s)
}

// joinPath appends a key to a dotted prefix.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
