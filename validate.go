// FILE: lixenwraith/params/validate.go
package params

import (
	"fmt"
)

const (
	msgMissing   = "Missing data for required field."
	msgNull      = "Field may not be null."
	msgNotNested = "Invalid input type."
)

// Validate checks tree against schema and returns a coerced copy.
//
// Every leaf value is converted to the canonical type of its Kind and run
// through the field's validators. Required fields must be present. Keys the
// schema does not declare pass through unchanged. All problems are collected
// into one *ValidationError keyed by dotted path.
func Validate(schema *Schema, tree Tree) (Tree, error) {
	out := DeepCopy(tree)
	if out == nil {
		out = make(Tree)
	}
	if schema == nil {
		return out, nil
	}

	verr := &ValidationError{}
	validateInto(schema, out, "", verr)
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// validateInto walks the data, so self-referential schemas end where the data
// ends.
func validateInto(schema *Schema, data map[string]any, prefix string, verr *ValidationError) {
	for _, f := range schema.fields {
		path := joinPath(prefix, f.Name)
		value, present := data[f.Name]

		if !present {
			if f.Required {
				verr.add(path, msgMissing)
			}
			continue
		}
		if value == nil {
			if f.Required {
				verr.add(path, msgNull)
			}
			continue
		}

		if f.Type == FieldNested {
			validateNested(f, value, path, verr)
			continue
		}

		coerced, err := coerce(f.Kind, f.Elem, value)
		if err != nil {
			verr.add(path, err.Error())
			continue
		}
		failed := false
		for _, v := range f.Validators {
			if err := v.Validate(coerced); err != nil {
				verr.add(path, err.Error())
				failed = true
			}
		}
		if !failed {
			data[f.Name] = coerced
		}
	}
}

func validateNested(f *Field, value any, path string, verr *ValidationError) {
	if !f.Many {
		child, ok := value.(map[string]any)
		if !ok {
			verr.add(path, msgNotNested)
			return
		}
		validateInto(f.Schema, child, path, verr)
		return
	}

	items, ok := value.([]any)
	if !ok {
		verr.add(path, msgNotNested)
		return
	}
	for i, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			verr.add(fmt.Sprintf("%s.%d", path, i), msgNotNested)
			continue
		}
		validateInto(f.Schema, child, fmt.Sprintf("%s.%d", path, i), verr)
	}
}
