// FILE: lixenwraith/params/defaults.go
package params

import (
	"fmt"
)

// FillDefaults returns a copy of tree in which every leaf default declared by
// schema is present. Existing values, including explicit nils, are kept.
//
// Nested maps are created only when they receive at least one default. Lists
// of records under Many fields are filled per element. Descent stops where a
// schema repeats along the current path, leaving data below that point as is.
// The input tree is never modified.
func FillDefaults(schema *Schema, tree Tree) (Tree, error) {
	out := DeepCopy(tree)
	if out == nil {
		out = make(Tree)
	}
	if schema == nil {
		return out, nil
	}

	visited := make(schemaPath)
	visited.enter(schema)
	if err := fillDefaults(schema, out, "", visited); err != nil {
		return nil, err
	}
	return out, nil
}

func fillDefaults(schema *Schema, data map[string]any, prefix string, visited schemaPath) error {
	for _, f := range schema.fields {
		path := joinPath(prefix, f.Name)
		value, present := data[f.Name]

		if f.Type == FieldLeaf {
			if f.HasDefault && !present {
				data[f.Name] = deepCopyValue(f.Default)
			}
			continue
		}

		if !visited.enter(f.Schema) {
			continue
		}
		err := fillNested(f, data, value, present, path, visited)
		visited.leave(f.Schema)
		if err != nil {
			return err
		}
	}
	return nil
}

func fillNested(f *Field, data map[string]any, value any, present bool, path string, visited schemaPath) error {
	if !present {
		if f.Many {
			return nil
		}
		child := make(map[string]any)
		if err := fillDefaults(f.Schema, child, path, visited); err != nil {
			return err
		}
		if len(child) > 0 {
			data[f.Name] = child
		}
		return nil
	}

	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		return fillDefaults(f.Schema, v, path, visited)
	case []any:
		if !f.Many {
			return fmt.Errorf("fill defaults: %s: expected a mapping, got a list", path)
		}
		for i, item := range v {
			itemMap, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("fill defaults: %s.%d: expected a mapping, got %T", path, i, item)
			}
			if err := fillDefaults(f.Schema, itemMap, fmt.Sprintf("%s.%d", path, i), visited); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("fill defaults: %s: expected a mapping, got %T", path, value)
	}
}
