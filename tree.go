// FILE: lixenwraith/params/tree.go
package params

import (
	"reflect"
	"sort"
	"strings"
)

// Tree is a nested value tree: string keys mapping to scalars, sequences
// ([]any) or nested trees (map[string]any).
//
// A key missing from the map is absent. A key present with a nil value is an
// explicit null. The two are distinct throughout the package.
type Tree = map[string]any

// Flatten converts a nested tree into a flat map keyed by dotted paths.
// Nil leaves are dropped so that an unset value never overrides another
// layer with an explicit null.
func Flatten(tree Tree) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, tree, "")
	return flat
}

func flattenInto(flat map[string]any, nested map[string]any, prefix string) {
	for key, value := range nested {
		path := joinPath(prefix, key)

		if nestedMap, isMap := value.(map[string]any); isMap {
			flattenInto(flat, nestedMap, path)
			continue
		}
		if value == nil {
			continue
		}
		flat[path] = value
	}
}

// Unflatten rebuilds a nested tree from a flat map keyed by dotted paths.
// Intermediate maps are created on demand. Keys are applied shortest first,
// so a deeper path wins over a scalar stored at one of its prefixes.
func Unflatten(flat map[string]any) Tree {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		di, dj := strings.Count(keys[i], "."), strings.Count(keys[j], ".")
		if di != dj {
			return di < dj
		}
		return keys[i] < keys[j]
	})

	nested := make(Tree)
	for _, k := range keys {
		setNestedValue(nested, k, flat[k])
	}
	return nested
}

// PruneNil returns a copy of tree with every nested map whose values are all
// nil removed. A tree whose values are all nil prunes to an empty map.
func PruneNil(tree Tree) Tree {
	pruned := DeepCopy(tree)
	if pruned == nil {
		return make(Tree)
	}
	return pruneNil(pruned)
}

func pruneNil(d map[string]any) map[string]any {
	allNil := true
	for _, v := range d {
		if v != nil {
			allNil = false
			break
		}
	}
	if allNil {
		return make(map[string]any)
	}

	for key, value := range d {
		child, isMap := value.(map[string]any)
		if !isMap {
			continue
		}
		child = pruneNil(child)
		if len(child) == 0 {
			delete(d, key)
		} else {
			d[key] = child
		}
	}
	return d
}

// DeepCopy copies a tree, including nested maps and slices. A nil tree
// copies to nil.
func DeepCopy(tree Tree) Tree {
	if tree == nil {
		return nil
	}
	return deepCopyValue(tree).(map[string]any)
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	}

	// Typed slices coming from Go literals are copied element-wise into []any
	// so that no caller-owned backing array is shared.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && !rv.IsNil() && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = deepCopyValue(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if nextMap, isMap := next.(map[string]any); exists && isMap {
			current = nextMap
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// getNestedValue reads the value at a dotted path.
func getNestedValue(nested map[string]any, path string) (any, bool) {
	current := any(nested)
	for _, segment := range strings.Split(path, ".") {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}

// isValidKeySegment checks if a single path segment is a valid key:
// ASCII letters, digits, underscores and dashes, without dots.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	if strings.ContainsRune(s, '.') {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isUnderscore := r == '_'
		isDash := r == '-'

		if !(isLetter || isDigit || isUnderscore || isDash) {
			return false
		}
	}
	return true
}
