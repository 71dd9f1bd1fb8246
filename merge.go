// FILE: lixenwraith/params/merge.go
package params

import (
	"fmt"
	"reflect"
)

// MergeFunc combines two conflicting values of a mergeable key.
type MergeFunc func(a, b any) (any, error)

type mergeOptions struct {
	keys         map[string]bool
	overwriteNil bool
	fn           MergeFunc
}

// MergeOption configures SmartMerge.
type MergeOption func(*mergeOptions)

// WithMergeKeys lists keys whose conflicting values are combined instead of
// replaced. A key matches either by its own name or by its full dotted path.
func WithMergeKeys(keys ...string) MergeOption {
	return func(o *mergeOptions) {
		for _, k := range keys {
			o.keys[k] = true
		}
	}
}

// WithOverwriteNil lets explicit nulls in the overlay replace base values.
func WithOverwriteNil() MergeOption {
	return func(o *mergeOptions) { o.overwriteNil = true }
}

// WithMergeFunc replaces AddValues as the combining function for merge keys.
func WithMergeFunc(fn MergeFunc) MergeOption {
	return func(o *mergeOptions) {
		if fn != nil {
			o.fn = fn
		}
	}
}

// SmartMerge updates base with the values of overlay and returns it.
//
// Per overlay key, recursively: absent in base is copied in (an overlay nil is
// skipped unless WithOverwriteNil); two nested trees are merged; equal leaves
// are left alone; an overlay nil only overwrites with WithOverwriteNil; any
// other conflict replaces the base value, or combines both with the merge
// function when the key is a merge key.
//
// base is modified in place (a nil base starts a new tree). overlay is never
// modified and shares no mutable values with the result. The merge is order
// dependent: merging a then b then c is not the same as a then (b then c).
func SmartMerge(base, overlay Tree, opts ...MergeOption) (Tree, error) {
	o := mergeOptions{keys: make(map[string]bool), fn: AddValues}
	for _, opt := range opts {
		opt(&o)
	}
	if base == nil {
		base = make(Tree)
	}
	if err := smartMerge(base, overlay, "", &o); err != nil {
		return nil, err
	}
	return base, nil
}

func smartMerge(a, b map[string]any, prefix string, o *mergeOptions) error {
	for key, bv := range b {
		path := joinPath(prefix, key)
		av, inA := a[key]

		if !inA {
			if bv == nil {
				if o.overwriteNil {
					a[key] = nil
				}
				continue
			}
			if bMap, isMap := bv.(map[string]any); isMap {
				child := make(map[string]any)
				if err := smartMerge(child, bMap, path, o); err != nil {
					return err
				}
				a[key] = child
				continue
			}
			a[key] = deepCopyValue(bv)
			continue
		}

		aMap, aIsMap := av.(map[string]any)
		bMap, bIsMap := bv.(map[string]any)
		switch {
		case aIsMap && bIsMap:
			if err := smartMerge(aMap, bMap, path, o); err != nil {
				return err
			}
		case reflect.DeepEqual(av, bv):
			// same leaf value
		case bv == nil:
			if o.overwriteNil {
				a[key] = nil
			}
		case o.keys[key] || o.keys[path]:
			merged, err := MergeValue(av, bv, path, o.fn)
			if err != nil {
				return err
			}
			a[key] = merged
		default:
			a[key] = deepCopyValue(bv)
		}
	}
	return nil
}

// MergeValue combines a and b with fn (AddValues when nil), reporting failures
// as a MergeConflictError for key.
func MergeValue(a, b any, key string, fn MergeFunc) (any, error) {
	if fn == nil {
		fn = AddValues
	}
	merged, err := fn(a, b)
	if err != nil {
		return nil, &MergeConflictError{Key: key, Left: a, Right: b, Err: err}
	}
	return merged, nil
}

// AddValues adds numbers, concatenates strings and concatenates sequences.
// Integers stay int64 unless either side is a float.
func AddValues(a, b any) (any, error) {
	if ai, aInt := toInt64Exact(a); aInt {
		if bi, bInt := toInt64Exact(b); bInt {
			return ai + bi, nil
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af + bf, nil
		}
		return nil, fmt.Errorf("unsupported operand types for +: %T and %T", a, b)
	}

	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as + bs, nil
		}
		return nil, fmt.Errorf("unsupported operand types for +: %T and %T", a, b)
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Slice && rb.Kind() == reflect.Slice {
		out := make([]any, 0, ra.Len()+rb.Len())
		for i := 0; i < ra.Len(); i++ {
			out = append(out, deepCopyValue(ra.Index(i).Interface()))
		}
		for i := 0; i < rb.Len(); i++ {
			out = append(out, deepCopyValue(rb.Index(i).Interface()))
		}
		return out, nil
	}

	return nil, fmt.Errorf("unsupported operand types for +: %T and %T", a, b)
}

// toInt64Exact reports integer-kinded values as int64.
func toInt64Exact(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(^uint64(0)>>1) {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}
