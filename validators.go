// FILE: lixenwraith/params/validators.go
package params

import (
	"errors"
	"fmt"
	"reflect"
)

// Validator checks a coerced leaf value. Help returns the clause appended to
// the generated CLI help, or "" when the validator is not advertised there.
type Validator interface {
	Validate(value any) error
	Help() string
}

type oneOf struct {
	choices []any
}

// OneOf requires the value to equal one of choices.
func OneOf(choices ...any) Validator {
	return oneOf{choices: choices}
}

func (v oneOf) Validate(value any) error {
	for _, c := range v.choices {
		if valuesEqual(c, value) {
			return nil
		}
	}
	return fmt.Errorf("Must be one of: %v.", v.choices)
}

func (v oneOf) Help() string {
	return fmt.Sprintf("(valid options are %v)", v.choices)
}

type containsOnly struct {
	choices []any
}

// ContainsOnly requires every element of a list value to be one of choices.
func ContainsOnly(choices ...any) Validator {
	return containsOnly{choices: choices}
}

func (v containsOnly) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return errors.New("Not a valid list.")
	}
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		found := false
		for _, c := range v.choices {
			if valuesEqual(c, elem) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("One or more of the choices you made was not in: %v.", v.choices)
		}
	}
	return nil
}

func (v containsOnly) Help() string {
	return "(constrained list)"
}

type rangeValidator struct {
	min, max float64
}

// Range requires a numeric value within [min, max].
func Range(min, max float64) Validator {
	return rangeValidator{min: min, max: max}
}

func (v rangeValidator) Validate(value any) error {
	f, ok := toFloat(value)
	if !ok {
		return errors.New("Not a valid number.")
	}
	if f < v.min || f > v.max {
		return fmt.Errorf("Must be greater than or equal to %v and less than or equal to %v.", v.min, v.max)
	}
	return nil
}

func (v rangeValidator) Help() string { return "" }

type lengthValidator struct {
	min, max int
}

// Length requires a string or list length within [min, max]. A negative max
// means unbounded.
func Length(min, max int) Validator {
	return lengthValidator{min: min, max: max}
}

func (v lengthValidator) Validate(value any) error {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
	default:
		return errors.New("Value has no length.")
	}
	n := rv.Len()
	if n < v.min || (v.max >= 0 && n > v.max) {
		if v.max < 0 {
			return fmt.Errorf("Shorter than minimum length %d.", v.min)
		}
		return fmt.Errorf("Length must be between %d and %d.", v.min, v.max)
	}
	return nil
}

func (v lengthValidator) Help() string { return "" }

// valuesEqual compares two values, treating numbers of different Go types as
// equal when they hold the same quantity.
func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// toFloat converts any Go numeric value to float64.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
