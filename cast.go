// FILE: lixenwraith/params/cast.go
package params

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// castToken converts one command-line token to the Go value of kind.
func castToken(kind Kind, token string) (any, error) {
	switch kind {
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(token), 0, 64)
		if err != nil {
			return nil, err
		}
		return i, nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindBool:
		return strconv.ParseBool(strings.TrimSpace(token))
	case KindList:
		return parseLiteralList(token)
	case KindDict:
		return nil, fmt.Errorf("dict values cannot be given on the command line")
	default:
		return token, nil
	}
}

// castArgument converts the raw token(s) collected for one CLI argument.
// Multi-token lists cast each token with the element kind; single-argument
// lists parse one token as a literal sequence.
func castArgument(arg Argument, tokens []string) (any, error) {
	if arg.Kind != KindList {
		if len(tokens) == 0 {
			return nil, fmt.Errorf("missing value")
		}
		return castToken(arg.Kind, tokens[len(tokens)-1])
	}

	if arg.NArgs == NArgsVariable {
		out := make([]any, 0, len(tokens))
		for _, tok := range tokens {
			v, err := castToken(arg.Elem, tok)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("missing value")
	}
	list, err := parseLiteralList(tokens[len(tokens)-1])
	if err != nil {
		return nil, err
	}
	return coerceList(arg.Elem, list)
}

// parseLiteralList reads a literal sequence such as "[1, 2, 3]" or
// "['a', 'b']". YAML flow syntax covers both JSON and the common quoted forms.
func parseLiteralList(token string) ([]any, error) {
	var parsed any
	if err := yaml.Unmarshal([]byte(token), &parsed); err != nil {
		return nil, fmt.Errorf("malformed literal %q: %w", token, err)
	}
	list, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("literal %q is not a sequence", token)
	}
	return list, nil
}

// coerce converts a value from any source into the canonical Go type of kind:
// string, int64, float64, bool, []any or map[string]any.
func coerce(kind, elem Kind, value any) (any, error) {
	switch kind {
	case KindString:
		return coerceString(value)
	case KindInt:
		return coerceInt(value)
	case KindFloat:
		return coerceFloat(value)
	case KindBool:
		return coerceBool(value)
	case KindList:
		return coerceList(elem, value)
	case KindDict:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, errors.New("Not a valid mapping type.")
		}
		return deepCopyValue(m), nil
	case KindLogLevel:
		s, ok := value.(string)
		if !ok {
			return nil, errors.New("Not a valid string.")
		}
		lvl, err := ParseLogLevel(s)
		if err != nil {
			return nil, fmt.Errorf("%s is not a valid loglevel; try one of %v", s, logLevelChoices())
		}
		return levelName(lvl), nil
	default:
		return deepCopyValue(value), nil
	}
}

func coerceString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, errors.New("Not a valid string.")
}

func coerceInt(value any) (any, error) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(math.MaxInt64) {
			return nil, errors.New("Number too large.")
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errors.New("Not a valid integer.")
		}
		return int64(f), nil
	case reflect.String:
		s := strings.TrimSpace(v.String())
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, nil
		}
		return nil, errors.New("Not a valid integer.")
	}
	return nil, errors.New("Not a valid integer.")
}

func coerceFloat(value any) (any, error) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64); err == nil {
			return f, nil
		}
	}
	return nil, errors.New("Not a valid number.")
}

func coerceBool(value any) (any, error) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		if b, err := strconv.ParseBool(strings.TrimSpace(v.String())); err == nil {
			return b, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v.Int() {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}
	return nil, errors.New("Not a valid boolean.")
}

func coerceList(elem Kind, value any) ([]any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.New("Not a valid list.")
	}
	out := make([]any, rv.Len())
	for i := range out {
		item, err := coerce(elem, KindAny, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = item
	}
	return out, nil
}
