// FILE: lixenwraith/params/type.go
package params

import (
	"fmt"
	"math"
	"strconv"
)

// Resolved values are always int64, float64, bool, string, []any or nested
// maps. The accessors below convert between those and parse strings.

// lookup returns the resolved value at path. A null value is reported as nil
// with no error.
func (p *Parser) lookup(path string) (any, error) {
	val, found := p.Get(path)
	if !found {
		return nil, fmt.Errorf("path not resolved: %s", path)
	}
	return val, nil
}

// String retrieves a string parameter at path. Numbers and booleans are
// formatted; null reads as the empty string.
func (p *Parser) String(path string) (string, error) {
	val, err := p.lookup(path)
	if err != nil {
		return "", err
	}
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("cannot convert type %T to string for path %s", val, path)
}

// Int64 retrieves an integer parameter at path. Floats must have no
// fractional part.
func (p *Parser) Int64(path string) (int64, error) {
	val, err := p.lookup(path)
	if err != nil {
		return 0, err
	}
	switch v := val.(type) {
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("cannot convert %v to int64 for path %s", v, path)
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64 for path %s: %w", v, path, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int64 for path %s", val, path)
}

// Bool retrieves a boolean parameter at path.
func (p *Parser) Bool(path string) (bool, error) {
	val, err := p.lookup(path)
	if err != nil {
		return false, err
	}
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool for path %s: %w", v, path, err)
		}
		return b, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for path %s", val, path)
}

// Float64 retrieves a number parameter at path.
func (p *Parser) Float64(path string) (float64, error) {
	val, err := p.lookup(path)
	if err != nil {
		return 0, err
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64 for path %s: %w", v, path, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for path %s", val, path)
}

// StringSlice retrieves a list parameter at path as strings. Elements are
// formatted with their default representation.
func (p *Parser) StringSlice(path string) ([]string, error) {
	val, err := p.lookup(path)
	if err != nil {
		return nil, err
	}
	switch v := val.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = fmt.Sprint(e)
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to []string for path %s", val, path)
}
