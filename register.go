// FILE: lixenwraith/params/register.go
package params

import (
	"fmt"
	"reflect"
	"strings"
)

// SchemaFromStruct derives a schema from a struct value. Field names come
// from the `params` tag (or the Go field name), descriptions from the `desc`
// tag, and non-zero field values become defaults.
//
// Tag options: `params:"name,required"` marks a field required and
// `params:"name,single"` makes a list take one literal CLI token. Nested
// structs become nested schemas and slices of structs become Many fields.
// Pointer fields and fields tagged "-" are skipped.
func SchemaFromStruct(name string, structWithDefaults any) (*Schema, error) {
	v := reflect.ValueOf(structWithDefaults)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("SchemaFromStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("SchemaFromStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	var errors []string
	schema := schemaFromValue(name, v, "", &errors)
	if len(errors) > 0 {
		return nil, fmt.Errorf("failed to register %d field(s): %s", len(errors), strings.Join(errors, "; "))
	}
	return schema, nil
}

func schemaFromValue(name string, v reflect.Value, fieldPath string, errors *[]string) *Schema {
	schema := &Schema{Name: name, index: make(map[string]int)}
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		key := field.Name
		if parts[0] != "" {
			key = parts[0]
		}

		var opts []FieldOption
		for _, opt := range parts[1:] {
			switch opt {
			case "required":
				opts = append(opts, Required())
			case "single":
				opts = append(opts, SingleArgument())
			}
		}
		if desc := field.Tag.Get("desc"); desc != "" {
			opts = append(opts, Describe(desc))
		}

		f, err := fieldFromValue(key, field, fieldValue, fieldPath+field.Name+".", opts, errors)
		if err != nil {
			*errors = append(*errors, fmt.Sprintf("field %s%s: %v", fieldPath, field.Name, err))
			continue
		}
		if f == nil {
			continue
		}
		if err := schema.Add(f); err != nil {
			*errors = append(*errors, fmt.Sprintf("field %s%s: %v", fieldPath, field.Name, err))
		}
	}
	return schema
}

func fieldFromValue(key string, field reflect.StructField, fieldValue reflect.Value, fieldPath string, opts []FieldOption, errors *[]string) (*Field, error) {
	ft := field.Type

	switch ft.Kind() {
	case reflect.Ptr:
		return nil, nil
	case reflect.Struct:
		child := schemaFromValue(ft.Name(), fieldValue, fieldPath, errors)
		return Nested(key, child, opts...), nil
	case reflect.Slice, reflect.Array:
		if ft.Elem().Kind() == reflect.Struct {
			child := schemaFromValue(ft.Elem().Name(), reflect.New(ft.Elem()).Elem(), fieldPath, errors)
			return Nested(key, child, append(opts, Many())...), nil
		}
		elem, err := kindOf(ft.Elem())
		if err != nil {
			return nil, err
		}
		if fieldValue.Len() > 0 {
			opts = append(opts, Default(deepCopyValue(fieldValue.Interface())))
		}
		return List(key, elem, opts...), nil
	case reflect.Map:
		if ft.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", ft.Key())
		}
		if fieldValue.Len() > 0 {
			def := make(map[string]any, fieldValue.Len())
			iter := fieldValue.MapRange()
			for iter.Next() {
				def[iter.Key().String()] = deepCopyValue(iter.Value().Interface())
			}
			opts = append(opts, Default(def))
		}
		return Leaf(key, KindDict, opts...), nil
	}

	kind, err := kindOf(ft)
	if err != nil {
		return nil, err
	}
	if !fieldValue.IsZero() {
		opts = append(opts, Default(fieldValue.Interface()))
	}
	return Leaf(key, kind, opts...), nil
}

// kindOf maps a Go scalar type to a leaf Kind.
func kindOf(t reflect.Type) (Kind, error) {
	switch t.Kind() {
	case reflect.String:
		return KindString, nil
	case reflect.Bool:
		return KindBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt, nil
	case reflect.Float32, reflect.Float64:
		return KindFloat, nil
	case reflect.Interface:
		return KindAny, nil
	default:
		return KindAny, fmt.Errorf("unsupported field type %s", t)
	}
}
