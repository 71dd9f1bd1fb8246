// FILE: lixenwraith/params/hcl.go
package params

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var hclSourceSchema = MustSchema("HCLSource", "read parameters from an HCL file",
	Leaf("input_hcl", KindString, Required(), Describe("filepath to input hcl")),
)

// HCLSourceConfig configures an HCLSource.
type HCLSourceConfig struct {
	InputHCL string `params:"input_hcl" validate:"required,file"`
}

// HCLSource reads parameters from the top-level attributes of an HCL file.
// Nested parameters are written as object values, e.g. nest = { one = 7 }.
type HCLSource struct {
	fileSource
	Config HCLSourceConfig
}

// NewHCLSource creates an unconfigured HCLSource.
func NewHCLSource() Source {
	return &HCLSource{fileSource: fileSource{name: "HCLSource", format: FormatHCL, schema: hclSourceSchema}}
}

func (s *HCLSource) Configure(cfg Tree) error {
	if err := ConfigureStruct(cfg, &s.Config, nil); err != nil {
		return err
	}
	s.path = s.Config.InputHCL
	return nil
}

// decodeHCL evaluates the attributes of an HCL body without variables or
// functions.
func decodeHCL(data []byte, filename string) (Tree, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read HCL attributes: %s", diags.Error())
	}

	tree := make(Tree, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %q: %s", name, valDiags.Error())
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("in attribute '%s': %w", name, err)
		}
		tree[name] = native
	}
	return tree, nil
}

// ctyToNative converts a cty.Value to tree types. Whole numbers become int64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		if bf := v.AsBigFloat(); bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported HCL value type: %s", ty.FriendlyName())
	}
}
