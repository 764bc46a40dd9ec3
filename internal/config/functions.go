package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/names"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EvalContext returns the HCL evaluation context with the color functions
// and the given entries exposed as names.<name>.
func EvalContext(entries []names.Entry) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(entries))
	for _, e := range entries {
		vals[e.Name] = cty.StringVal(e.Color.Hex())
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"names": cty.ObjectVal(vals),
		},
		Functions: Functions(),
	}
}

// Functions returns the color functions available in config files.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"brighten": makeShiftFunc("Brightens a color by the given amount (0.0 to 1.0)", color.Brighten),
		"darken":   makeShiftFunc("Darkens a color by the given amount (0.0 to 1.0)", color.Darken),
		"mix":      makeMixFunc(),
	}
}

func parseArg(v cty.Value) (color.Color, error) {
	c, ok := color.ParseColor(v.AsString())
	if !ok {
		return color.Color{}, fmt.Errorf("invalid color %q", v.AsString())
	}
	return c, nil
}

// makeShiftFunc builds brighten/darken.
// Usage: brighten("#hex", 0.1) or darken(names.brand, 0.1)
func makeShiftFunc(desc string, shift func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "amount", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := parseArg(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			amount, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(shift(c, amount).Hex()), nil
		},
	})
}

// makeMixFunc blends two colors.
// Usage: mix("#hex", "#hex", 0.5), where 0 is all of the first color.
func makeMixFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Mixes two colors; weight 0 returns the first, 1 the second",
		Params: []function.Parameter{
			{Name: "a", Type: cty.String},
			{Name: "b", Type: cty.String},
			{Name: "weight", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			a, err := parseArg(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			b, err := parseArg(args[1])
			if err != nil {
				return cty.NilVal, err
			}
			w, _ := args[2].AsBigFloat().Float64()
			return cty.StringVal(color.Mix(a, b, w).Hex()), nil
		},
	})
}
