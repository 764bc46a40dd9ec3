// Package palette derives related colors from a base color.
package palette

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pipetka/pipetka/internal/color"
)

// ErrUnknownScheme is returned by Harmony for an unrecognised scheme name.
var ErrUnknownScheme = errors.New("unknown harmony scheme")

// Scheme names accepted by Harmony.
const (
	Complementary      = "complementary"
	Analogous          = "analogous"
	Triadic            = "triadic"
	Tetradic           = "tetradic"
	SplitComplementary = "split-complementary"
	Monochromatic      = "monochromatic"
)

// hue offsets in degrees, relative to the base color.
var hueOffsets = map[string][]float64{
	Complementary:      {180},
	Analogous:          {-30, 30},
	Triadic:            {120, 240},
	Tetradic:           {90, 180, 270},
	SplitComplementary: {150, 210},
}

// lightness offsets in percentage points for Monochromatic.
var lightnessOffsets = []float64{-30, -15, 15, 30}

// Schemes returns the supported scheme names in display order.
func Schemes() []string {
	return []string{Complementary, Analogous, Triadic, Tetradic, SplitComplementary, Monochromatic}
}

// Harmony returns base followed by the colors of the named scheme.
func Harmony(base color.Color, scheme string) ([]color.Color, error) {
	hsl := color.RGBToHSL(base).Rounded()
	out := []color.Color{base}

	if scheme == Monochromatic {
		for _, d := range lightnessOffsets {
			out = append(out, color.HSLToRGB(hsl.H, hsl.S, hsl.L+d))
		}
		return out, nil
	}

	offsets, ok := hueOffsets[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	for _, d := range offsets {
		out = append(out, color.HSLToRGB(hsl.H+d, hsl.S, hsl.L))
	}
	return out, nil
}

// Shades returns n colors sharing base's hue and chroma, ordered from light
// to dark along OKLCH lightness. n == 1 returns base alone.
func Shades(base color.Color, n int) []color.Color {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []color.Color{base}
	}

	const lightest, darkest = 0.95, 0.20
	step := (lightest - darkest) / float64(n-1)

	out := make([]color.Color, n)
	for i := range out {
		out[i] = color.StepLightness(base, lightest-float64(i)*step)
	}
	return out
}

// Interpolation spaces accepted by Gradient.
const (
	SpaceRGB = "rgb"
	SpaceLab = "lab"
	SpaceHCL = "hcl"
)

// Gradient returns steps colors blended from -> to in the given space.
// Both endpoints are included.
func Gradient(from, to color.Color, steps int, space string) ([]color.Color, error) {
	if steps < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 steps, got %d", steps)
	}

	a, b := color.ToColorful(from), color.ToColorful(to)
	blend := a.BlendRgb
	switch space {
	case SpaceRGB, "":
	case SpaceLab:
		blend = a.BlendLab
	case SpaceHCL:
		blend = a.BlendHcl
	default:
		return nil, fmt.Errorf("unknown gradient space %q", space)
	}

	out := make([]color.Color, steps)
	for i := range out {
		t := float64(i) / float64(steps-1)
		out[i] = color.FromColorful(blend(b, t))
	}
	out[0], out[steps-1] = from, to
	return out, nil
}

// Unique returns colors with duplicates removed, keeping first occurrences.
func Unique(colors []color.Color) []color.Color {
	out := make([]color.Color, 0, len(colors))
	for _, c := range colors {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
