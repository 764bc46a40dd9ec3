// Package pipetka describes colors in every representation the color tools
// show: converted spaces, nearest names, classification and contrast.
package pipetka

import (
	"fmt"
	"math"

	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/contrast"
	"github.com/pipetka/pipetka/internal/names"
	"github.com/pipetka/pipetka/internal/semantic"
)

// NameCount is how many nearest names Describe includes.
const NameCount = 3

// Report is the fully resolved description of one color.
type Report struct {
	Hex   string      `json:"hex"`
	RGB   RGB         `json:"rgb"`
	HSL   color.HSL   `json:"hsl"`
	XYZ   color.XYZ   `json:"xyz"`
	Lab   color.Lab   `json:"lab"`
	LCH   color.LCH   `json:"lch"`
	OKLCH color.OKLCH `json:"oklch"`

	Names         []names.Match   `json:"names"`
	Family        semantic.Family `json:"family"`
	Tone          semantic.Tone   `json:"tone"`
	Algorithmic   string          `json:"algorithmicName"`
	OnWhite       contrast.Result `json:"onWhite"`
	OnBlack       contrast.Result `json:"onBlack"`
	BestTextColor string          `json:"bestTextColor"`
}

// RGB mirrors color.Color with JSON field names.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Describe builds a Report for c, naming it from dict. A nil dict means the
// CSS colors.
func Describe(c color.Color, dict names.Dictionary) Report {
	if dict == nil {
		dict = names.CSS()
	}
	hsl := color.RGBToHSL(c).Rounded()
	lab := color.RGBToLab(c)
	white := color.Color{R: 255, G: 255, B: 255}

	return Report{
		Hex:   c.Hex(),
		RGB:   RGB{R: c.R, G: c.G, B: c.B},
		HSL:   hsl,
		XYZ:   roundXYZ(color.RGBToXYZ(c)),
		Lab:   color.Lab{L: round2(lab.L), A: round2(lab.A), B: round2(lab.B)},
		LCH:   roundLCH(color.LabToLCH(lab)),
		OKLCH: roundOKLCH(color.RGBToOKLCH(c)),

		Names:         names.Closest(c, dict, NameCount),
		Family:        semantic.HueFamily(hsl.H, hsl.S, hsl.L),
		Tone:          semantic.ClassifyTone(hsl.L),
		Algorithmic:   semantic.AlgorithmicName(hsl.H, hsl.S, hsl.L),
		OnWhite:       contrast.Evaluate(c, white),
		OnBlack:       contrast.Evaluate(c, color.Color{}),
		BestTextColor: contrast.BestText(c).Hex(),
	}
}

// DescribeString parses s (hex, rgb(), hsl() or a CSS name) and describes it.
func DescribeString(s string, dict names.Dictionary) (Report, error) {
	c, ok := color.ParseColor(s)
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", color.ErrInvalidHex, s)
	}
	return Describe(c, dict), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundXYZ(v color.XYZ) color.XYZ {
	return color.XYZ{X: round2(v.X), Y: round2(v.Y), Z: round2(v.Z)}
}

func roundLCH(v color.LCH) color.LCH {
	return color.LCH{L: round2(v.L), C: round2(v.C), H: round2(v.H)}
}

func roundOKLCH(v color.OKLCH) color.OKLCH {
	return color.OKLCH{
		L: math.Round(v.L*10000) / 10000,
		C: math.Round(v.C*10000) / 10000,
		H: round2(v.H),
	}
}
