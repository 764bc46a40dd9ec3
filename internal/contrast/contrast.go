// Package contrast implements the WCAG 2.1 relative luminance and contrast
// ratio formulas and classifies ratios into AA/AAA conformance levels.
package contrast

import (
	"math"

	"github.com/pipetka/pipetka/internal/color"
)

// WCAG 2.1 minimum ratios.
const (
	MinAANormal  = 4.5
	MinAALarge   = 3.0
	MinAAANormal = 7.0
	MinAAALarge  = 4.5
)

// Levels reports which WCAG conformance levels a contrast ratio satisfies.
// Large text is 18pt, or 14pt bold.
type Levels struct {
	AANormal  bool `json:"aaNormal"`
	AALarge   bool `json:"aaLarge"`
	AAANormal bool `json:"aaaNormal"`
	AAALarge  bool `json:"aaaLarge"`
}

// Result is the outcome of checking a foreground against a background.
type Result struct {
	Foreground color.Color `json:"foreground"`
	Background color.Color `json:"background"`
	Ratio      float64     `json:"ratio"`
	Levels     Levels      `json:"levels"`
}

// RelativeLuminance returns the WCAG relative luminance of c in [0, 1].
func RelativeLuminance(c color.Color) float64 {
	r := channelLuminance(c.R)
	g := channelLuminance(c.G)
	b := channelLuminance(c.B)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func channelLuminance(v uint8) float64 {
	s := float64(v) / 255.0
	if s <= 0.03928 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// Ratio returns the contrast ratio between a and b, in [1, 21].
// The order of the arguments does not matter.
func Ratio(a, b color.Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	hi, lo := math.Max(la, lb), math.Min(la, lb)
	return (hi + 0.05) / (lo + 0.05)
}

// LevelsFor classifies a contrast ratio. The thresholds nest: anything that
// passes AAA normal text passes every other level.
func LevelsFor(ratio float64) Levels {
	return Levels{
		AANormal:  ratio >= MinAANormal,
		AALarge:   ratio >= MinAALarge,
		AAANormal: ratio >= MinAAANormal,
		AAALarge:  ratio >= MinAAALarge,
	}
}

// Evaluate computes the full Result for two parsed colors.
func Evaluate(fg, bg color.Color) Result {
	ratio := Ratio(fg, bg)
	return Result{
		Foreground: fg,
		Background: bg,
		Ratio:      ratio,
		Levels:     LevelsFor(ratio),
	}
}

// Check parses fg and bg with color.ParseColor and evaluates them. If either
// string is not a color the Result has a zero ratio and no level passes.
func Check(fg, bg string) Result {
	f, ok := color.ParseColor(fg)
	if !ok {
		return Result{}
	}
	b, ok := color.ParseColor(bg)
	if !ok {
		return Result{}
	}
	return Evaluate(f, b)
}

// BestText returns black or white, whichever contrasts more with bg.
func BestText(bg color.Color) color.Color {
	black := color.Color{}
	white := color.Color{R: 255, G: 255, B: 255}
	if Ratio(black, bg) >= Ratio(white, bg) {
		return black
	}
	return white
}

// Suggest nudges the lightness of fg away from bg in 5% steps until the
// contrast ratio reaches target. It reports false if no step gets there, in
// which case the best text color for bg is returned.
func Suggest(fg, bg color.Color, target float64) (color.Color, bool) {
	if Ratio(fg, bg) >= target {
		return fg, true
	}

	lighten := RelativeLuminance(fg) > RelativeLuminance(bg)
	for step := 1; step <= 20; step++ {
		amount := float64(step) * 0.05
		var candidate color.Color
		if lighten {
			candidate = color.Brighten(fg, amount)
		} else {
			candidate = color.Darken(fg, amount)
		}
		if Ratio(candidate, bg) >= target {
			return candidate, true
		}
	}

	best := BestText(bg)
	return best, Ratio(best, bg) >= target
}
