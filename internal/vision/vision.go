// Package vision simulates how colors appear with color-vision deficiencies.
package vision

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pipetka/pipetka/internal/color"
	"golang.org/x/image/draw"
)

// Kind is a color-vision deficiency.
type Kind string

const (
	Protanopia    Kind = "protanopia"
	Deuteranopia  Kind = "deuteranopia"
	Tritanopia    Kind = "tritanopia"
	Achromatopsia Kind = "achromatopsia"
)

// Kinds lists every supported deficiency.
var Kinds = []Kind{Protanopia, Deuteranopia, Tritanopia, Achromatopsia}

// ParseKind validates a deficiency name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown vision kind %q", s)
}

type matrix [3][3]float64

// Dichromat projections in linear RGB (Viénot, Brettel & Mollon 1999).
// Every row sums to 1 so neutrals are unchanged.
var matrices = map[Kind]matrix{
	Protanopia: {
		{0.11238, 0.88762, 0},
		{0.11238, 0.88762, 0},
		{0.00401, -0.00401, 1},
	},
	Deuteranopia: {
		{0.29275, 0.70725, 0},
		{0.29275, 0.70725, 0},
		{-0.02234, 0.02234, 1},
	},
	Tritanopia: {
		{1, 0.14461, -0.14461},
		{0, 0.85924, 0.14076},
		{0, 0.85924, 0.14076},
	},
}

// Simulate returns c as seen with the given deficiency. Unknown kinds
// return c unchanged.
func Simulate(c color.Color, kind Kind) color.Color {
	r, g, b := color.ToColorful(c).LinearRgb()

	if kind == Achromatopsia {
		y := 0.2126*r + 0.7152*g + 0.0722*b
		return color.FromColorful(colorful.LinearRgb(y, y, y))
	}

	m, ok := matrices[kind]
	if !ok {
		return c
	}
	return color.FromColorful(colorful.LinearRgb(
		m[0][0]*r+m[0][1]*g+m[0][2]*b,
		m[1][0]*r+m[1][1]*g+m[1][2]*b,
		m[2][0]*r+m[2][1]*g+m[2][2]*b,
	))
}

// SimulateImage returns a copy of img with every pixel passed through
// Simulate. Alpha is preserved.
func SimulateImage(img image.Image, kind Kind) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	seen := make(map[color.Color]color.Color)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		px := color.Color{R: out.Pix[i], G: out.Pix[i+1], B: out.Pix[i+2]}
		sim, ok := seen[px]
		if !ok {
			sim = Simulate(px, kind)
			seen[px] = sim
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = sim.R, sim.G, sim.B
	}
	return out
}
