package color

import "math"

// HSL is a color in the HSL space. H is in degrees [0, 360); S and L are
// percentages [0, 100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// RGBToHSL converts c to HSL at full precision, so HSLToRGB recovers c
// exactly. Use Rounded for display.
func RGBToHSL(c Color) HSL {
	h, s, l := hslComponents(c)
	return HSL{H: h * 360, S: s * 100, L: l * 100}
}

// Rounded returns hsl with every component rounded to an integer and the
// hue kept in [0, 360).
func (hsl HSL) Rounded() HSL {
	out := HSL{H: math.Round(hsl.H), S: math.Round(hsl.S), L: math.Round(hsl.L)}
	if out.H >= 360 {
		out.H -= 360
	}
	return out
}

// HSLToRGB converts hue (degrees, wrapped modulo 360), saturation and
// lightness (percent, clamped to [0, 100]) to a Color.
func HSLToRGB(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Max(0, math.Min(100, s)) / 100
	l = math.Max(0, math.Min(100, l)) / 100
	return fromHSLComponents(h/360, s, l, clampByte)
}

// ToRGB converts the HSL value back to a Color.
func (hsl HSL) ToRGB() Color {
	return HSLToRGB(hsl.H, hsl.S, hsl.L)
}

// hslComponents returns unrounded hue, saturation and lightness, all in [0, 1].
func hslComponents(c Color) (h, s, l float64) {
	r, g, b := float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0

	lo := math.Min(math.Min(r, g), b)
	hi := math.Max(math.Max(r, g), b)
	l = (hi + lo) / 2.0

	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2.0 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
		h /= 6.0
	case g:
		h = ((b-r)/d + 2.0) / 6.0
	case b:
		h = ((r-g)/d + 4.0) / 6.0
	}
	return h, s, l
}

// fromHSLComponents converts h, s, l in [0, 1] to a Color, using toByte to
// map each [0, 1] channel onto [0, 255].
func fromHSLComponents(h, s, l float64, toByte func(float64) uint8) Color {
	if s == 0 {
		v := toByte(l * 255)
		return Color{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1.0 + s)
	} else {
		q = l + s - l*s
	}
	p := 2.0*l - q

	return Color{
		R: toByte(hueToRGB(p, q, h+1.0/3.0) * 255),
		G: toByte(hueToRGB(p, q, h) * 255),
		B: toByte(hueToRGB(p, q, h-1.0/3.0) * 255),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1.0
	}
	if t > 1 {
		t -= 1.0
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6.0*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6.0
	}
	return p
}
