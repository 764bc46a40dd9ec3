package color

import "math"

// Brighten returns c with its HSL lightness raised by amount (0.0 to 1.0),
// capped at white.
func Brighten(c Color, amount float64) Color {
	return shiftLightness(c, amount)
}

// Darken returns c with its HSL lightness lowered by amount (0.0 to 1.0),
// floored at black.
func Darken(c Color, amount float64) Color {
	return shiftLightness(c, -amount)
}

// Mix blends a and b channel-wise in sRGB. weight 0 returns a, 1 returns b.
func Mix(a, b Color, weight float64) Color {
	weight = clamp01(weight)
	lerp := func(x, y uint8) uint8 {
		return clampByte(float64(x) + (float64(y)-float64(x))*weight)
	}
	return Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B)}
}

func shiftLightness(c Color, delta float64) Color {
	h, s, l := hslComponents(c)
	l = math.Max(0, math.Min(1, l+delta))
	return fromHSLComponents(h, s, l, clampByte)
}
