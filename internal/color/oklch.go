package color

import "math"

// OKLCH is a color in the OKLCH space. L is lightness [0, 1], C is chroma
// [0, ~0.37], H is hue in degrees [0, 360).
type OKLCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// RGBToOKLCH converts an sRGB Color to OKLCH.
func RGBToOKLCH(c Color) OKLCH {
	lr := srgbToLinear(float64(c.R) / 255.0)
	lg := srgbToLinear(float64(c.G) / 255.0)
	lb := srgbToLinear(float64(c.B) / 255.0)

	L, a, b := linearRGBToOKLAB(lr, lg, lb)

	hue := math.Atan2(b, a) * (180.0 / math.Pi)
	if hue < 0 {
		hue += 360.0
	}
	return OKLCH{L: L, C: math.Hypot(a, b), H: hue}
}

// OKLCHToRGB converts o to sRGB, clamping out-of-gamut channels.
func OKLCHToRGB(o OKLCH) Color {
	hRad := o.H * (math.Pi / 180.0)
	lr, lg, lb := oklabToLinearRGB(o.L, o.C*math.Cos(hRad), o.C*math.Sin(hRad))

	return Color{
		R: clampByte(linearToSRGB(clamp01(lr)) * 255.0),
		G: clampByte(linearToSRGB(clamp01(lg)) * 255.0),
		B: clampByte(linearToSRGB(clamp01(lb)) * 255.0),
	}
}

// StepLightness returns c at the given absolute OKLCH lightness, keeping its
// hue and chroma. Lightness should be in [0, 1].
func StepLightness(c Color, lightness float64) Color {
	o := RGBToOKLCH(c)
	o.L = lightness
	return OKLCHToRGB(o)
}

// srgbToLinear decodes one sRGB component in [0, 1].
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB encodes one linear component in [0, 1].
func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

func linearRGBToOKLAB(r, g, b float64) (float64, float64, float64) {
	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	return 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		0.0259040371*l + 0.7827717662*m - 0.8086757660*s
}

func oklabToLinearRGB(L, a, b float64) (float64, float64, float64) {
	lp := L + 0.3963377774*a + 0.2158037573*b
	mp := L - 0.1055613458*a - 0.0638541728*b
	sp := L - 0.0894841775*a - 1.2914855480*b

	l, m, s := lp*lp*lp, mp*mp*mp, sp*sp*sp

	return +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		-1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		-0.0041960863*l - 0.7034186147*m + 1.7076147010*s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
