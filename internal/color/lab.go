package color

import "math"

// D65 reference white, 2° observer.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

const (
	labEpsilon = 0.008856
	labKappa   = 7.787
)

// XYZ is a CIE 1931 color scaled so that Y is 100 for reference white.
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lab is a CIE L*a*b* color. L is in [0, 100]; A and B are unbounded.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// LCH is the cylindrical form of Lab. C is chroma (>= 0), H is hue in degrees [0, 360).
type LCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// RGBToXYZ converts c to XYZ through sRGB gamma decoding.
func RGBToXYZ(c Color) XYZ {
	r := srgbToLinear(float64(c.R)/255.0) * 100
	g := srgbToLinear(float64(c.G)/255.0) * 100
	b := srgbToLinear(float64(c.B)/255.0) * 100

	return XYZ{
		X: r*0.4124 + g*0.3576 + b*0.1805,
		Y: r*0.2126 + g*0.7152 + b*0.0722,
		Z: r*0.0193 + g*0.1192 + b*0.9505,
	}
}

// XYZToLab converts xyz to Lab relative to the D65 white point.
func XYZToLab(xyz XYZ) Lab {
	fx := labF(xyz.X / whiteX)
	fy := labF(xyz.Y / whiteY)
	fz := labF(xyz.Z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToLCH converts lab to its cylindrical form.
func LabToLCH(lab Lab) LCH {
	h := math.Atan2(lab.B, lab.A) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return LCH{
		L: lab.L,
		C: math.Hypot(lab.A, lab.B),
		H: h,
	}
}

// RGBToLab is RGBToXYZ followed by XYZToLab.
func RGBToLab(c Color) Lab {
	return XYZToLab(RGBToXYZ(c))
}

// RGBToLCH is RGBToLab followed by LabToLCH.
func RGBToLCH(c Color) LCH {
	return LabToLCH(RGBToLab(c))
}

// LCHToLab converts lch back to Lab.
func LCHToLab(lch LCH) Lab {
	rad := lch.H * math.Pi / 180
	return Lab{
		L: lch.L,
		A: lch.C * math.Cos(rad),
		B: lch.C * math.Sin(rad),
	}
}

// LabToXYZ converts lab back to XYZ relative to the D65 white point.
func LabToXYZ(lab Lab) XYZ {
	fy := (lab.L + 16) / 116
	fx := lab.A/500 + fy
	fz := fy - lab.B/200

	return XYZ{
		X: labFInv(fx) * whiteX,
		Y: labFInv(fy) * whiteY,
		Z: labFInv(fz) * whiteZ,
	}
}

// XYZToRGB converts xyz to sRGB. Out-of-gamut values are clamped.
func XYZToRGB(xyz XYZ) Color {
	x, y, z := xyz.X/100, xyz.Y/100, xyz.Z/100

	r := x*3.2406 + y*-1.5372 + z*-0.4986
	g := x*-0.9689 + y*1.8758 + z*0.0415
	b := x*0.0557 + y*-0.2040 + z*1.0570

	return Color{
		R: clampByte(linearToSRGB(clamp01(r)) * 255),
		G: clampByte(linearToSRGB(clamp01(g)) * 255),
		B: clampByte(linearToSRGB(clamp01(b)) * 255),
	}
}

// LabToRGB is LabToXYZ followed by XYZToRGB.
func LabToRGB(lab Lab) Color {
	return XYZToRGB(LabToXYZ(lab))
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return labKappa*t + 16.0/116.0
}

func labFInv(t float64) float64 {
	if cube := t * t * t; cube > labEpsilon {
		return cube
	}
	return (t - 16.0/116.0) / labKappa
}
