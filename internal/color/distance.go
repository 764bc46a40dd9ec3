package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Distance returns the Euclidean distance between a and b in raw RGB space.
// It is cheap but not perceptually uniform.
func Distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// DeltaE2000 returns an approximation of the CIEDE2000 color difference.
// It keeps the weighted lightness, chroma and hue terms and the blue-region
// rotation term, but skips the a* correction of the reference formula. Good
// enough to rank nearest colors; not for compliance measurements.
func DeltaE2000(a, b Lab) float64 {
	c1 := math.Hypot(a.A, a.B)
	c2 := math.Hypot(b.A, b.B)
	h1 := hueDegrees(a.A, a.B)
	h2 := hueDegrees(b.A, b.B)

	dL := b.L - a.L
	dC := c2 - c1

	dh := 0.0
	if c1*c2 != 0 {
		dh = h2 - h1
		switch {
		case dh > 180:
			dh -= 360
		case dh < -180:
			dh += 360
		}
	}
	dH := 2 * math.Sqrt(c1*c2) * math.Sin(radians(dh/2))

	avgL := (a.L + b.L) / 2
	avgC := (c1 + c2) / 2
	avgH := meanHue(h1, h2, c1, c2)

	lm := (avgL - 50) * (avgL - 50)
	sl := 1 + 0.015*lm/math.Sqrt(20+lm)
	sc := 1 + 0.045*avgC
	sh := 1 + 0.015*avgC

	theta := 30 * math.Exp(-math.Pow((avgH-275)/25, 2))
	c7 := math.Pow(avgC, 7)
	rc := 2 * math.Sqrt(c7/(c7+math.Pow(25, 7)))
	rt := -rc * math.Sin(radians(2*theta))

	tl, tc, th := dL/sl, dC/sc, dH/sh
	return math.Sqrt(math.Max(0, tl*tl+tc*tc+th*th+rt*tc*th))
}

func meanHue(h1, h2, c1, c2 float64) float64 {
	switch {
	case c1*c2 == 0:
		return h1 + h2
	case math.Abs(h1-h2) <= 180:
		return (h1 + h2) / 2
	case h1+h2 < 360:
		return (h1 + h2 + 360) / 2
	default:
		return (h1 + h2 - 360) / 2
	}
}

func hueDegrees(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Metric selects how the difference between two colors is measured.
type Metric int

const (
	// MetricRGB is Euclidean distance in sRGB.
	MetricRGB Metric = iota
	// MetricDeltaE is the approximate CIEDE2000 of DeltaE2000.
	MetricDeltaE
	// MetricCIEDE2000 is the full reference CIEDE2000 formula.
	MetricCIEDE2000
)

var metricNames = map[Metric]string{
	MetricRGB:       "rgb",
	MetricDeltaE:    "deltae",
	MetricCIEDE2000: "ciede2000",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// ParseMetric resolves a metric by the name String returns.
func ParseMetric(s string) (Metric, error) {
	for m, name := range metricNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q (valid: rgb, deltae, ciede2000)", s)
}

// Between measures the difference between a and b.
func (m Metric) Between(a, b Color) float64 {
	switch m {
	case MetricDeltaE:
		return DeltaE2000(RGBToLab(a), RGBToLab(b))
	case MetricCIEDE2000:
		// go-colorful works on L in [0, 1]; scale back to the usual range.
		return ToColorful(a).DistanceCIEDE2000(ToColorful(b)) * 100
	default:
		return Distance(a, b)
	}
}

// FromColorful converts a go-colorful color to a Color, clamping to the sRGB gamut.
func FromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: clampByte(c.R * 255), G: clampByte(c.G * 255), B: clampByte(c.B * 255)}
}

// ToColorful converts c for use with go-colorful.
func ToColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
