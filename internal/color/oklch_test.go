package color

import (
	"math"
	"testing"
)

func TestRGBToOKLCH_KnownColors(t *testing.T) {
	tests := []struct {
		name       string
		color      Color
		want       OKLCH
		achromatic bool // skip hue check when C < 0.01
	}{
		{name: "black", color: Color{0, 0, 0}, want: OKLCH{0, 0, 0}, achromatic: true},
		{name: "white", color: Color{255, 255, 255}, want: OKLCH{1, 0, 0}, achromatic: true},
		{name: "red", color: Color{255, 0, 0}, want: OKLCH{0.6279, 0.2577, 29.23}},
		{name: "green (0,128,0)", color: Color{0, 128, 0}, want: OKLCH{0.5196, 0.1766, 142.50}},
		{name: "blue", color: Color{0, 0, 255}, want: OKLCH{0.4520, 0.3132, 264.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToOKLCH(tt.color)

			if math.Abs(got.L-tt.want.L) > 0.01 {
				t.Errorf("L = %f, want %f", got.L, tt.want.L)
			}
			if math.Abs(got.C-tt.want.C) > 0.01 {
				t.Errorf("C = %f, want %f", got.C, tt.want.C)
			}
			if !tt.achromatic && math.Abs(got.H-tt.want.H) > 0.6 {
				t.Errorf("H = %f, want %f", got.H, tt.want.H)
			}
		})
	}
}

func TestOKLCHRoundTrip(t *testing.T) {
	colors := []Color{
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{128, 128, 128},
		{235, 111, 146},
		{49, 116, 143},
		{156, 207, 216},
	}

	for _, c := range colors {
		t.Run(c.Hex(), func(t *testing.T) {
			got := OKLCHToRGB(RGBToOKLCH(c))
			if absDiffUint8(got.R, c.R) > 1 || absDiffUint8(got.G, c.G) > 1 || absDiffUint8(got.B, c.B) > 1 {
				t.Errorf("round trip of %v = %v", c, got)
			}
		})
	}
}

func TestStepLightness(t *testing.T) {
	base := Color{235, 111, 146}
	light := StepLightness(base, 0.9)
	dark := StepLightness(base, 0.3)

	if RGBToOKLCH(light).L <= RGBToOKLCH(dark).L {
		t.Errorf("StepLightness(0.9) = %v is not lighter than StepLightness(0.3) = %v", light, dark)
	}
}
