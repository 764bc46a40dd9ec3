package color

import (
	"math"
	"testing"
)

func TestRGBToLab_KnownColors(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  Lab
	}{
		{"black", Color{0, 0, 0}, Lab{0, 0, 0}},
		{"white", Color{255, 255, 255}, Lab{100, 0, 0}},
		{"red", Color{255, 0, 0}, Lab{53.23, 80.11, 67.22}},
		{"blue", Color{0, 0, 255}, Lab{32.30, 79.19, -107.86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToLab(tt.color)
			if math.Abs(got.L-tt.want.L) > 0.1 || math.Abs(got.A-tt.want.A) > 0.1 || math.Abs(got.B-tt.want.B) > 0.1 {
				t.Errorf("RGBToLab(%v) = %+v, want %+v", tt.color, got, tt.want)
			}
		})
	}
}

func TestRGBToXYZ_White(t *testing.T) {
	got := RGBToXYZ(Color{255, 255, 255})
	if math.Abs(got.X-95.05) > 0.01 || math.Abs(got.Y-100) > 0.01 || math.Abs(got.Z-108.9) > 0.01 {
		t.Errorf("RGBToXYZ(white) = %+v", got)
	}
}

func TestLabToLCH(t *testing.T) {
	got := LabToLCH(Lab{L: 50, A: 0, B: -20})
	if got.L != 50 || math.Abs(got.C-20) > 1e-9 || math.Abs(got.H-270) > 1e-9 {
		t.Errorf("LabToLCH = %+v, want {50 20 270}", got)
	}

	back := LCHToLab(got)
	if math.Abs(back.A) > 1e-9 || math.Abs(back.B+20) > 1e-9 {
		t.Errorf("LCHToLab = %+v, want {50 0 -20}", back)
	}
}

func TestLabRoundTrip(t *testing.T) {
	colors := []Color{
		{255, 0, 0},
		{0, 128, 0},
		{49, 116, 143},
		{235, 111, 146},
		{250, 250, 250},
		{3, 3, 3},
	}

	for _, c := range colors {
		t.Run(c.Hex(), func(t *testing.T) {
			got := LabToRGB(RGBToLab(c))
			if absDiffUint8(got.R, c.R) > 1 || absDiffUint8(got.G, c.G) > 1 || absDiffUint8(got.B, c.B) > 1 {
				t.Errorf("Lab round trip of %v = %v", c, got)
			}
		})
	}
}
