package palette

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pipetka/pipetka/internal/color"
)

var (
	red   = color.Color{R: 255, G: 0, B: 0}
	gray  = color.Color{R: 128, G: 128, B: 128}
	black = color.Color{R: 0, G: 0, B: 0}
	white = color.Color{R: 255, G: 255, B: 255}
)

func TestHarmony(t *testing.T) {
	tests := []struct {
		name   string
		base   color.Color
		scheme string
		want   []color.Color
	}{
		{"complementary red", red, Complementary, []color.Color{red, {R: 0, G: 255, B: 255}}},
		{"triadic red", red, Triadic, []color.Color{red, {R: 0, G: 255, B: 0}, {R: 0, G: 0, B: 255}}},
		{"complementary orange", color.Color{R: 255, G: 87, B: 51}, Complementary,
			[]color.Color{{R: 255, G: 87, B: 51}, {R: 51, G: 218, B: 255}}},
		{"monochromatic red", red, Monochromatic, []color.Color{
			red, {R: 102, G: 0, B: 0}, {R: 179, G: 0, B: 0}, {R: 255, G: 77, B: 77}, {R: 255, G: 153, B: 153},
		}},
		{"monochromatic gray", gray, Monochromatic, []color.Color{
			gray, {R: 51, G: 51, B: 51}, {R: 89, G: 89, B: 89}, {R: 166, G: 166, B: 166}, {R: 204, G: 204, B: 204},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Harmony(tt.base, tt.scheme)
			if err != nil {
				t.Fatalf("Harmony() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Harmony() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHarmony_Sizes(t *testing.T) {
	want := map[string]int{
		Complementary:      2,
		Analogous:          3,
		Triadic:            3,
		Tetradic:           4,
		SplitComplementary: 3,
		Monochromatic:      5,
	}
	for _, scheme := range Schemes() {
		got, err := Harmony(red, scheme)
		if err != nil {
			t.Fatalf("Harmony(%q) error: %v", scheme, err)
		}
		if len(got) != want[scheme] {
			t.Errorf("Harmony(%q) has %d colors, want %d", scheme, len(got), want[scheme])
		}
		if got[0] != red {
			t.Errorf("Harmony(%q)[0] = %v, want base color", scheme, got[0])
		}
	}
}

func TestHarmony_UnknownScheme(t *testing.T) {
	_, err := Harmony(red, "pentadic")
	if !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Harmony(pentadic) error = %v, want ErrUnknownScheme", err)
	}
}

func TestShades(t *testing.T) {
	if got := Shades(red, 0); got != nil {
		t.Errorf("Shades(n=0) = %v, want nil", got)
	}
	if got := Shades(red, 1); len(got) != 1 || got[0] != red {
		t.Errorf("Shades(n=1) = %v, want [base]", got)
	}

	shades := Shades(gray, 5)
	if len(shades) != 5 {
		t.Fatalf("Shades(n=5) has %d colors", len(shades))
	}
	for i := 1; i < len(shades); i++ {
		prev := color.RGBToOKLCH(shades[i-1]).L
		cur := color.RGBToOKLCH(shades[i]).L
		if cur >= prev {
			t.Errorf("shade %d lightness %.3f not below shade %d lightness %.3f", i, cur, i-1, prev)
		}
	}
}

func TestGradient(t *testing.T) {
	got, err := Gradient(black, white, 3, SpaceRGB)
	if err != nil {
		t.Fatalf("Gradient() error: %v", err)
	}
	want := []color.Color{black, {R: 128, G: 128, B: 128}, white}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Gradient(rgb) mismatch (-want +got):\n%s", diff)
	}

	for _, space := range []string{SpaceRGB, SpaceLab, SpaceHCL} {
		t.Run(space, func(t *testing.T) {
			from, to := color.Color{R: 255, G: 87, B: 51}, color.Color{R: 51, G: 87, B: 255}
			got, err := Gradient(from, to, 7, space)
			if err != nil {
				t.Fatalf("Gradient() error: %v", err)
			}
			if len(got) != 7 {
				t.Fatalf("got %d steps, want 7", len(got))
			}
			if got[0] != from || got[6] != to {
				t.Errorf("endpoints = %v, %v; want %v, %v", got[0], got[6], from, to)
			}
		})
	}
}

func TestGradient_Errors(t *testing.T) {
	if _, err := Gradient(black, white, 1, SpaceRGB); err == nil {
		t.Error("Gradient(steps=1) should fail")
	}
	if _, err := Gradient(black, white, 5, "cmyk"); err == nil {
		t.Error("Gradient(space=cmyk) should fail")
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]color.Color{red, gray, red, black, gray})
	want := []color.Color{red, gray, black}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unique() mismatch (-want +got):\n%s", diff)
	}
}
