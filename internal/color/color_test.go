package color

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"with hash", "#FF5733", Color{255, 87, 51}, false},
		{"without hash", "ff5733", Color{255, 87, 51}, false},
		{"black", "#000000", Color{0, 0, 0}, false},
		{"white", "#ffffff", Color{255, 255, 255}, false},
		{"mixed case", "#AaBbCc", Color{170, 187, 204}, false},
		{"shorthand not expanded", "#fff", Color{}, true},
		{"too long", "#aabbccdd", Color{}, true},
		{"invalid chars", "#zzzzzz", Color{}, true},
		{"signed", "+12345", Color{}, true},
		{"double hash", "##12345", Color{}, true},
		{"empty", "", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if err != nil && !errors.Is(err, ErrInvalidHex) {
				t.Errorf("ParseHex(%q) error = %v, want ErrInvalidHex", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRGBToHex(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		want    string
	}{
		{"example", 255, 87, 51, "#FF5733"},
		{"zero padding", 0, 5, 10, "#00050A"},
		{"rounds channels", 12.6, 0.4, 254.5, "#0D00FF"},
		{"above range is not clamped", 256, 0, 0, "#1000000"},
		{"negative is not clamped", -1, 0, 0, "#-10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToHex(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("RGBToHex(%v, %v, %v) = %q, want %q", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 3 {
			for _, b := range []int{0, 1, 127, 128, 254, 255} {
				hex := RGBToHex(float64(r), float64(g), float64(b))
				got, err := ParseHex(hex)
				if err != nil {
					t.Fatalf("ParseHex(%q) error: %v", hex, err)
				}
				want := Color{uint8(r), uint8(g), uint8(b)}
				if got != want {
					t.Fatalf("round trip of %v = %v", want, got)
				}
			}
		}
	}
}

func TestColorFormats(t *testing.T) {
	c := Color{235, 111, 146}

	if got, want := c.Hex(), "#EB6F92"; got != want {
		t.Errorf("Hex() = %q, want %q", got, want)
	}
	if got, want := c.HexBare(), "EB6F92"; got != want {
		t.Errorf("HexBare() = %q, want %q", got, want)
	}
	if got, want := c.RGB(), "rgb(235, 111, 146)"; got != want {
		t.Errorf("RGB() = %q, want %q", got, want)
	}
	if got, want := (Color{255, 0, 0}).HSLString(), "hsl(0, 100%, 50%)"; got != want {
		t.Errorf("HSLString() = %q, want %q", got, want)
	}
	if got, want := c.String(), c.Hex(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBrighten(t *testing.T) {
	tests := []struct {
		name   string
		color  Color
		amount float64
		want   Color
	}{
		{"red by 10%", Color{255, 0, 0}, 0.1, Color{255, 51, 51}},
		{"gray by 20%", Color{128, 128, 128}, 0.2, Color{179, 179, 179}},
		{"white stays white", Color{255, 255, 255}, 0.5, Color{255, 255, 255}},
		{"black by 50%", Color{0, 0, 0}, 0.5, Color{128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Brighten(tt.color, tt.amount); got != tt.want {
				t.Errorf("Brighten(%v, %v) = %v, want %v", tt.color, tt.amount, got, tt.want)
			}
		})
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		name   string
		color  Color
		amount float64
		want   Color
	}{
		{"red by 10%", Color{255, 0, 0}, 0.1, Color{204, 0, 0}},
		{"gray by 20%", Color{128, 128, 128}, 0.2, Color{77, 77, 77}},
		{"blue by 10%", Color{0, 0, 255}, 0.1, Color{0, 0, 204}},
		{"black stays black", Color{0, 0, 0}, 0.5, Color{0, 0, 0}},
		{"white by 50%", Color{255, 255, 255}, 0.5, Color{128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Darken(tt.color, tt.amount); got != tt.want {
				t.Errorf("Darken(%v, %v) = %v, want %v", tt.color, tt.amount, got, tt.want)
			}
		})
	}
}

func TestMix(t *testing.T) {
	a, b := Color{0, 0, 0}, Color{255, 255, 255}

	if got := Mix(a, b, 0); got != a {
		t.Errorf("Mix(weight 0) = %v, want %v", got, a)
	}
	if got := Mix(a, b, 1); got != b {
		t.Errorf("Mix(weight 1) = %v, want %v", got, b)
	}
	if got, want := Mix(a, b, 0.5), (Color{128, 128, 128}); got != want {
		t.Errorf("Mix(weight 0.5) = %v, want %v", got, want)
	}
	if got := Mix(a, b, 7); got != b {
		t.Errorf("Mix clamps weight: got %v, want %v", got, b)
	}
}

func TestColorText(t *testing.T) {
	c := Color{R: 235, G: 111, B: 146}
	b, err := json.Marshal(map[string]Color{"c": c})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"c":"#EB6F92"}` {
		t.Errorf("json = %s", b)
	}

	var got struct{ C Color }
	if err := json.Unmarshal([]byte(`{"C":"rgb(235, 111, 146)"}`), &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got.C != c {
		t.Errorf("Unmarshal = %v, want %v", got.C, c)
	}

	if err := json.Unmarshal([]byte(`{"C":"nope"}`), &got); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("Unmarshal(nope) error = %v, want ErrInvalidHex", err)
	}
}
