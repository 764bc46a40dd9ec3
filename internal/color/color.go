package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned by ParseHex for anything that is not six hex digits.
var ErrInvalidHex = errors.New("invalid hex color")

// Color represents an RGB color. The R, G, B uint8 fields are the source of truth;
// all output formats are derived from them.
type Color struct {
	R, G, B uint8
}

// ParseHex parses a hex color string like "#EB6F92" into a Color.
// The leading # is optional. Three-digit shorthand is not accepted.
func ParseHex(s string) (Color, error) {
	bare := strings.TrimPrefix(s, "#")
	if len(bare) != 6 {
		return Color{}, fmt.Errorf("%w %q: must be 6 hex digits", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(bare, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %w", ErrInvalidHex, s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// RGBToHex formats three channel values as "#RRGGBB". Channels are rounded
// but not clamped, so out-of-range input yields a string that is not a valid
// hex color, e.g. RGBToHex(256, 0, 0) == "#1000000".
func RGBToHex(r, g, b float64) string {
	var sb strings.Builder
	sb.WriteByte('#')
	for _, v := range []float64{r, g, b} {
		part := strings.ToUpper(strconv.FormatInt(int64(math.Round(v)), 16))
		if len(part) == 1 {
			sb.WriteByte('0')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

// Hex returns the color as an uppercase hex string with leading #, e.g. "#EB6F92".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HexBare returns the color as a hex string without leading #, e.g. "EB6F92".
func (c Color) HexBare() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HSLString returns the color as an hsl() string, e.g. "hsl(343, 76%, 68%)".
func (c Color) HSLString() string {
	hsl := RGBToHSL(c).Rounded()
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", int(hsl.H), int(hsl.S), int(hsl.L))
}

// MarshalText encodes c as "#RRGGBB", so JSON carries colors as hex strings.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts anything ParseColor does.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("%w %q", ErrInvalidHex, text)
	}
	*c = parsed
	return nil
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// clampByte rounds v and clamps it to a channel value.
func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
