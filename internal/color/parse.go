package color

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(?:\d*\.)?\d+\s*)?\)$`)
	hslPattern = regexp.MustCompile(`^hsla?\(\s*(\d{1,3}(?:\.\d+)?)\s*,\s*(\d{1,3}(?:\.\d+)?)%?\s*,\s*(\d{1,3}(?:\.\d+)?)%?\s*(?:,\s*(?:\d*\.)?\d+\s*)?\)$`)
)

// ParseRGB parses an rgb(r, g, b) or rgba(r, g, b, a) string. Whitespace
// inside the parentheses is optional. Channels must be integers in [0, 255];
// the alpha component is accepted and ignored.
func ParseRGB(s string) (Color, bool) {
	m := rgbPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return Color{}, false
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return Color{}, false
		}
		ch[i] = uint8(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, true
}

// ParseHSL parses an hsl(h, s%, l%) string. The percent signs are optional.
// Hue must be in [0, 360], saturation and lightness in [0, 100].
func ParseHSL(s string) (HSL, bool) {
	m := hslPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return HSL{}, false
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return HSL{}, false
		}
		v[i] = f
	}
	if v[0] > 360 || v[1] > 100 || v[2] > 100 {
		return HSL{}, false
	}
	return HSL{H: v[0], S: v[1], L: v[2]}, true
}

// ParseColor accepts a hex color, an rgb() or hsl() function, or a CSS color
// name. It reports false for anything else.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, false
	}
	if c, err := ParseHex(s); err == nil {
		return c, true
	}
	if c, ok := ParseRGB(s); ok {
		return c, true
	}
	if hsl, ok := ParseHSL(s); ok {
		return hsl.ToRGB(), true
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{R: named.R, G: named.G, B: named.B}, true
	}
	return Color{}, false
}
