package semantic

import "strings"

type hueBand struct {
	upTo float64
	name string
}

// hueBands maps hue ranges (exclusive upper bound, degrees) to nouns.
var hueBands = []hueBand{
	{15, "Red"},
	{40, "Orange"},
	{50, "Amber"},
	{65, "Yellow"},
	{90, "Lime"},
	{150, "Green"},
	{175, "Teal"},
	{195, "Cyan"},
	{220, "Azure"},
	{250, "Blue"},
	{275, "Indigo"},
	{300, "Violet"},
	{330, "Magenta"},
	{345, "Rose"},
	{360, "Red"},
}

func hueName(h float64) string {
	for _, band := range hueBands {
		if h < band.upTo {
			return band.name
		}
	}
	return "Red"
}

func saturationWord(s float64) string {
	switch {
	case s < 20:
		return "Dusty"
	case s < 50:
		return "Soft"
	case s < 80:
		return "Rich"
	default:
		return "Vivid"
	}
}

// leadingWord describes lightness when it is notable and falls back to
// temperature for mid lightness.
func leadingWord(h, l float64) string {
	switch {
	case l > 80:
		return "Pale"
	case l > 60:
		return "Light"
	case l < 25:
		return "Deep"
	case l < 40:
		return "Dark"
	case h < 60 || h >= 330:
		return "Warm"
	case h >= 180 && h < 270:
		return "Cool"
	default:
		return "Mellow"
	}
}

// AlgorithmicName builds a three-word descriptive name from HSL components,
// e.g. "Warm Vivid Orange". The same input always yields the same name.
func AlgorithmicName(h, s, l float64) string {
	if s < 10 {
		switch {
		case l > 90:
			return "Bright Neutral White"
		case l < 10:
			return "Deep Neutral Black"
		default:
			return leadingWord(h, l) + " Neutral Gray"
		}
	}
	return strings.Join([]string{leadingWord(h, l), saturationWord(s), hueName(h)}, " ")
}
