// Package semantic assigns human-oriented labels to colors: hue families,
// tones and generated descriptive names.
package semantic

// Family is a coarse grouping of colors used by the palette and brand tools.
type Family string

const (
	FamilyNeutral Family = "neutral"
	FamilyEarth   Family = "earth"
	FamilyPastel  Family = "pastel"
	FamilyWarm    Family = "warm"
	FamilyCold    Family = "cold"
	FamilyMixed   Family = "mixed"
)

type familyRule struct {
	family  Family
	matches func(h, s, l float64) bool
}

// familyRules is evaluated in order; the first match wins. Bands overlap on
// purpose, e.g. a desaturated orange is neutral, not warm.
var familyRules = []familyRule{
	{FamilyNeutral, func(h, s, l float64) bool { return s < 15 }},
	{FamilyEarth, func(h, s, l float64) bool { return h >= 15 && h <= 50 && s <= 60 && l >= 15 && l <= 50 }},
	{FamilyPastel, func(h, s, l float64) bool { return l >= 75 && s >= 25 }},
	{FamilyWarm, func(h, s, l float64) bool { return h < 60 || h >= 330 }},
	{FamilyCold, func(h, s, l float64) bool { return h >= 180 && h < 270 }},
}

// HueFamily classifies an HSL color (h in degrees, s and l in percent).
func HueFamily(h, s, l float64) Family {
	for _, rule := range familyRules {
		if rule.matches(h, s, l) {
			return rule.family
		}
	}
	return FamilyMixed
}

// Tone is the lightness class of a color.
type Tone string

const (
	ToneLight Tone = "light"
	ToneMid   Tone = "mid"
	ToneDark  Tone = "dark"
)

// ClassifyTone buckets an HSL lightness percentage.
func ClassifyTone(lightness float64) Tone {
	switch {
	case lightness > 70:
		return ToneLight
	case lightness < 30:
		return ToneDark
	default:
		return ToneMid
	}
}
