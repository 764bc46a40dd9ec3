// Package names maps colors to human-readable names.
package names

import (
	"slices"
	"strings"

	"github.com/pipetka/pipetka/internal/color"
	"golang.org/x/image/colornames"
)

// Entry is a named color.
type Entry struct {
	Name  string      `json:"name"`
	Color color.Color `json:"-"`
}

// Match is a dictionary entry and its distance from a query color.
type Match struct {
	Entry
	Hex      string  `json:"hex"`
	Distance float64 `json:"distance"`
}

// Dictionary is an ordered list of named colors.
type Dictionary []Entry

var css = buildCSS()

func buildCSS() Dictionary {
	dict := make(Dictionary, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		dict = append(dict, Entry{Name: name, Color: color.Color{R: c.R, G: c.G, B: c.B}})
	}
	return dict
}

// CSS returns the CSS/SVG named colors, sorted by name. The returned slice
// is a copy and may be modified.
func CSS() Dictionary {
	return slices.Clone(css)
}

// With returns a new dictionary holding d followed by extra.
func (d Dictionary) With(extra ...Entry) Dictionary {
	out := make(Dictionary, 0, len(d)+len(extra))
	out = append(out, d...)
	return append(out, extra...)
}

// Lookup finds an entry by name, ignoring case.
func (d Dictionary) Lookup(name string) (Entry, bool) {
	for _, e := range d {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// FindClosest returns up to max entries of dict closest to hex, nearest
// first, measured with color.DeltaE2000. It returns nil if hex does not parse
// or max is not positive. Every call scans the whole dictionary.
func FindClosest(hex string, dict Dictionary, max int) []Match {
	c, err := color.ParseHex(hex)
	if err != nil || max <= 0 {
		return nil
	}
	return Closest(c, dict, max)
}

// Closest is FindClosest for an already parsed color.
func Closest(c color.Color, dict Dictionary, max int) []Match {
	return ClosestBy(c, dict, max, color.MetricDeltaE)
}

// ClosestBy is Closest with the distance measured by metric.
func ClosestBy(c color.Color, dict Dictionary, max int, metric color.Metric) []Match {
	if max <= 0 || len(dict) == 0 {
		return nil
	}

	matches := make([]Match, len(dict))
	for i, e := range dict {
		matches[i] = Match{
			Entry:    e,
			Hex:      e.Color.Hex(),
			Distance: metric.Between(c, e.Color),
		}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})

	if len(matches) > max {
		matches = matches[:max]
	}
	return matches
}
