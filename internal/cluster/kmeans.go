// Package cluster groups colors into representative centroids with k-means.
package cluster

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/pipetka/pipetka/internal/color"
)

// Defaults applied to zero-valued Options fields.
const (
	DefaultMaxIterations = 10
	DefaultTolerance     = 1.0
	DefaultSampleStep    = 10
)

// Weighting controls how cluster percentages are counted once the centroids
// have converged.
type Weighting int

const (
	// WeightExact assigns every input pixel to its nearest centroid.
	WeightExact Weighting = iota
	// WeightSampled only counts every SampleStep-th pixel.
	WeightSampled
)

// Options parameterises KMeans. The zero value of every field except K
// selects its default.
type Options struct {
	K             int
	MaxIterations int
	// Tolerance is the RGB distance under which a centroid counts as unmoved.
	Tolerance    float64
	Weighting    Weighting
	SampleStep   int
	SortByWeight bool
	// Rand seeds centroid selection. Nil uses the global source, so results
	// vary between runs.
	Rand *rand.Rand
}

// Centroid is a cluster representative and the share of pixels closest to it.
type Centroid struct {
	Color      color.Color `json:"color"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// Dominant matches the dominant-color extractor: exact counts, largest first.
func Dominant(k int) Options {
	return Options{K: k, Weighting: WeightExact, SortByWeight: true}
}

// Brand matches the brand analyzer: exact counts, initialization order.
func Brand(k int) Options {
	return Options{K: k, Weighting: WeightExact}
}

// Extended matches the extended palette generator: sampled counts,
// initialization order.
func Extended(k int) Options {
	return Options{K: k, Weighting: WeightSampled}
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.SampleStep <= 0 {
		o.SampleStep = DefaultSampleStep
	}
	return o
}

// KMeans partitions pixels into at most opts.K clusters. Centroids are seeded
// from distinct input colors, so the result has exactly
// min(K, number of distinct colors) entries. A cluster that loses all of its
// pixels keeps its previous centroid.
func KMeans(pixels []color.Color, opts Options) []Centroid {
	if len(pixels) == 0 || opts.K <= 0 {
		return nil
	}
	opts = opts.withDefaults()
	return converge(pixels, seed(pixels, opts.K, opts.Rand), opts)
}

// converge runs Lloyd iterations from the given centers, updating them in
// place, and weighs the final clusters.
func converge(pixels, centers []color.Color, opts Options) []Centroid {
	for iter := 0; iter < opts.MaxIterations; iter++ {
		sums := make([][3]int, len(centers))
		counts := make([]int, len(centers))
		for _, p := range pixels {
			j := nearest(p, centers)
			sums[j][0] += int(p.R)
			sums[j][1] += int(p.G)
			sums[j][2] += int(p.B)
			counts[j]++
		}

		moved := false
		for j := range centers {
			if counts[j] == 0 {
				continue
			}
			n := float64(counts[j])
			next := color.Color{
				R: uint8(math.Round(float64(sums[j][0]) / n)),
				G: uint8(math.Round(float64(sums[j][1]) / n)),
				B: uint8(math.Round(float64(sums[j][2]) / n)),
			}
			if color.Distance(centers[j], next) > opts.Tolerance {
				moved = true
			}
			centers[j] = next
		}
		if !moved {
			break
		}
	}

	return weigh(pixels, centers, opts)
}

// seed picks k distinct colors from pixels in random order.
func seed(pixels []color.Color, k int, rng *rand.Rand) []color.Color {
	seen := make(map[color.Color]struct{}, len(pixels))
	distinct := make([]color.Color, 0, len(pixels))
	for _, p := range pixels {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		distinct = append(distinct, p)
	}

	var order []int
	if rng != nil {
		order = rng.Perm(len(distinct))
	} else {
		order = rand.Perm(len(distinct))
	}

	k = min(k, len(distinct))
	centers := make([]color.Color, k)
	for i := range centers {
		centers[i] = distinct[order[i]]
	}
	return centers
}

func nearest(p color.Color, centers []color.Color) int {
	best, bestDist := 0, math.MaxFloat64
	for j, c := range centers {
		if d := color.Distance(p, c); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

func weigh(pixels, centers []color.Color, opts Options) []Centroid {
	step := 1
	if opts.Weighting == WeightSampled {
		step = opts.SampleStep
	}

	out := make([]Centroid, len(centers))
	for j, c := range centers {
		out[j].Color = c
	}

	total := 0
	for i := 0; i < len(pixels); i += step {
		out[nearest(pixels[i], centers)].Count++
		total++
	}
	for j := range out {
		out[j].Percentage = float64(out[j].Count) / float64(total) * 100
	}

	if opts.SortByWeight {
		slices.SortStableFunc(out, func(a, b Centroid) int {
			return b.Count - a.Count
		})
	}
	return out
}
