// Package extract pulls representative colors out of images.
package extract

import (
	"context"
	"fmt"
	"image"
	stdcolor "image/color"
	"math/rand/v2"

	"github.com/pipetka/pipetka/internal/cluster"
	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/contrast"
	"github.com/pipetka/pipetka/internal/names"
	"github.com/pipetka/pipetka/internal/semantic"
	"golang.org/x/sync/errgroup"
)

const (
	// MinAlpha is the lowest alpha a pixel needs to be sampled.
	MinAlpha = 125

	DefaultPixelStep = 5
)

// Mode selects an extraction preset.
type Mode string

const (
	ModeDominant Mode = "dominant"
	ModeBrand    Mode = "brand"
	ModePalette  Mode = "palette"
)

// ParseMode validates a mode name. The empty string selects ModeDominant.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDominant:
		return ModeDominant, nil
	case ModeBrand, ModePalette:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown extraction mode %q", s)
}

// Swatch is one extracted color and its share of the sampled pixels.
type Swatch struct {
	Color      color.Color `json:"-"`
	Hex        string      `json:"hex"`
	RGB        string      `json:"rgb"`
	Percentage float64     `json:"percentage"`
}

// BrandColor is a swatch annotated for brand analysis.
type BrandColor struct {
	Swatch
	Family    semantic.Family `json:"family"`
	Tone      semantic.Tone   `json:"tone"`
	Name      string          `json:"name"`
	TextColor string          `json:"textColor"`
}

// Result holds the output of one extraction. Brand is only set in
// ModeBrand; Swatches is always set.
type Result struct {
	Mode     Mode         `json:"mode"`
	Swatches []Swatch     `json:"swatches"`
	Brand    []BrandColor `json:"brand,omitempty"`
}

// Sample collects every step-th pixel of img in row-major order, skipping
// pixels with alpha below MinAlpha. A step below 1 is treated as 1.
func Sample(img image.Image, step int) []color.Color {
	if step < 1 {
		step = 1
	}
	b := img.Bounds()
	pixels := make([]color.Color, 0, b.Dx()*b.Dy()/step+1)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if i%step == 0 {
				px := stdcolor.NRGBAModel.Convert(img.At(x, y)).(stdcolor.NRGBA)
				if px.A >= MinAlpha {
					pixels = append(pixels, color.Color{R: px.R, G: px.G, B: px.B})
				}
			}
			i++
		}
	}
	return pixels
}

// Extractor runs the clustering presets over images. The zero value is
// ready to use.
type Extractor struct {
	PixelStep     int
	MaxIterations int
	Tolerance     float64
	SampleStep    int
	// Names is used to label brand colors. Nil means the CSS colors.
	Names names.Dictionary
	// Rand makes extraction reproducible. It must not be shared between
	// goroutines.
	Rand *rand.Rand
}

func (e Extractor) options(o cluster.Options) cluster.Options {
	o.MaxIterations = e.MaxIterations
	o.Tolerance = e.Tolerance
	o.SampleStep = e.SampleStep
	o.Rand = e.Rand
	return o
}

func (e Extractor) pixels(img image.Image) []color.Color {
	step := e.PixelStep
	if step <= 0 {
		step = DefaultPixelStep
	}
	return Sample(img, step)
}

// Dominant returns up to k colors ordered by how many pixels they cover.
func (e Extractor) Dominant(img image.Image, k int) []Swatch {
	return swatches(cluster.KMeans(e.pixels(img), e.options(cluster.Dominant(k))))
}

// Palette returns up to k colors for an extended palette, in seed order.
func (e Extractor) Palette(img image.Image, k int) []Swatch {
	return swatches(cluster.KMeans(e.pixels(img), e.options(cluster.Extended(k))))
}

// Brand returns up to k colors with family, tone, nearest name and a
// readable text color for each.
func (e Extractor) Brand(img image.Image, k int) []BrandColor {
	dict := e.Names
	if dict == nil {
		dict = names.CSS()
	}

	sw := swatches(cluster.KMeans(e.pixels(img), e.options(cluster.Brand(k))))
	out := make([]BrandColor, len(sw))
	for i, s := range sw {
		hsl := color.RGBToHSL(s.Color).Rounded()
		bc := BrandColor{
			Swatch:    s,
			Family:    semantic.HueFamily(hsl.H, hsl.S, hsl.L),
			Tone:      semantic.ClassifyTone(hsl.L),
			TextColor: contrast.BestText(s.Color).Hex(),
		}
		if m := names.Closest(s.Color, dict, 1); len(m) > 0 {
			bc.Name = m[0].Name
		}
		out[i] = bc
	}
	return out
}

// Run extracts k colors from img with the given mode.
func (e Extractor) Run(img image.Image, mode Mode, k int) (Result, error) {
	res := Result{Mode: mode}
	switch mode {
	case ModeDominant:
		res.Swatches = e.Dominant(img, k)
	case ModePalette:
		res.Swatches = e.Palette(img, k)
	case ModeBrand:
		res.Brand = e.Brand(img, k)
		res.Swatches = make([]Swatch, len(res.Brand))
		for i, b := range res.Brand {
			res.Swatches[i] = b.Swatch
		}
	default:
		return Result{}, fmt.Errorf("unknown extraction mode %q", mode)
	}
	return res, nil
}

// Batch runs Dominant over several images with at most limit running at
// once (limit <= 0 means no limit). Results keep input order. When e.Rand is
// set, each image gets its own source seeded from it.
func (e Extractor) Batch(ctx context.Context, images []image.Image, k, limit int) ([][]Swatch, error) {
	results := make([][]Swatch, len(images))

	extractors := make([]Extractor, len(images))
	for i := range images {
		extractors[i] = e
		if e.Rand != nil {
			extractors[i].Rand = rand.New(rand.NewPCG(e.Rand.Uint64(), uint64(i)))
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, img := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			results[i] = extractors[i].Dominant(img, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch extract: %w", err)
	}
	return results, nil
}

func swatches(centroids []cluster.Centroid) []Swatch {
	out := make([]Swatch, len(centroids))
	for i, c := range centroids {
		out[i] = Swatch{
			Color:      c.Color,
			Hex:        c.Color.Hex(),
			RGB:        c.Color.RGB(),
			Percentage: c.Percentage,
		}
	}
	return out
}
