package cluster

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pipetka/pipetka/internal/color"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// twoBlobs returns 30 reddish and 10 bluish pixels.
func twoBlobs() []color.Color {
	var px []color.Color
	for i := 0; i < 30; i++ {
		px = append(px, color.Color{R: uint8(240 + i%10), G: uint8(i % 5), B: 10})
	}
	for i := 0; i < 10; i++ {
		px = append(px, color.Color{R: 5, G: 10, B: uint8(200 + i)})
	}
	return px
}

func TestKMeans_EmptyInput(t *testing.T) {
	if got := KMeans(nil, Dominant(3)); got != nil {
		t.Errorf("KMeans(nil) = %v, want nil", got)
	}
	if got := KMeans(twoBlobs(), Options{K: 0}); got != nil {
		t.Errorf("KMeans(K=0) = %v, want nil", got)
	}
}

func TestKMeans_ClusterCount(t *testing.T) {
	tests := []struct {
		name   string
		pixels []color.Color
		k      int
		want   int
	}{
		{"fewer distinct than k", []color.Color{{R: 1}, {R: 1}, {G: 2}}, 5, 2},
		{"single color", []color.Color{{B: 9}, {B: 9}, {B: 9}}, 3, 1},
		{"k smaller than distinct", twoBlobs(), 2, 2},
		{"k equals distinct", []color.Color{{R: 1}, {G: 1}, {B: 1}}, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(0); seed < 20; seed++ {
				opts := Brand(tt.k)
				opts.Rand = seeded(seed)
				if got := KMeans(tt.pixels, opts); len(got) != tt.want {
					t.Fatalf("seed %d: got %d clusters, want %d", seed, len(got), tt.want)
				}
			}
		})
	}
}

func TestKMeans_Unseeded(t *testing.T) {
	for run := 0; run < 10; run++ {
		got := KMeans(twoBlobs(), Dominant(4))
		if len(got) != 4 {
			t.Fatalf("run %d: got %d clusters, want 4", run, len(got))
		}
		total := 0.0
		for _, c := range got {
			total += c.Percentage
		}
		if math.Abs(total-100) > 1e-9 {
			t.Errorf("run %d: percentages sum to %f, want 100", run, total)
		}
	}
}

func TestKMeans_SeparatesBlobs(t *testing.T) {
	opts := Dominant(2)
	opts.Rand = seeded(42)
	got := KMeans(twoBlobs(), opts)

	if len(got) != 2 {
		t.Fatalf("got %d clusters, want 2", len(got))
	}
	red, blue := got[0], got[1]
	if red.Color.R < 200 || blue.Color.B < 190 {
		t.Errorf("unexpected centroids %v and %v", red.Color, blue.Color)
	}
	if red.Count != 30 || blue.Count != 10 {
		t.Errorf("counts = %d, %d; want 30, 10", red.Count, blue.Count)
	}
	if math.Abs(red.Percentage-75) > 1e-9 {
		t.Errorf("red percentage = %f, want 75", red.Percentage)
	}
}

func TestKMeans_SeededIsReproducible(t *testing.T) {
	px := twoBlobs()
	for i := 0; i < 50; i++ {
		px = append(px, color.Color{R: uint8(i * 5), G: uint8(255 - i*5), B: uint8(i)})
	}

	run := func() []Centroid {
		opts := Brand(5)
		opts.Rand = seeded(7)
		return KMeans(px, opts)
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("seeded runs differ (-first +second):\n%s", diff)
	}
}

func TestKMeans_SortByWeight(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		opts := Dominant(3)
		opts.Rand = seeded(seed)
		got := KMeans(twoBlobs(), opts)
		for i := 1; i < len(got); i++ {
			if got[i].Count > got[i-1].Count {
				t.Fatalf("seed %d: result not sorted by weight: %+v", seed, got)
			}
		}
	}
}

func TestKMeans_SampledWeighting(t *testing.T) {
	px := make([]color.Color, 100)
	for i := range px {
		if i%2 == 0 {
			px[i] = color.Color{R: 255}
		} else {
			px[i] = color.Color{B: 255}
		}
	}

	opts := Extended(2)
	opts.SampleStep = 4
	opts.Rand = seeded(1)
	got := KMeans(px, opts)

	total := 0
	for _, c := range got {
		total += c.Count
	}
	if total != 25 {
		t.Errorf("sampled %d pixels, want 25", total)
	}
	for _, c := range got {
		if c.Color == (color.Color{R: 255}) && c.Count != 25 {
			t.Errorf("every sampled pixel is red, got count %d", c.Count)
		}
	}
}

func TestKMeans_ChannelsInRange(t *testing.T) {
	px := []color.Color{
		{R: 255, G: 255, B: 255}, {R: 254, G: 255, B: 253},
		{}, {R: 1},
		{R: 128, G: 128, B: 128},
	}
	opts := Brand(3)
	opts.Rand = seeded(3)
	for _, c := range KMeans(px, opts) {
		// Color channels are uint8; the check guards the percentage invariant.
		if c.Percentage < 0 || c.Percentage > 100 {
			t.Errorf("percentage %f out of range", c.Percentage)
		}
	}
}

func TestKMeans_EmptyClusterKeepsCentroid(t *testing.T) {
	var pixels []color.Color
	for _, r := range []uint8{100, 30, 210, 110, 100, 180} {
		pixels = append(pixels, color.Color{R: r})
	}
	// The first center wins 110 and 180, moves to 145, then loses both.
	centers := []color.Color{{R: 180}, {R: 210}, {R: 30}}

	got := converge(pixels, centers, Brand(3).withDefaults())
	want := []Centroid{
		{Color: color.Color{R: 145}, Count: 0, Percentage: 0},
		{Color: color.Color{R: 195}, Count: 2, Percentage: 100.0 / 3},
		{Color: color.Color{R: 85}, Count: 4, Percentage: 200.0 / 3},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })); diff != "" {
		t.Errorf("converge() mismatch (-want +got):\n%s", diff)
	}
}
