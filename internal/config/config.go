// Package config loads pipetka.hcl and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pipetka/pipetka/internal/cluster"
	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/names"
	"github.com/zclconf/go-cty/cty"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "pipetka.hcl"

// Config is the fully resolved configuration.
type Config struct {
	Server     Server
	Clustering Clustering
	// Names are custom color names, in file order.
	Names []names.Entry
}

// Server configures the HTTP API.
type Server struct {
	Addr           string
	AllowedOrigins []string
}

// Clustering holds the k-means settings used for image extraction.
type Clustering struct {
	Colors        int
	MaxIterations int
	Tolerance     float64
	SampleStep    int
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Clustering: Clustering{
			Colors:        6,
			MaxIterations: cluster.DefaultMaxIterations,
			Tolerance:     cluster.DefaultTolerance,
			SampleStep:    cluster.DefaultSampleStep,
		},
	}
}

// Dictionary returns the CSS colors extended with the custom names.
func (c *Config) Dictionary() names.Dictionary {
	return names.CSS().With(c.Names...)
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return errors.New("server.addr must not be empty")
	case c.Clustering.Colors < 1 || c.Clustering.Colors > 32:
		return fmt.Errorf("clustering.colors must be between 1 and 32, got %d", c.Clustering.Colors)
	case c.Clustering.MaxIterations < 1:
		return fmt.Errorf("clustering.max_iterations must be positive, got %d", c.Clustering.MaxIterations)
	case c.Clustering.Tolerance <= 0:
		return fmt.Errorf("clustering.tolerance must be positive, got %g", c.Clustering.Tolerance)
	case c.Clustering.SampleStep < 1:
		return fmt.Errorf("clustering.sample_step must be positive, got %d", c.Clustering.SampleStep)
	}
	return nil
}

// namesBlock wraps the names block for gohcl decoding.
type namesBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// rawConfig captures the names block first; the rest is decoded once the
// names are known.
type rawConfig struct {
	Names  *namesBlock `hcl:"names,block"`
	Remain hcl.Body    `hcl:",remain"`
}

type serverBlock struct {
	Addr           *string  `hcl:"addr,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional"`
}

type clusteringBlock struct {
	Colors        *int     `hcl:"colors,optional"`
	MaxIterations *int     `hcl:"max_iterations,optional"`
	Tolerance     *float64 `hcl:"tolerance,optional"`
	SampleStep    *int     `hcl:"sample_step,optional"`
}

type resolvedConfig struct {
	Server     *serverBlock     `hcl:"server,block"`
	Clustering *clusteringBlock `hcl:"clustering,block"`
}

// Load reads the config file at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// First pass: names, which may reference earlier names.
	var raw rawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding names: %s", diags.Error())
	}

	cfg := Default()
	if raw.Names != nil {
		body, ok := raw.Names.Entries.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("names block is not an hclsyntax.Body")
		}
		entries, err := parseNames(body)
		if err != nil {
			return nil, fmt.Errorf("parsing names: %w", err)
		}
		cfg.Names = entries
	}

	// Second pass: everything else, with names in scope.
	var resolved resolvedConfig
	if diags := gohcl.DecodeBody(raw.Remain, EvalContext(cfg.Names), &resolved); diags.HasErrors() {
		return nil, fmt.Errorf("decoding: %s", diags.Error())
	}
	resolved.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r resolvedConfig) apply(cfg *Config) {
	if s := r.Server; s != nil {
		if s.Addr != nil {
			cfg.Server.Addr = *s.Addr
		}
		if s.AllowedOrigins != nil {
			cfg.Server.AllowedOrigins = s.AllowedOrigins
		}
	}
	if c := r.Clustering; c != nil {
		if c.Colors != nil {
			cfg.Clustering.Colors = *c.Colors
		}
		if c.MaxIterations != nil {
			cfg.Clustering.MaxIterations = *c.MaxIterations
		}
		if c.Tolerance != nil {
			cfg.Clustering.Tolerance = *c.Tolerance
		}
		if c.SampleStep != nil {
			cfg.Clustering.SampleStep = *c.SampleStep
		}
	}
}

// parseNames evaluates the names block in source order so each attribute
// can refer to the ones above it as names.<name>.
func parseNames(body *hclsyntax.Body) ([]names.Entry, error) {
	if len(body.Blocks) > 0 {
		b := body.Blocks[0]
		return nil, fmt.Errorf("%s: nested blocks are not allowed in names", b.DefRange().String())
	}

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	slices.SortFunc(attrs, func(a, b *hclsyntax.Attribute) int {
		return a.SrcRange.Start.Byte - b.SrcRange.Start.Byte
	})

	var entries []names.Entry
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(EvalContext(entries))
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %s: %s", attr.Name, diags.Error())
		}
		if val.Type() != cty.String || val.IsNull() {
			return nil, fmt.Errorf("%s: expected a color string, got %s", attr.Name, val.Type().FriendlyName())
		}
		c, ok := color.ParseColor(val.AsString())
		if !ok {
			return nil, fmt.Errorf("%s: invalid color %q", attr.Name, val.AsString())
		}
		entries = append(entries, names.Entry{Name: attr.Name, Color: c})
	}
	return entries, nil
}
