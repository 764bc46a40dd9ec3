// Package engine exports palettes through Go templates.
package engine

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/names"
)

//go:embed templates/*.tmpl
var builtinFS embed.FS

// builtin output file names, keyed by template name.
var builtinOutputs = map[string]string{
	"css":      "palette.css",
	"scss":     "_palette.scss",
	"json":     "palette.json",
	"tailwind": "tailwind.config.js",
}

// ErrUnknownTemplate is returned for a format with no built-in or user template.
var ErrUnknownTemplate = errors.New("unknown template")

// Swatch is a named palette entry.
type Swatch struct {
	Name  string
	Color color.Color
}

// Palette is the data passed to templates.
type Palette struct {
	Name   string
	Colors []Swatch
}

// Lookup returns the color of the swatch with the given name.
func (p Palette) Lookup(name string) (color.Color, bool) {
	for _, s := range p.Colors {
		if s.Name == name {
			return s.Color, true
		}
	}
	return color.Color{}, false
}

// NewPalette names each color after its closest entry in dict. Repeated
// names get a numeric suffix ("red", "red-2").
func NewPalette(name string, colors []color.Color, dict names.Dictionary) Palette {
	p := Palette{Name: name, Colors: make([]Swatch, len(colors))}
	used := make(map[string]int)
	for i, c := range colors {
		label := fmt.Sprintf("color-%d", i+1)
		if m := names.Closest(c, dict, 1); len(m) > 0 {
			label = m[0].Name
		}
		used[label]++
		if n := used[label]; n > 1 {
			label = fmt.Sprintf("%s-%d", label, n)
		}
		p.Colors[i] = Swatch{Name: label, Color: c}
	}
	return p
}

// Engine loads the built-in templates plus any .tmpl files in TemplatesDir
// and executes them against a Palette. A user template named like a
// built-in one replaces it.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Formats      []string // if non-empty, only render these template names
}

type source struct {
	text   string
	output string
}

// Templates returns the names of every available template, sorted.
func (e *Engine) Templates() ([]string, error) {
	sources, err := e.load()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(sources))
	for name := range sources {
		out = append(out, name)
	}
	slices.Sort(out)
	return out, nil
}

// Render executes the named template with p and writes the result to w.
func (e *Engine) Render(name string, w io.Writer, p Palette) error {
	sources, err := e.load()
	if err != nil {
		return err
	}
	src, ok := sources[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTemplate, name)
	}
	return execute(name, src.text, w, p)
}

// Run renders every selected template into OutputDir.
func (e *Engine) Run(p Palette) error {
	sources, err := e.load()
	if err != nil {
		return err
	}
	for _, name := range e.Formats {
		if _, ok := sources[name]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownTemplate, name)
		}
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for name, src := range sources {
		if !e.shouldRender(name) {
			continue
		}
		if err := e.renderFile(name, src, p); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Formats) == 0 {
		return true
	}
	return slices.Contains(e.Formats, name)
}

func (e *Engine) renderFile(name string, src source, p Palette) error {
	outPath := filepath.Join(e.OutputDir, src.output)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	return execute(name, src.text, f, p)
}

func (e *Engine) load() (map[string]source, error) {
	sources := make(map[string]source, len(builtinOutputs))
	for name, output := range builtinOutputs {
		text, err := builtinFS.ReadFile("templates/" + name + ".tmpl")
		if err != nil {
			return nil, fmt.Errorf("reading built-in template %s: %w", name, err)
		}
		sources[name] = source{text: string(text), output: output}
	}

	if e.TemplatesDir == "" {
		return sources, nil
	}
	matches, err := filepath.Glob(filepath.Join(e.TemplatesDir, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}
	for _, path := range matches {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".tmpl")
		output := name
		if builtin, ok := builtinOutputs[name]; ok {
			output = builtin
		}
		sources[name] = source{text: string(text), output: output}
	}
	return sources, nil
}

func execute(name, text string, w io.Writer, p Palette) error {
	tmpl, err := template.New(name).Funcs(funcMap(p)).Parse(text)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}
	if err := tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	return nil
}

// funcMap builds the template functions. Color arguments may be a
// color.Color or the name of a swatch in p.
func funcMap(p Palette) template.FuncMap {
	resolve := func(v any) (color.Color, error) {
		switch v := v.(type) {
		case color.Color:
			return v, nil
		case string:
			if c, ok := p.Lookup(v); ok {
				return c, nil
			}
			if c, ok := color.ParseColor(v); ok {
				return c, nil
			}
			return color.Color{}, fmt.Errorf("color not found: %s", v)
		default:
			return color.Color{}, fmt.Errorf("expected color or name, got %T", v)
		}
	}
	format := func(f func(color.Color) string) func(any) (string, error) {
		return func(v any) (string, error) {
			c, err := resolve(v)
			if err != nil {
				return "", err
			}
			return f(c), nil
		}
	}

	return template.FuncMap{
		"hex":     format(color.Color.Hex),
		"hexBare": format(color.Color.HexBare),
		"rgb":     format(color.Color.RGB),
		"hsl":     format(color.Color.HSLString),
		"slug":    Slug,
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and joins its alphanumeric runs with dashes, e.g.
// "Vivid Red" becomes "vivid-red".
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
