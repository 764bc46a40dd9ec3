package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pipetka/pipetka"
	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/contrast"
	"github.com/pipetka/pipetka/internal/engine"
	"github.com/pipetka/pipetka/internal/extract"
	"github.com/pipetka/pipetka/internal/names"
	"github.com/pipetka/pipetka/internal/palette"
	"github.com/pipetka/pipetka/internal/vision"
)

const (
	defaultNameLimit = pipetka.NameCount
	maxNameLimit     = 20
	defaultSteps     = 5
	maxSteps         = 256
	maxShades        = 20
	maxExportColors  = 64
)

// exportContentTypes maps built-in export formats to response types. User
// templates are served as plain text.
var exportContentTypes = map[string]string{
	"css":      "text/css; charset=utf-8",
	"scss":     "text/x-scss; charset=utf-8",
	"json":     "application/json",
	"tailwind": "text/javascript; charset=utf-8",
}

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "PipetkaOnline API")
}

// parseColorParam reads a required color from the query string.
func parseColorParam(r *http.Request, key string) (color.Color, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return color.Color{}, fmt.Errorf("missing %q parameter", key)
	}
	c, ok := color.ParseColor(raw)
	if !ok {
		return color.Color{}, fmt.Errorf("%s: %w %q", key, color.ErrInvalidHex, raw)
	}
	return c, nil
}

// intParam reads an optional integer in [lo, hi].
func intParam(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, lo, hi, n)
	}
	return n, nil
}

func hexes(colors []color.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}

// GET /v1/colors/describe?color=
func (app *Application) describeColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	c, err := parseColorParam(r, "color")
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pipetka.Describe(c, app.Dictionary))
}

type contrastResponse struct {
	contrast.Result
	BestText string `json:"bestText"`
	// Suggestion is a foreground near the requested one that passes AA for
	// normal text. Omitted when the pair already passes.
	Suggestion string `json:"suggestion,omitempty"`
}

// GET /v1/contrast?fg=&bg=
func (app *Application) checkContrast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	fg, err := parseColorParam(r, "fg")
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}
	bg, err := parseColorParam(r, "bg")
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}

	resp := contrastResponse{
		Result:   contrast.Evaluate(fg, bg),
		BestText: contrast.BestText(bg).Hex(),
	}
	if !resp.Levels.AANormal {
		if s, ok := contrast.Suggest(fg, bg, contrast.MinAANormal); ok {
			resp.Suggestion = s.Hex()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /v1/names?color=&limit=&metric=
func (app *Application) closestNames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	c, err := parseColorParam(r, "color")
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}
	limit, err := intParam(r, "limit", defaultNameLimit, 1, maxNameLimit)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	metric := color.MetricDeltaE
	if v := r.URL.Query().Get("metric"); v != "" {
		if metric, err = color.ParseMetric(v); err != nil {
			app.badRequest(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, names.ClosestBy(c, app.Dictionary, limit, metric))
}

type paletteResponse struct {
	Base   string   `json:"base"`
	Scheme string   `json:"scheme"`
	Colors []string `json:"colors"`
	Shades []string `json:"shades,omitempty"`
}

// GET /v1/palette?color=&scheme=&shades=
func (app *Application) harmony(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	base, err := parseColorParam(r, "color")
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}
	scheme := r.URL.Query().Get("scheme")
	if scheme == "" {
		scheme = palette.Complementary
	}
	colors, err := palette.Harmony(base, scheme)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("%w (valid: %s)", err, strings.Join(palette.Schemes(), ", ")))
		return
	}
	shades, err := intParam(r, "shades", 0, 0, maxShades)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, paletteResponse{
		Base:   base.Hex(),
		Scheme: scheme,
		Colors: hexes(colors),
		Shades: hexes(palette.Shades(base, shades)),
	})
}

// GET /v1/gradient?from=&to=&steps=&space=
func (app *Application) gradient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	from, err := parseColorParam(r, "from")
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}
	to, err := parseColorParam(r, "to")
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}
	steps, err := intParam(r, "steps", defaultSteps, 2, maxSteps)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	colors, err := palette.Gradient(from, to, steps, r.URL.Query().Get("space"))
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hexes(colors))
}

type visionResponse struct {
	Color       string            `json:"color"`
	Simulations map[string]string `json:"simulations"`
}

// GET /v1/vision?color=&kind=
// Without kind, every deficiency is simulated.
func (app *Application) simulateVision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	c, err := parseColorParam(r, "color")
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}

	kinds := vision.Kinds
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind, err := vision.ParseKind(raw)
		if err != nil {
			app.badRequest(w, r, err)
			return
		}
		kinds = []vision.Kind{kind}
	}

	resp := visionResponse{Color: c.Hex(), Simulations: make(map[string]string, len(kinds))}
	for _, k := range kinds {
		resp.Simulations[string(k)] = vision.Simulate(c, k).Hex()
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /v1/extract?mode=&colors=
// The image is read from the multipart field "image".
func (app *Application) extractColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}
	mode, err := extract.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	k, err := intParam(r, "colors", app.Config.Clustering.Colors, 1, 32)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	limit := app.Config.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUpload
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	file, header, err := r.FormFile("image")
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("reading multipart field \"image\": %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("reading upload: %w", err))
		return
	}
	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}

	img, err := extract.Decode(bytes.NewReader(data), mime)
	if errors.Is(err, extract.ErrUnsupportedType) {
		app.unsupportedMediaType(w, r, err)
		return
	}
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	result, err := app.Extractor().Run(img, mode, k)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// parseColorList splits a comma-separated list of colors. Duplicates are
// dropped. rgb() and hsl() values contain commas, so hex and CSS names are
// the only accepted notations here.
func parseColorList(raw string) ([]color.Color, error) {
	var out []color.Color
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, ok := color.ParseColor(part)
		if !ok {
			return nil, fmt.Errorf("%w %q", color.ErrInvalidHex, part)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, errors.New(`missing "colors" parameter`)
	}
	return palette.Unique(out), nil
}

// GET /v1/export?colors=&format=&name=
func (app *Application) exportPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	q := r.URL.Query()
	colors, err := parseColorList(q.Get("colors"))
	if err != nil {
		app.invalidColor(w, r, err)
		return
	}
	if len(colors) > maxExportColors {
		app.badRequest(w, r, fmt.Errorf("at most %d colors can be exported, got %d", maxExportColors, len(colors)))
		return
	}

	format := q.Get("format")
	if format == "" {
		format = "css"
	}
	name := q.Get("name")
	if name == "" {
		name = "palette"
	}

	var buf bytes.Buffer
	err = app.Engine.Render(format, &buf, engine.NewPalette(name, colors, app.Dictionary))
	if errors.Is(err, engine.ErrUnknownTemplate) {
		app.badRequest(w, r, err)
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	contentType, ok := exportContentTypes[format]
	if !ok {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
