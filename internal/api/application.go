// Package api serves the color tools as a JSON HTTP API.
package api

import (
	"math/rand/v2"

	"github.com/pipetka/pipetka/internal/config"
	"github.com/pipetka/pipetka/internal/engine"
	"github.com/pipetka/pipetka/internal/extract"
	"github.com/pipetka/pipetka/internal/names"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pipetka.api")

// Config is the runtime configuration of the API server.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Clustering     config.Clustering
	// MaxUploadBytes bounds POST /v1/extract bodies.
	MaxUploadBytes int64
}

// Application holds the dependencies shared by every handler.
type Application struct {
	Config     Config
	Dictionary names.Dictionary
	Engine     *engine.Engine
	// Seed, when non-zero, makes extraction results reproducible.
	Seed uint64
}

const defaultMaxUpload = 10 << 20

// NewApplication builds an Application from a loaded config file.
// templatesDir may be empty to serve only the built-in export formats.
func NewApplication(cfg *config.Config, templatesDir string) *Application {
	return &Application{
		Config: Config{
			Addr:           cfg.Server.Addr,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Clustering:     cfg.Clustering,
			MaxUploadBytes: defaultMaxUpload,
		},
		Dictionary: cfg.Dictionary(),
		Engine:     &engine.Engine{TemplatesDir: templatesDir},
	}
}

// Extractor returns a fresh Extractor configured from the clustering
// settings. Its rand source is not safe to share, so call it per request.
func (app *Application) Extractor() extract.Extractor {
	e := extract.Extractor{
		MaxIterations: app.Config.Clustering.MaxIterations,
		Tolerance:     app.Config.Clustering.Tolerance,
		SampleStep:    app.Config.Clustering.SampleStep,
		Names:         app.Dictionary,
	}
	if app.Seed != 0 {
		e.Rand = rand.New(rand.NewPCG(app.Seed, app.Seed))
	}
	return e
}
