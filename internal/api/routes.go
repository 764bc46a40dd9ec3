package api

import "net/http"

func (app *Application) BuildRoutes(mux *http.ServeMux) http.Handler {
	finalMux := http.NewServeMux()

	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/v1/colors/describe", app.describeColor)
	mux.HandleFunc("/v1/contrast", app.checkContrast)
	mux.HandleFunc("/v1/names", app.closestNames)
	mux.HandleFunc("/v1/palette", app.harmony)
	mux.HandleFunc("/v1/gradient", app.gradient)
	mux.HandleFunc("/v1/vision", app.simulateVision)
	mux.HandleFunc("/v1/extract", app.extractColors)
	mux.HandleFunc("/v1/export", app.exportPalette)

	finalMux.Handle("/", wrapMuxWithCorsAndOrigins(mux, app))

	return withRequestID(finalMux)
}
