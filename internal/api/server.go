package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Serve listens on Config.Addr until SIGINT or SIGTERM, then drains
// in-flight requests for up to five seconds.
func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:         app.Config.Addr,
		Handler:      app.BuildRoutes(http.NewServeMux()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	shutdownErr := make(chan error)

	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
		s := <-shutdown
		log.Infof("shutting down server with signal %v", s)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	log.Noticef("starting server on %s", app.Config.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return err
	}

	log.Noticef("stopped server %s", app.Config.Addr)
	return nil
}
