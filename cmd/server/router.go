package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/assetdesk/metagen/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/process", app.handler.ProcessBatch)
		r.Get("/batches/{id}", app.handler.GetBatch)
		r.Get("/download/{id}", app.handler.DownloadBatch)
		r.Get("/health", app.handler.Health)
	})

	// Plain health check for load balancers that expect a root-level path.
	r.Get("/health", app.handler.Health)

	return r
}
