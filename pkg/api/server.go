// Package api exposes the snapshot archive over HTTP.
//
// All routes under /api/v1 require an X-API-Key header. Prometheus metrics
// are served unauthenticated at /metrics for scraping.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(store SnapshotArchive, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(store, config, metrics)

	r := NewRouter(server, metrics, config)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting binq snapshot server on %s\n", addr)
	fmt.Printf("Metrics available at: http://localhost:%d/metrics\n", config.Port)
	return http.ListenAndServe(addr, r)
}

// NewRouter builds the chi router for the given server. Split out from
// StartServer so tests can drive the full middleware stack through
// httptest without binding a port.
func NewRouter(server *Server, metrics *Metrics, config ServerConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "X-Binq-Revision"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireAPIKey(config.APIKey, metrics))

		instrument := func(method, endpoint string, h http.HandlerFunc) http.HandlerFunc {
			if metrics == nil {
				return h
			}
			return metrics.InstrumentHandler(method, endpoint, h)
		}

		// Health check
		r.Get("/health", instrument("GET", "/api/v1/health", server.handleHealth))

		// Snapshot operations
		r.Put("/snapshots/{name}", instrument("PUT", "/api/v1/snapshots/{name}", server.handleUpload))
		r.Get("/snapshots/{name}", instrument("GET", "/api/v1/snapshots/{name}", server.handleFetch))
		r.Delete("/snapshots/{name}", instrument("DELETE", "/api/v1/snapshots/{name}", server.handleDelete))
		r.Get("/snapshots/{name}/verify", instrument("GET", "/api/v1/snapshots/{name}/verify", server.handleVerify))
		r.Get("/snapshots/{name}/revisions", instrument("GET", "/api/v1/snapshots/{name}/revisions", server.handleRevisions))
		r.Get("/snapshots", instrument("GET", "/api/v1/snapshots", server.handleList))

		// Diagnostics
		r.Get("/stats", instrument("GET", "/api/v1/stats", server.handleStats))
	})

	return r
}
