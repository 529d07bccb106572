// Package api exposes the calculation engine as a JSON service. The
// service is a caller of the engine like any other: it validates nothing
// itself and trusts the result-carried diagnostics for error reporting.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/piechiang/taxengine/internal/calculation"
	"github.com/piechiang/taxengine/internal/rules"
)

// Server holds the shared engine and the read-only rule registry. The
// registry is safe to share across requests because rule sets are
// immutable after registration.
type Server struct {
	Engine   *calculation.Engine
	Registry *rules.Registry
}

// NewServer creates a server around an engine and registry.
func NewServer(engine *calculation.Engine, registry *rules.Registry) *Server {
	return &Server{Engine: engine, Registry: registry}
}

// NewRouter creates the router with middleware and all routes.
func NewRouter(s *Server) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.Health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.Calculate)
		r.Get("/rules", s.ListRules)
		r.Get("/rules/{year}", s.GetRuleYear)
	})

	return r
}
