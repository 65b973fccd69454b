package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aideepakchaudhary/chainmate/pkg/chainmate"
)

// NewRouter builds the HTTP API router.
func NewRouter(core *chainmate.Core, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recoveryMiddleware(logger))
	r.Use(requestLoggingMiddleware(logger))
	r.Use(metricsMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handler{core: core}

	r.Get("/api/health", h.health)
	r.Post("/api/chat", h.chat)
	r.Get("/api/portfolio", h.portfolio)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type handler struct {
	core *chainmate.Core
}
