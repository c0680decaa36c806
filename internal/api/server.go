// SPDX-License-Identifier: MIT

// Package api implements the HTTP surface of the behavioural engine: the
// session lifecycle endpoints under /v1, the support and marketing helpers,
// and the system endpoints for uptime checks.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/titanx/halo/internal/api/middleware"
	"github.com/titanx/halo/internal/config"
	"github.com/titanx/halo/internal/health"
	"github.com/titanx/halo/internal/log"
	"github.com/titanx/halo/internal/session/engine"
)

// maxBodyBytes bounds request bodies. Session payloads are small JSON
// documents, anything larger is abuse.
const maxBodyBytes = 1 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	cfg    config.AppConfig
	engine *engine.Engine
	health *health.Manager
	logger zerolog.Logger
}

// New constructs a Server. The health manager may already carry registered
// checkers; the server only serves it.
func New(cfg config.AppConfig, eng *engine.Engine, hm *health.Manager) *Server {
	return &Server{
		cfg:    cfg,
		engine: eng,
		health: hm,
		logger: log.WithComponent("api"),
	}
}

// Routes builds the full router with the canonical middleware stack applied.
func (s *Server) Routes() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableCORS:            len(s.cfg.AllowedOrigins) > 0,
		AllowedOrigins:        s.cfg.AllowedOrigins,
		EnableSecurityHeaders: true,
		EnableMetrics:         s.cfg.MetricsEnabled,
		TracingService:        s.tracingService(),
		EnableLogging:         true,
		EnableRateLimit:       s.cfg.RateLimitEnabled,
		RateLimitRPS:          s.cfg.RateLimitRPS,
	})

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/healthz", health.NewHealthHandler(s.health))
	r.Get("/readyz", health.NewReadyHandler(s.health))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/start", s.handleStart)
		r.Post("/event", s.handleEvent)
		r.Post("/end", s.handleEnd)
		r.Post("/support/ask", s.handleSupportAsk)
		r.Post("/marketing/generate", s.handleMarketingGenerate)
	})

	return r
}

func (s *Server) tracingService() string {
	if !s.cfg.TracingEnabled {
		return ""
	}
	return s.cfg.LogService
}
