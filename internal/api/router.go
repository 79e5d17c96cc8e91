// Package api provides the HTTP API for the trip export service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/holidaymoo/tripsheet/internal/api/handler"
	"github.com/holidaymoo/tripsheet/internal/api/middleware"
	"github.com/holidaymoo/tripsheet/internal/api/models"
	"github.com/holidaymoo/tripsheet/internal/api/response"
	"github.com/holidaymoo/tripsheet/internal/report"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Exporter    *report.Exporter
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "tripsheet-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime)
	exportHandler := handler.NewExportHandler(cfg.Exporter)

	// Create rate limit middleware for different endpoint categories
	exportRateLimit := middleware.RateLimitByIP(middleware.ExportRateLimit)     // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Export endpoint - builds a whole workbook per call, strict rate limiting
		r.With(exportRateLimit).Post("/exports/trip", exportHandler.ExportTrip)
	})

	// Unknown routes get a problem+json 404 rather than chi's plain text
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		traceID := middleware.GetRequestID(req.Context())
		response.Error(w, req, models.NewNotFound(traceID, "resource not found"))
	})

	return r
}
