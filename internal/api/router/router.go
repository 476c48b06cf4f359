package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pratik-mahalle/campwatch/internal/api/handlers"
	"github.com/pratik-mahalle/campwatch/internal/api/middleware"
	"github.com/pratik-mahalle/campwatch/internal/config"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/metrics"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Campaign   *handlers.CampaignHandler
	Trigger    *handlers.TriggerHandler
	Alert      *handlers.AlertHandler
	Metric     *handlers.MetricHandler
	Evaluation *handlers.EvaluationHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Health checks
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)

	// Prometheus metrics
	r.Handle("/metrics", metrics.Handler())

	// Campaigns
	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.Get("/", h.Campaign.List)
		r.Post("/", h.Campaign.Create)
		r.Get("/{id}", h.Campaign.Get)
		r.Put("/{id}", h.Campaign.Update)
		r.Delete("/{id}", h.Campaign.Delete)
	})

	// Triggers
	r.Route("/api/v1/triggers", func(r chi.Router) {
		r.Get("/", h.Trigger.List)
		r.Post("/", h.Trigger.Create)
		r.Post("/simulate", h.Trigger.Simulate)
		r.Get("/suggest", h.Trigger.SuggestThreshold)
		r.Get("/{id}", h.Trigger.Get)
		r.Put("/{id}", h.Trigger.Update)
		r.Delete("/{id}", h.Trigger.Delete)
		r.Post("/{id}/pause", h.Trigger.Pause)
		r.Post("/{id}/resume", h.Trigger.Resume)
	})

	// Alerts
	r.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/", h.Alert.List)
		r.Get("/stats", h.Alert.Stats)
		r.Get("/{id}", h.Alert.Get)
	})

	// Metric ingestion
	r.Post("/api/v1/metrics", h.Metric.Ingest)

	// On-demand evaluation pass
	r.Post("/api/v1/evaluate", h.Evaluation.Run)

	return r
}
