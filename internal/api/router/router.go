// Package router wires the HTTP surface: result order intake, the triage
// worklist and reports, and the JWT-guarded admin dashboard.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openclinic/clinic-ops/internal/http/handlers"
	httpmiddleware "github.com/openclinic/clinic-ops/internal/http/middleware"
	"github.com/openclinic/clinic-ops/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	ResultsHandler     *handlers.ResultsHandler
	DashboardHandler   *handlers.DashboardHandler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Per-IP rate limiting for the public surface. Zero disables it.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.ResultsHandler != nil {
		r.Route("/results", func(results chi.Router) {
			results.Post("/orders", cfg.ResultsHandler.CreateOrder)
			results.Post("/orders/{id}/lab", cfg.ResultsHandler.CompleteLab)
			results.Post("/orders/{id}/imaging", cfg.ResultsHandler.CompleteImaging)
			results.Get("/orders/{id}/classification", cfg.ResultsHandler.GetClassification)
			results.Get("/worklist", cfg.ResultsHandler.Worklist)
			results.Get("/reports/tat", cfg.ResultsHandler.TATReport)
		})
	}

	// Admin surface: dashboard KPIs and bulk export, behind the HMAC JWT.
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
		if cfg.DashboardHandler != nil {
			admin.Get("/dashboard/kpis", cfg.DashboardHandler.GetKPIs)
		}
		if cfg.ResultsHandler != nil {
			admin.Get("/results/export.csv", cfg.ResultsHandler.ExportCSV)
		}
	})

	return r
}
