package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gradecli/internal/config"
	apierrors "gradecli/internal/errors"
	"gradecli/internal/middleware"
	"gradecli/internal/services"
)

// RouterOptions carries the dependencies of the API router.
type RouterOptions struct {
	Config  config.Config
	Logger  *slog.Logger
	Service *services.RosterService
	Version string
}

// NewRouter assembles the API router: middleware chain, roster and
// analysis routes, liveness probe, and the Prometheus scrape endpoint.
func NewRouter(opts RouterOptions) chi.Router {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	opts.Service.RegisterMetrics(registry)

	errorHandler := apierrors.NewErrorHandler(opts.Logger, false)
	rosterHandler := NewRosterHandler(opts.Service, opts.Logger, errorHandler)
	analysisHandler := NewAnalysisHandler(opts.Service, errorHandler)
	healthHandler := NewHealthHandler(opts.Version)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(opts.Logger))
	r.Use(middleware.Recoverer(opts.Logger))
	r.Use(middleware.NewMetrics(registry).Handler)
	if opts.Config.Server.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(
			opts.Config.Server.RateLimitRPS,
			opts.Config.Server.RateLimitBurst,
			opts.Logger,
		).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Mount("/roster", rosterHandler.Routes())
		r.Mount("/analysis", analysisHandler.Routes())
	})

	r.Get("/healthz", healthHandler.Healthz)
	r.Method("GET", "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
