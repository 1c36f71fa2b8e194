package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/job-bracket/docs"
	"github.com/Dosada05/job-bracket/handlers"
	"github.com/Dosada05/job-bracket/metrics"
	"github.com/Dosada05/job-bracket/middleware"
)

type Options struct {
	TournamentHandler *handlers.TournamentHandler
	WebSocketHandler  *handlers.WebSocketHandler
	Sessions          *middleware.SessionManager
	RateLimiter       *middleware.RateLimiter
	Metrics           *metrics.Metrics
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	// ExportDir is the local export root; its exports/ tree is served as static files.
	ExportDir string
}

func SetupRoutes(router chi.Router, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.Metrics != nil {
		router.Use(middleware.Instrument(opts.Metrics))
	}

	limit := func(next http.Handler) http.Handler { return next }
	if opts.RateLimiter != nil {
		limit = opts.RateLimiter.Limit
	}

	router.Get("/healthz", handlers.HealthHandler)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.ExportDir != "" {
		router.Handle("/exports/*", http.FileServer(http.Dir(opts.ExportDir)))
	}

	th := opts.TournamentHandler
	router.Route("/api/v1/tournaments", func(r chi.Router) {
		r.With(limit).Post("/", th.StartHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Use(opts.Sessions.RequireSession)

			r.Get("/", th.GetHandler)
			r.Get("/progress", th.ProgressHandler)
			r.Get("/matches", th.MatchesHandler)
			r.Get("/standings", th.StandingsHandler)
			r.Get("/results", th.ResultsHandler)

			r.Group(func(r chi.Router) {
				r.Use(limit)

				r.Post("/selections", th.SelectWinnerHandler)
				r.Post("/undo", th.UndoHandler)
				r.Post("/export", th.ExportHandler)
				r.Delete("/", th.AbandonHandler)
			})
		})
	})

	if opts.WebSocketHandler != nil {
		router.With(opts.Sessions.RequireSession).Get("/ws/tournaments/{tournamentID}", opts.WebSocketHandler.ServeWs)
	}
}
