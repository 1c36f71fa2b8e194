package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/job-bracket/brackets"
	"github.com/Dosada05/job-bracket/catalog"
	"github.com/Dosada05/job-bracket/config"
	"github.com/Dosada05/job-bracket/handlers"
	"github.com/Dosada05/job-bracket/metrics"
	"github.com/Dosada05/job-bracket/middleware"
	api "github.com/Dosada05/job-bracket/routes"
	"github.com/Dosada05/job-bracket/services"
	"github.com/Dosada05/job-bracket/storage"
)

const (
	shutdownTimeout     = 15 * time.Second
	rateLimiterSweep    = time.Minute
	catalogCheckTimeout = 10 * time.Second
)

// @title Job Bracket API
// @version 1.0
// @description Double-elimination bracket that ranks 128 job candidates by head-to-head picks.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("r2", cfg.R2Enabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uploader, exportDir, err := newUploader(cfg)
	if err != nil {
		return err
	}

	candidates, err := newCatalog(cfg, uploader)
	if err != nil {
		return err
	}
	checkCtx, cancelCheck := context.WithTimeout(ctx, catalogCheckTimeout)
	loaded, err := candidates.Load(checkCtx)
	cancelCheck()
	if err != nil {
		return fmt.Errorf("failed to load job catalog: %w", err)
	}
	if err := catalog.Validate(loaded); err != nil {
		return fmt.Errorf("job catalog is invalid: %w", err)
	}
	logger.Info("job catalog loaded", slog.Int("jobs", len(loaded)))

	m := metrics.New(prometheus.DefaultRegisterer)
	wsHub := brackets.NewHub(logger)

	tournamentService := services.NewTournamentService(services.TournamentServiceConfig{
		Catalog:     candidates,
		Broadcaster: wsHub,
		Metrics:     m,
		Logger:      logger,
		Seed:        cfg.ShuffleSeed,
	})
	exportService := services.NewExportService(tournamentService, uploader, m, logger)
	logger.Info("services initialized")

	sessions := middleware.NewSessionManager(cfg.SessionSecretKey, cfg.SessionTTL)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		TournamentHandler: handlers.NewTournamentHandler(tournamentService, exportService, sessions),
		WebSocketHandler:  handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins, logger),
		Sessions:          sessions,
		RateLimiter:       limiter,
		Metrics:           m,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		ExportDir:         exportDir,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wsHub.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		limiter.Cleanup(gCtx, rateLimiterSweep)
		return nil
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// newUploader picks R2 when it is configured and falls back to the local export directory.
// The returned directory is non-empty only for local storage.
func newUploader(cfg *config.Config) (storage.FileUploader, string, error) {
	if cfg.R2Enabled() {
		r2, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		slog.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
		return r2, "", nil
	}

	local, err := storage.NewLocalUploader(cfg.ExportDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize local export storage: %w", err)
	}
	slog.Info("local export storage initialized", slog.String("dir", cfg.ExportDir))
	return local, cfg.ExportDir, nil
}

func newCatalog(cfg *config.Config, uploader storage.FileUploader) (catalog.Loader, error) {
	switch {
	case cfg.CatalogPath != "":
		return catalog.NewFileLoader(cfg.CatalogPath), nil
	case cfg.CatalogObjectKey != "":
		fetcher, ok := uploader.(storage.ObjectFetcher)
		if !ok {
			return nil, errors.New("configured storage cannot fetch the catalog object")
		}
		return catalog.NewObjectLoader(fetcher, cfg.CatalogObjectKey), nil
	default:
		return catalog.Embedded(), nil
	}
}
