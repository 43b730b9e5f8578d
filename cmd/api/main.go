package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/cache"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/events"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/internal/storage"
	"github.com/vidtube/backend/internal/tracing"
)

type API struct {
	store         Store
	tokens        TokenIssuer
	media         MediaStore
	events        EventPublisher
	statsCache    StatsCache
	uploads       config.UploadsConfig
	secureCookies bool
	log           *logging.Logger
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	if cfg.Tracing.Enabled {
		_, closer, err := tracing.InitTracer("vidtube-api", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("Failed to initialize tracing: %v", err)
		}
		defer closer.Close()
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := database.NewRepository(db)

	stor, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	if err := os.MkdirAll(cfg.Uploads.TempDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload temp dir: %v", err)
	}

	tokens := auth.NewTokenService(repo,
		cfg.Auth.AccessTokenSecret, cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)

	api := &API{
		store:         repo,
		tokens:        tokens,
		media:         stor,
		uploads:       cfg.Uploads,
		secureCookies: cfg.Server.SecureCookies,
		log:           log,
	}

	if cfg.Cache.Enabled {
		statsCache, err := cache.NewCache(cfg.Redis.Host, cfg.Redis.Port,
			cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.StatsTTL)
		if err != nil {
			log.Warnf("Stats cache disabled: %v", err)
		} else {
			defer statsCache.Close()
			api.statsCache = statsCache
		}
	}

	publisher, err := events.New(cfg.Queue)
	if err != nil {
		log.Warnf("Event publishing disabled: %v", err)
	} else {
		defer publisher.Close()
		api.events = publisher
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	router := setupRouter(api, log, limiter)

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Infof("Starting metrics server on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Errorf("Metrics server stopped: %v", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
