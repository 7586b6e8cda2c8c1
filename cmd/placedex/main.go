package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arcadia-cloud/placedex/internal/config"
	"github.com/arcadia-cloud/placedex/internal/db/postgrest"
	dbRedis "github.com/arcadia-cloud/placedex/internal/db/redis"
	"github.com/arcadia-cloud/placedex/internal/domain"
	logpkg "github.com/arcadia-cloud/placedex/internal/logger"
	"github.com/arcadia-cloud/placedex/internal/metrics"
	candidaterepo "github.com/arcadia-cloud/placedex/internal/repository/candidate"
	"github.com/arcadia-cloud/placedex/internal/repository/embcache"
	matchrepo "github.com/arcadia-cloud/placedex/internal/repository/match"
	chiTransport "github.com/arcadia-cloud/placedex/internal/transport/chi"
	openaiProvider "github.com/arcadia-cloud/placedex/internal/transport/openai"
	healthuc "github.com/arcadia-cloud/placedex/internal/usecase/health"
	searchuc "github.com/arcadia-cloud/placedex/internal/usecase/search"
	"github.com/arcadia-cloud/placedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting placedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("store_url", cfg.Store.BaseURL),
		zap.String("store_table", cfg.Store.Table),
	)

	// Candidate store (hosted REST)
	store, err := postgrest.New(postgrest.Config{
		BaseURL:   cfg.Store.BaseURL,
		APIKey:    cfg.Store.APIKey,
		PingTable: cfg.Store.Table,
		Timeout:   time.Duration(cfg.Store.TimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create store client", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		logger.Warn("Candidate store not reachable at startup", zap.Error(err))
	} else {
		logger.Info("Connected to candidate store")
	}

	// Register metrics explicitly (no init())
	metrics.RegisterProviderMetrics()
	metrics.RegisterSearchMetrics()

	// Optional Redis embedding cache
	var cache *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := cache.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Provider defaults
	vecCfg := domain.DefaultVectorConfig()
	embModel := cfg.Provider.EmbeddingModel
	if embModel == "" {
		embModel = vecCfg.Model
	}
	dimensions := cfg.Provider.Dimensions
	if dimensions == 0 {
		dimensions = vecCfg.Dimensions
	}
	completionModel := cfg.Provider.CompletionModel
	if completionModel == "" {
		completionModel = "gpt-4o-mini"
	}

	// Embedder chain: OpenAI -> Cached
	base := openaiProvider.NewEmbedder(&openaiProvider.Config{
		APIKey:     cfg.Provider.APIKey,
		BaseURL:    cfg.Provider.BaseURL,
		Model:      embModel,
		Dimensions: dimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	var embedder domain.Embedder = base
	if cache != nil {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		embedder = embcache.New(base, cache, ttl, metrics.EmbeddingCacheTotal, logger)
	}

	completer := openaiProvider.NewCompleter(&openaiProvider.CompleterConfig{
		APIKey:   cfg.Provider.APIKey,
		BaseURL:  cfg.Provider.BaseURL,
		Model:    completionModel,
		Provider: "openai",
		Logger:   logger,
	})
	logger.Info("Provider clients created",
		zap.String("embedding_model", embModel),
		zap.Int("dimensions", dimensions),
		zap.String("completion_model", completionModel),
	)

	// Repositories
	candRepo := candidaterepo.New(store, cfg.Store.Table, dimensions)
	matchRepo := matchrepo.New(store)

	// Use case services
	searchSvc := searchuc.New(candRepo, matchRepo, embedder, completer, searchuc.Config{
		Limit:           cfg.Search.Limit,
		MinSimilarity:   cfg.Search.MinSimilarity,
		ContextLimit:    cfg.Search.ContextLimit,
		CandidateLimit:  cfg.Search.CandidateLimit,
		Dimensions:      dimensions,
		StrategyTimeout: time.Duration(cfg.Search.StrategyTimeoutSec) * time.Second,
	}, logger)
	healthSvc := healthuc.New(store, base)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
