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

	"github.com/hearthvault/recall/internal/config"
	"github.com/hearthvault/recall/internal/db"
	dbRedis "github.com/hearthvault/recall/internal/db/redis"
	logpkg "github.com/hearthvault/recall/internal/logger"
	"github.com/hearthvault/recall/internal/metrics"
	"github.com/hearthvault/recall/internal/policy"
	vectorrepo "github.com/hearthvault/recall/internal/repository/vector"
	chiTransport "github.com/hearthvault/recall/internal/transport/chi"
	openaiProvider "github.com/hearthvault/recall/internal/transport/openai"
	chatuc "github.com/hearthvault/recall/internal/usecase/chat"
	expanduc "github.com/hearthvault/recall/internal/usecase/expand"
	healthuc "github.com/hearthvault/recall/internal/usecase/health"
	indexuc "github.com/hearthvault/recall/internal/usecase/index"
	searchuc "github.com/hearthvault/recall/internal/usecase/search"
	"github.com/hearthvault/recall/internal/version"
)

func main() {
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

	logger.Info("Starting recall API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	if err := ensureIndex(ctx, store, cfg); err != nil {
		logger.Fatal("Failed to ensure vector index", zap.Error(err))
	}

	// Register provider metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	embedder := openaiProvider.NewEmbedder(&openaiProvider.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	generator := openaiProvider.NewGenerator(&openaiProvider.GeneratorConfig{
		APIKey:      cfg.Generation.APIKey,
		BaseURL:     cfg.Generation.BaseURL,
		Model:       cfg.Generation.Model,
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: cfg.Generation.Temperature,
		Logger:      logger,
	})
	logger.Info("Providers created",
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.String("generation_model", cfg.Generation.Model),
	)

	repo := vectorrepo.New(store, cfg.Search.IndexName, cfg.Search.KeyPrefix)

	expandSvc := expanduc.New(generator, cfg.Search.MaxVariants)
	searchSvc := searchuc.New(repo, embedder, expandSvc, policy.NewSharedOrOwner(), searchuc.Config{
		Dimensions:  cfg.Embedding.Dimensions,
		DefaultTopK: cfg.Search.DefaultTopK,
		VariantTopK: cfg.Search.VariantTopK,
		MaxResults:  cfg.Search.MaxResults,
	})
	chatSvc := chatuc.New(searchSvc, generator)
	indexSvc := indexuc.New(embedder, repo, cfg.Embedding.Dimensions)
	healthSvc := healthuc.New(store, embedder, repo, cfg.Embedding.Dimensions)

	server := chiTransport.NewServer(searchSvc, chatSvc, indexSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.Tokens))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

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

// ensureIndex creates the content index if it does not exist yet.
func ensureIndex(ctx context.Context, store db.Store, cfg config.Config) error {
	exists, err := store.IndexExists(ctx, cfg.Search.IndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(cfg.Search.IndexName).
		Prefix(cfg.Search.KeyPrefix).
		Tag("documentId").
		Text("title").
		Tag("contentType").
		TagWithOpts("tags", ",", false).
		Tag("uploadedBy").
		Tag("visibility").
		Numeric("timestamp").
		VectorHNSW("vector", cfg.Embedding.Dimensions, db.DistanceCosine,
			cfg.Search.HNSWM, cfg.Search.HNSWEFCon).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
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
