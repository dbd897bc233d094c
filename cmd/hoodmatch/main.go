package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hoodmatch/internal/config"
	"github.com/kailas-cloud/hoodmatch/internal/db"
	dbRedis "github.com/kailas-cloud/hoodmatch/internal/db/redis"
	"github.com/kailas-cloud/hoodmatch/internal/domain"
	logpkg "github.com/kailas-cloud/hoodmatch/internal/logger"
	"github.com/kailas-cloud/hoodmatch/internal/metrics"
	"github.com/kailas-cloud/hoodmatch/internal/repository/embcache"
	nbrepo "github.com/kailas-cloud/hoodmatch/internal/repository/neighborhood"
	chiTransport "github.com/kailas-cloud/hoodmatch/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/hoodmatch/internal/transport/openai"
	discoveruc "github.com/kailas-cloud/hoodmatch/internal/usecase/discover"
	healthuc "github.com/kailas-cloud/hoodmatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/hoodmatch/internal/usecase/match"
	"github.com/kailas-cloud/hoodmatch/internal/version"
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

	logger.Info("Starting hoodmatch API server",
		zap.String("version", version.String()),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("discovery", cfg.Embedding.Enabled()),
	)

	dataset, err := loadDataset(cfg.Dataset.Path)
	if err != nil {
		logger.Fatal("Failed to load neighborhood dataset", zap.Error(err))
	}
	logger.Info("Neighborhood dataset loaded",
		zap.Int("neighborhoods", dataset.Len()),
		zap.String("path", cfg.Dataset.Path),
	)

	ctx := context.Background()

	// Optional cache store. Nil interfaces (not typed nil pointers) when absent.
	var (
		cache     db.Store
		cachePing healthuc.CachePinger
	)
	// logger.Fatal exits without running defers; fatal paths call closeCache first.
	closeCache := func() {}
	if cfg.Database.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		closeCache = store.Close
		defer closeCache()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			closeCache()
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		cache, cachePing = store, store
		logger.Info("Connected to cache store")
	}

	metrics.RegisterMatchMetrics()

	var (
		queryEmbedder domain.Embedder
		docEmbedder   domain.Embedder
		embChecker    healthuc.EmbeddingChecker
	)
	if cfg.Embedding.Enabled() {
		metrics.RegisterEmbeddingMetrics()

		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		docEmbedder = buildEmbedder(base, cfg, cfg.Embedding.DocumentInstruction, cache, logger)
		queryEmbedder = buildEmbedder(base, cfg, cfg.Embedding.QueryInstruction, cache, logger)
		embChecker = base

		logger.Info("Embedders created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
			zap.Bool("cached", cache != nil),
		)
	}

	matchSvc := matchuc.New(dataset).WithObserver(metrics.MatchObserver{})
	discoverSvc := discoveruc.New(dataset, queryEmbedder, docEmbedder)
	healthSvc := healthuc.New(dataset, cachePing, embChecker)

	server := chiTransport.NewServer(matchSvc, discoverSvc, dataset, healthSvc, logger).
		WithMaxLimit(cfg.Match.MaxLimit)
	router := chiTransport.NewRouter(server, logger, cfg.Auth.APIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			closeCache()
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

func loadDataset(path string) (*nbrepo.Repo, error) {
	if path == "" {
		return nbrepo.Default()
	}
	return nbrepo.LoadFile(path)
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instruction.
// The instruction prefix is outermost so it becomes part of the cache key.
func buildEmbedder(
	base *openaiEmb.Embedder,
	cfg config.Config,
	instruction string,
	cache db.Store,
	logger *zap.Logger,
) domain.Embedder {
	var embedder domain.Embedder = base
	if cache != nil {
		ttl := time.Duration(cfg.Database.CacheTTLHours) * time.Hour
		embedder = embcache.New(base, cache, cfg.Embedding.Model, ttl, metrics.EmbeddingCacheTotal, logger)
	}

	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}
	return embedder
}
