package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-portfolio/internal/adapter"
	"github.com/feral-file/ff-portfolio/internal/api/server"
	"github.com/feral-file/ff-portfolio/internal/api/shared/executor"
	"github.com/feral-file/ff-portfolio/internal/cache"
	"github.com/feral-file/ff-portfolio/internal/config"
	"github.com/feral-file/ff-portfolio/internal/dispatcher"
	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/enrichment"
	"github.com/feral-file/ff-portfolio/internal/fetchcache"
	"github.com/feral-file/ff-portfolio/internal/ingest"
	"github.com/feral-file/ff-portfolio/internal/logger"
	"github.com/feral-file/ff-portfolio/internal/portfolio"
	"github.com/feral-file/ff-portfolio/internal/providers/coingecko"
	"github.com/feral-file/ff-portfolio/internal/providers/moralis"
	temporal "github.com/feral-file/ff-portfolio/internal/providers/temporal"
	"github.com/feral-file/ff-portfolio/internal/ratelimit"
	"github.com/feral-file/ff-portfolio/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Portfolio API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)
	networks := domain.SupportedNetworks()
	if err := dataStore.SeedNetworks(ctx, networks); err != nil {
		logger.Fatal("Failed to seed networks", zap.Error(err))
	}

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()

	// Key-value cache and rate limiter
	var kvCache cache.Cache
	var distributed adapter.RedisRateLimiter
	if cfg.Redis.Enabled {
		redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		kvCache = cache.NewRedisCache(redisClient, cfg.Redis.KeyPrefix)
		distributed = redisClient.NewRateLimiter()
		logger.InfoCtx(ctx, "Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		kvCache = cache.NewStoreCache(dataStore, clockAdapter)
		logger.InfoCtx(ctx, "Redis disabled, caching in database")
	}
	limiter := ratelimit.NewLimiter(map[string]ratelimit.ProviderLimit{
		coingecko.PROVIDER_NAME: {RequestsPerSecond: cfg.CoinGecko.RequestsPerSecond},
	}, distributed, cfg.Redis.KeyPrefix, clockAdapter)

	// Providers
	moralisClient := moralis.NewClient(
		adapter.NewHTTPClient(cfg.Moralis.Timeout),
		limiter,
		cfg.Moralis.APIURL,
		cfg.Moralis.APIKey,
		jsonAdapter,
	)
	coingeckoFetcher := fetchcache.New(fetchcache.Config{
		Provider: coingecko.PROVIDER_NAME,
		Headers:  coingecko.Headers(cfg.CoinGecko.APIKey, cfg.CoinGecko.UserAgent),
	}, adapter.NewHTTPClient(cfg.CoinGecko.Timeout), kvCache, limiter, clockAdapter, jsonAdapter)
	coingeckoClient := coingecko.NewClient(coingeckoFetcher, cfg.CoinGecko.APIURL, jsonAdapter)

	// Core components
	ingestor := ingest.NewIngestor(dataStore, moralisClient, networks, cfg.Ingest.MaxTokens)
	aggregator := portfolio.NewAggregator(dataStore)

	var enrichmentDispatcher dispatcher.Dispatcher
	var localDispatcher *dispatcher.LocalDispatcher
	switch cfg.Enrichment.Dispatcher {
	case config.DispatcherTemporal:
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
		})
		if err != nil {
			logger.Fatal("Failed to connect to Temporal", zap.Error(err))
		}
		defer temporalClient.Close()
		logger.InfoCtx(ctx, "Connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

		enrichmentDispatcher = dispatcher.NewTemporalDispatcher(temporalClient, dispatcher.TemporalConfig{
			TaskQueue: cfg.Temporal.TaskQueue,
		})
	default:
		engine := enrichment.NewEngine(dataStore, coingeckoClient, networks, clockAdapter)
		localDispatcher = dispatcher.NewLocalDispatcher(engine, dispatcher.LocalConfig{
			MaxConcurrentJobs: cfg.Enrichment.MaxConcurrentJobs,
			QueueSize:         cfg.Enrichment.QueueSize,
		})
		enrichmentDispatcher = localDispatcher
	}
	logger.InfoCtx(ctx, "Enrichment dispatcher ready", zap.String("dispatcher", cfg.Enrichment.Dispatcher))

	exec := executor.NewExecutor(
		executor.Config{SeedAddress: cfg.Ingest.SeedAddress},
		dataStore,
		ingestor,
		aggregator,
		enrichmentDispatcher,
		kvCache,
	)

	// Seed in the background so a slow provider does not delay the listener
	go func() {
		if err := exec.AutoSeed(ctx); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "auto-seed"))
		}
	}()

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, exec)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}
	if localDispatcher != nil {
		if err := localDispatcher.Stop(shutdownCtx); err != nil {
			logger.WarnCtx(shutdownCtx, "Enrichment jobs abandoned", zap.Error(err))
		}
	}

	logger.Info("API server stopped")
}
