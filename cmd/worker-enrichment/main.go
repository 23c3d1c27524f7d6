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
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-portfolio/internal/adapter"
	"github.com/feral-file/ff-portfolio/internal/cache"
	"github.com/feral-file/ff-portfolio/internal/config"
	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/enrichment"
	"github.com/feral-file/ff-portfolio/internal/fetchcache"
	"github.com/feral-file/ff-portfolio/internal/logger"
	"github.com/feral-file/ff-portfolio/internal/providers/coingecko"
	temporal "github.com/feral-file/ff-portfolio/internal/providers/temporal"
	"github.com/feral-file/ff-portfolio/internal/ratelimit"
	"github.com/feral-file/ff-portfolio/internal/store"
	"github.com/feral-file/ff-portfolio/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerEnrichmentConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "worker-enrichment",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker Enrichment")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()

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
	}
	limiter := ratelimit.NewLimiter(map[string]ratelimit.ProviderLimit{
		coingecko.PROVIDER_NAME: {RequestsPerSecond: cfg.CoinGecko.RequestsPerSecond},
	}, distributed, cfg.Redis.KeyPrefix, clockAdapter)

	coingeckoFetcher := fetchcache.New(fetchcache.Config{
		Provider: coingecko.PROVIDER_NAME,
		Headers:  coingecko.Headers(cfg.CoinGecko.APIKey, cfg.CoinGecko.UserAgent),
	}, adapter.NewHTTPClient(cfg.CoinGecko.Timeout), kvCache, limiter, clockAdapter, jsonAdapter)
	coingeckoClient := coingecko.NewClient(coingeckoFetcher, cfg.CoinGecko.APIURL, jsonAdapter)

	engine := enrichment.NewEngine(dataStore, coingeckoClient, domain.SupportedNetworks(), clockAdapter)
	executor := workflows.NewExecutor(engine)

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.Fatal("Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.TaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Worker.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Worker.WorkerActivitiesPerSecond,
			Interceptors: []interceptor.WorkerInterceptor{
				temporal.NewSentryActivityInterceptor(),
			},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("task_queue", cfg.Temporal.TaskQueue))

	workerEnrichment := workflows.NewWorkerEnrichment(executor, workflows.WorkerEnrichmentConfig{
		ActivityTimeout: cfg.Temporal.ActivityTimeout,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerEnrichment.EnrichTokens)

	// Register activities
	temporalWorker.RegisterActivity(executor.EnrichTokenMetadataAndPrices)
	logger.InfoCtx(ctx, "Registered workflows and activities")

	if err := temporalWorker.Start(); err != nil {
		logger.Fatal("Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down worker...")
	temporalWorker.Stop()
	logger.Info("Worker stopped")
}
