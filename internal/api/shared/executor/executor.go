package executor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/feral-file/ff-portfolio/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-portfolio/internal/api/shared/errors"
	"github.com/feral-file/ff-portfolio/internal/cache"
	"github.com/feral-file/ff-portfolio/internal/dispatcher"
	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/ingest"
	"github.com/feral-file/ff-portfolio/internal/logger"
	"github.com/feral-file/ff-portfolio/internal/portfolio"
	"github.com/feral-file/ff-portfolio/internal/store"
)

// SEED_MARKER_TTL is how long a seeded address is not seeded again
const SEED_MARKER_TTL = 24 * time.Hour

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// Ingest stores the balances of address and schedules their enrichment.
	// An empty address falls back to the configured seed address; limit 0 uses the configured cap.
	Ingest(ctx context.Context, address string, limit int) (*dto.IngestResponse, error)

	// GetPortfolio returns the valued holdings of address
	GetPortfolio(ctx context.Context, address string) (*dto.PortfolioResponse, error)

	// GetStats counts rows per table
	GetStats(ctx context.Context) (*store.Stats, error)

	// AutoSeed ingests the configured seed address unless it was seeded recently
	AutoSeed(ctx context.Context) error
}

// Config holds the executor settings
type Config struct {
	SeedAddress string
}

type executor struct {
	config     Config
	store      store.Store
	ingestor   ingest.Ingestor
	aggregator portfolio.Aggregator
	dispatcher dispatcher.Dispatcher
	cache      cache.Cache
	flights    singleflight.Group
}

func NewExecutor(cfg Config, st store.Store, ingestor ingest.Ingestor, aggregator portfolio.Aggregator, d dispatcher.Dispatcher, c cache.Cache) Executor {
	return &executor{
		config:     cfg,
		store:      st,
		ingestor:   ingestor,
		aggregator: aggregator,
		dispatcher: d,
		cache:      c,
	}
}

func (e *executor) Ingest(ctx context.Context, address string, limit int) (*dto.IngestResponse, error) {
	if address == "" {
		address = e.config.SeedAddress
	}
	if address == "" {
		return nil, apierrors.NewInvalidArgumentError("missing address")
	}
	normalized, err := domain.NormalizeAddress(address)
	if err != nil {
		return nil, apierrors.NewInvalidArgumentError("invalid address", address)
	}
	if limit < 0 {
		return nil, apierrors.NewInvalidArgumentError("invalid limit", strconv.Itoa(limit))
	}

	// Overlapping calls for the same address and cap share one provider round-trip and one dispatch
	key := normalized + ":" + strconv.Itoa(limit)
	v, err, shared := e.flights.Do(key, func() (interface{}, error) {
		return e.ingestAndDispatch(context.WithoutCancel(ctx), normalized, limit)
	})
	if err != nil {
		return nil, apierrors.FromError(err)
	}
	if shared {
		logger.DebugCtx(ctx, "Joined in-flight ingest", zap.String("address", normalized))
	}

	return v.(*dto.IngestResponse), nil
}

func (e *executor) ingestAndDispatch(ctx context.Context, address string, limit int) (*dto.IngestResponse, error) {
	result, err := e.ingestor.Ingest(ctx, address, limit)
	if err != nil {
		return nil, err
	}

	response := &dto.IngestResponse{
		Status:  dto.IngestStatusQueued,
		Message: dto.IngestMessage,
		Counts:  dto.IngestCounts{Balances: result.Inserted},
	}

	job := domain.EnrichmentJob{Address: address, Networks: result.Touched}
	if job.Empty() {
		return response, nil
	}

	jobID, err := e.dispatcher.Dispatch(ctx, job)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to dispatch enrichment: %w", err), zap.String("address", address))
		return response, nil
	}
	response.JobID = jobID

	return response, nil
}

func (e *executor) GetPortfolio(ctx context.Context, address string) (*dto.PortfolioResponse, error) {
	if address == "" {
		return nil, apierrors.NewInvalidArgumentError("missing address")
	}

	holdings, err := e.aggregator.GetPortfolio(ctx, address)
	if err != nil {
		return nil, apierrors.FromError(err)
	}

	return &dto.PortfolioResponse{Items: holdings}, nil
}

func (e *executor) GetStats(ctx context.Context) (*store.Stats, error) {
	stats, err := e.store.GetStats(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get stats: %v", err))
	}
	return stats, nil
}

func (e *executor) AutoSeed(ctx context.Context) error {
	if e.config.SeedAddress == "" {
		return nil
	}

	key := "seeded:" + strings.ToLower(e.config.SeedAddress)
	_, found, err := e.cache.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read seed marker: %w", err)
	}
	if found {
		logger.InfoCtx(ctx, "Seed address already ingested", zap.String("address", e.config.SeedAddress))
		return nil
	}

	response, err := e.Ingest(ctx, e.config.SeedAddress, 0)
	if err != nil {
		return fmt.Errorf("failed to seed address: %w", err)
	}

	if err := e.cache.Put(ctx, key, "1", SEED_MARKER_TTL); err != nil {
		return fmt.Errorf("failed to write seed marker: %w", err)
	}

	logger.InfoCtx(ctx, "Seed address ingested",
		zap.String("address", e.config.SeedAddress),
		zap.Int("balances", response.Counts.Balances),
		zap.String("job_id", response.JobID),
	)
	return nil
}
