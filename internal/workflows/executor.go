package workflows

import (
	"context"

	"go.uber.org/zap"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/enrichment"
	"github.com/feral-file/ff-portfolio/internal/logger"
)

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_enrichment.go -package=mocks -mock_names=Executor=MockEnrichmentExecutor
type Executor interface {
	// EnrichTokenMetadataAndPrices resolves metadata and prices for the contracts of job
	EnrichTokenMetadataAndPrices(ctx context.Context, job domain.EnrichmentJob) error
}

type executor struct {
	engine enrichment.Engine
}

// NewExecutor creates a new activity executor
func NewExecutor(engine enrichment.Engine) Executor {
	return &executor{engine: engine}
}

func (e *executor) EnrichTokenMetadataAndPrices(ctx context.Context, job domain.EnrichmentJob) error {
	logger.InfoCtx(ctx, "Enriching tokens",
		zap.String("address", job.Address),
		zap.Int("networks", len(job.Networks)),
	)
	e.engine.Enrich(ctx, job)
	return nil
}
