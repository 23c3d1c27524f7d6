package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-portfolio/internal/domain"
)

// DefaultActivityTimeout bounds one enrichment run
const DefaultActivityTimeout = 30 * time.Minute

// WorkerEnrichment defines the enrichment workflows
type WorkerEnrichment interface {
	// EnrichTokens resolves metadata and prices for the contracts touched by one ingest
	EnrichTokens(ctx workflow.Context, job domain.EnrichmentJob) error
}

type WorkerEnrichmentConfig struct {
	// ActivityTimeout is the start-to-close timeout of the enrichment activity
	ActivityTimeout time.Duration
}

// workerEnrichment is the concrete implementation of WorkerEnrichment
type workerEnrichment struct {
	config   WorkerEnrichmentConfig
	executor Executor
}

// NewWorkerEnrichment creates a new enrichment worker
func NewWorkerEnrichment(executor Executor, config WorkerEnrichmentConfig) WorkerEnrichment {
	if config.ActivityTimeout <= 0 {
		config.ActivityTimeout = DefaultActivityTimeout
	}
	return &workerEnrichment{
		executor: executor,
		config:   config,
	}
}
