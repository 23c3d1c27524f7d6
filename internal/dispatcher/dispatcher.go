package dispatcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/enrichment"
	"github.com/feral-file/ff-portfolio/internal/logger"
	"github.com/feral-file/ff-portfolio/internal/providers/temporal"
	"github.com/feral-file/ff-portfolio/internal/workflows"
)

// ErrQueueFull is returned when the local pool cannot accept another job
var ErrQueueFull = errors.New("enrichment queue is full")

// Dispatcher hands enrichment jobs to a background runner
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Dispatch schedules job without waiting for it and returns its id
	Dispatch(ctx context.Context, job domain.EnrichmentJob) (string, error)
}

// LocalConfig sizes the in-process worker pool
type LocalConfig struct {
	MaxConcurrentJobs int
	QueueSize         int
}

// LocalDispatcher runs jobs on an in-process worker pool
type LocalDispatcher struct {
	engine enrichment.Engine
	pool   pond.Pool
}

// NewLocalDispatcher creates a dispatcher that runs the engine in this process
func NewLocalDispatcher(engine enrichment.Engine, cfg LocalConfig) *LocalDispatcher {
	if cfg.MaxConcurrentJobs <= 0 {
		cfg.MaxConcurrentJobs = 1
	}
	return &LocalDispatcher{
		engine: engine,
		pool: pond.NewPool(
			cfg.MaxConcurrentJobs,
			pond.WithQueueSize(cfg.QueueSize),
			pond.WithNonBlocking(true),
		),
	}
}

// Dispatch queues job; the job outlives ctx
func (d *LocalDispatcher) Dispatch(ctx context.Context, job domain.EnrichmentJob) (string, error) {
	jobID := uuid.NewString()
	detached := context.WithoutCancel(ctx)

	err := d.pool.Go(func() {
		logger.InfoCtx(detached, "Enrichment job started", zap.String("job_id", jobID), zap.String("address", job.Address))
		d.engine.Enrich(detached, job)
	})
	if err != nil {
		if errors.Is(err, pond.ErrQueueFull) {
			return "", ErrQueueFull
		}
		return "", fmt.Errorf("failed to queue enrichment job: %w", err)
	}

	return jobID, nil
}

// Stop waits for running and queued jobs to finish
func (d *LocalDispatcher) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.pool.StopAndWait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Enrichment pool stop interrupted", zap.Uint64("waiting", d.pool.WaitingTasks()))
		return ctx.Err()
	}
}

// TemporalConfig configures workflow starts
type TemporalConfig struct {
	TaskQueue string
}

// TemporalDispatcher starts an EnrichTokens workflow per job
type TemporalDispatcher struct {
	orchestrator temporal.TemporalOrchestrator
	config       TemporalConfig
}

// NewTemporalDispatcher creates a dispatcher backed by Temporal
func NewTemporalDispatcher(orchestrator temporal.TemporalOrchestrator, cfg TemporalConfig) *TemporalDispatcher {
	return &TemporalDispatcher{orchestrator: orchestrator, config: cfg}
}

func (d *TemporalDispatcher) Dispatch(ctx context.Context, job domain.EnrichmentJob) (string, error) {
	w := workflows.NewWorkerEnrichment(nil, workflows.WorkerEnrichmentConfig{})

	options := client.StartWorkflowOptions{
		ID:        "enrich-tokens-" + uuid.NewString(),
		TaskQueue: d.config.TaskQueue,
	}
	wfRun, err := d.orchestrator.ExecuteWorkflow(ctx, options, w.EnrichTokens, job)
	if err != nil {
		return "", fmt.Errorf("failed to start enrichment workflow: %w", err)
	}

	return wfRun.GetID(), nil
}
