package workflows

import (
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/logger"
)

// EnrichTokens runs the enrichment engine once for job
func (w *workerEnrichment) EnrichTokens(ctx workflow.Context, job domain.EnrichmentJob) error {
	if job.Empty() {
		logger.InfoWf(ctx, "Nothing to enrich", zap.String("address", job.Address))
		return nil
	}

	// The engine already retries upstream calls and swallows failures
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	if err := workflow.ExecuteActivity(ctx, w.executor.EnrichTokenMetadataAndPrices, job).Get(ctx, nil); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to enrich tokens: %w", err), zap.String("address", job.Address))
		return err
	}

	logger.InfoWf(ctx, "Tokens enriched", zap.String("address", job.Address))
	return nil
}
