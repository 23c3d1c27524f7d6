package workflows_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-portfolio/internal/mocks"
	"github.com/feral-file/ff-portfolio/internal/workflows"
)

func TestExecutor_EnrichTokenMetadataAndPrices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEnrichmentEngine(ctrl)
	executor := workflows.NewExecutor(engine)

	ctx := context.Background()
	job := testJob()
	engine.EXPECT().Enrich(ctx, job).Times(1)

	assert.NoError(t, executor.EnrichTokenMetadataAndPrices(ctx, job))
}
