package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uxforge/design-agent-backend/internal/agents"
	"github.com/uxforge/design-agent-backend/internal/pipeline"
	"github.com/uxforge/design-agent-backend/internal/projects/domain"
	"github.com/uxforge/design-agent-backend/internal/projects/repository"
)

// failingDesigner stands in for a broken agent.
type failingDesigner struct{}

func (failingDesigner) Generate(ctx context.Context, requirements string) (*domain.Design, error) {
	return nil, errors.New("model backend unavailable")
}

func TestPipeline_HappyPath(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := repository.NewProjectRepository(client)
	runner := pipeline.NewRunner(repo, agents.NewDesigner(0), agents.NewReviewer(0))
	ctx := context.Background()

	p := &domain.Project{Name: "landing", Requirements: "responsive landing page"}
	require.NoError(t, repo.Create(ctx, p))

	before := pipeline.GetMetrics()
	runner.Run(ctx, p.ID, p.Generation, p.Requirements)
	after := pipeline.GetMetrics()
	assert.Greater(t, after.RunsCompleted(), before.RunsCompleted())

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPendingApproval, got.Status)
	require.NotNil(t, got.Design)
	assert.Len(t, got.Design.Designs, 5)
	assert.True(t, got.Design.TechnicalSpecs.Responsive)
	require.NotNil(t, got.Review)
	assert.Equal(t, 85, got.Review.Score)
	assert.Equal(t, domain.ReviewApproved, got.Review.Status)
	assert.Empty(t, got.Review.Issues)
	assert.Nil(t, got.HumanApproval)
}

func TestPipeline_DesignerErrorMovesProjectToError(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := repository.NewProjectRepository(client)
	runner := pipeline.NewRunner(repo, failingDesigner{}, agents.NewReviewer(0))
	ctx := context.Background()

	p := &domain.Project{Name: "broken"}
	require.NoError(t, repo.Create(ctx, p))

	runner.Run(ctx, p.ID, p.Generation, p.Requirements)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusError, got.Status)
	assert.Contains(t, got.ErrorMessage, "model backend unavailable")
	assert.Nil(t, got.Design)
	assert.Nil(t, got.Review)
}

func TestPipeline_StaleRunDoesNotClobberRegeneratedProject(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := repository.NewProjectRepository(client)
	runner := pipeline.NewRunner(repo, agents.NewDesigner(0), agents.NewReviewer(0))
	ctx := context.Background()

	p := &domain.Project{Name: "raced"}
	require.NoError(t, repo.Create(ctx, p))

	// regenerate before the original run gets going
	_, err := repo.ResetForRegenerate(ctx, p.ID)
	require.NoError(t, err)

	before := pipeline.GetMetrics()
	runner.Run(ctx, p.ID, p.Generation, p.Requirements) // generation 0: stale
	after := pipeline.GetMetrics()
	assert.Greater(t, after.RunsStale(), before.RunsStale())

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, 1, got.Generation)
	assert.Nil(t, got.Design)
	assert.NotEqual(t, domain.StatusError, got.Status)
}

func TestPipeline_NeverEndsMidPipeline(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := repository.NewProjectRepository(client)
	runner := pipeline.NewRunner(repo, agents.NewDesigner(0), agents.NewReviewer(0))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		p := &domain.Project{Name: "batch"}
		require.NoError(t, repo.Create(ctx, p))
		runner.Run(ctx, p.ID, p.Generation, p.Requirements)

		got, err := repo.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Contains(t,
			[]string{domain.StatusPendingApproval, domain.StatusNeedsRevision},
			got.Status,
		)
	}
}
