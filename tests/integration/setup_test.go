package integration

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/uxforge/design-agent-backend/internal/agents"
	"github.com/uxforge/design-agent-backend/internal/pipeline"
	"github.com/uxforge/design-agent-backend/internal/projects/repository"
	"github.com/uxforge/design-agent-backend/internal/projects/service"
)

// setupTestRedis starts an in-memory Redis and returns a connected client.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, mr
}

// setupTestService wires a full service stack over miniredis with
// zero-delay agents and the audit log disabled.
func setupTestService(t *testing.T) (*service.ProjectService, *repository.ProjectRepository, *miniredis.Miniredis) {
	t.Helper()

	client, mr := setupTestRedis(t)
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	repo := repository.NewProjectRepository(client)
	runner := pipeline.NewRunner(repo, agents.NewDesigner(0), agents.NewReviewer(0))
	decisions := repository.NewDecisionRepository(nil)
	svc := service.NewProjectService(repo, decisions, runner, "Human Reviewer")

	return svc, repo, mr
}
