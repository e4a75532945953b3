package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uxforge/design-agent-backend/internal/projects/repository"
)

// setupTestPostgres connects to a test database.
// Skips the test if TEST_DB_DSN is not set.
func setupTestPostgres(t *testing.T) (*pgxpool.Pool, *sql.DB) {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS approval_decisions (
			id BIGSERIAL PRIMARY KEY,
			project_id TEXT NOT NULL,
			approved BOOLEAN NOT NULL,
			feedback TEXT NOT NULL DEFAULT '',
			approver TEXT NOT NULL,
			decided_at TIMESTAMPTZ NOT NULL
		)
	`)
	require.NoError(t, err)

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)

	return pool, db
}

func TestDecisionRepository_RecordAndList(t *testing.T) {
	pool, db := setupTestPostgres(t)
	defer pool.Close()
	defer db.Close()

	repo := repository.NewDecisionRepository(pool)
	require.True(t, repo.Enabled())

	ctx := context.Background()
	projectID := "test-project-" + time.Now().Format("20060102150405.000000000")

	first := repository.DecisionRecord{
		ProjectID: projectID,
		Approved:  false,
		Feedback:  "needs more contrast",
		Approver:  "QA Lead",
		DecidedAt: time.Now().UTC().Add(-time.Minute),
	}
	second := repository.DecisionRecord{
		ProjectID: projectID,
		Approved:  true,
		Feedback:  "fixed, ship it",
		Approver:  "QA Lead",
		DecidedAt: time.Now().UTC(),
	}

	require.NoError(t, repo.Record(ctx, first))
	require.NoError(t, repo.Record(ctx, second))

	got, err := repo.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.False(t, got[0].Approved)
	assert.True(t, got[1].Approved)
	assert.Equal(t, "needs more contrast", got[0].Feedback)
	assert.Equal(t, "QA Lead", got[1].Approver)
}

func TestDecisionRepository_Disabled(t *testing.T) {
	repo := repository.NewDecisionRepository(nil)
	assert.False(t, repo.Enabled())

	ctx := context.Background()
	assert.NoError(t, repo.Record(ctx, repository.DecisionRecord{ProjectID: "x"}))

	got, err := repo.ListByProject(ctx, "x")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
