package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DecisionRecord is one row of the approval audit log.
type DecisionRecord struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id"`
	Approved  bool      `json:"approved"`
	Feedback  string    `json:"feedback"`
	Approver  string    `json:"approver"`
	DecidedAt time.Time `json:"decided_at"`
}

// DecisionRepository keeps a durable audit trail of human approval
// decisions in Postgres. The pool may be nil, in which case the repo is
// disabled and every call is a no-op; Redis remains the source of truth
// for project state either way.
type DecisionRepository struct {
	db *pgxpool.Pool
}

func NewDecisionRepository(db *pgxpool.Pool) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// Enabled reports whether the audit log is backed by a database.
func (r *DecisionRepository) Enabled() bool {
	return r != nil && r.db != nil
}

func (r *DecisionRepository) Record(ctx context.Context, rec DecisionRecord) error {
	if !r.Enabled() {
		return nil
	}

	const q = `
insert into approval_decisions (project_id, approved, feedback, approver, decided_at)
values ($1, $2, $3, $4, $5);
`
	_, err := r.db.Exec(ctx, q, rec.ProjectID, rec.Approved, rec.Feedback, rec.Approver, rec.DecidedAt)
	return err
}

// ListByProject returns all recorded decisions for a project, oldest
// first. Returns nil when the audit log is disabled.
func (r *DecisionRepository) ListByProject(ctx context.Context, projectID string) ([]DecisionRecord, error) {
	if !r.Enabled() {
		return nil, nil
	}

	const q = `
select id, project_id, approved, feedback, approver, decided_at
from approval_decisions
where project_id = $1
order by decided_at asc;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DecisionRecord, 0, 4)
	for rows.Next() {
		var rec DecisionRecord
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.Approved, &rec.Feedback, &rec.Approver, &rec.DecidedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
