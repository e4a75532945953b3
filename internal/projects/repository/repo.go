package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/uxforge/design-agent-backend/internal/projects/domain"
)

const (
	projectKeyPrefix = "design:project:"            // project document: design:project:{id}
	createdIndexKey  = "design:projects:by_created" // sorted set of IDs, score = created_at unix
	statusSetPrefix  = "design:projects:status:"    // set of IDs per status: design:projects:status:{status}
)

// ProjectRepository stores project documents in Redis. Each project is a
// single JSON blob; a sorted set keeps creation order for listing and a
// set per status keeps the stats counters O(1).
type ProjectRepository struct {
	client *redis.Client
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(client *redis.Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create persists a new project. ID and timestamps are assigned here if
// unset; status defaults to pending.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.StatusPending
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.projectKey(p.ID), data, 0)
	pipe.ZAdd(ctx, createdIndexKey, redis.Z{Score: float64(p.CreatedAt.Unix()), Member: p.ID})
	pipe.SAdd(ctx, r.statusSetKey(p.Status), p.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	data, err := r.client.Get(ctx, r.projectKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return &p, nil
}

// List returns projects newest first, with skip/limit pagination.
func (r *ProjectRepository) List(ctx context.Context, skip, limit int64) ([]domain.Project, error) {
	if limit <= 0 {
		return []domain.Project{}, nil
	}

	ids, err := r.client.ZRevRange(ctx, createdIndexKey, skip, skip+limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list project ids: %w", err)
	}

	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err == domain.ErrProjectNotFound {
			// index can briefly outlive a deleted document
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// Delete removes a project and its index entries.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	p, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.projectKey(id))
	pipe.ZRem(ctx, createdIndexKey, id)
	pipe.SRem(ctx, r.statusSetKey(p.Status), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// TotalCount returns the number of stored projects.
func (r *ProjectRepository) TotalCount(ctx context.Context) (int64, error) {
	n, err := r.client.ZCard(ctx, createdIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

// CountByStatus returns how many projects are in the given status.
func (r *ProjectRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	n, err := r.client.SCard(ctx, r.statusSetKey(status)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s projects: %w", status, err)
	}
	return n, nil
}

// SetStatus moves a project to a new status on behalf of a pipeline run.
// Returns ErrStaleRun when the run's generation no longer matches.
func (r *ProjectRepository) SetStatus(ctx context.Context, id string, generation int, status string) (*domain.Project, error) {
	return r.mutate(ctx, id, generation, func(p *domain.Project) {
		p.Status = status
	})
}

// AttachDesign stores the generated design and moves the project to the
// reviewing status.
func (r *ProjectRepository) AttachDesign(ctx context.Context, id string, generation int, d *domain.Design) (*domain.Project, error) {
	return r.mutate(ctx, id, generation, func(p *domain.Project) {
		p.Design = d
		p.Status = domain.StatusReviewing
	})
}

// AttachReview stores the review and moves the project to its
// post-review status (pending_approval or needs_revision).
func (r *ProjectRepository) AttachReview(ctx context.Context, id string, generation int, rev *domain.Review, status string) (*domain.Project, error) {
	return r.mutate(ctx, id, generation, func(p *domain.Project) {
		p.Review = rev
		p.Status = status
	})
}

// FailRun records a pipeline failure: status error plus the message.
func (r *ProjectRepository) FailRun(ctx context.Context, id string, generation int, message string) (*domain.Project, error) {
	return r.mutate(ctx, id, generation, func(p *domain.Project) {
		p.Status = domain.StatusError
		p.ErrorMessage = message
	})
}

// SetHumanApproval records the human decision and the resulting status.
// The caller is responsible for checking the project was awaiting
// approval; this only writes.
func (r *ProjectRepository) SetHumanApproval(ctx context.Context, id string, ha *domain.HumanApproval, status string) (*domain.Project, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.HumanApproval = ha
	oldStatus := p.Status
	p.Status = status
	if err := r.save(ctx, p, oldStatus); err != nil {
		return nil, err
	}
	return p, nil
}

// ResetForRegenerate clears all stage payloads, returns the project to
// pending and bumps the generation so in-flight runs become stale.
func (r *ProjectRepository) ResetForRegenerate(ctx context.Context, id string) (*domain.Project, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := p.Status
	p.Status = domain.StatusPending
	p.Design = nil
	p.Review = nil
	p.HumanApproval = nil
	p.ErrorMessage = ""
	p.Generation++
	if err := r.save(ctx, p, oldStatus); err != nil {
		return nil, err
	}
	return p, nil
}

// ListInStatus returns all projects currently in the given status.
func (r *ProjectRepository) ListInStatus(ctx context.Context, status string) ([]domain.Project, error) {
	ids, err := r.client.SMembers(ctx, r.statusSetKey(status)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s projects: %w", status, err)
	}

	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err == domain.ErrProjectNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// mutate applies fn to the stored project if the generation still
// matches, then writes it back with its status set membership updated.
func (r *ProjectRepository) mutate(ctx context.Context, id string, generation int, fn func(*domain.Project)) (*domain.Project, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Generation != generation {
		return nil, domain.ErrStaleRun
	}

	oldStatus := p.Status
	fn(p)
	if err := r.save(ctx, p, oldStatus); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) save(ctx context.Context, p *domain.Project, oldStatus string) error {
	p.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.projectKey(p.ID), data, 0)
	if oldStatus != p.Status {
		pipe.SRem(ctx, r.statusSetKey(oldStatus), p.ID)
		pipe.SAdd(ctx, r.statusSetKey(p.Status), p.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) projectKey(id string) string {
	return fmt.Sprintf("%s%s", projectKeyPrefix, id)
}

func (r *ProjectRepository) statusSetKey(status string) string {
	return fmt.Sprintf("%s%s", statusSetPrefix, status)
}
