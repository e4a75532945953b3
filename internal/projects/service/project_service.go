package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/uxforge/design-agent-backend/internal/pipeline"
	"github.com/uxforge/design-agent-backend/internal/projects/domain"
	"github.com/uxforge/design-agent-backend/internal/projects/repository"
)

// ProjectService handles business logic for design projects.
type ProjectService struct {
	repo            *repository.ProjectRepository
	decisions       *repository.DecisionRepository
	runner          *pipeline.Runner
	defaultApprover string
}

func NewProjectService(repo *repository.ProjectRepository, decisions *repository.DecisionRepository, runner *pipeline.Runner, defaultApprover string) *ProjectService {
	return &ProjectService{
		repo:            repo,
		decisions:       decisions,
		runner:          runner,
		defaultApprover: defaultApprover,
	}
}

// Create stores a new pending project and kicks off the pipeline.
func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	p := &domain.Project{
		Name:         strings.TrimSpace(req.Name),
		Requirements: req.Requirements,
		Status:       domain.StatusPending,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.runner.Start(p)
	return p, nil
}

// Get retrieves a project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.Get(ctx, id)
}

// List returns projects newest first with skip/limit pagination.
func (s *ProjectService) List(ctx context.Context, skip, limit int64) ([]domain.Project, error) {
	return s.repo.List(ctx, skip, limit)
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Approve records a human decision. Only legal while the project is
// awaiting approval; every other status yields ErrNotAwaitingApproval.
func (s *ProjectService) Approve(ctx context.Context, id string, req *domain.ApprovalRequest) (*domain.Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status != domain.StatusPendingApproval {
		return nil, domain.ErrNotAwaitingApproval
	}

	approver := strings.TrimSpace(req.Approver)
	if approver == "" {
		approver = s.defaultApprover
	}

	ha := &domain.HumanApproval{
		Approved:  req.Approved,
		Feedback:  req.Feedback,
		Timestamp: time.Now().UTC(),
		Approver:  approver,
	}

	status := domain.StatusRejected
	if req.Approved {
		status = domain.StatusApproved
	}

	p, err = s.repo.SetHumanApproval(ctx, id, ha, status)
	if err != nil {
		return nil, err
	}

	if s.decisions.Enabled() {
		if err := s.decisions.Record(ctx, repository.DecisionRecord{
			ProjectID: p.ID,
			Approved:  ha.Approved,
			Feedback:  ha.Feedback,
			Approver:  ha.Approver,
			DecidedAt: ha.Timestamp,
		}); err != nil {
			// audit log is best-effort; the decision itself is committed
			log.Printf("[warn] operation=approve project_id=%s audit insert failed: %v", p.ID, err)
		}
	}

	return p, nil
}

// Regenerate resets all stage payloads and restarts the pipeline. The
// generation bump makes any in-flight run for this project stale.
func (s *ProjectService) Regenerate(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.repo.ResetForRegenerate(ctx, id)
	if err != nil {
		return nil, err
	}

	s.runner.Start(p)
	return p, nil
}

// Decisions returns the audit trail for a project (nil when the audit
// log is disabled).
func (s *ProjectService) Decisions(ctx context.Context, id string) ([]repository.DecisionRecord, error) {
	return s.decisions.ListByProject(ctx, id)
}

// Stats aggregates project counts by status.
func (s *ProjectService) Stats(ctx context.Context) (*domain.Stats, error) {
	total, err := s.repo.TotalCount(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		n, err := s.repo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		byStatus[status] = n
	}

	return &domain.Stats{
		TotalProjects:   total,
		PendingApproval: byStatus[domain.StatusPendingApproval],
		Approved:        byStatus[domain.StatusApproved],
		Rejected:        byStatus[domain.StatusRejected],
		ByStatus:        byStatus,
		Timestamp:       time.Now().UTC(),
	}, nil
}
