package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/uxforge/design-agent-backend/internal/projects/domain"
	"github.com/uxforge/design-agent-backend/internal/projects/repository"
)

// DesignGenerator produces a design from requirements text.
type DesignGenerator interface {
	Generate(ctx context.Context, requirements string) (*domain.Design, error)
}

// DesignReviewer scores a generated design.
type DesignReviewer interface {
	Review(ctx context.Context, design *domain.Design) (*domain.Review, error)
}

// Runner drives the generate→review pipeline for a project. Each run is
// an independent background goroutine; the only coordination with
// concurrent regenerates is the generation token carried through every
// repository write.
type Runner struct {
	repo     *repository.ProjectRepository
	designer DesignGenerator
	reviewer DesignReviewer
}

func NewRunner(repo *repository.ProjectRepository, designer DesignGenerator, reviewer DesignReviewer) *Runner {
	return &Runner{
		repo:     repo,
		designer: designer,
		reviewer: reviewer,
	}
}

// Start kicks off the pipeline for a project in the background and
// returns immediately.
func (r *Runner) Start(p *domain.Project) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				recordRunFailed()
				log.Printf("[error] operation=pipeline project_id=%s panic=%v", p.ID, rec)
				r.fail(p.ID, p.Generation, fmt.Sprintf("pipeline panic: %v", rec))
			}
		}()
		r.Run(context.Background(), p.ID, p.Generation, p.Requirements)
	}()
}

// Run executes the pipeline synchronously: pending→generating, design
// attach (→reviewing), review attach (→pending_approval or
// needs_revision). Any failure moves the project to the error status;
// a stale generation aborts without writing.
func (r *Runner) Run(ctx context.Context, projectID string, generation int, requirements string) {
	recordRunStarted()

	if _, err := r.repo.SetStatus(ctx, projectID, generation, domain.StatusGenerating); err != nil {
		r.abort(projectID, generation, "set generating", err)
		return
	}

	design, err := r.designer.Generate(ctx, requirements)
	if err != nil {
		r.abort(projectID, generation, "generate design", err)
		return
	}

	if _, err := r.repo.AttachDesign(ctx, projectID, generation, design); err != nil {
		r.abort(projectID, generation, "attach design", err)
		return
	}

	review, err := r.reviewer.Review(ctx, design)
	if err != nil {
		r.abort(projectID, generation, "review design", err)
		return
	}

	status := domain.StatusNeedsRevision
	if review.Status == domain.ReviewApproved {
		status = domain.StatusPendingApproval
	}

	if _, err := r.repo.AttachReview(ctx, projectID, generation, review, status); err != nil {
		r.abort(projectID, generation, "attach review", err)
		return
	}

	recordRunCompleted()
	log.Printf("[info] operation=pipeline project_id=%s status=%s score=%d", projectID, status, review.Score)
}

func (r *Runner) abort(projectID string, generation int, step string, err error) {
	if errors.Is(err, domain.ErrStaleRun) {
		// a newer regenerate owns the project now
		recordRunStale()
		log.Printf("[warn] operation=pipeline project_id=%s step=%s superseded by newer run", projectID, step)
		return
	}
	recordRunFailed()
	log.Printf("[error] operation=pipeline project_id=%s step=%s error=%v", projectID, step, err)
	r.fail(projectID, generation, err.Error())
}

func (r *Runner) fail(projectID string, generation int, message string) {
	ctx := context.Background()
	if _, err := r.repo.FailRun(ctx, projectID, generation, message); err != nil && !errors.Is(err, domain.ErrStaleRun) {
		log.Printf("[error] operation=pipeline project_id=%s failed to record error status: %v", projectID, err)
	}
}
