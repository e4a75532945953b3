package janitor

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/uxforge/design-agent-backend/internal/projects/domain"
	"github.com/uxforge/design-agent-backend/internal/projects/repository"
)

// Janitor periodically fails projects stuck mid-pipeline. The pipeline
// itself has no timeout, so a crashed run would otherwise leave its
// project in generating or reviewing forever.
type Janitor struct {
	repo     *repository.ProjectRepository
	deadline time.Duration
	cron     *cron.Cron
}

func New(repo *repository.ProjectRepository, deadline time.Duration) *Janitor {
	return &Janitor{
		repo:     repo,
		deadline: deadline,
	}
}

// Start schedules the sweep to run every minute.
func (j *Janitor) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 * * * * *", func() {
		j.Sweep(context.Background())
	})
	if err != nil {
		log.Printf("Failed to create janitor cron job: %v", err)
		return
	}

	log.Printf("Janitor started (sweeping every minute, deadline %s)", j.deadline)
	c.Start()
	j.cron = c
}

// Stop halts the schedule; a sweep already running finishes.
func (j *Janitor) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// Sweep fails every project that has sat in a mid-pipeline status past
// the deadline. Returns the number of projects failed.
func (j *Janitor) Sweep(ctx context.Context) int {
	cutoff := time.Now().UTC().Add(-j.deadline)
	swept := 0

	for _, status := range []string{domain.StatusGenerating, domain.StatusReviewing} {
		projects, err := j.repo.ListInStatus(ctx, status)
		if err != nil {
			log.Printf("[error] operation=janitor status=%s list failed: %v", status, err)
			continue
		}

		for _, p := range projects {
			if p.UpdatedAt.After(cutoff) {
				continue
			}
			msg := "pipeline stalled in " + status + " past deadline"
			if _, err := j.repo.FailRun(ctx, p.ID, p.Generation, msg); err != nil {
				// ErrStaleRun means a regenerate took over; nothing to do
				if err != domain.ErrStaleRun {
					log.Printf("[error] operation=janitor project_id=%s fail write: %v", p.ID, err)
				}
				continue
			}
			swept++
			log.Printf("[warn] operation=janitor project_id=%s failed stalled %s run", p.ID, status)
		}
	}

	return swept
}
