package unit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uxforge/design-agent-backend/internal/agents"
	"github.com/uxforge/design-agent-backend/internal/projects/domain"
)

func TestDesigner_Generate(t *testing.T) {
	d := agents.NewDesigner(0)

	design, err := d.Generate(context.Background(), "any requirements")
	require.NoError(t, err)

	t.Run("produces five components", func(t *testing.T) {
		assert.Len(t, design.Designs, 5)
		for _, c := range design.Designs {
			assert.NotEmpty(t, c.Component)
			assert.NotEmpty(t, c.Structure)
			assert.NotEmpty(t, c.Styling)
			assert.NotEmpty(t, c.Reasoning)
		}
	})

	t.Run("specs pass the reviewer's checks", func(t *testing.T) {
		assert.True(t, design.TechnicalSpecs.Responsive)
		assert.Contains(t, strings.ToLower(design.TechnicalSpecs.Accessibility), "accessibility")
	})

	t.Run("is deterministic", func(t *testing.T) {
		again, err := d.Generate(context.Background(), "different requirements")
		require.NoError(t, err)
		assert.Equal(t, design.Designs, again.Designs)
		assert.Equal(t, design.TechnicalSpecs, again.TechnicalSpecs)
	})
}

func TestDesigner_CancelledContext(t *testing.T) {
	d := agents.NewDesigner(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Generate(ctx, "whatever")
	assert.Error(t, err)
}

func TestReviewer_ScoresCannedDesign(t *testing.T) {
	r := agents.NewReviewer(0)
	d := agents.NewDesigner(0)

	design, err := d.Generate(context.Background(), "landing page")
	require.NoError(t, err)

	review, err := r.Review(context.Background(), design)
	require.NoError(t, err)

	assert.Equal(t, 85, review.Score)
	assert.Equal(t, domain.ReviewApproved, review.Status)
	assert.Empty(t, review.Issues)
	assert.NotEmpty(t, review.Strengths)
	assert.NotEmpty(t, review.Suggestions)
}

func TestReviewer_Penalties(t *testing.T) {
	r := agents.NewReviewer(0)
	ctx := context.Background()

	goodSpecs := domain.TechnicalSpecs{
		Framework:     "React",
		Styling:       "Tailwind",
		Responsive:    true,
		Accessibility: "full accessibility support",
	}
	threeComponents := []domain.DesignComponent{{}, {}, {}}

	t.Run("fewer than three components costs 10", func(t *testing.T) {
		review, err := r.Review(ctx, &domain.Design{
			Designs:        []domain.DesignComponent{{}, {}},
			TechnicalSpecs: goodSpecs,
		})
		require.NoError(t, err)
		assert.Equal(t, 75, review.Score)
		assert.Equal(t, domain.ReviewNeedsRevision, review.Status)
	})

	t.Run("non-responsive costs 20", func(t *testing.T) {
		specs := goodSpecs
		specs.Responsive = false
		review, err := r.Review(ctx, &domain.Design{
			Designs:        threeComponents,
			TechnicalSpecs: specs,
		})
		require.NoError(t, err)
		assert.Equal(t, 65, review.Score)
		assert.Equal(t, domain.ReviewNeedsRevision, review.Status)
	})

	t.Run("missing accessibility keyword costs 15", func(t *testing.T) {
		specs := goodSpecs
		specs.Accessibility = "WCAG compliant"
		review, err := r.Review(ctx, &domain.Design{
			Designs:        threeComponents,
			TechnicalSpecs: specs,
		})
		require.NoError(t, err)
		assert.Equal(t, 70, review.Score)
		assert.Equal(t, domain.ReviewNeedsRevision, review.Status)
	})

	t.Run("penalties stack", func(t *testing.T) {
		review, err := r.Review(ctx, &domain.Design{
			Designs: []domain.DesignComponent{{}},
			TechnicalSpecs: domain.TechnicalSpecs{
				Responsive:    false,
				Accessibility: "none",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 40, review.Score)
		assert.Len(t, review.Issues, 3)
	})

	t.Run("keyword match is case-insensitive", func(t *testing.T) {
		specs := goodSpecs
		specs.Accessibility = "Accessibility: WCAG 2.1 AA"
		review, err := r.Review(ctx, &domain.Design{
			Designs:        threeComponents,
			TechnicalSpecs: specs,
		})
		require.NoError(t, err)
		assert.Equal(t, 85, review.Score)
		assert.Equal(t, domain.ReviewApproved, review.Status)
	})
}
