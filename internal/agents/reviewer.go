package agents

import (
	"context"
	"strings"
	"time"

	"github.com/uxforge/design-agent-backend/internal/projects/domain"
)

// Scoring rules applied by the reviewer.
const (
	baseScore            = 85
	approvalThreshold    = 80
	minComponents        = 3
	fewComponentsPenalty = 10
	notResponsivePenalty = 20
	accessibilityPenalty = 15
	accessibilityKeyword = "accessibility"
)

// Reviewer is the design review agent: a deterministic rule pass over
// the generated design standing in for a model call.
type Reviewer struct {
	delay time.Duration
}

func NewReviewer(delay time.Duration) *Reviewer {
	return &Reviewer{delay: delay}
}

// Review scores a design. The verdict is approved at or above the
// approval threshold, needs_revision below it.
func (r *Reviewer) Review(ctx context.Context, design *domain.Design) (*domain.Review, error) {
	if err := sleep(ctx, r.delay); err != nil {
		return nil, err
	}

	score := baseScore
	issues := []string{}

	strengths := []string{
		"Well-structured component hierarchy with clear separation of concerns",
		"Responsive design approach ensures compatibility across all devices",
		"Accessibility considerations properly integrated from the start",
		"Modern visual aesthetic aligned with current design trends",
		"Comprehensive technical specifications provided",
		"Each component has clear reasoning justifying design decisions",
	}

	if len(design.Designs) < minComponents {
		issues = append(issues, "Limited number of components may not cover all user needs")
		score -= fewComponentsPenalty
	}

	if !design.TechnicalSpecs.Responsive {
		issues = append(issues, "CRITICAL: Design must be responsive for mobile users")
		score -= notResponsivePenalty
	}

	if !strings.Contains(strings.ToLower(design.TechnicalSpecs.Accessibility), accessibilityKeyword) {
		issues = append(issues, "Accessibility standards not clearly defined")
		score -= accessibilityPenalty
	}

	suggestions := []string{
		"Consider adding loading states and skeleton screens for better perceived performance",
		"Implement micro-animations for improved user engagement and feedback",
		"Add dark mode toggle for user preference accommodation",
		"Include error boundary components for graceful error handling",
		"Consider implementing progressive image loading for performance",
		"Add A/B testing hooks for future optimization",
		"Include analytics tracking for user behavior insights",
	}

	status := domain.ReviewNeedsRevision
	if score >= approvalThreshold {
		status = domain.ReviewApproved
	}

	return &domain.Review{
		Timestamp:   time.Now().UTC(),
		Score:       score,
		Status:      status,
		Strengths:   strengths,
		Issues:      issues,
		Suggestions: suggestions,
	}, nil
}
