package agents

import (
	"context"
	"time"

	"github.com/uxforge/design-agent-backend/internal/projects/domain"
)

// Designer is the design generator agent. The current implementation is
// a deterministic stand-in for a model call: it waits for the
// configured delay and returns a fixed five-component landing page
// design regardless of the requirements text.
type Designer struct {
	delay time.Duration
}

func NewDesigner(delay time.Duration) *Designer {
	return &Designer{delay: delay}
}

// Generate produces a design for the given requirements.
func (d *Designer) Generate(ctx context.Context, requirements string) (*domain.Design, error) {
	if err := sleep(ctx, d.delay); err != nil {
		return nil, err
	}

	designs := []domain.DesignComponent{
		{
			Component: "Header Component",
			Structure: "Logo + Navigation Menu + CTA Button + Mobile Hamburger",
			Styling:   "Dark gradient (slate-900 to slate-800), white text, glass morphism effect, sticky positioning",
			Reasoning: "Modern header with clear visual hierarchy. Sticky positioning ensures constant navigation access. Glass morphism adds premium feel.",
		},
		{
			Component: "Hero Section",
			Structure: "Large Heading + Subheading + Hero Image/Video + Dual CTA Buttons + Trust Indicators",
			Styling:   "Full viewport height, gradient background, bold typography (4xl-6xl), animated elements, responsive grid",
			Reasoning: "Eye-catching hero section designed to immediately capture attention and communicate value proposition. Dual CTAs provide primary and secondary actions.",
		},
		{
			Component: "Features Grid",
			Structure: "3-column grid with icon cards, each containing: Icon + Title + Description + Learn More link",
			Styling:   "Card-based layout with shadows, hover lift effect, consistent spacing (gap-6), rounded corners (rounded-xl)",
			Reasoning: "Scannable layout that highlights key features. Card design allows easy content digestion. Hover effects add interactivity.",
		},
		{
			Component: "Social Proof Section",
			Structure: "Customer testimonials carousel + Client logos grid + Statistics counter",
			Styling:   "Alternating background color, contained width, auto-scrolling carousel, fade animations",
			Reasoning: "Builds trust through social validation. Statistics provide concrete proof of value. Testimonials add human element.",
		},
		{
			Component: "Footer Component",
			Structure: "Multi-column layout: Company Info + Quick Links + Resources + Newsletter Signup + Social Links",
			Styling:   "Dark background (slate-900), organized columns, subtle borders, responsive stack on mobile",
			Reasoning: "Comprehensive footer providing easy access to all important links and information. Newsletter signup captures leads.",
		},
	}

	return &domain.Design{
		Timestamp: time.Now().UTC(),
		Designs:   designs,
		TechnicalSpecs: domain.TechnicalSpecs{
			Framework:     "React 18 with TypeScript",
			Styling:       "Tailwind CSS v3 with custom theme extensions",
			Responsive:    true,
			Accessibility: "WCAG 2.1 AA accessibility compliance with ARIA labels, semantic HTML, keyboard navigation support",
		},
	}, nil
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
