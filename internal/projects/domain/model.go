package domain

import "time"

// Project is a design project moving through the agent pipeline.
// Design, Review and HumanApproval stay nil until the corresponding
// stage has completed; Status is the single source of truth for which
// of them is meaningful.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Requirements string    `json:"requirements"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	// Generation is bumped on every regenerate. A pipeline run carries
	// the generation it was started for; writes from an older run are
	// rejected so a stale run cannot clobber a regenerated project.
	Generation    int            `json:"generation"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	Design        *Design        `json:"design"`
	Review        *Review        `json:"review"`
	HumanApproval *HumanApproval `json:"human_approval"`
}

// Design is the payload produced by the design generator agent.
type Design struct {
	Timestamp      time.Time         `json:"timestamp"`
	Designs        []DesignComponent `json:"designs"`
	TechnicalSpecs TechnicalSpecs    `json:"technical_specs"`
}

type DesignComponent struct {
	Component string `json:"component"`
	Structure string `json:"structure"`
	Styling   string `json:"styling"`
	Reasoning string `json:"reasoning"`
}

type TechnicalSpecs struct {
	Framework     string `json:"framework"`
	Styling       string `json:"styling"`
	Responsive    bool   `json:"responsive"`
	Accessibility string `json:"accessibility"`
}

// Review is the payload produced by the reviewer agent.
// Status is ReviewApproved or ReviewNeedsRevision.
type Review struct {
	Timestamp   time.Time `json:"timestamp"`
	Score       int       `json:"score"`
	Status      string    `json:"status"`
	Strengths   []string  `json:"strengths"`
	Issues      []string  `json:"issues"`
	Suggestions []string  `json:"suggestions"`
}

type HumanApproval struct {
	Approved  bool      `json:"approved"`
	Feedback  string    `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
	Approver  string    `json:"approver"`
}

// Project status constants
const (
	StatusPending         = "pending"
	StatusGenerating      = "generating"
	StatusReviewing       = "reviewing"
	StatusPendingApproval = "pending_approval"
	StatusNeedsRevision   = "needs_revision"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusError           = "error"
)

// Review verdict constants
const (
	ReviewApproved      = "approved"
	ReviewNeedsRevision = "needs_revision"
)

// AllStatuses lists every project status, in lifecycle order.
var AllStatuses = []string{
	StatusPending,
	StatusGenerating,
	StatusReviewing,
	StatusPendingApproval,
	StatusNeedsRevision,
	StatusApproved,
	StatusRejected,
	StatusError,
}

// CreateProjectRequest is the data needed to create a project.
type CreateProjectRequest struct {
	Name         string
	Requirements string
}

// ApprovalRequest is a human approve/reject decision.
type ApprovalRequest struct {
	Approved bool
	Feedback string
	Approver string
}

// Stats is the aggregate view returned by the stats endpoint. The four
// named fields mirror the original API shape; ByStatus carries counts
// for every status.
type Stats struct {
	TotalProjects   int64            `json:"total_projects"`
	PendingApproval int64            `json:"pending_approval"`
	Approved        int64            `json:"approved"`
	Rejected        int64            `json:"rejected"`
	ByStatus        map[string]int64 `json:"by_status"`
	Timestamp       time.Time        `json:"timestamp"`
}
