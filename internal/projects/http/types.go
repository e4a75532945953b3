package http

// CreateProjectBody is the request body for creating a project.
type CreateProjectBody struct {
	Name         string `json:"name" binding:"required"`
	Requirements string `json:"requirements"`
}

// ApprovalBody is the request body for the human approve/reject call.
type ApprovalBody struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback,omitempty"`
	Approver string `json:"approver,omitempty"`
}
