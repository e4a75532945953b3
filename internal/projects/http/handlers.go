package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uxforge/design-agent-backend/internal/projects/domain"
	"github.com/uxforge/design-agent-backend/internal/projects/repository"
	"github.com/uxforge/design-agent-backend/internal/projects/service"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Handler exposes project CRUD and lifecycle endpoints.
type Handler struct {
	svc *service.ProjectService
}

func NewHandler(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

// CreateProject creates a project and starts the design pipeline.
func (h *Handler) CreateProject(c *gin.Context) {
	var body CreateProjectBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: name is required"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &domain.CreateProjectRequest{
		Name:         body.Name,
		Requirements: body.Requirements,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": p})
}

// ListProjects lists projects newest first, with skip/limit pagination.
func (h *Handler) ListProjects(c *gin.Context) {
	skip := parseQueryInt(c, "skip", 0)
	limit := parseQueryInt(c, "limit", defaultListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, err := h.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": items, "count": len(items)})
}

// GetProject retrieves a project by ID.
func (h *Handler) GetProject(c *gin.Context) {
	id := c.Param("id")

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": p})
}

// DeleteProject deletes a project.
func (h *Handler) DeleteProject(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if err == domain.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully", "project_id": id})
}

// ApproveProject records the human approve/reject decision. Only legal
// while the project is in pending_approval.
func (h *Handler) ApproveProject(c *gin.Context) {
	id := c.Param("id")

	var body ApprovalBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.svc.Approve(c.Request.Context(), id, &domain.ApprovalRequest{
		Approved: body.Approved,
		Feedback: body.Feedback,
		Approver: body.Approver,
	})
	if err != nil {
		switch err {
		case domain.ErrProjectNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case domain.ErrNotAwaitingApproval:
			c.JSON(http.StatusConflict, gin.H{"error": "project is not awaiting approval"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record decision"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project " + p.Status, "project": p})
}

// RegenerateProject resets the project and restarts the pipeline.
func (h *Handler) RegenerateProject(c *gin.Context) {
	id := c.Param("id")

	p, err := h.svc.Regenerate(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to regenerate project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "design regeneration started", "project": p})
}

// GetDecisions returns the audit trail of human decisions for a project.
func (h *Handler) GetDecisions(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		if err == domain.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	decisions, err := h.svc.Decisions(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list decisions"})
		return
	}
	if decisions == nil {
		// audit log disabled or empty
		decisions = []repository.DecisionRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}

// GetStats returns aggregate project counts by status.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func parseQueryInt(c *gin.Context, key string, defaultValue int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return defaultValue
	}
	return v
}
