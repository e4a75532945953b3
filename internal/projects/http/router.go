package http

import "github.com/gin-gonic/gin"

// Register registers the project routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/projects", h.CreateProject)
	rg.GET("/projects", h.ListProjects)
	rg.GET("/projects/:id", h.GetProject)
	rg.DELETE("/projects/:id", h.DeleteProject)
	rg.POST("/projects/:id/approve", h.ApproveProject)
	rg.POST("/projects/:id/regenerate", h.RegenerateProject)
	rg.GET("/projects/:id/decisions", h.GetDecisions)
	rg.GET("/stats", h.GetStats)
}
