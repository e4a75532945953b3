package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoot serves the service banner at /.
func RegisterRoot(r gin.IRouter, serviceName, version string) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": serviceName,
			"version": version,
			"status":  "active",
		})
	})
}
