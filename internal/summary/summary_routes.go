package summary

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the report under the attendance prefix.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.Group("/attendance").GET("/summary", h.GetSummary)
}
