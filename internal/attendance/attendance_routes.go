package attendance

import (
	"github.com/tanish1120/hrms-lite-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r gin.IRouter, h *Handler, rdb *redis.Client) {
	attendance := r.Group("/attendance")
	{
		attendance.POST("/", middleware.Idempotency(rdb), h.Mark)
		attendance.GET("/", h.GetAll)
	}
}
