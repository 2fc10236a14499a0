package employee

import (
	"github.com/tanish1120/hrms-lite-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r gin.IRouter, handler *Handler, rdb *redis.Client) {
	employees := r.Group("/employees")
	{
		employees.POST("/", middleware.Idempotency(rdb), handler.Create)
		employees.GET("/", handler.GetAll)
		employees.GET("/:id", handler.GetByID)
		employees.DELETE("/:id", handler.Delete)
	}
}
