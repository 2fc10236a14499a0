package bootstrap

import (
	"time"

	"github.com/tanish1120/hrms-lite-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	Production     bool
	AllowOrigins   []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the gin engine with the global middleware chain.
func NewRouter(cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowOrigins)))
	r.Use(middleware.ContextLogger(logger))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			middleware.RequestIDHeader,
			middleware.IdempotencyHeader,
		},
		ExposeHeaders: []string{
			middleware.RequestIDHeader,
			middleware.IdempotencyReplayHeader,
		},
		MaxAge: 12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
