package app

import (
	"github.com/tanish1120/hrms-lite-backend/internal/messaging/kafka"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure, migrates the schema and registers all
// routes. The returned cleanup releases connections.
func BuildApp(router *gin.Engine, cfg Config) (func(), error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database failed", zap.Error(err))
		}
	}

	if err := Migrate(gormDB); err != nil {
		cleanup()
		return nil, err
	}
	logger.Info("database schema ready")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			cleanup()
			return nil, err
		}
		closeDB := cleanup
		cleanup = func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("close redis failed", zap.Error(err))
			}
			closeDB()
		}
	} else {
		logger.Info("REDIS_ADDR not set, employee list cache and idempotency disabled")
	}

	// Events are only queued when a broker is configured; the worker
	// process relays them.
	var outboxRepo kafka.OutboxRepository
	if cfg.KafkaBroker != "" {
		outboxRepo = kafka.NewOutboxRepository(sqlDB)
	} else {
		logger.Info("KAFKA_BROKER not set, domain events disabled")
	}

	// 2. Register Modules & Routes
	registerModules(router, sqlDB, gormDB, rdb, outboxRepo, zap.L())

	return cleanup, nil
}
