package app

import (
	"database/sql"
	"net/http"

	"github.com/tanish1120/hrms-lite-backend/internal/attendance"
	"github.com/tanish1120/hrms-lite-backend/internal/employee"
	"github.com/tanish1120/hrms-lite-backend/internal/messaging/kafka"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/response"
	"github.com/tanish1120/hrms-lite-backend/internal/summary"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const livenessMessage = "HRMS Lite Backend Running"

// registerModules wires repositories, services and handlers. rdb and
// outboxRepo may be nil.
func registerModules(
	router gin.IRouter,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	outboxRepo kafka.OutboxRepository,
	logger *zap.Logger,
) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	summaryRepo := summary.NewRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, logger)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo, logger)
	summaryService := summary.NewService(db, summaryRepo, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	summaryHandler := summary.NewHandler(summaryService, logger)

	// --- Routes Registration ---
	router.GET("/", Liveness)
	employee.RegisterRoutes(router, employeeHandler, rdb)
	attendance.RegisterRoutes(router, attendanceHandler, rdb)
	summary.RegisterRoutes(router, summaryHandler)
}

func Liveness(c *gin.Context) {
	response.Message(c, http.StatusOK, livenessMessage)
}
