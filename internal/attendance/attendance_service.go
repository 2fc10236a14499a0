package attendance

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	attendanceerrors "github.com/tanish1120/hrms-lite-backend/internal/attendance/errors"
	"github.com/tanish1120/hrms-lite-backend/internal/events"
	"github.com/tanish1120/hrms-lite-backend/internal/messaging/kafka"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/apperror"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, query ListAttendanceQuery) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if req.EmployeeID == nil {
		return AttendanceResponse{}, apperror.RequiredField("Employee Id")
	}
	employeeID := *req.EmployeeID
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", employeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("mark attendance check employee failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !exists {
		s.logger.Warn("mark attendance employee not found",
			zap.String("request_id", rid),
			zap.Uint("employee_id", employeeID),
		)
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	// Repeated marks for the same employee and date are kept as separate rows.
	row := &Attendance{
		EmployeeID: employeeID,
		Date:       datatypes.Date(date),
		Status:     req.Status,
	}
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("mark attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			rid, "attendance", strconv.FormatUint(uint64(row.ID), 10),
			events.EventAttendanceMarked, events.AttendanceMarkedTopic,
			events.AttendanceMarkedEvent{
				EventType:    events.EventAttendanceMarked,
				RequestID:    rid,
				AttendanceID: row.ID,
				EmployeeID:   row.EmployeeID,
				Date:         req.Date,
				Status:       row.Status,
				OccurredAt:   time.Now().UTC(),
			},
		)
		if err != nil {
			return AttendanceResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("mark attendance outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.Uint("attendance_id", row.ID),
		zap.Uint("employee_id", row.EmployeeID),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, query ListAttendanceQuery) ([]AttendanceResponse, error) {
	filter := ListFilter{EmployeeID: query.EmployeeID}
	if query.Date != "" {
		date, err := time.Parse(dateLayout, query.Date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		filter.Date = &date
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       time.Time(a.Date).Format(dateLayout),
		Status:     a.Status,
	}
	// Nil when the owning employee no longer exists.
	if a.Employee != nil {
		resp.Employee = &EmployeeSummary{
			ID:         a.Employee.ID,
			EmployeeID: a.Employee.EmployeeID,
			FullName:   a.Employee.FullName,
			Email:      a.Employee.Email,
			Department: a.Employee.Department,
		}
	}
	return resp
}
