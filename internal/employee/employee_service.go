package employee

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	employeeerrors "github.com/tanish1120/hrms-lite-backend/internal/employee/errors"
	"github.com/tanish1120/hrms-lite-backend/internal/events"
	"github.com/tanish1120/hrms-lite-backend/internal/messaging/kafka"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/apperror"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeListVersionKey = "employees:list:ver"
	employeeListCacheTTL   = time.Hour

	StatusPresent = "Present"
	StatusAbsent  = "Absent"

	dateLayout = "2006-01-02"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint, query GetEmployeeQuery) (EmployeeDetailResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// EmployeeListCacheKey is the cache key of the employee list at a version.
func EmployeeListCacheKey(version int64) string {
	return "employees:list:v" + strconv.FormatInt(version, 10)
}

// GenerateEmployeeID returns "EMP" followed by 8 uppercase hex characters.
func GenerateEmployeeID() string {
	id := uuid.New()
	return "EMP" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.Email = strings.TrimSpace(req.Email)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("employee_id", req.EmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emailTaken, err := qtx.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("create employee check email failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if emailTaken {
		s.logger.Warn("create employee duplicate email", zap.String("request_id", rid), zap.String("email", req.Email))
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
	}

	if req.EmployeeID == "" {
		generated, err := s.nextEmployeeID(ctx, qtx)
		if err != nil {
			s.logger.Error("create employee generate id failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeID = generated
	} else {
		idTaken, err := qtx.ExistsByEmployeeID(ctx, req.EmployeeID)
		if err != nil {
			s.logger.Error("create employee check employee_id failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if idTaken {
			s.logger.Warn("create employee duplicate employee_id",
				zap.String("request_id", rid),
				zap.String("employee_id", req.EmployeeID),
			)
			return EmployeeResponse{}, employeeerrors.ErrEmployeeIDAlreadyExists
		}
	}

	empl := &Employee{
		EmployeeID: req.EmployeeID,
		FullName:   strings.TrimSpace(req.FullName),
		Email:      req.Email,
		Department: strings.TrimSpace(req.Department),
	}

	// A concurrent insert can still win between the checks above and this
	// statement; the unique index catches it.
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Warn("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			rid, "employee", strconv.FormatUint(uint64(empl.ID), 10),
			events.EventEmployeeCreated, events.EmployeeLifecycleTopic,
			events.EmployeeCreatedEvent{
				EventType:  events.EventEmployeeCreated,
				RequestID:  rid,
				ID:         empl.ID,
				EmployeeID: empl.EmployeeID,
				Email:      empl.Email,
				Department: empl.Department,
				OccurredAt: time.Now().UTC(),
			},
		)
		if err != nil {
			s.logger.Error("create employee build event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("request_id", rid),
				zap.Uint("id", empl.ID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("id", empl.ID),
		zap.String("employee_id", empl.EmployeeID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) nextEmployeeID(ctx context.Context, repo Repository) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := GenerateEmployeeID()
		taken, err := repo.ExistsByEmployeeID(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		s.logger.Debug("generated employee_id collided, retrying", zap.String("candidate", candidate))
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	cacheKey, cacheable := s.listCacheKey(ctx)
	if cacheable {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("employee list cache read failed", zap.Error(err))
		}
	}

	// Shared callers must not fail because the first one went away.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(loadCtx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		// A write that commits during the read bumps the version, so this
		// snapshot lands under a key nobody reads anymore.
		if cacheable {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(loadCtx, cacheKey, jsonData, employeeListCacheTTL).Err(); err != nil {
					s.logger.Warn("employee list cache write failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

// listCacheKey returns the key for the current list version. The second
// result is false when there is no cache or the version cannot be read.
func (s *service) listCacheKey(ctx context.Context) (string, bool) {
	if s.rdb == nil {
		return EmployeeListCacheKey(0), false
	}
	version, err := s.rdb.Get(ctx, EmployeeListVersionKey).Int64()
	if err != nil && err != redis.Nil {
		s.logger.Warn("employee list cache version read failed", zap.Error(err))
		return EmployeeListCacheKey(0), false
	}
	return EmployeeListCacheKey(version), true
}

func (s *service) GetByID(ctx context.Context, id uint, query GetEmployeeQuery) (EmployeeDetailResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("get employee by id requested",
		zap.String("request_id", rid),
		zap.Uint("id", id),
		zap.String("start_date", query.StartDate),
		zap.String("end_date", query.EndDate),
	)

	filter, err := buildAttendanceFilter(query)
	if err != nil {
		return EmployeeDetailResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		s.logger.Error("get employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeDetailResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}

	rows, err := qtx.FindAttendance(ctx, id, filter)
	if err != nil {
		s.logger.Error("get employee attendance failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeDetailResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeDetailResponse{}, err
	}

	return mapToDetailResponse(*empl, rows), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested", zap.String("request_id", rid), zap.Uint("id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	// Attendance rows go with their employee.
	removed, err := qtx.DeleteAttendance(ctx, id)
	if err != nil {
		s.logger.Error("delete employee attendance failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			rid, "employee", strconv.FormatUint(uint64(id), 10),
			events.EventEmployeeDeleted, events.EmployeeLifecycleTopic,
			events.EmployeeDeletedEvent{
				EventType:         events.EventEmployeeDeleted,
				RequestID:         rid,
				ID:                id,
				EmployeeID:        empl.EmployeeID,
				AttendanceRemoved: int(removed),
				OccurredAt:        time.Now().UTC(),
			},
		)
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("delete employee outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.Uint("id", id),
		zap.Int64("attendance_removed", removed),
	)
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, EmployeeListVersionKey).Err(); err != nil {
		s.logger.Error("failed to bump employee list cache version",
			zap.Error(err),
			zap.String("key", EmployeeListVersionKey),
		)
	}
}

func buildAttendanceFilter(query GetEmployeeQuery) (AttendanceFilter, error) {
	filter := AttendanceFilter{
		Ascending: strings.EqualFold(strings.TrimSpace(query.Sort), "asc"),
	}

	if query.StartDate != "" {
		start, err := time.Parse(dateLayout, query.StartDate)
		if err != nil {
			return AttendanceFilter{}, apperror.InvalidField("Start Date")
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse(dateLayout, query.EndDate)
		if err != nil {
			return AttendanceFilter{}, apperror.InvalidField("End Date")
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return AttendanceFilter{}, apperror.ErrInvalidDateRange
	}

	return filter, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID,
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Email:      empl.Email,
		Department: empl.Department,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapToDetailResponse(empl Employee, rows []AttendanceEntry) EmployeeDetailResponse {
	resp := EmployeeDetailResponse{
		EmployeeResponse: mapToResponse(empl),
		Attendance:       make([]AttendanceItemResponse, len(rows)),
		Total:            len(rows),
	}
	for i, a := range rows {
		resp.Attendance[i] = AttendanceItemResponse{
			ID:     a.ID,
			Date:   time.Time(a.Date).Format(dateLayout),
			Status: a.Status,
		}
		switch a.Status {
		case StatusPresent:
			resp.PresentCount++
		case StatusAbsent:
			resp.AbsentCount++
		}
	}
	return resp
}
