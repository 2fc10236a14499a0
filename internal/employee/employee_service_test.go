package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/tanish1120/hrms-lite-backend/internal/employee"
	employeeerrors "github.com/tanish1120/hrms-lite-backend/internal/employee/errors"
	employeeMock "github.com/tanish1120/hrms-lite-backend/internal/employee/mock"
	"github.com/tanish1120/hrms-lite-backend/internal/events"
	"github.com/tanish1120/hrms-lite-backend/internal/messaging/kafka"
	kafkaMock "github.com/tanish1120/hrms-lite-backend/internal/messaging/kafka/mock"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/apperror"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var generatedIDPattern = regexp.MustCompile(`^EMP[0-9A-F]{8}$`)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	redismock redismock.ClientMock
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewServiceWithOutbox(db, repo, outboxRepo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func mustDate(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return datatypes.Date(d)
}

func TestGenerateEmployeeID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := employee.GenerateEmployeeID()
		assert.Regexp(t, generatedIDPattern, id)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 90)
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - explicit employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{
			EmployeeID: "E1",
			FullName:   "Ann Lee",
			Email:      "ann@x.com",
			Department: "Eng",
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), "ann@x.com").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmployeeID(gomock.Any(), "E1").Return(false, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "E1", e.EmployeeID)
				assert.Equal(t, "Ann Lee", e.FullName)
				assert.Equal(t, "Eng", e.Department)
				e.ID = 1
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectIncr(employee.EmployeeListVersionKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, uint(1), resp.ID)
		assert.Equal(t, "E1", resp.EmployeeID)
		assert.Equal(t, "ann@x.com", resp.Email)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("success - generated id retries on collision", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{FullName: "Bo", Email: "bo@x.com", Department: "Ops"}

		var candidates []string

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), "bo@x.com").Return(false, nil)
		deps.repo.EXPECT().
			ExistsByEmployeeID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id string) (bool, error) {
				candidates = append(candidates, id)
				return true, nil
			}).
			Times(1)
		deps.repo.EXPECT().
			ExistsByEmployeeID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id string) (bool, error) {
				candidates = append(candidates, id)
				return false, nil
			}).
			Times(1)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				e.ID = 7
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectIncr(employee.EmployeeListVersionKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Regexp(t, generatedIDPattern, resp.EmployeeID)
		assert.Equal(t, candidates[1], resp.EmployeeID)
	})

	t.Run("success - outbox event carries request id", func(t *testing.T) {
		deps := setupServiceTest(t)
		rid := "REQ-123-ABC"
		ctx := contextutil.WithRequestID(context.Background(), rid)
		req := employee.CreateEmployeeRequest{EmployeeID: "E9", FullName: "Cy", Email: "cy@x.com", Department: "HR"}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().ExistsByEmployeeID(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				e.ID = 3
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, rid, ev.RequestID)
				assert.Equal(t, events.EventEmployeeCreated, ev.EventType)
				assert.Equal(t, events.EmployeeLifecycleTopic, ev.Topic)
				assert.Equal(t, "3", ev.AggregateID)

				var payload events.EmployeeCreatedEvent
				require.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, "E9", payload.EmployeeID)
				return nil
			})
		deps.redismock.ExpectIncr(employee.EmployeeListVersionKey).SetVal(1)

		_, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
	})

	t.Run("duplicate email -> conflict, nothing persisted", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{EmployeeID: "E2", FullName: "Dup", Email: "ann@x.com", Department: "Eng"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), "ann@x.com").Return(true, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate employee id -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{EmployeeID: "E1", FullName: "Other", Email: "other@x.com", Department: "Eng"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().ExistsByEmployeeID(gomock.Any(), "E1").Return(true, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeIDAlreadyExists)
	})

	t.Run("unique violation on insert -> mapped by constraint", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{EmployeeID: "E5", FullName: "Race", Email: "race@x.com", Department: "Eng"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().ExistsByEmployeeID(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: employee.ConstraintEmail})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{EmployeeID: "E6", FullName: "Err", Email: "err@x.com", Department: "Eng"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().ExistsByEmployeeID(gomock.Any(), gomock.Any()).Return(false, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

		_, err := deps.service.Create(ctx, req)

		assert.EqualError(t, err, "db error")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached := []employee.EmployeeResponse{{ID: 1, EmployeeID: "E1", FullName: "Ann Lee"}}
		jsonResp, _ := json.Marshal(cached)

		deps.redismock.ExpectGet(employee.EmployeeListVersionKey).SetVal("3")
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey(3)).SetVal(string(jsonResp))
		deps.repo.EXPECT().FindAll(gomock.Any()).Times(0)

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		rows := []employee.Employee{
			{ID: 1, EmployeeID: "E1", FullName: "Ann Lee", Email: "ann@x.com", Department: "Eng"},
			{ID: 2, EmployeeID: "E2", FullName: "Bo", Email: "bo@x.com", Department: "Ops"},
		}
		expected := []employee.EmployeeResponse{
			{ID: 1, EmployeeID: "E1", FullName: "Ann Lee", Email: "ann@x.com", Department: "Eng"},
			{ID: 2, EmployeeID: "E2", FullName: "Bo", Email: "bo@x.com", Department: "Ops"},
		}
		jsonResp, _ := json.Marshal(expected)

		deps.redismock.ExpectGet(employee.EmployeeListVersionKey).RedisNil()
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey(0)).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(rows, nil)
		deps.redismock.ExpectSet(employee.EmployeeListCacheKey(0), jsonResp, time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("write committed during a miss does not leave a stale list", func(t *testing.T) {
		deps := setupServiceTest(t)
		ann := employee.Employee{ID: 1, EmployeeID: "E1", FullName: "Ann Lee", Email: "ann@x.com", Department: "Eng"}
		bo := employee.Employee{ID: 2, EmployeeID: "E2", FullName: "Bo", Email: "bo@x.com", Department: "Ops"}
		staleJSON, _ := json.Marshal([]employee.EmployeeResponse{
			{ID: 1, EmployeeID: "E1", FullName: "Ann Lee", Email: "ann@x.com", Department: "Eng"},
		})
		freshJSON, _ := json.Marshal([]employee.EmployeeResponse{
			{ID: 1, EmployeeID: "E1", FullName: "Ann Lee", Email: "ann@x.com", Department: "Eng"},
			{ID: 2, EmployeeID: "E2", FullName: "Bo", Email: "bo@x.com", Department: "Ops"},
		})

		// First read: version 0, miss. While it holds its snapshot a create
		// commits and bumps the version.
		deps.redismock.ExpectGet(employee.EmployeeListVersionKey).RedisNil()
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey(0)).RedisNil()
		deps.redismock.ExpectIncr(employee.EmployeeListVersionKey).SetVal(1)
		deps.redismock.ExpectSet(employee.EmployeeListCacheKey(0), staleJSON, time.Hour).SetVal("OK")
		// Second read sees the new version and reloads.
		deps.redismock.ExpectGet(employee.EmployeeListVersionKey).SetVal("1")
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey(1)).RedisNil()
		deps.redismock.ExpectSet(employee.EmployeeListCacheKey(1), freshJSON, time.Hour).SetVal("OK")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), "bo@x.com").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmployeeID(gomock.Any(), "E2").Return(false, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				e.ID = 2
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		gomock.InOrder(
			deps.repo.EXPECT().
				FindAll(gomock.Any()).
				DoAndReturn(func(ctx context.Context) ([]employee.Employee, error) {
					snapshot := []employee.Employee{ann}
					_, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
						EmployeeID: "E2", FullName: "Bo", Email: "bo@x.com", Department: "Ops",
					})
					require.NoError(t, err)
					return snapshot, nil
				}),
			deps.repo.EXPECT().FindAll(gomock.Any()).Return([]employee.Employee{ann, bo}, nil),
		)

		first, err := deps.service.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, first, 1)

		list, err := deps.service.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "E2", list[1].EmployeeID)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("canceled first caller does not fail the load", func(t *testing.T) {
		deps := setupServiceTest(t)
		canceled, cancel := context.WithCancel(context.Background())

		deps.redismock.ExpectGet(employee.EmployeeListVersionKey).RedisNil()
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey(0)).RedisNil()
		deps.repo.EXPECT().
			FindAll(gomock.Any()).
			DoAndReturn(func(ctx context.Context) ([]employee.Employee, error) {
				cancel()
				assert.NoError(t, ctx.Err())
				return []employee.Employee{{ID: 1, EmployeeID: "E1"}}, nil
			})
		jsonResp, _ := json.Marshal([]employee.EmployeeResponse{{ID: 1, EmployeeID: "E1"}})
		deps.redismock.ExpectSet(employee.EmployeeListCacheKey(0), jsonResp, time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(canceled)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("empty directory returns empty list", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(employee.EmployeeListVersionKey).RedisNil()
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey(0)).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
		deps.redismock.ExpectSet(employee.EmployeeListCacheKey(0), []byte("[]"), time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(employee.EmployeeListVersionKey).RedisNil()
		deps.redismock.ExpectGet(employee.EmployeeListCacheKey(0)).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("database connection lost"))

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "database connection lost")
	})
}

func TestEmployeeListCacheKey(t *testing.T) {
	assert.Equal(t, "employees:list:v0", employee.EmployeeListCacheKey(0))
	assert.NotEqual(t, employee.EmployeeListCacheKey(1), employee.EmployeeListCacheKey(2))
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	empl := &employee.Employee{ID: 1, EmployeeID: "E1", FullName: "Ann Lee", Email: "ann@x.com", Department: "Eng"}

	t.Run("success - counts and newest first", func(t *testing.T) {
		deps := setupServiceTest(t)
		rows := []employee.AttendanceEntry{
			{ID: 3, EmployeeID: 1, Date: mustDate(t, "2024-01-03"), Status: "Present"},
			{ID: 2, EmployeeID: 1, Date: mustDate(t, "2024-01-02"), Status: "Absent"},
			{ID: 1, EmployeeID: 1, Date: mustDate(t, "2024-01-01"), Status: "Present"},
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(empl, nil)
		deps.repo.EXPECT().
			FindAttendance(gomock.Any(), uint(1), employee.AttendanceFilter{}).
			Return(rows, nil)

		resp, err := deps.service.GetByID(ctx, 1, employee.GetEmployeeQuery{})

		require.NoError(t, err)
		assert.Equal(t, "E1", resp.EmployeeID)
		assert.Equal(t, 2, resp.PresentCount)
		assert.Equal(t, 1, resp.AbsentCount)
		assert.Equal(t, 3, resp.Total)
		require.Len(t, resp.Attendance, 3)
		assert.Equal(t, "2024-01-03", resp.Attendance[0].Date)
		assert.Equal(t, "2024-01-01", resp.Attendance[2].Date)
	})

	t.Run("no attendance -> zero counts", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(empl, nil)
		deps.repo.EXPECT().FindAttendance(gomock.Any(), uint(1), gomock.Any()).Return(nil, nil)

		resp, err := deps.service.GetByID(ctx, 1, employee.GetEmployeeQuery{})

		require.NoError(t, err)
		assert.NotNil(t, resp.Attendance)
		assert.Empty(t, resp.Attendance)
		assert.Zero(t, resp.PresentCount)
		assert.Zero(t, resp.AbsentCount)
		assert.Zero(t, resp.Total)
	})

	t.Run("date range and ascending sort are passed to the repository", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(empl, nil)
		deps.repo.EXPECT().
			FindAttendance(gomock.Any(), uint(1), gomock.Any()).
			DoAndReturn(func(ctx context.Context, id uint, f employee.AttendanceFilter) ([]employee.AttendanceEntry, error) {
				require.NotNil(t, f.StartDate)
				require.NotNil(t, f.EndDate)
				assert.Equal(t, "2024-01-02", f.StartDate.Format("2006-01-02"))
				assert.Equal(t, "2024-01-31", f.EndDate.Format("2006-01-02"))
				assert.True(t, f.Ascending)
				return nil, nil
			})

		_, err := deps.service.GetByID(ctx, 1, employee.GetEmployeeQuery{
			StartDate: "2024-01-02",
			EndDate:   "2024-01-31",
			Sort:      "asc",
		})

		assert.NoError(t, err)
	})

	t.Run("start after end -> invalid input", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, 1, employee.GetEmployeeQuery{
			StartDate: "2024-02-01",
			EndDate:   "2024-01-01",
		})

		assert.ErrorIs(t, err, apperror.ErrInvalidDateRange)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 99, employee.GetEmployeeQuery{})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.Equal(t, 404, apperror.ToHTTP(err).Status)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success - attendance removed with employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := &employee.Employee{ID: 1, EmployeeID: "E1"}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		gomock.InOrder(
			deps.repo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(empl, nil),
			deps.repo.EXPECT().DeleteAttendance(gomock.Any(), uint(1)).Return(int64(2), nil),
			deps.repo.EXPECT().Delete(gomock.Any(), uint(1)).Return(nil),
		)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.EventEmployeeDeleted, ev.EventType)

				var payload events.EmployeeDeletedEvent
				require.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, 2, payload.AttendanceRemoved)
				return nil
			})
		deps.redismock.ExpectIncr(employee.EmployeeListVersionKey).SetVal(1)

		err := deps.service.Delete(ctx, 1)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), uint(42)).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, 42)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("failure - db error", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(&employee.Employee{ID: 1}, nil)
		deps.repo.EXPECT().DeleteAttendance(gomock.Any(), uint(1)).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), uint(1)).Return(errors.New("db error"))

		err := deps.service.Delete(ctx, 1)

		assert.Error(t, err)
	})
}
