package employee_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/tanish1120/hrms-lite-backend/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (employee.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return employee.NewRepository(gormDB), mock
}

var attendanceColumns = []string{"id", "employee_id", "date", "status"}

func TestRepository_FindAttendance(t *testing.T) {
	ctx := context.Background()
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("newest first by default", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "attendance" WHERE employee_id = $1 ORDER BY date DESC, id DESC`,
		)).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(attendanceColumns).
				AddRow(11, 5, jan2, "Absent").
				AddRow(10, 5, jan1, "Present"))

		rows, err := repo.FindAttendance(ctx, 5, employee.AttendanceFilter{})

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, uint(11), rows[0].ID)
		assert.Equal(t, "Absent", rows[0].Status)
		assert.Equal(t, jan2, time.Time(rows[0].Date).UTC())
		assert.Equal(t, uint(5), rows[1].EmployeeID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inclusive range ascending", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "attendance" WHERE employee_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC, id ASC`,
		)).
			WithArgs(5, "2024-01-01", "2024-01-02").
			WillReturnRows(sqlmock.NewRows(attendanceColumns).
				AddRow(10, 5, jan1, "Present").
				AddRow(11, 5, jan2, "Absent"))

		rows, err := repo.FindAttendance(ctx, 5, employee.AttendanceFilter{
			StartDate: &jan1,
			EndDate:   &jan2,
			Ascending: true,
		})

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, uint(10), rows[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByID(t *testing.T) {
	t.Run("missing row", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" WHERE id = $1`)).
			WithArgs(0, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		empl, err := repo.FindByID(context.Background(), 0)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, empl)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the row", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees" WHERE id = $1`)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing deleted -> record not found", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees" WHERE id = $1`)).
			WithArgs(9).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.ErrorIs(t, repo.Delete(ctx, 9), gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
