package summary

import (
	"context"
	"database/sql"

	"github.com/tanish1120/hrms-lite-backend/internal/shared/connection"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=summary_repo.go -destination=mock/summary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CountAttendance(ctx context.Context, dr DateRange) (Totals, error)
	CountEmployees(ctx context.Context) (int64, error)
	CountPerEmployee(ctx context.Context, dr DateRange) ([]EmployeeCounts, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Session(ctx, r.db, r.tx)
}

func (r *repository) CountAttendance(ctx context.Context, dr DateRange) (Totals, error) {
	db := r.conn(ctx).
		Table("attendance").
		Select(`COUNT(*) AS total_records,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS total_present,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS total_absent`,
			StatusPresent, StatusAbsent,
		)

	if dr.Start != nil {
		db = db.Where("date >= ?", dr.Start.Format(dateLayout))
	}
	if dr.End != nil {
		db = db.Where("date <= ?", dr.End.Format(dateLayout))
	}

	var totals Totals
	err := db.Scan(&totals).Error
	return totals, err
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Count(&count).Error
	return count, err
}

// CountPerEmployee keeps the date filter in the join condition so employees
// without matching attendance still come back with zero counts.
func (r *repository) CountPerEmployee(ctx context.Context, dr DateRange) ([]EmployeeCounts, error) {
	join := "LEFT JOIN attendance a ON a.employee_id = e.id"
	var joinArgs []any
	if dr.Start != nil {
		join += " AND a.date >= ?"
		joinArgs = append(joinArgs, dr.Start.Format(dateLayout))
	}
	if dr.End != nil {
		join += " AND a.date <= ?"
		joinArgs = append(joinArgs, dr.End.Format(dateLayout))
	}

	var rows []EmployeeCounts
	err := r.conn(ctx).
		Table("employees AS e").
		Select(`e.id, e.employee_id, e.full_name, e.email, e.department,
			COALESCE(SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END), 0) AS present_count,
			COALESCE(SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END), 0) AS absent_count,
			COUNT(a.id) AS total`,
			StatusPresent, StatusAbsent,
		).
		Joins(join, joinArgs...).
		Group("e.id").
		Order("e.id ASC").
		Scan(&rows).Error
	return rows, err
}
