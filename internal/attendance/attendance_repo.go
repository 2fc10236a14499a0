package attendance

import (
	"context"
	"database/sql"

	"github.com/tanish1120/hrms-lite-backend/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	EmployeeExists(ctx context.Context, employeeID uint) (bool, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit(clause.Associations).Create(a).Error
}

// EmployeeExists takes a share lock on the employee row so a concurrent
// delete cannot commit before the caller's insert does.
func (r *repository) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	var ids []uint
	err := r.conn(ctx).
		Table("employees").
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id = ?", employeeID).
		Limit(1).
		Pluck("id", &ids).Error
	return len(ids) > 0, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	db := r.conn(ctx).
		Preload("Employee")

	if filter.Date != nil {
		db = db.Where("date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.EmployeeID != 0 {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}

	var rows []Attendance
	err := db.
		Order("date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}
