package employee

import (
	"context"
	"database/sql"

	"github.com/tanish1120/hrms-lite-backend/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	FindAttendance(ctx context.Context, id uint, filter AttendanceFilter) ([]AttendanceEntry, error)
	DeleteAttendance(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Session(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Order("id ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAttendance(ctx context.Context, id uint, filter AttendanceFilter) ([]AttendanceEntry, error) {
	db := r.conn(ctx).
		Model(&AttendanceEntry{}).
		Where("employee_id = ?", id)

	if filter.StartDate != nil {
		db = db.Where("date >= ?", filter.StartDate.Format("2006-01-02"))
	}
	if filter.EndDate != nil {
		db = db.Where("date <= ?", filter.EndDate.Format("2006-01-02"))
	}

	if filter.Ascending {
		db = db.Order("date ASC, id ASC")
	} else {
		db = db.Order("date DESC, id DESC")
	}

	var rows []AttendanceEntry
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteAttendance(ctx context.Context, id uint) (int64, error) {
	res := r.conn(ctx).
		Where("employee_id = ?", id).
		Delete(&AttendanceEntry{})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
