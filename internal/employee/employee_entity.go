package employee

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ConstraintEmployeeID = "uq_employees_employee_id"
	ConstraintEmail      = "uq_employees_email"
)

type Employee struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_employees_employee_id"`
	FullName   string    `gorm:"column:full_name;type:varchar(255);not null"`
	Email      string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Department string    `gorm:"column:department;type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// AttendanceEntry is the directory's read-only view of an attendance row.
type AttendanceEntry struct {
	ID         uint           `gorm:"column:id"`
	EmployeeID uint           `gorm:"column:employee_id"`
	Date       datatypes.Date `gorm:"column:date"`
	Status     string         `gorm:"column:status"`
}

func (AttendanceEntry) TableName() string {
	return "attendance"
}

type AttendanceFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Ascending bool
}
