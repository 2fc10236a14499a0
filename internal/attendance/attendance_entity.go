package attendance

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

type Attendance struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID uint           `gorm:"column:employee_id;not null;index"`
	Date       datatypes.Date `gorm:"column:date;type:date;not null;index"`
	Status     string         `gorm:"column:status;type:varchar(20);not null"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	Employee   *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// EmployeeRef is the directory data embedded in ledger listings.
type EmployeeRef struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	EmployeeID string `gorm:"column:employee_id"`
	FullName   string `gorm:"column:full_name"`
	Email      string `gorm:"column:email"`
	Department string `gorm:"column:department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

type ListFilter struct {
	Date       *time.Time
	EmployeeID uint
}
