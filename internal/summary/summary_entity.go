package summary

import "time"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type Totals struct {
	TotalRecords int64
	TotalPresent int64
	TotalAbsent  int64
}

// EmployeeCounts is one row of the per-employee breakdown.
type EmployeeCounts struct {
	ID           uint
	EmployeeID   string
	FullName     string
	Email        string
	Department   string
	PresentCount int64
	AbsentCount  int64
	Total        int64
}
