package summary

type SummaryQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type EmployeeSummaryResponse struct {
	ID           uint   `json:"id"`
	EmployeeID   string `json:"employee_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	PresentCount int64  `json:"present_count"`
	AbsentCount  int64  `json:"absent_count"`
	Total        int64  `json:"total"`
}

type SummaryResponse struct {
	TotalEmployees int64                     `json:"total_employees"`
	TotalRecords   int64                     `json:"total_records"`
	TotalPresent   int64                     `json:"total_present"`
	TotalAbsent    int64                     `json:"total_absent"`
	PerEmployee    []EmployeeSummaryResponse `json:"per_employee"`
}
