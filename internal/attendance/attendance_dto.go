package attendance

type MarkAttendanceRequest struct {
	// Pointer so an explicit 0 passes binding and is reported as not found.
	EmployeeID *uint  `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Status     string `json:"status" binding:"required,oneof=Present Absent"`
}

type ListAttendanceQuery struct {
	Date       string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	EmployeeID uint   `form:"employee_id"`
}

type EmployeeSummary struct {
	ID         uint   `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type AttendanceResponse struct {
	ID         uint             `json:"id"`
	EmployeeID uint             `json:"employee_id"`
	Date       string           `json:"date"`
	Status     string           `json:"status"`
	Employee   *EmployeeSummary `json:"employee"`
}
