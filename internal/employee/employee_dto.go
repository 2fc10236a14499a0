package employee

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"omitempty,max=50"`
	FullName   string `json:"full_name" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Department string `json:"department" binding:"required,max=255"`
}

type GetEmployeeQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Sort      string `form:"sort"`
}

type EmployeeResponse struct {
	ID         uint   `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type AttendanceItemResponse struct {
	ID     uint   `json:"id"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type EmployeeDetailResponse struct {
	EmployeeResponse
	Attendance   []AttendanceItemResponse `json:"attendance"`
	PresentCount int                      `json:"present_count"`
	AbsentCount  int                      `json:"absent_count"`
	Total        int                      `json:"total"`
}
