package events

import "time"

const EmployeeLifecycleTopic = "hrms.employee.lifecycle.v1"

const (
	EventEmployeeCreated = "employee.created"
	EventEmployeeDeleted = "employee.deleted"
)

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ID         uint      `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EmployeeDeletedEvent struct {
	EventType         string    `json:"event_type"`
	RequestID         string    `json:"request_id,omitempty"`
	ID                uint      `json:"id"`
	EmployeeID        string    `json:"employee_id"`
	AttendanceRemoved int       `json:"attendance_removed"`
	OccurredAt        time.Time `json:"occurred_at"`
}
