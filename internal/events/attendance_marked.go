package events

import "time"

const AttendanceMarkedTopic = "hrms.attendance.marked.v1"

const EventAttendanceMarked = "attendance.marked"

type AttendanceMarkedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	AttendanceID uint      `json:"attendance_id"`
	EmployeeID   uint      `json:"employee_id"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}
