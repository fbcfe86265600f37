package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveSubmittedEvent = "leave.submitted"
	LeaveDecidedEvent   = "leave.decided"
)

// LeaveLifecycleEvent is published after a leave request is submitted or decided.
type LeaveLifecycleEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name,omitempty"`
	Org           string    `json:"org,omitempty"`
	Department    string    `json:"department,omitempty"`
	Division      string    `json:"division,omitempty"`
	Unit          string    `json:"unit,omitempty"`
	Kind          string    `json:"kind"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Session       string    `json:"session"`
	RequestedDays string    `json:"requested_days"`
	Status        string    `json:"status"`
	ActorID       string    `json:"actor_id,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
