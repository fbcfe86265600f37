package leave

import (
	"go-leave/internal/domain"

	"github.com/shopspring/decimal"
)

type SubmitLeaveRequest struct {
	// EmployeeID defaults to the caller's own employee.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	Kind       string `json:"kind" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Session    string `json:"session"`
	Reason     string `json:"reason" binding:"max=2000"`
}

type DecideLeaveRequest struct {
	Decision          string  `json:"decision" binding:"required"`
	ApproverReason    *string `json:"approver_reason" binding:"omitempty,max=2000"`
	ApproverSignature *string `json:"approver_signature"`
}

type BulkDecideRequest struct {
	IDs               []string `json:"ids" binding:"required,min=1,max=200,dive,uuid"`
	Decision          string   `json:"decision" binding:"required"`
	ApproverReason    *string  `json:"approver_reason" binding:"omitempty,max=2000"`
	ApproverSignature *string  `json:"approver_signature"`
}

type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BulkDecideResult struct {
	ID     string     `json:"id"`
	OK     bool       `json:"ok"`
	Status string     `json:"status,omitempty"`
	Error  *ItemError `json:"error,omitempty"`
}

type ConfirmHRRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1,max=500,dive,uuid"`
	Action string   `json:"action" binding:"required"`
}

// Per-row outcomes of an HR confirmation.
const (
	HROutcomeUpdated   = "updated"
	HROutcomeUnchanged = "unchanged"
	HROutcomeSkipped   = "skipped"
	HROutcomeNotFound  = "not_found"
)

type ConfirmHRItem struct {
	ID      string `json:"id"`
	Outcome string `json:"outcome"`
}

type ConfirmHRResult struct {
	Affected int             `json:"affected"`
	Results  []ConfirmHRItem `json:"results"`
}

type ListFilter struct {
	EmployeeID  string
	Status      domain.LeaveStatus
	Kind        domain.LeaveKind
	Year        int
	HRConfirmed *bool
}

type LeaveResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	Kind              string          `json:"kind"`
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	Session           string          `json:"session"`
	RequestedDays     decimal.Decimal `json:"requested_days"`
	Status            string          `json:"status"`
	Reason            string          `json:"reason,omitempty"`
	ApproverID        *string         `json:"approver_id,omitempty"`
	ApproverReason    *string         `json:"approver_reason,omitempty"`
	ApproverSignature *string         `json:"approver_signature,omitempty"`
	ApprovedAt        *string         `json:"approved_at,omitempty"`
	HRConfirmed       bool            `json:"hr_confirmed"`
	HRConfirmedAt     *string         `json:"hr_confirmed_at,omitempty"`
	HRConfirmedBy     *string         `json:"hr_confirmed_by,omitempty"`
	CreatedAt         string          `json:"created_at"`
}
