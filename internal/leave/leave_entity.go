package leave

import (
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveRequest moves PENDING -> APPROVED | REJECTED once. The HR flag is
// independent of that axis and only changes on APPROVED rows.
type LeaveRequest struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey"`
	EmployeeID        uuid.UUID          `gorm:"type:uuid"`
	Employee          *employee.Employee `gorm:"foreignKey:EmployeeID"`
	Kind              domain.LeaveKind
	StartDate         time.Time `gorm:"type:date"`
	EndDate           time.Time `gorm:"type:date"`
	Session           domain.Session
	RequestedDays     decimal.Decimal `gorm:"type:numeric(5,1)"`
	Status            domain.LeaveStatus
	Reason            string
	ApproverID        *uuid.UUID `gorm:"type:uuid"`
	ApproverReason    *string
	ApproverSignature *string
	ApprovedAt        *time.Time
	HRConfirmed       bool       `gorm:"column:hr_confirmed"`
	HRConfirmedAt     *time.Time `gorm:"column:hr_confirmed_at"`
	HRConfirmedBy     *uuid.UUID `gorm:"column:hr_confirmed_by;type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (LeaveRequest) TableName() string { return "leave_requests" }

// Decision carries what an approver attaches to a PENDING request.
type Decision struct {
	Status    domain.LeaveStatus
	ActorID   uuid.UUID
	Reason    *string
	Signature *string
	At        time.Time
}
