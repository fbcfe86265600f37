package approver

import (
	"time"

	"github.com/google/uuid"
)

// Approver decides leave for employees inside its scope or explicitly
// assigned to it. Each approver maps to exactly one user.
type Approver struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid"`
	Name        string
	Org         *string
	Department  *string
	Division    *string
	Unit        *string
	Assignments []Assignment `gorm:"foreignKey:ApproverID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Assignment struct {
	ApproverID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (Assignment) TableName() string { return "approver_assignments" }

// Target is the org placement of the employee whose leave is being decided.
type Target struct {
	EmployeeID string
	Org        string
	Department string
	Division   string
	Unit       string
}

// Covers reports whether a is allowed to decide for t. An explicit
// assignment always matches; otherwise every scope field set on a must
// equal the target's, and at least one must be set.
func (a Approver) Covers(t Target) bool {
	for _, as := range a.Assignments {
		if as.EmployeeID.String() == t.EmployeeID {
			return true
		}
	}

	scoped := false
	for _, f := range []struct {
		scope *string
		value string
	}{
		{a.Org, t.Org},
		{a.Department, t.Department},
		{a.Division, t.Division},
		{a.Unit, t.Unit},
	} {
		if f.scope == nil || *f.scope == "" {
			continue
		}
		scoped = true
		if *f.scope != f.value {
			return false
		}
	}
	return scoped
}
