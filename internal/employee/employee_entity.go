package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is never hard-deleted; leave requests keep referencing it.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FullName     string
	Email        string
	Org          string
	Department   string
	Division     string
	Unit         string
	LevelP       string `gorm:"column:level_p"`
	VacationDays *int
	BusinessDays *int
	SickDays     *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
