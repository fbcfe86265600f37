package leaveright

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRight is the yearly allotment per grade level.
type LeaveRight struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Level     string
	Vacation  int
	Business  int
	Sick      int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
