package holiday

import (
	"time"

	"github.com/google/uuid"
)

// Holiday is unique on (date, title).
type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date      time.Time `gorm:"type:date"`
	Title     string
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
