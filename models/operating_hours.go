package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperatingHours is the standing weekly schedule: one row per weekday.
// A missing row or is_closed=true means the venue is closed that weekday.
type OperatingHours struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id"`
	DayOfWeek  int       `gorm:"not null" json:"day_of_week"` // 0=Sunday, 6=Saturday
	OpenTime   string    `gorm:"not null;default:'09:00'" json:"open_time"`
	CloseTime  string    `gorm:"not null;default:'22:00'" json:"close_time"`
	IsClosed   bool      `gorm:"default:false" json:"is_closed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (o *OperatingHours) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
