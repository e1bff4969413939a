package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Location struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string           `gorm:"not null" json:"name"`
	Slug           string           `gorm:"uniqueIndex;not null" json:"slug"`
	Timezone       string           `gorm:"not null;default:'Asia/Ho_Chi_Minh'" json:"timezone"`
	Address        string           `json:"address"`
	City           string           `json:"city"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email"`
	IsActive       bool             `gorm:"default:true" json:"is_active"`
	OperatingHours []OperatingHours `gorm:"foreignKey:LocationID" json:"operating_hours,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
