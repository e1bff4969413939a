package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
)

// Event is a scheduled marketing event (live music, tasting, happy hour...).
// Only published events participate in schedule merging and calendar export.
type Event struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LocationID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"location_id"`
	Title               string         `gorm:"not null" json:"title"`
	Description         string         `json:"description"`
	EventType           string         `gorm:"default:'other'" json:"event_type"`
	EventCategory       string         `gorm:"default:'special'" json:"event_category"`
	Status              string         `gorm:"not null;default:'draft'" json:"status"`
	StartDate           string         `gorm:"not null" json:"start_date"` // YYYY-MM-DD
	EndDate             *string        `json:"end_date"`
	StartTime           string         `gorm:"not null;default:'18:00'" json:"start_time"` // HH:MM
	EndTime             string         `gorm:"not null;default:'23:00'" json:"end_time"`
	RequiresReservation bool           `gorm:"default:false" json:"requires_reservation"`
	EntranceFee         *float64       `json:"entrance_fee"`
	TicketURL           string         `json:"ticket_url"`
	ImageURL            string         `json:"image_url"`
	IsPublic            bool           `gorm:"default:true" json:"is_public"`
	IsFeatured          bool           `gorm:"default:false" json:"is_featured"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
