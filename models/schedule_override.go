package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Override types, from highest to lowest precedence when several apply
// to the same date: closure, holiday, special, seasonal, event.
const (
	OverrideTypeHoliday  = "holiday"
	OverrideTypeSeasonal = "seasonal"
	OverrideTypeClosure  = "closure"
	OverrideTypeSpecial  = "special"
	OverrideTypeEvent    = "event"
)

const (
	RecurrenceNone    = "none"
	RecurrenceYearly  = "yearly"
	RecurrenceMonthly = "monthly"
	RecurrenceWeekly  = "weekly"
)

// ScheduleOverride is a date-specific deviation from a location's weekly
// operating hours: a holiday closure, seasonal hours, an ad-hoc closure,
// special hours, or hours auto-generated from a late-running event.
//
// IsClosed and custom hours (OpenTime/CloseTime) are mutually exclusive.
// When neither is set the override is informational only and the weekly
// hours stay in effect.
type ScheduleOverride struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LocationID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"location_id"`
	OverrideType      string         `gorm:"not null" json:"override_type"`
	Name              string         `gorm:"not null" json:"name"`
	Description       string         `json:"description"`
	DateStart         string         `gorm:"not null" json:"date_start"` // YYYY-MM-DD
	DateEnd           *string        `json:"date_end"`
	Recurrence        string         `gorm:"not null;default:'none'" json:"recurrence"`
	RecurrenceEndDate *string        `json:"recurrence_end_date"`
	IsClosed          bool           `gorm:"default:false" json:"is_closed"`
	OpenTime          *string        `json:"open_time"`  // HH:MM, only with custom hours
	CloseTime         *string        `json:"close_time"` // HH:MM, only with custom hours
	Color             *string        `json:"color"`
	EventID           *uuid.UUID     `gorm:"type:uuid;index" json:"event_id"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *ScheduleOverride) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
