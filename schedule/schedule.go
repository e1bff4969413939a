// Package schedule resolves a location's effective opening hours for any
// date range by reconciling the standing weekly hours with date-specific
// overrides (holidays, seasonal hours, closures, special hours) and with
// published events. Everything in this package is a pure function over its
// inputs: no I/O, no shared state, safe to call concurrently.
package schedule

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidOverride reports a malformed override: unknown recurrence,
	// or a date_end earlier than date_start.
	ErrInvalidOverride = errors.New("invalid schedule override")

	// ErrInvalidRange reports a query range whose end precedes its start.
	ErrInvalidRange = errors.New("invalid date range")
)

const (
	TypeHoliday  = "holiday"
	TypeSeasonal = "seasonal"
	TypeClosure  = "closure"
	TypeSpecial  = "special"
	TypeEvent    = "event"
)

const (
	RecurrenceNone    = "none"
	RecurrenceYearly  = "yearly"
	RecurrenceMonthly = "monthly"
	RecurrenceWeekly  = "weekly"
)

// Window is a single open/close span within one day. Times are "HH:MM".
// A close time numerically earlier than the open time means the window
// runs past midnight into the following day.
type Window struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WeeklyHours maps a weekday to its base window. A missing weekday means
// the location is closed that day.
type WeeklyHours map[time.Weekday]Window

// Override is one deviation from the weekly hours, already validated and
// converted from its storage form. IsClosed and Hours are mutually
// exclusive; when neither is set the override is informational only.
type Override struct {
	ID            string
	Type          string
	Name          string
	Description   string
	DateStart     time.Time
	DateEnd       *time.Time
	Recurrence    string
	RecurrenceEnd *time.Time
	IsClosed      bool
	Hours         *Window
	CreatedAt     time.Time
}

// EventInfo is the slice of a published event that scheduling cares about.
// Dates are "YYYY-MM-DD", times "HH:MM".
type EventInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
}

// DaySchedule is the fully resolved state of one calendar date. It is
// derived fresh on every query and never cached, so a change to overrides
// or events is visible on the next request.
type DaySchedule struct {
	Date               string      `json:"date"` // YYYY-MM-DD
	IsOpen             bool        `json:"is_open"`
	Windows            []Window    `json:"windows"`
	SourceOverrideID   string      `json:"source_override_id,omitempty"`
	SourceOverrideType string      `json:"source_override_type,omitempty"`
	OverrideReason     string      `json:"override_reason,omitempty"`
	HoursUnavailable   bool        `json:"hours_unavailable,omitempty"`
	Events             []EventInfo `json:"events"`
}

// typePriority is the explicit precedence order between override types.
// Closures are safety-critical and always win; event-generated overrides
// only ever extend hours, so they lose to everything else.
func typePriority(overrideType string) int {
	switch overrideType {
	case TypeClosure:
		return 100
	case TypeHoliday:
		return 80
	case TypeSpecial:
		return 60
	case TypeSeasonal:
		return 40
	case TypeEvent:
		return 20
	default:
		return 0
	}
}

// midnightUTC truncates a timestamp to its calendar date.
func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
