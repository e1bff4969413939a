package utils

import (
	"fmt"
	"strings"
	"time"

	"gudbro-backend/models"

	"github.com/go-playground/validator/v10"
)

// SanitizeValidationError takes a validator error and returns a user-friendly message
// without leaking internal Go struct names.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	// Try to cast to validator.ValidationErrors
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// If it's not a validation error, return a generic message
		// Check for common binding error patterns
		errMsg := err.Error()
		if strings.Contains(errMsg, "cannot unmarshal") || strings.Contains(errMsg, "invalid character") {
			return "Invalid request body"
		}
		return "Invalid request body"
	}

	// Build user-friendly error messages from field-level errors
	var messages []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(messages) == 0 {
		return "Invalid request body"
	}

	return strings.Join(messages, "; ")
}

var validOverrideTypes = map[string]bool{
	models.OverrideTypeHoliday:  true,
	models.OverrideTypeSeasonal: true,
	models.OverrideTypeClosure:  true,
	models.OverrideTypeSpecial:  true,
	models.OverrideTypeEvent:    true,
}

var validRecurrences = map[string]bool{
	models.RecurrenceNone:    true,
	models.RecurrenceYearly:  true,
	models.RecurrenceMonthly: true,
	models.RecurrenceWeekly:  true,
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidClock reports whether s is a well-formed HH:MM time of day.
func ValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ValidateOverride checks a schedule override before it is stored or enters
// schedule computation. Loosely-typed override records from clients are
// rejected here so the core only ever sees well-formed input.
func ValidateOverride(o *models.ScheduleOverride) error {
	if !validOverrideTypes[o.OverrideType] {
		return fmt.Errorf("override_type must be one of: holiday, seasonal, closure, special, event")
	}
	if !validRecurrences[o.Recurrence] {
		return fmt.Errorf("recurrence must be one of: none, yearly, monthly, weekly")
	}
	if o.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidDate(o.DateStart) {
		return fmt.Errorf("date_start must be a valid YYYY-MM-DD date")
	}
	if o.DateEnd != nil {
		if !ValidDate(*o.DateEnd) {
			return fmt.Errorf("date_end must be a valid YYYY-MM-DD date")
		}
		if *o.DateEnd < o.DateStart {
			return fmt.Errorf("date_end (%s) must not be before date_start (%s)", *o.DateEnd, o.DateStart)
		}
	}
	if o.RecurrenceEndDate != nil && !ValidDate(*o.RecurrenceEndDate) {
		return fmt.Errorf("recurrence_end_date must be a valid YYYY-MM-DD date")
	}

	hasOpen := o.OpenTime != nil
	hasClose := o.CloseTime != nil
	if hasOpen != hasClose {
		return fmt.Errorf("open_time and close_time must be set together")
	}
	if hasOpen {
		if o.IsClosed {
			return fmt.Errorf("is_closed and custom hours are mutually exclusive")
		}
		if !ValidClock(*o.OpenTime) || !ValidClock(*o.CloseTime) {
			return fmt.Errorf("open_time and close_time must be valid HH:MM times")
		}
	}

	return nil
}

// ValidateEvent checks the scheduling fields of an event before storage.
func ValidateEvent(e *models.Event) error {
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !ValidDate(e.StartDate) {
		return fmt.Errorf("start_date must be a valid YYYY-MM-DD date")
	}
	if e.EndDate != nil {
		if !ValidDate(*e.EndDate) {
			return fmt.Errorf("end_date must be a valid YYYY-MM-DD date")
		}
		if *e.EndDate < e.StartDate {
			return fmt.Errorf("end_date (%s) must not be before start_date (%s)", *e.EndDate, e.StartDate)
		}
	}
	if !ValidClock(e.StartTime) || !ValidClock(e.EndTime) {
		return fmt.Errorf("start_time and end_time must be valid HH:MM times")
	}
	switch e.Status {
	case models.EventStatusDraft, models.EventStatusPublished, models.EventStatusCancelled, "":
	default:
		return fmt.Errorf("status must be one of: draft, published, cancelled")
	}
	return nil
}
