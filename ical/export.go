// Package ical serializes a merged venue schedule into an RFC 5545
// iCalendar document and builds the external calendar links (subscription
// URL, one-shot Google Calendar deep link).
package ical

import (
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"gudbro-backend/schedule"
)

var (
	// ErrInvalidRange reports an export range whose end precedes its start.
	ErrInvalidRange = errors.New("invalid export range")

	// ErrUnserializable reports a field value (e.g. a control character in
	// a title) that cannot be represented in iCalendar text. Export fails
	// as a whole rather than producing a corrupt partial file.
	ErrUnserializable = errors.New("value cannot be serialized to iCalendar")
)

// uidDomain scopes generated UIDs. UIDs are derived only from stable
// identifiers so re-exporting the same data reproduces them byte for byte
// and calendar clients see updates instead of duplicates.
const uidDomain = "gudbro.com"

// Venue carries the location fields the exporter needs.
type Venue struct {
	ID       string
	Name     string
	Slug     string
	Timezone string
}

// Export serializes the merged schedule for [rangeStart, rangeEnd] into an
// iCalendar document: one all-day VEVENT per run of consecutive days closed
// by the same closure or holiday override, and one timed VEVENT per
// published event. An empty schedule still yields a valid zero-event
// document.
func Export(venue Venue, rangeStart, rangeEnd time.Time, days []schedule.DaySchedule) ([]byte, error) {
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidRange, rangeEnd.Format(schedule.DateLayout), rangeStart.Format(schedule.DateLayout))
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Gudbro//Venue Calendar//EN")
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(venue.Name)
	cal.SetXWRCalDesc(fmt.Sprintf("Opening hours and events for %s", venue.Name))

	now := time.Now().UTC()

	if err := addClosureEvents(cal, days, now); err != nil {
		return nil, err
	}
	if err := addPublishedEvents(cal, days, venue, now); err != nil {
		return nil, err
	}

	return []byte(cal.Serialize()), nil
}

// addClosureEvents emits one all-day VEVENT per run of consecutive days
// closed by the same closure/holiday override. The run start date goes into
// the UID so each occurrence of a recurring override keeps a stable
// identity across exports.
func addClosureEvents(cal *ics.Calendar, days []schedule.DaySchedule, stamp time.Time) error {
	for i := 0; i < len(days); {
		day := days[i]
		if !closedByOverride(day) {
			i++
			continue
		}

		runStart, err := time.Parse(schedule.DateLayout, day.Date)
		if err != nil {
			return fmt.Errorf("%w: bad date %q", ErrUnserializable, day.Date)
		}
		runLen := 1
		for i+runLen < len(days) &&
			closedByOverride(days[i+runLen]) &&
			days[i+runLen].SourceOverrideID == day.SourceOverrideID {
			runLen++
		}

		if err := checkText(day.OverrideReason); err != nil {
			return err
		}

		uid := fmt.Sprintf("override-%s-%s@%s", day.SourceOverrideID, runStart.Format("20060102"), uidDomain)
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(runStart)
		// iCalendar all-day DTEND is exclusive.
		ev.SetAllDayEndAt(runStart.AddDate(0, 0, runLen))
		ev.SetSummary(day.OverrideReason)
		ev.SetProperty(ics.ComponentProperty("CATEGORIES"), categoryFor(day.SourceOverrideType))
		ev.SetProperty(ics.ComponentProperty("X-GUDBRO-CLOSED"), "TRUE")

		i += runLen
	}
	return nil
}

// addPublishedEvents emits one timed VEVENT per distinct event attached to
// any day in the range.
func addPublishedEvents(cal *ics.Calendar, days []schedule.DaySchedule, venue Venue, stamp time.Time) error {
	seen := make(map[string]bool)
	for _, day := range days {
		for _, info := range day.Events {
			if seen[info.ID] {
				continue
			}
			seen[info.ID] = true

			if err := checkText(info.Title); err != nil {
				return err
			}
			if err := checkText(info.Description); err != nil {
				return err
			}

			start, end, err := eventSpan(info)
			if err != nil {
				return err
			}

			ev := cal.AddEvent(fmt.Sprintf("event-%s@%s", info.ID, uidDomain))
			ev.SetDtStampTime(stamp)
			ev.SetStartAt(start)
			ev.SetEndAt(end)
			ev.SetSummary(info.Title)
			if info.Description != "" {
				ev.SetDescription(info.Description)
			}
			if venue.Name != "" {
				ev.SetLocation(venue.Name)
			}
			ev.SetProperty(ics.ComponentProperty("CATEGORIES"), "EVENT")
		}
	}
	return nil
}

func closedByOverride(day schedule.DaySchedule) bool {
	if day.IsOpen || day.SourceOverrideID == "" {
		return false
	}
	return day.SourceOverrideType == schedule.TypeClosure || day.SourceOverrideType == schedule.TypeHoliday
}

func categoryFor(overrideType string) string {
	switch overrideType {
	case schedule.TypeHoliday:
		return "HOLIDAY"
	case schedule.TypeClosure:
		return "CLOSURE"
	case schedule.TypeSeasonal:
		return "SEASONAL"
	case schedule.TypeSpecial:
		return "SPECIAL"
	case schedule.TypeEvent:
		return "EVENT"
	default:
		return "OTHER"
	}
}

// eventSpan builds the concrete start/end instants of an event. An end
// clock earlier than the start clock on the same date rolls the end over
// to the next day (late-night events).
func eventSpan(info schedule.EventInfo) (time.Time, time.Time, error) {
	startDate, err := time.Parse(schedule.DateLayout, info.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad start_date %q", ErrUnserializable, info.StartDate)
	}
	endDate := startDate
	if info.EndDate != nil {
		endDate, err = time.Parse(schedule.DateLayout, *info.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: bad end_date %q", ErrUnserializable, *info.EndDate)
		}
	}

	start := withClock(startDate, info.StartTime)
	end := withClock(endDate, info.EndTime)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

func withClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// checkText rejects control characters that would break iCalendar content
// lines. Newlines are fine: the encoder escapes them.
func checkText(s string) error {
	for _, r := range s {
		if r == '\n' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: control character %q", ErrUnserializable, r)
		}
	}
	return nil
}
