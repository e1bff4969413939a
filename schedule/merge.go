package schedule

import (
	"fmt"
	"time"
)

// Merge combines weekly hours, overrides, and published events into one
// DaySchedule per date in [rangeStart, rangeEnd], inclusive, ascending.
//
// A closed override closes the whole day regardless of base hours. An
// override with custom hours replaces the base window. An informational
// override keeps the base hours but carries its name as the reason.
// A date whose override data cannot be resolved is emitted closed with
// HoursUnavailable set: a wrong "open" is worse than a visible failure.
func Merge(weekly WeeklyHours, overrides []Override, events []EventInfo, rangeStart, rangeEnd time.Time) ([]DaySchedule, error) {
	rangeStart = midnightUTC(rangeStart)
	rangeEnd = midnightUTC(rangeEnd)
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidRange, rangeEnd.Format(DateLayout), rangeStart.Format(DateLayout))
	}

	days := make([]DaySchedule, 0, rangeEnd.Sub(rangeStart)/(24*time.Hour)+1)
	for d := rangeStart; !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		day := DaySchedule{
			Date:    d.Format(DateLayout),
			Windows: []Window{},
			Events:  eventsOn(events, d.Format(DateLayout)),
		}

		override, err := Resolve(overrides, d)
		if err != nil {
			day.HoursUnavailable = true
			days = append(days, day)
			continue
		}

		base, hasBase := weekly[d.Weekday()]

		switch {
		case override != nil && override.IsClosed:
			day.SourceOverrideID = override.ID
			day.SourceOverrideType = override.Type
			day.OverrideReason = override.Name
		case override != nil && override.Hours != nil:
			day.IsOpen = true
			day.Windows = []Window{*override.Hours}
			day.SourceOverrideID = override.ID
			day.SourceOverrideType = override.Type
			day.OverrideReason = override.Name
		default:
			if override != nil {
				// Informational only: base hours stay in effect.
				day.SourceOverrideID = override.ID
				day.SourceOverrideType = override.Type
				day.OverrideReason = override.Name
			}
			if hasBase {
				day.IsOpen = true
				day.Windows = []Window{base}
			}
		}

		days = append(days, day)
	}
	return days, nil
}

// eventsOn filters the events whose [start_date, end_date] span covers the
// given date. Dates are YYYY-MM-DD, so string comparison orders correctly.
func eventsOn(events []EventInfo, date string) []EventInfo {
	out := []EventInfo{}
	for _, ev := range events {
		end := ev.StartDate
		if ev.EndDate != nil {
			end = *ev.EndDate
		}
		if date >= ev.StartDate && date <= end {
			out = append(out, ev)
		}
	}
	return out
}
