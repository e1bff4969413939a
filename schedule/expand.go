package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// Expand yields the concrete dates on which an override applies within
// [rangeStart, rangeEnd], inclusive on both ends. The result is sorted
// ascending, deduplicated, and deterministic for identical inputs.
//
// A set DateEnd re-anchors the whole [DateStart, DateEnd] span to every
// recurrence occurrence, preserving the span length. Monthly recurrences
// anchored to a day a month does not have (e.g. the 31st) skip that month
// rather than clamping to month-end, which would break the "same day"
// intent. RecurrenceEnd truncates the series of occurrences.
func Expand(o Override, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	rangeStart = midnightUTC(rangeStart)
	rangeEnd = midnightUTC(rangeEnd)
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidRange, rangeEnd.Format(DateLayout), rangeStart.Format(DateLayout))
	}

	start := midnightUTC(o.DateStart)
	spanDays := 0
	if o.DateEnd != nil {
		end := midnightUTC(*o.DateEnd)
		if end.Before(start) {
			return nil, fmt.Errorf("%w: date_end %s before date_start %s",
				ErrInvalidOverride, end.Format(DateLayout), start.Format(DateLayout))
		}
		spanDays = int(end.Sub(start).Hours()) / 24
	}

	anchors, err := occurrenceAnchors(o, start, spanDays, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	seen := make(map[time.Time]bool)
	dates := make([]time.Time, 0)
	for _, anchor := range anchors {
		if o.RecurrenceEnd != nil && anchor.After(midnightUTC(*o.RecurrenceEnd)) {
			continue
		}
		for i := 0; i <= spanDays; i++ {
			d := anchor.AddDate(0, 0, i)
			if d.Before(rangeStart) || d.After(rangeEnd) {
				continue
			}
			if !seen[d] {
				seen[d] = true
				dates = append(dates, d)
			}
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// occurrenceAnchors returns the start date of every occurrence whose span
// could intersect the queried range.
func occurrenceAnchors(o Override, start time.Time, spanDays int, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	switch o.Recurrence {
	case RecurrenceNone, "":
		return []time.Time{start}, nil
	case RecurrenceYearly, RecurrenceMonthly, RecurrenceWeekly:
		r, err := rrule.NewRRule(rrule.ROption{
			Freq:    recurrenceFreq(o.Recurrence),
			Dtstart: start,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOverride, err)
		}
		// Look back far enough that a span which started before the range
		// can still reach into it. Occurrences never predate DateStart.
		windowStart := rangeStart.AddDate(0, 0, -spanDays)
		if windowStart.Before(start) {
			windowStart = start
		}
		return r.Between(windowStart, rangeEnd, true), nil
	default:
		return nil, fmt.Errorf("%w: unknown recurrence %q", ErrInvalidOverride, o.Recurrence)
	}
}

func recurrenceFreq(recurrence string) rrule.Frequency {
	switch recurrence {
	case RecurrenceYearly:
		return rrule.YEARLY
	case RecurrenceMonthly:
		return rrule.MONTHLY
	default:
		return rrule.WEEKLY
	}
}
