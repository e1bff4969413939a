package schedule

import "time"

// IsOpenAt reports whether the location is open at the given instant. The
// day argument must be the DaySchedule for the instant's calendar date and
// prev, when available, the schedule for the date before it: a window whose
// close time precedes its open time spills past midnight, so 00:30 can be
// "still open" from the previous day's late window.
//
// Windows are half-open [open, close): a venue closing at 22:00 is closed
// at exactly 22:00.
func IsOpenAt(day DaySchedule, prev *DaySchedule, at time.Time) bool {
	clock := at.Format("15:04")

	if day.IsOpen {
		for _, w := range day.Windows {
			if overnight(w) {
				// The portion of the window before midnight.
				if clock >= w.Open {
					return true
				}
			} else if clock >= w.Open && clock < w.Close {
				return true
			}
		}
	}

	if prev != nil && prev.IsOpen {
		for _, w := range prev.Windows {
			if overnight(w) && clock < w.Close {
				return true
			}
		}
	}

	return false
}

// NextOpening scans the merged days for the first opening at or after the
// given instant. Returns false when no day in the slice opens again.
func NextOpening(days []DaySchedule, after time.Time) (time.Time, bool) {
	for _, day := range days {
		if !day.IsOpen {
			continue
		}
		date, err := time.Parse(DateLayout, day.Date)
		if err != nil {
			continue
		}
		for _, w := range day.Windows {
			opens := atClock(date, w.Open)
			if !opens.Before(after) {
				return opens, true
			}
		}
	}
	return time.Time{}, false
}

func overnight(w Window) bool {
	return w.Close < w.Open
}

func atClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
