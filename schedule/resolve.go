package schedule

import "time"

// Resolve picks the single override in effect on a date, or nil when none
// applies and the weekly hours stand. When several overrides cover the same
// date the explicit type precedence decides (closure > holiday > special >
// seasonal > event); ties within a type go to the most recently created
// record so resolution stays deterministic.
func Resolve(overrides []Override, date time.Time) (*Override, error) {
	date = midnightUTC(date)

	var winner *Override
	for i := range overrides {
		o := &overrides[i]
		dates, err := Expand(*o, date, date)
		if err != nil {
			return nil, err
		}
		if len(dates) == 0 {
			continue
		}
		if winner == nil || takesPrecedence(o, winner) {
			winner = o
		}
	}
	return winner, nil
}

func takesPrecedence(a, b *Override) bool {
	pa, pb := typePriority(a.Type), typePriority(b.Type)
	if pa != pb {
		return pa > pb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
