package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d := date(t, s)
	return &d
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(DateLayout)
	}
	return out
}

func TestExpandSingleDate(t *testing.T) {
	o := Override{
		ID:         "x1",
		Type:       TypeClosure,
		DateStart:  date(t, "2025-06-15"),
		Recurrence: RecurrenceNone,
	}

	dates, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-15"}, formatDates(dates))
}

func TestExpandSingleDateOutsideRange(t *testing.T) {
	o := Override{
		ID:         "x1",
		Type:       TypeClosure,
		DateStart:  date(t, "2025-07-15"),
		Recurrence: RecurrenceNone,
	}

	dates, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestExpandDateEndSpan(t *testing.T) {
	o := Override{
		ID:         "x2",
		Type:       TypeSeasonal,
		DateStart:  date(t, "2025-06-10"),
		DateEnd:    datePtr(t, "2025-06-12"),
		Recurrence: RecurrenceNone,
	}

	dates, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-12"}, formatDates(dates))
}

func TestExpandSpanClippedToRange(t *testing.T) {
	o := Override{
		ID:         "x3",
		Type:       TypeSeasonal,
		DateStart:  date(t, "2025-05-30"),
		DateEnd:    datePtr(t, "2025-06-02"),
		Recurrence: RecurrenceNone,
	}

	dates, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, formatDates(dates))
}

func TestExpandYearly(t *testing.T) {
	// Christmas closure defined in 2024 shows up in later years.
	o := Override{
		ID:         "xmas",
		Type:       TypeHoliday,
		DateStart:  date(t, "2024-12-25"),
		Recurrence: RecurrenceYearly,
	}

	dates, err := Expand(o, date(t, "2025-12-01"), date(t, "2025-12-31"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-25"}, formatDates(dates))

	dates, err = Expand(o, date(t, "2026-12-01"), date(t, "2026-12-31"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-12-25"}, formatDates(dates))
}

func TestExpandYearlySpanReanchored(t *testing.T) {
	// A two-day holiday break recurs as a two-day break every year.
	o := Override{
		ID:         "newyear",
		Type:       TypeHoliday,
		DateStart:  date(t, "2024-12-31"),
		DateEnd:    datePtr(t, "2025-01-01"),
		Recurrence: RecurrenceYearly,
	}

	dates, err := Expand(o, date(t, "2025-12-01"), date(t, "2026-01-31"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-31", "2026-01-01"}, formatDates(dates))
}

func TestExpandMonthlySkipsShortMonths(t *testing.T) {
	// Anchored to the 31st: months without a 31st are skipped, not clamped.
	o := Override{
		ID:         "payday",
		Type:       TypeSpecial,
		DateStart:  date(t, "2025-01-31"),
		Recurrence: RecurrenceMonthly,
	}

	dates, err := Expand(o, date(t, "2025-01-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-31", "2025-03-31", "2025-05-31"}, formatDates(dates))
}

func TestExpandWeekly(t *testing.T) {
	// 2025-06-02 is a Monday.
	o := Override{
		ID:         "monday",
		Type:       TypeSpecial,
		DateStart:  date(t, "2025-06-02"),
		Recurrence: RecurrenceWeekly,
	}

	dates, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-16", "2025-06-23", "2025-06-30"}, formatDates(dates))
}

func TestExpandRecurrenceEndTruncates(t *testing.T) {
	o := Override{
		ID:            "monday",
		Type:          TypeSpecial,
		DateStart:     date(t, "2025-06-02"),
		Recurrence:    RecurrenceWeekly,
		RecurrenceEnd: datePtr(t, "2025-06-16"),
	}

	dates, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-16"}, formatDates(dates))
}

func TestExpandNeverPredatesDateStart(t *testing.T) {
	o := Override{
		ID:         "monday",
		Type:       TypeSpecial,
		DateStart:  date(t, "2025-06-16"),
		Recurrence: RecurrenceWeekly,
	}

	dates, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-16", "2025-06-23", "2025-06-30"}, formatDates(dates))
}

func TestExpandDeterministic(t *testing.T) {
	o := Override{
		ID:         "monday",
		Type:       TypeSpecial,
		DateStart:  date(t, "2025-06-02"),
		DateEnd:    datePtr(t, "2025-06-03"),
		Recurrence: RecurrenceWeekly,
	}

	first, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	second, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExpandUnknownRecurrence(t *testing.T) {
	o := Override{
		ID:         "bad",
		Type:       TypeSpecial,
		DateStart:  date(t, "2025-06-02"),
		Recurrence: "fortnightly",
	}

	_, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	assert.ErrorIs(t, err, ErrInvalidOverride)
}

func TestExpandDateEndBeforeDateStart(t *testing.T) {
	o := Override{
		ID:         "bad",
		Type:       TypeSpecial,
		DateStart:  date(t, "2025-06-10"),
		DateEnd:    datePtr(t, "2025-06-05"),
		Recurrence: RecurrenceNone,
	}

	_, err := Expand(o, date(t, "2025-06-01"), date(t, "2025-06-30"))
	assert.ErrorIs(t, err, ErrInvalidOverride)
}

func TestExpandInvalidRange(t *testing.T) {
	o := Override{
		ID:         "x1",
		Type:       TypeClosure,
		DateStart:  date(t, "2025-06-15"),
		Recurrence: RecurrenceNone,
	}

	_, err := Expand(o, date(t, "2025-06-30"), date(t, "2025-06-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}
