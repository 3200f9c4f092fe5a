package model

import "time"

// ISODateLayout is the calendar-date format used for due dates and week
// starts throughout the persisted state.
const ISODateLayout = "2006-01-02"

// StartOfDay zeroes the time-of-day in UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISODate formats t as a calendar-date string.
func ISODate(t time.Time) string {
	return t.UTC().Format(ISODateLayout)
}

// ParseISODate parses a calendar-date string into a UTC midnight instant.
func ParseISODate(s string) (time.Time, error) {
	return time.ParseInLocation(ISODateLayout, s, time.UTC)
}

// WeekStartISO returns the ISO date of the most recent Saturday on or before
// t. The tracked week runs Saturday through Friday, so habit progress index 0
// always lands on the returned date. The function is idempotent: feeding its
// result back in returns the same date.
func WeekStartISO(t time.Time) string {
	d := StartOfDay(t)
	// Weekday is Sunday=0..Saturday=6; step back to the nearest Saturday.
	offset := (int(d.Weekday()) - 6 + 7) % 7
	return ISODate(d.AddDate(0, 0, -offset))
}

// DaysUntil returns the whole-day distance from today (start of day) to the
// given due date. The second return is false when due is not a valid
// calendar-date string.
func DaysUntil(now time.Time, due string) (int, bool) {
	d, err := ParseISODate(due)
	if err != nil {
		return 0, false
	}
	diff := d.Sub(StartOfDay(now))
	return int(diff.Hours() / 24), true
}
