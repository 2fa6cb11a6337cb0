// Package calendar provides the day arithmetic every other part of the engine
// is built on. Dates are timezone-naive calendar days: a time.Time is reduced to
// its own year/month/day and compared at midnight UTC, so time-of-day and
// location never change a result.
package calendar

import "time"

const secondsPerDay = 24 * 60 * 60

// Day normalizes t to midnight UTC of t's calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a normalized calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b.
// Returns 0 when b is before a.
func DaysBetween(a, b time.Time) int {
	from, to := Day(a), Day(b)
	if to.Before(from) {
		return 0
	}
	// Unix seconds avoid time.Duration, which saturates after about 292 years.
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// WorkingDays counts the weekdays in [start, end], both ends inclusive.
// Returns 0 if start is after end.
func WorkingDays(start, end time.Time) int {
	from, to := Day(start), Day(end)
	if to.Before(from) {
		return 0
	}

	total := DaysBetween(from, to) + 1
	fullWeeks := total / 7
	count := fullWeeks * 5

	// Walk the remainder, at most six days.
	d := from.AddDate(0, 0, fullWeeks*7)
	for ; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			count++
		}
	}
	return count
}
