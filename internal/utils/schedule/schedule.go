// Package schedule provides the calendar arithmetic used by payment
// scheduling: month stepping with end-of-month clamping, next occurrence of a
// day-of-month, and day deltas for due-date calculations.
package schedule

import "time"

// daysIn returns the number of days in the month containing year/month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped advances t by the given number of calendar months, clamping
// the day to the last valid day of the target month. Unlike time.AddDate it
// never overflows into the following month (Jan 31 + 1 month = Feb 28/29, not
// Mar 2/3).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	// Normalize the target month first with day 1 so clamping is well-defined.
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	ty, tm, _ := target.Date()
	if max := daysIn(ty, tm); day > max {
		day = max
	}
	h, m, s := t.Clock()
	return time.Date(ty, tm, day, h, m, s, t.Nanosecond(), t.Location())
}

// NextDayOfMonth returns the next occurrence of the given day-of-month (1..31)
// strictly after from's date has been considered: if the target day in from's
// month has not yet passed it is returned, otherwise the occurrence in the
// following month. Days beyond the length of a month clamp to its last day
// (day 31 in February yields Feb 28/29).
func NextDayOfMonth(dayOfMonth int, from time.Time) time.Time {
	year, month, _ := from.Date()

	candidate := dateWithClampedDay(year, month, dayOfMonth, from.Location())
	if !candidate.Before(truncateToDay(from)) {
		return candidate
	}
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, from.Location())
	ny, nm, _ := next.Date()
	return dateWithClampedDay(ny, nm, dayOfMonth, from.Location())
}

func dateWithClampedDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	if max := daysIn(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of days from now until due, rounding partial
// days up. A negative result means the due date is in the past.
func DaysUntil(due, now time.Time) int {
	delta := due.Sub(now)
	days := delta / (24 * time.Hour)
	if delta%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}
