// Package timeutil provides timezone utilities for the WIB timezone (UTC+7).
// Hafalan dates are calendar days in the learner's local timezone: a murojaah
// entry scheduled for a day must match any timestamp from that day, so all
// day-level comparisons go through the helpers here instead of comparing raw
// timestamps. No external dependencies - uses only standard library.
package timeutil

import "time"

// WIB is Western Indonesian Time (UTC+7, no DST).
var WIB = time.FixedZone("Asia/Jakarta", 7*60*60)

// Now returns the current time in WIB.
func Now() time.Time {
	return time.Now().In(WIB)
}

// ToWIB converts a time to WIB.
func ToWIB(t time.Time) time.Time {
	return t.In(WIB)
}

// Date creates a time in WIB with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, WIB)
}

// StartOfDay returns the start of the day (00:00:00) in WIB.
func StartOfDay(t time.Time) time.Time {
	local := ToWIB(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, WIB)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in WIB.
func EndOfDay(t time.Time) time.Time {
	local := ToWIB(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, WIB)
}

// DayKey returns the normalized calendar-day key ("2006-01-02") in WIB.
// Two timestamps belong to the same murojaah day iff their keys are equal.
func DayKey(t time.Time) string {
	return ToWIB(t).Format("2006-01-02")
}

// SameDay reports whether a and b fall on the same WIB calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// IsToday checks if the given time is today in WIB.
func IsToday(t time.Time) bool {
	return SameDay(t, Now())
}

// DaysBetween returns the number of whole calendar days from a to b
// (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	from := StartOfDay(a)
	to := StartOfDay(b)
	return int(to.Sub(from).Hours() / 24)
}

// DaysSince calculates the number of calendar days since the given time.
func DaysSince(t time.Time) int {
	return DaysBetween(t, Now())
}

// CeilDaysSince returns the number of days since t rounded up from hours,
// so a review 25 hours ago already counts as 2 days ago.
func CeilDaysSince(t time.Time, now time.Time) int {
	hours := now.Sub(t).Hours()
	if hours <= 0 {
		return 0
	}
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}

// AddDays returns the start of the day n days after t.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// StartOfWeek returns the start of the week (Monday 00:00:00) in WIB.
func StartOfWeek(t time.Time) time.Time {
	local := ToWIB(t)
	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return StartOfDay(local.AddDate(0, 0, -(weekday - 1)))
}

// FormatDate formats a time as a WIB date string.
func FormatDate(t time.Time) string {
	return ToWIB(t).Format("02 Jan 2006")
}
