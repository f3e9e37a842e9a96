package timetricks

import (
	"time"
)

const (
	dayFormat      = "20060102"
	dateFormat     = "1/2"
	dayStampFormat = "01/02"
	clockFormat    = "3:04 PM"
	weekPlusMinute = 7*24*time.Hour + time.Minute
)

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.In(t.Location()).Format(dayFormat)
}

// Today reports whether t falls on the same calendar day as now.
func Today(t, now time.Time) bool {
	return SameDay(t, now)
}

// Tomorrow reports whether t falls on the calendar day after now.
func Tomorrow(t, now time.Time) bool {
	return SameDay(t, now.In(t.Location()).AddDate(0, 0, 1))
}

func TrimClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func WithinWeek(t, now time.Time) bool {
	// Trim current time so they have no wall clock component, just
	// calendar date, and use it to compute the first minute of the coming week.
	// Then check if our time t occurs before then, as well as after the start
	// of today (minus a minute in case t falls at midnight).
	start := TrimClock(now)
	firstMinuteOfNextWeek := start.Add(weekPlusMinute)
	return t.After(start.Add(-1*time.Minute)) && t.Before(firstMinuteOfNextWeek)
}

func SetClock(t time.Time, hour, minute time.Duration) time.Time {
	return TrimClock(t).Add(hour*time.Hour + minute*time.Minute)
}

// Day names the calendar day of t relative to now: "Today", "Tomorrow", the
// weekday within the coming week, or a month/day stamp beyond it.
func Day(t, now time.Time) string {
	switch {
	case Today(t, now):
		return "Today"
	case Tomorrow(t, now):
		return "Tomorrow"
	case WithinWeek(t, now):
		return t.Weekday().String()
	default:
		return t.Format(dayStampFormat)
	}
}

// ForecastLabel labels a forecast slot like "Today, 6/1, 3:00 PM" or
// "Sun, 6/2, 9:00 AM".
func ForecastLabel(t, now time.Time) string {
	day := t.Format("Mon")
	if Today(t, now) {
		day = "Today"
	}
	return day + ", " + t.Format(dateFormat) + ", " + t.Format(clockFormat)
}

// UniqueDay returns a string representation of t that is unique by the day.
// For instance, two seperate times on the same calendar day return identical
// strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}
