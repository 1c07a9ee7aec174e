package timestamp

import (
	"strings"
	"time"
)

const (
	// FullLayout is the DD-MM-YY HH:MM:SS layout used in history cells.
	FullLayout = "02-01-06 15:04:05"
	// DateLayout is the DD-MM-YY layout used for last-active markers.
	DateLayout = "02-01-06"
	// TimeLayout is the HH:MM:SS layout appended on same-day events.
	TimeLayout = "15:04:05"
)

// Full formats t as "DD-MM-YY HH:MM:SS".
func Full(t time.Time) string {
	return t.Format(FullLayout)
}

// Date formats t as "DD-MM-YY".
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Time formats t as "HH:MM:SS".
func Time(t time.Time) string {
	return t.Format(TimeLayout)
}

func NowFull() string {
	return Full(time.Now())
}

func NowDate() string {
	return Date(time.Now())
}

// DatePart returns the date half of a full stamp.
func DatePart(full string) string {
	date, _, _ := strings.Cut(full, " ")
	return date
}

// TimePart returns the time half of a full stamp, or "" for a date-only value.
func TimePart(full string) string {
	_, tm, _ := strings.Cut(full, " ")
	return tm
}

// Compact returns the suffix to append to a history cell for an event at t.
// Events on the same date as lastDate only record the time of day; the
// comparison is on the formatted strings, not on calendar days.
func Compact(lastDate string, t time.Time) string {
	if Date(t) == lastDate {
		return Time(t)
	}
	return Full(t)
}

// Parse reads a full stamp back in the local time zone.
func Parse(full string) (time.Time, error) {
	return time.ParseInLocation(FullLayout, full, time.Local)
}
