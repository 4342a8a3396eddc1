package utils

import (
	"strings"
	"time"

	"github.com/RichardMcSorley/breather/pkg/validation"
)

// DateLayout is the wire format of every calendar date crossing the HTTP boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, validation.New("date is required")
	}
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, validation.Newf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// DateOnly drops the clock part of t and pins the calendar date it shows to UTC, so that
// dates coming from different sources compare by day only.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayInMonth builds the date for day-of-month day in year/month. A day past the end of the
// month is clamped to the month's last day, so 31 in February yields February 28 or 29.
func DayInMonth(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := DaysInMonth(first.Year(), first.Month())
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// InRange reports whether date falls within [from, to], both inclusive, comparing days only.
func InRange(date, from, to time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(from)) && !d.After(DateOnly(to))
}
