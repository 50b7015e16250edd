// Package dateutil provides calendar-date parsing, formatting and
// recurrence arithmetic. All dates are exchanged as ISO `YYYY-MM-DD`
// strings with no time component; day arithmetic is in calendar days,
// never elapsed time.
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat is the wire format for all calendar dates.
const DateFormat = "2006-01-02"

var (
	// ErrInvalidDateFormat is returned when a date string does not parse
	// as a valid YYYY-MM-DD calendar date.
	ErrInvalidDateFormat = errors.New("invalid date: must use format YYYY-MM-DD")

	// ErrInvalidDateInput is returned when a date value cannot be formatted.
	ErrInvalidDateInput = errors.New("invalid date value")
)

// ParseHistoryDate parses a history entry into a date value.
// Rejects anything that is not a valid YYYY-MM-DD calendar date.
func ParseHistoryDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// FormatDate renders a date value as YYYY-MM-DD.
func FormatDate(d time.Time) (string, error) {
	if d.IsZero() {
		return "", ErrInvalidDateInput
	}
	return d.Format(DateFormat), nil
}

// NextDueDate computes the next due date from a completion history and a
// repeat interval in days. With a non-empty history the anchor is the last
// (latest) entry; with an empty history it anchors to today, so a freshly
// enabled goal still has a sensible next date.
func NextDueDate(history []string, daysRepeat int) (time.Time, error) {
	return NextDueDateFrom(time.Now(), history, daysRepeat)
}

// NextDueDateFrom is NextDueDate evaluated against an explicit "now".
func NextDueDateFrom(now time.Time, history []string, daysRepeat int) (time.Time, error) {
	anchor := now
	if len(history) > 0 {
		last, err := ParseHistoryDate(history[len(history)-1])
		if err != nil {
			return time.Time{}, err
		}
		anchor = last
	}
	return anchor.AddDate(0, 0, daysRepeat), nil
}

// DaysBetween returns the calendar-day difference to - from, ignoring the
// time-of-day and timezone of both values. DST transitions cannot skew the
// result because both dates are re-anchored to UTC midnight first.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
