// Package status derives the human-readable schedule state of a task from
// its recurrence settings and completion history.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mhutton/taskbeat/internal/dateutil"
)

// Category is the coarse schedule state used for sorting and coloring.
type Category string

const (
	CategoryLate   Category = "late"
	CategoryOnTime Category = "on-time"
	CategoryNoGoal Category = "no-goal"
)

// displayFormat renders dates for humans, e.g. "10 Jan 2024".
const displayFormat = "02 Jan 2006"

// Day counts up to this bound render as plain "N days"; beyond it the text
// switches to a long-form relative string like "3 months".
const plainDaysLimit = 45

// Snapshot is the derived schedule state of one task. It is recomputed on
// every read and never persisted.
type Snapshot struct {
	LastDate  *time.Time
	NextDate  time.Time
	DaysSince int
	DueInDays int

	LastDateText string
	NextDateText string
	DaysText     string

	TaskIsLate bool
	Category   Category
}

// Classify derives a Snapshot as of today.
//
// It is total for any metadata that passed store-level validation:
// malformed history entries are treated as if the history were empty
// rather than failing.
func Classify(repeatGoalEnabled bool, daysRepeat int, history []string) Snapshot {
	return ClassifyAt(time.Now(), repeatGoalEnabled, daysRepeat, history)
}

// ClassifyAt is Classify evaluated against an explicit "now".
func ClassifyAt(now time.Time, repeatGoalEnabled bool, daysRepeat int, history []string) Snapshot {
	var lastDate *time.Time
	if len(history) > 0 {
		if d, err := dateutil.ParseHistoryDate(history[len(history)-1]); err == nil {
			lastDate = &d
		}
	}

	nextDate, err := dateutil.NextDueDateFrom(now, history, daysRepeat)
	if err != nil {
		// Unparseable last entry: fall back to the empty-history anchor.
		nextDate = now.AddDate(0, 0, daysRepeat)
	}

	daysSince := 0
	if lastDate != nil {
		daysSince = dateutil.DaysBetween(*lastDate, now)
	}
	dueInDays := dateutil.DaysBetween(now, nextDate)

	s := Snapshot{
		LastDate:   lastDate,
		NextDate:   nextDate,
		DaysSince:  daysSince,
		DueInDays:  dueInDays,
		TaskIsLate: repeatGoalEnabled && dueInDays < 0,
		Category:   CategoryNoGoal,
	}

	goalInEffect := repeatGoalEnabled && daysRepeat > 0

	s.LastDateText = "Never done"
	if lastDate != nil {
		s.LastDateText = lastDate.Format(displayFormat)
	}
	s.NextDateText = "N/A"
	if goalInEffect {
		s.NextDateText = nextDate.Format(displayFormat)
	}

	if goalInEffect && lastDate != nil {
		if s.TaskIsLate {
			s.Category = CategoryLate
		} else {
			s.Category = CategoryOnTime
		}
	}

	if goalInEffect && lastDate != nil {
		s.DaysText = dueText(now, nextDate, dueInDays)
	} else {
		s.DaysText = sinceText(now, lastDate, daysSince)
	}

	return s
}

// dueText renders the schedule distance when a recurrence goal is in
// effect: "due today", "due in N days", "N days late".
func dueText(now, nextDate time.Time, dueInDays int) string {
	abs := dueInDays
	if abs < 0 {
		abs = -abs
	}

	var span string
	switch {
	case abs == 1:
		span = "1 day"
	case abs <= plainDaysLimit:
		span = fmt.Sprintf("%d days", abs)
	default:
		span = longForm(nextDate, now)
	}

	switch {
	case dueInDays == 0:
		return "due today"
	case dueInDays > 0:
		return "due in " + span
	default:
		return span + " late"
	}
}

// sinceText renders the time since the last completion when no goal is in
// effect: "done today", "N days since".
func sinceText(now time.Time, lastDate *time.Time, daysSince int) string {
	switch {
	case lastDate == nil:
		return "n/a"
	case daysSince == 0:
		return "done today"
	case daysSince == 1:
		return "1 day since"
	case daysSince <= plainDaysLimit:
		return fmt.Sprintf("%d days since", daysSince)
	default:
		return longForm(now, *lastDate) + " since"
	}
}

// longForm renders a distance beyond the plain-days bound, e.g. "3 months".
func longForm(a, b time.Time) string {
	return strings.TrimSpace(humanize.RelTime(a, b, "", ""))
}
