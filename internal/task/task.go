// Package task defines the domain types for recurring-task tracking: the
// persisted per-work-item metadata record, the enriched view returned by
// listings, and the partial-update structure for settings changes.
package task

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mhutton/taskbeat/internal/dateutil"
)

// ErrValidationFailed is returned when a metadata record violates its
// schema constraints. Reads treat it as absence; writes reject it.
var ErrValidationFailed = errors.New("task metadata validation failed")

// maxCategoryLen bounds the optional category label.
const maxCategoryLen = 100

// Metadata is the canonical persisted record for one tracked work item.
// IssueKey is derived from the storage key and never mutated after creation.
type Metadata struct {
	IssueKey          string   `json:"issueKey"`
	IsActive          bool     `json:"isActive"`
	Category          string   `json:"category,omitempty"`
	RepeatGoalEnabled bool     `json:"repeatGoalEnabled,omitempty"`
	DaysRepeat        int      `json:"daysRepeat,omitempty"`
	History           []string `json:"history"`
}

// Task is the enriched, read-time view of a tracked work item: stored
// metadata merged with live issue fields from the external tracker.
// It is never persisted.
type Task struct {
	Metadata
	Name     string `json:"name"`
	Assignee string `json:"assignee,omitempty"`
	Project  string `json:"project"`
	Status   string `json:"status"`
}

// SettingsPatch is a partial settings update. Nil fields are left
// untouched; only fields the caller explicitly set are applied.
type SettingsPatch struct {
	Category          *string
	DaysRepeat        *int
	RepeatGoalEnabled *bool
	History           []string // nil means leave unchanged
}

// IsZero reports whether the patch changes nothing.
func (p SettingsPatch) IsZero() bool {
	return p.Category == nil && p.DaysRepeat == nil &&
		p.RepeatGoalEnabled == nil && p.History == nil
}

// Validate checks the record against its schema constraints.
func (m *Metadata) Validate() error {
	if m.IssueKey == "" {
		return fmt.Errorf("%w: empty issue key", ErrValidationFailed)
	}
	if m.DaysRepeat < 0 {
		return fmt.Errorf("%w: daysRepeat must be positive, got %d", ErrValidationFailed, m.DaysRepeat)
	}
	if len(m.Category) > maxCategoryLen {
		return fmt.Errorf("%w: category longer than %d characters", ErrValidationFailed, maxCategoryLen)
	}
	for i, d := range m.History {
		if _, err := dateutil.ParseHistoryDate(d); err != nil {
			return fmt.Errorf("%w: history[%d]: %v", ErrValidationFailed, i, err)
		}
		// Fixed-width ISO dates sort lexicographically in chronological
		// order, so strictly-increasing covers both sortedness and
		// uniqueness.
		if i > 0 && m.History[i-1] >= d {
			return fmt.Errorf("%w: history not sorted ascending without duplicates at index %d", ErrValidationFailed, i)
		}
	}
	return nil
}

// HasDone reports whether date is present in the completion history.
func (m *Metadata) HasDone(date string) bool {
	for _, d := range m.History {
		if d == date {
			return true
		}
	}
	return false
}

// AddDone inserts a completion date, keeping the history sorted. Returns
// false without modifying anything when the date is already present.
func (m *Metadata) AddDone(date string) bool {
	if m.HasDone(date) {
		return false
	}
	m.History = append(m.History, date)
	sort.Strings(m.History)
	return true
}

// RemoveDone removes a completion date. Returns false when the date was
// not present.
func (m *Metadata) RemoveDone(date string) bool {
	for i, d := range m.History {
		if d == date {
			m.History = append(m.History[:i], m.History[i+1:]...)
			return true
		}
	}
	return false
}

// Apply merges a settings patch onto the record. Fields the patch does not
// carry are left as they were.
func (m *Metadata) Apply(p SettingsPatch) {
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.DaysRepeat != nil {
		m.DaysRepeat = *p.DaysRepeat
	}
	if p.RepeatGoalEnabled != nil {
		m.RepeatGoalEnabled = *p.RepeatGoalEnabled
	}
	if p.History != nil {
		m.History = append([]string(nil), p.History...)
		sort.Strings(m.History)
	}
}
