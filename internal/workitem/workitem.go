// Package workitem abstracts the external issue tracker that tasks are
// bound to. The tracker owns issue identity and the due-date field; this
// package only reads issue fields in bulk and writes the due date.
package workitem

import (
	"context"
	"errors"
)

var (
	// ErrInvalidConfig is returned when tracker configuration is invalid.
	ErrInvalidConfig = errors.New("invalid work-item tracker configuration")

	// ErrSyncFailed is returned when a due-date write does not reach the
	// tracker. Metadata already persisted locally is not rolled back;
	// re-invoking the transition retries the sync.
	ErrSyncFailed = errors.New("work-item due date sync failed")
)

// Issue is the subset of tracker fields merged onto task metadata at
// read time.
type Issue struct {
	Key      string
	Summary  string
	Assignee string // account id, empty when unassigned
	Project  string
	Status   string
}

// Service is the work-item tracker contract.
type Service interface {
	// BulkFetch returns the issues for the given keys. Keys unknown to the
	// tracker are simply missing from the result, not an error.
	BulkFetch(ctx context.Context, keys []string) ([]Issue, error)

	// SetDueDate writes the due-date field of one issue. An empty dueDate
	// clears the field.
	SetDueDate(ctx context.Context, key, dueDate string) error
}
