// Package store provides the durable task metadata store. The canonical
// implementation keeps one JSON record per work item in Redis under a fixed
// key prefix.
package store

import (
	"context"
	"errors"

	"github.com/mhutton/taskbeat/internal/task"
)

// ErrUnavailable is returned when the underlying store cannot be reached.
var ErrUnavailable = errors.New("metadata store unavailable")

// Store is the typed repository for task metadata. Reads return nil for
// keys that are missing or whose stored record fails validation; callers
// cannot distinguish the two. Set overwrites the full record, never a
// partial one.
type Store interface {
	// Get returns the validated record for issueKey, or nil if the key is
	// absent or the stored data does not validate.
	Get(ctx context.Context, issueKey string) (*task.Metadata, error)

	// Set upserts the full record for issueKey. The record is validated
	// before the write.
	Set(ctx context.Context, issueKey string, meta *task.Metadata) error

	// ScanAll returns every valid record in the store. Malformed records
	// are skipped. Each call walks the full key range from the start.
	ScanAll(ctx context.Context) ([]*task.Metadata, error)
}
