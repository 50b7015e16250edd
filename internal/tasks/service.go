// Package tasks implements the task synchronization service: state
// transitions over persisted task metadata, the due-date sync side effect
// that keeps the external tracker consistent with the computed schedule,
// and the enriched active-task listing.
package tasks

import (
	"context"

	"github.com/mhutton/taskbeat/internal/dateutil"
	"github.com/mhutton/taskbeat/internal/logging"
	"github.com/mhutton/taskbeat/internal/store"
	"github.com/mhutton/taskbeat/internal/task"
	"github.com/mhutton/taskbeat/internal/workitem"
)

// batchSize is the tracker's bulk-fetch query size limit.
const batchSize = 100

// Service orchestrates metadata transitions and tracker synchronization.
// Each method is an independent, stateless unit of work; read-modify-write
// is not atomic and concurrent writers for the same key race last-writer-wins
// on the full-record overwrite.
type Service struct {
	store store.Store
	items workitem.Service
	log   *logging.Logger
}

// NewService creates a synchronization service over a metadata store and a
// work-item tracker.
func NewService(st store.Store, items workitem.Service) *Service {
	return &Service{
		store: st,
		items: items,
		log:   logging.Get(),
	}
}

// Get returns the stored metadata for one work item, or nil if untracked.
func (s *Service) Get(ctx context.Context, issueKey string) (*task.Metadata, error) {
	return s.store.Get(ctx, issueKey)
}

// Activate starts tracking a work item. An untracked key gets a fresh
// record with an empty history; a deactivated one is reactivated with its
// history retained (resyncing the due date when there is one). Activating
// an already-active task is a no-op.
func (s *Service) Activate(ctx context.Context, issueKey string) error {
	meta, err := s.store.Get(ctx, issueKey)
	if err != nil {
		return err
	}

	if meta == nil {
		fresh := &task.Metadata{
			IssueKey: issueKey,
			IsActive: true,
			History:  []string{},
		}
		s.log.WithIssueKey(issueKey).Info("tracking new task")
		return s.store.Set(ctx, issueKey, fresh)
	}

	if meta.IsActive {
		return nil
	}

	meta.IsActive = true
	if err := s.store.Set(ctx, issueKey, meta); err != nil {
		return err
	}

	s.log.WithIssueKey(issueKey).Info("reactivated task")
	if len(meta.History) > 0 {
		return s.syncDueDate(ctx, meta)
	}
	return nil
}

// Deactivate stops tracking a work item, keeping its history, and always
// clears the external due date. A no-op for untracked keys.
func (s *Service) Deactivate(ctx context.Context, issueKey string) error {
	meta, err := s.store.Get(ctx, issueKey)
	if err != nil {
		return err
	}
	if meta == nil {
		return nil
	}

	meta.IsActive = false
	if err := s.store.Set(ctx, issueKey, meta); err != nil {
		return err
	}

	s.log.WithIssueKey(issueKey).Info("deactivated task")
	return s.items.SetDueDate(ctx, issueKey, "")
}

// UpdateSettings merges the fields present in patch onto the stored record.
// Fields the patch does not carry are left untouched. A no-op for untracked
// keys.
func (s *Service) UpdateSettings(ctx context.Context, issueKey string, patch task.SettingsPatch) error {
	meta, err := s.store.Get(ctx, issueKey)
	if err != nil {
		return err
	}
	if meta == nil {
		return nil
	}

	meta.Apply(patch)
	if err := s.store.Set(ctx, issueKey, meta); err != nil {
		return err
	}

	if len(meta.History) > 0 {
		return s.syncDueDate(ctx, meta)
	}
	return nil
}

// MarkDone records a completion date. Idempotent: a date already present
// in the history leaves everything, including the external due date,
// unchanged. A no-op for untracked keys.
func (s *Service) MarkDone(ctx context.Context, issueKey, date string) error {
	if _, err := dateutil.ParseHistoryDate(date); err != nil {
		return err
	}

	meta, err := s.store.Get(ctx, issueKey)
	if err != nil {
		return err
	}
	if meta == nil {
		return nil
	}

	if !meta.AddDone(date) {
		return nil
	}

	if err := s.store.Set(ctx, issueKey, meta); err != nil {
		return err
	}

	s.log.WithIssueKey(issueKey).WithField("date", date).Info("marked done")
	return s.syncDueDate(ctx, meta)
}

// UndoDone removes a completion date. Idempotent: an absent date is a
// no-op. A no-op for untracked keys.
func (s *Service) UndoDone(ctx context.Context, issueKey, date string) error {
	if _, err := dateutil.ParseHistoryDate(date); err != nil {
		return err
	}

	meta, err := s.store.Get(ctx, issueKey)
	if err != nil {
		return err
	}
	if meta == nil {
		return nil
	}

	if !meta.RemoveDone(date) {
		return nil
	}

	if err := s.store.Set(ctx, issueKey, meta); err != nil {
		return err
	}

	s.log.WithIssueKey(issueKey).WithField("date", date).Info("undid completion")
	return s.syncDueDate(ctx, meta)
}

// syncDueDate is the single choke point that reconciles the tracker's
// due-date field after any mutation that could change the schedule. With a
// goal in effect and a non-empty history it writes the computed next due
// date; otherwise it clears the field. The metadata write has already
// committed by the time this runs, so a failure here is retryable by
// re-invoking any transition.
func (s *Service) syncDueDate(ctx context.Context, meta *task.Metadata) error {
	if meta.RepeatGoalEnabled && meta.DaysRepeat > 0 && len(meta.History) > 0 {
		next, err := dateutil.NextDueDate(meta.History, meta.DaysRepeat)
		if err != nil {
			return err
		}
		due, err := dateutil.FormatDate(next)
		if err != nil {
			return err
		}

		s.log.WithIssueKey(meta.IssueKey).WithField("due", due).Debug("syncing due date")
		return s.items.SetDueDate(ctx, meta.IssueKey, due)
	}

	s.log.WithIssueKey(meta.IssueKey).Debug("clearing due date")
	return s.items.SetDueDate(ctx, meta.IssueKey, "")
}
