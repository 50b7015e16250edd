package tasks

import (
	"context"
	"sort"
	"sync"

	"github.com/mhutton/taskbeat/internal/task"
	"github.com/mhutton/taskbeat/internal/workitem"
)

// ListActiveEnriched returns every active task merged with live issue
// fields from the tracker. Metadata whose key the tracker no longer knows
// is treated as stale and dropped with a warning, never an error. Bulk
// fetches run one request per batch of at most batchSize keys; batches run
// concurrently and merge in no particular order.
func (s *Service) ListActiveEnriched(ctx context.Context) ([]task.Task, error) {
	all, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*task.Metadata)
	var keys []string
	for _, meta := range all {
		if !meta.IsActive {
			continue
		}
		byKey[meta.IssueKey] = meta
		keys = append(keys, meta.IssueKey)
	}

	if len(keys) == 0 {
		return nil, nil
	}

	issues, err := s.bulkFetchAll(ctx, keys)
	if err != nil {
		return nil, err
	}

	matched := make(map[string]bool)
	enriched := make([]task.Task, 0, len(issues))
	for _, issue := range issues {
		meta, ok := byKey[issue.Key]
		if !ok {
			continue
		}
		matched[issue.Key] = true
		enriched = append(enriched, task.Task{
			Metadata: *meta,
			Name:     issue.Summary,
			Assignee: issue.Assignee,
			Project:  issue.Project,
			Status:   issue.Status,
		})
	}

	for _, key := range keys {
		if !matched[key] {
			s.log.WithIssueKey(key).Warn("tracked task missing from tracker, dropped from listing")
		}
	}

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].IssueKey < enriched[j].IssueKey
	})
	return enriched, nil
}

// ListCategories returns the distinct category labels across active tasks,
// sorted; tasks without a category are excluded.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	enriched, err := s.ListActiveEnriched(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, t := range enriched {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		categories = append(categories, t.Category)
	}

	sort.Strings(categories)
	return categories, nil
}

// bulkFetchAll fans the key set out to the tracker in concurrent batches
// and merges the responses. The first batch error aborts the whole listing.
func (s *Service) bulkFetchAll(ctx context.Context, keys []string) ([]workitem.Issue, error) {
	var batches [][]string
	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		batches = append(batches, keys[start:end])
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		issues   []workitem.Issue
		firstErr error
	)

	for _, batch := range batches {
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()

			fetched, err := s.items.BulkFetch(ctx, batch)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			issues = append(issues, fetched...)
		}(batch)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return issues, nil
}
