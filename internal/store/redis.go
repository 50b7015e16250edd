package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mhutton/taskbeat/internal/logging"
	"github.com/mhutton/taskbeat/internal/task"
)

// taskKeyPrefix is the Redis key prefix for task metadata records.
const taskKeyPrefix = "taskbeat:task:"

// scanBatchSize is the SCAN count hint per page.
const scanBatchSize = 100

// Redis is the Redis-backed Store implementation.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects to Redis at the given URL and verifies the connection.
func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Redis{rdb: rdb}, nil
}

// NewRedisFromClient wraps an existing client. Used by tests.
func NewRedisFromClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Close closes the Redis connection.
func (s *Redis) Close() error {
	return s.rdb.Close()
}

// Get returns the validated record for issueKey. A missing key and a
// stored record that fails to decode or validate both return nil.
func (s *Redis) Get(ctx context.Context, issueKey string) (*task.Metadata, error) {
	val, err := s.rdb.Get(ctx, taskKeyPrefix+issueKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	meta := decodeRecord(issueKey, []byte(val))
	return meta, nil
}

// Set validates and upserts the full record for issueKey.
func (s *Redis) Set(ctx context.Context, issueKey string, meta *task.Metadata) error {
	meta.IssueKey = issueKey
	if err := meta.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, taskKeyPrefix+issueKey, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// ScanAll pages through the full task key range and returns every record
// that decodes and validates. Corrupted records are skipped, not surfaced.
func (s *Redis) ScanAll(ctx context.Context) ([]*task.Metadata, error) {
	keys, err := s.scanKeys(ctx, taskKeyPrefix+"*")
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var all []*task.Metadata
	for i, val := range values {
		if val == nil {
			continue
		}

		str, ok := val.(string)
		if !ok {
			continue
		}

		issueKey := strings.TrimPrefix(keys[i], taskKeyPrefix)
		if meta := decodeRecord(issueKey, []byte(str)); meta != nil {
			all = append(all, meta)
		}
	}

	return all, nil
}

// scanKeys scans for all keys matching a pattern.
func (s *Redis) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		var batch []string
		var err error
		batch, cursor, err = s.rdb.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		keys = append(keys, batch...)

		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// decodeRecord decodes and validates one stored record. Returns nil for
// anything malformed; the key is the issue key regardless of what the
// stored payload claims.
func decodeRecord(issueKey string, data []byte) *task.Metadata {
	var meta task.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		logging.WithIssueKey(issueKey).WithError(err).Debug("skipping undecodable task record")
		return nil
	}

	meta.IssueKey = issueKey
	if meta.History == nil {
		meta.History = []string{}
	}

	if err := meta.Validate(); err != nil {
		logging.WithIssueKey(issueKey).WithError(err).Debug("skipping invalid task record")
		return nil
	}
	return &meta
}
