// Package videostore is the bounded, persisted cache of shareable video
// metadata. Entries live as one JSON-encoded record in an injected KV
// provider; the store caps entry count and evicts oldest-first.
//
// Persistence failures are logged and swallowed: the cache is a
// convenience, not a record of truth, so a failed write degrades the
// share feature without breaking the render flow.
package videostore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"cardrender/internal/pkg/logger"
	"cardrender/internal/ports"
)

const (
	// StorageKey is the namespaced record holding the whole video map.
	StorageKey = "shared-videos"

	// DefaultMaxEntries bounds how many videos are kept.
	DefaultMaxEntries = 50

	// DefaultRetentionDays is the sweep horizon.
	DefaultRetentionDays = 7
)

// Entry is the shareable metadata for one rendered video. ObjectKey is
// set only for locally rendered videos whose artifact lives in the
// storage provider; remotely rendered videos are reachable via URL alone.
type Entry struct {
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	ObjectKey string    `json:"objectKey,omitempty"`
}

// Config holds store configuration.
type Config struct {
	KV         ports.KVStore
	Log        *logger.Logger
	MaxEntries int
	Key        string
}

// Store is safe for concurrent use within one process. Across processes
// sharing a KV provider the policy is last-writer-wins.
type Store struct {
	kv  ports.KVStore
	log *logger.Logger
	max int
	key string

	mu sync.Mutex
}

func New(cfg Config) *Store {
	log := cfg.Log
	if log == nil {
		log = logger.NewDefault()
	}
	max := cfg.MaxEntries
	if max <= 0 {
		max = DefaultMaxEntries
	}
	key := cfg.Key
	if key == "" {
		key = StorageKey
	}
	return &Store{
		kv:  cfg.KV,
		log: log.WithComponent("videostore"),
		max: max,
		key: key,
	}
}

// Put writes entry under id, then evicts oldest-by-CreatedAt entries until
// the cap holds. A zero CreatedAt is stamped with the current time.
// Failures are logged, never returned.
func (s *Store) Put(ctx context.Context, id string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	videos := s.load(ctx)
	videos[id] = entry

	if len(videos) > s.max {
		evicted := s.evictOldest(videos)
		s.log.Debug("evicted oldest entries", "count", evicted)
	}

	s.persist(ctx, videos)
}

// Get returns the entry for id. It never fails outward: a broken backing
// store reads as absent.
func (s *Store) Get(ctx context.Context, id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.load(ctx)[id]
	return entry, ok
}

// Remove deletes the entry for id; removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	videos := s.load(ctx)
	if _, ok := videos[id]; !ok {
		return
	}
	delete(videos, id)
	s.persist(ctx, videos)
}

// SweepOlderThan removes every entry strictly older than now minus the
// given number of days and reports how many were removed. days <= 0 uses
// the default retention.
func (s *Store) SweepOlderThan(ctx context.Context, days int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if days <= 0 {
		days = DefaultRetentionDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	videos := s.load(ctx)
	removed := 0
	for id, entry := range videos {
		if entry.CreatedAt.Before(cutoff) {
			delete(videos, id)
			removed++
		}
	}

	if removed > 0 {
		s.persist(ctx, videos)
		s.log.Info("swept old video entries", "removed", removed, "days", days)
	}
	return removed
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load(ctx))
}

// load decodes the persisted map, degrading to empty on any failure.
func (s *Store) load(ctx context.Context) map[string]Entry {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("kv read failed, treating cache as empty", "error", err.Error())
		return map[string]Entry{}
	}
	if !ok || raw == "" {
		return map[string]Entry{}
	}

	videos := map[string]Entry{}
	if err := json.Unmarshal([]byte(raw), &videos); err != nil {
		s.log.Warn("corrupt video cache record, resetting", "error", err.Error())
		return map[string]Entry{}
	}
	return videos
}

func (s *Store) persist(ctx context.Context, videos map[string]Entry) {
	raw, err := json.Marshal(videos)
	if err != nil {
		s.log.Warn("video cache encode failed", "error", err.Error())
		return
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		s.log.Warn("video cache write failed", "error", err.Error())
	}
}

// evictOldest trims videos down to the cap, oldest CreatedAt first.
// Equal timestamps are ordered by id so eviction stays deterministic.
func (s *Store) evictOldest(videos map[string]Entry) int {
	ids := make([]string, 0, len(videos))
	for id := range videos {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := videos[ids[i]], videos[ids[j]]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return ids[i] < ids[j]
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	evicted := 0
	for _, id := range ids {
		if len(videos) <= s.max {
			break
		}
		delete(videos, id)
		evicted++
	}
	return evicted
}
