package videostore

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardrender/internal/adapters/kv/memkv"
	"cardrender/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json", Output: io.Discard})
}

func newTestStore(t *testing.T) (*Store, *memkv.Store) {
	t.Helper()
	kv := memkv.New()
	return New(Config{KV: kv, Log: testLogger()}), kv
}

// failingKV breaks writes to exercise the silent-degradation policy.
type failingKV struct {
	*memkv.Store
	failSet bool
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return fmt.Errorf("quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	entry := Entry{
		URL:       "https://cdn.example.com/v1.mp4",
		Size:      123456,
		Title:     "ID Card - Ana",
		CreatedAt: time.Now().UTC(),
	}
	s.Put(ctx, "video_1_aaa", entry)

	got, ok := s.Get(ctx, "video_1_aaa")
	require.True(t, ok)
	assert.Equal(t, entry.URL, got.URL)
	assert.Equal(t, entry.Size, got.Size)
	assert.Equal(t, entry.Title, got.Title)
	assert.True(t, entry.CreatedAt.Equal(got.CreatedAt))
}

func TestGetAbsent(t *testing.T) {
	s, _ := newTestStore(t)
	_, ok := s.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestPutIdempotent(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)

	entry := Entry{URL: "u", Size: 1, Title: "t", CreatedAt: time.Now().UTC()}
	s.Put(ctx, "id", entry)
	first, _, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)

	s.Put(ctx, "id", entry)
	second, _, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)

	assert.JSONEq(t, first, second)
	assert.Equal(t, 1, s.Count(ctx))
}

func TestCapEvictsOldest(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := range 60 {
		id := fmt.Sprintf("video_%02d", i)
		s.Put(ctx, id, Entry{
			URL:       "u",
			Title:     "t",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	assert.Equal(t, DefaultMaxEntries, s.Count(ctx))

	// The 10 oldest are gone, the 50 most recent remain.
	for i := range 10 {
		_, ok := s.Get(ctx, fmt.Sprintf("video_%02d", i))
		assert.False(t, ok, "expected video_%02d to be evicted", i)
	}
	for i := 10; i < 60; i++ {
		_, ok := s.Get(ctx, fmt.Sprintf("video_%02d", i))
		assert.True(t, ok, "expected video_%02d to remain", i)
	}
}

func TestCapTieBreakIsDeterministic(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	s := New(Config{KV: kv, Log: testLogger(), MaxEntries: 2})

	at := time.Now().UTC()
	s.Put(ctx, "b", Entry{CreatedAt: at})
	s.Put(ctx, "a", Entry{CreatedAt: at})
	s.Put(ctx, "c", Entry{CreatedAt: at})

	// Same timestamp everywhere: lowest id goes first.
	_, ok := s.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "b")
	assert.True(t, ok)
	_, ok = s.Get(ctx, "c")
	assert.True(t, ok)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	s.Put(ctx, "id", Entry{URL: "u", CreatedAt: time.Now().UTC()})
	s.Remove(ctx, "id")

	_, ok := s.Get(ctx, "id")
	assert.False(t, ok)

	// Removing again is a no-op.
	s.Remove(ctx, "id")
}

func TestSweepOlderThan(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	now := time.Now().UTC()
	ages := []int{0, 5, 8, 10}
	for _, days := range ages {
		s.Put(ctx, fmt.Sprintf("age_%d", days), Entry{
			URL:       "u",
			CreatedAt: now.AddDate(0, 0, -days),
		})
	}

	removed := s.SweepOlderThan(ctx, 7)
	assert.Equal(t, 2, removed)

	_, ok := s.Get(ctx, "age_0")
	assert.True(t, ok)
	_, ok = s.Get(ctx, "age_5")
	assert.True(t, ok)
	_, ok = s.Get(ctx, "age_8")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "age_10")
	assert.False(t, ok)
}

func TestSweepNothingToRemove(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	s.Put(ctx, "fresh", Entry{CreatedAt: time.Now().UTC()})
	assert.Equal(t, 0, s.SweepOlderThan(ctx, 7))
	assert.Equal(t, 1, s.Count(ctx))
}

func TestPutSwallowsWriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: memkv.New(), failSet: true}
	s := New(Config{KV: kv, Log: testLogger()})

	// Must not panic or surface the failure.
	s.Put(ctx, "id", Entry{URL: "u", CreatedAt: time.Now().UTC()})

	// The write is lost but reads still work.
	_, ok := s.Get(ctx, "id")
	assert.False(t, ok)
}

func TestCorruptRecordReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	require.NoError(t, kv.Set(ctx, StorageKey, "{not json"))

	s := New(Config{KV: kv, Log: testLogger()})
	_, ok := s.Get(ctx, "anything")
	assert.False(t, ok)

	// A later Put replaces the corrupt record with a valid one.
	s.Put(ctx, "id", Entry{URL: "u", CreatedAt: time.Now().UTC()})
	_, ok = s.Get(ctx, "id")
	assert.True(t, ok)
}
