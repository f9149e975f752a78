package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, ok, err := s.Get(ctx, "shared-videos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "shared-videos", `{"v":1}`))

	got, ok, err := s.Get(ctx, "shared-videos")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"v":1}`, got)

	// Upsert replaces the value.
	require.NoError(t, s.Set(ctx, "shared-videos", `{"v":2}`))
	got, _, _ = s.Get(ctx, "shared-videos")
	assert.Equal(t, `{"v":2}`, got)

	require.NoError(t, s.Delete(ctx, "shared-videos"))
	_, ok, _ = s.Get(ctx, "shared-videos")
	assert.False(t, ok)
}

func TestSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", "durable"))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	got, ok, err := second.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "durable", got)
}
