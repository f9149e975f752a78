package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardrender/internal/pkg/errors"
)

func newTestManager(max int) *Manager {
	return NewManager(func() *Orchestrator {
		return New(Config{
			Submitter: submitFunc(func(ctx context.Context, compositionID string, props CardProps) (JobHandle, error) {
				return JobHandle{RenderID: "r", BucketName: "b"}, nil
			}),
			Poller: scriptedPoller(PollResult{Kind: PollDone, URL: "u", Size: 1}),
			Videos: testVideos(),
			Log:    testLogger(),
		})
	}, max)
}

func TestManagerCreateGetRemove(t *testing.T) {
	m := newTestManager(0)

	id, o, err := m.Create()
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Contains(t, id, "rnd_")

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Same(t, o, got)

	m.Remove(id)
	_, ok = m.Get(id)
	assert.False(t, ok)

	// Removing again is a no-op.
	m.Remove(id)
}

func TestManagerPrunesTerminalSessionsAtCap(t *testing.T) {
	m := newTestManager(2)

	id1, o1, err := m.Create()
	require.NoError(t, err)
	_, _, err = m.Create()
	require.NoError(t, err)

	// Finish the first session so it becomes prunable.
	require.NoError(t, o1.Start(context.Background(), "", anaProps()))
	eventuallyTerminal(t, o1)

	_, _, err = m.Create()
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count())

	_, ok := m.Get(id1)
	assert.False(t, ok, "terminal session should have been pruned")
}

func TestManagerRejectsWhenFullOfActiveSessions(t *testing.T) {
	m := newTestManager(1)

	_, _, err := m.Create()
	require.NoError(t, err)

	// The tracked session is still init (not terminal), so no room.
	_, _, err = m.Create()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUnavailable))
}
