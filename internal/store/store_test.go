package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "xactions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteLedger(t *testing.T) {
	s := openTestStore(t)
	l := s.Ledger("reply")

	assert.False(t, l.Contains("100"))
	require.NoError(t, l.Add("100"))
	require.NoError(t, l.Add("100"), "re-adding is idempotent")
	assert.True(t, l.Contains("100"))
	assert.Equal(t, 1, l.Len())

	// Automations are scoped: another name sees nothing.
	other := s.Ledger("unfollow")
	assert.False(t, other.Contains("100"))
	assert.Equal(t, 0, other.Len())

	require.NoError(t, l.Clear())
	assert.False(t, l.Contains("100"))
}

func TestSaveAndQueryRuns(t *testing.T) {
	s := openTestStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.SaveRun(RunRow{
		ID:         "run-1",
		Automation: "reply",
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
		Acted:      10,
		Skipped:    15,
		Rounds:     3,
	}))
	require.NoError(t, s.SaveRun(RunRow{
		ID:         "run-2",
		Automation: "reply",
		StartedAt:  now,
		FinishedAt: now.Add(time.Minute),
		Acted:      0,
		Skipped:    25,
		Preview:    true,
	}))

	runs, err := s.RecentRuns("reply", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID, "most recent first")
	assert.True(t, runs[0].Preview)
	assert.Equal(t, 10, runs[1].Acted)

	none, err := s.RecentRuns("unfollow", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
