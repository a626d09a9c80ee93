package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedger(t *testing.T) {
	l := NewMemory()

	assert.False(t, l.Contains("a"))
	require.NoError(t, l.Add("a"))
	require.NoError(t, l.Add("a"))
	assert.True(t, l.Contains("a"))
	assert.Equal(t, 1, l.Len())

	require.NoError(t, l.Clear())
	assert.False(t, l.Contains("a"))
	assert.Equal(t, 0, l.Len())
}

func TestFileLedgerPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replies.ledger.json")

	l, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, l.Add("100"))
	require.NoError(t, l.Add("200"))
	require.NoError(t, l.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	assert.True(t, reopened.Contains("100"))
	assert.True(t, reopened.Contains("200"))
	assert.False(t, reopened.Contains("300"))
	assert.Equal(t, 2, reopened.Len())
}

func TestFileLedgerClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.ledger.json")

	l, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, l.Add("1"))
	require.NoError(t, l.Clear())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestFileLedgerMissingDirCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "x.ledger.json")

	l, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, l.Add("1"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileLedgerCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := OpenFile(path)
	assert.Error(t, err)
}
