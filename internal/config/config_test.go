package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidatePollOptions(t *testing.T) {
	cfg := Default()

	cfg.Post.PollOptions = []string{"yes"}
	assert.Error(t, cfg.Validate())

	cfg.Post.PollOptions = []string{"a", "b", "c", "d", "e"}
	assert.Error(t, cfg.Validate())

	cfg.Post.PollOptions = []string{"yes", "no"}
	assert.NoError(t, cfg.Validate())

	cfg.Post.PollOptions = nil
	assert.NoError(t, cfg.Validate())
}

func TestValidateLedgerBackend(t *testing.T) {
	cfg := Default()
	cfg.Ledger.Backend = "redis"
	assert.Error(t, cfg.Validate())

	cfg.Ledger.Backend = "sqlite"
	assert.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Reply.MaxReplies = 3
	cfg.Reply.Triggers = []TriggerConfig{
		{Keywords: []string{"golang"}, Reply: "nice!"},
	}
	cfg.Unfollow.Keep = []string{"bestfriend"}
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load()
	assert.Error(t, err)
}
