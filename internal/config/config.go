// Package config holds operator configuration, stored as TOML in the
// platform config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Version   int             `toml:"version"`
	Log       LogConfig       `toml:"log"`
	Browser   BrowserConfig   `toml:"browser"`
	Engine    EngineConfig    `toml:"engine"`
	Throttle  ThrottleConfig  `toml:"throttle"`
	Ledger    LedgerConfig    `toml:"ledger"`
	Reply     ReplyConfig     `toml:"reply"`
	Unfollow  UnfollowConfig  `toml:"unfollow"`
	Bookmarks BookmarksConfig `toml:"bookmarks"`
	Community CommunityConfig `toml:"community"`
	Post      PostConfig      `toml:"post"`
	Watch     WatchConfig     `toml:"watch"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type BrowserConfig struct {
	Headless bool `toml:"headless"`
}

// EngineConfig tunes pagination. The empty-round streak and the round
// ceiling are deliberately operator tunables, not constants.
type EngineConfig struct {
	SettleMs        int `toml:"settle_ms"`
	MaxEmptyRounds  int `toml:"max_empty_rounds"`
	MaxScrollRounds int `toml:"max_scroll_rounds"`
	MaxFailures     int `toml:"max_failures"`
}

type ThrottleConfig struct {
	MinDelayMs      int `toml:"min_delay_ms"`
	MaxDelayMs      int `toml:"max_delay_ms"`
	CooldownSeconds int `toml:"cooldown_seconds"`
}

// LedgerConfig selects where acted-on ids persist: "file" keeps one JSON
// file per automation, "sqlite" shares the run-history database.
type LedgerConfig struct {
	Backend string `toml:"backend"`
}

// TriggerConfig pairs matching keywords with the payload the action uses.
type TriggerConfig struct {
	Keywords []string `toml:"keywords"`
	Reply    string   `toml:"reply"`
}

type FiltersConfig struct {
	MinLikes        int      `toml:"min_likes"`
	MaxLikes        int      `toml:"max_likes"`
	IgnoreVerified  bool     `toml:"ignore_verified"`
	IgnoreReplies   bool     `toml:"ignore_replies"`
	AllowedAccounts []string `toml:"allowed_accounts"`
	MutedAccounts   []string `toml:"muted_accounts"`
}

type ReplyConfig struct {
	FeedURL    string          `toml:"feed_url"`
	MaxReplies int             `toml:"max_replies"`
	Triggers   []TriggerConfig `toml:"triggers"`
	Filters    FiltersConfig   `toml:"filters"`
}

type UnfollowConfig struct {
	MaxUnfollows int      `toml:"max_unfollows"`
	Keep         []string `toml:"keep"`
}

type BookmarksConfig struct {
	MaxRemovals int `toml:"max_removals"`
}

type CommunityConfig struct {
	MaxJoins int      `toml:"max_joins"`
	Keywords []string `toml:"keywords"`
}

// PostConfig configures one-shot posting. PollOptions, when set, turns
// the post into a poll.
type PostConfig struct {
	Text         string   `toml:"text"`
	PollOptions  []string `toml:"poll_options"`
	PollDuration string   `toml:"poll_duration"`
}

type WatchConfig struct {
	IntervalHours int `toml:"interval_hours"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: 1,
		Log:     LogConfig{Level: "info"},
		Browser: BrowserConfig{Headless: true},
		Engine: EngineConfig{
			SettleMs:        750,
			MaxEmptyRounds:  4,
			MaxScrollRounds: 50,
			MaxFailures:     10,
		},
		Throttle: ThrottleConfig{
			MinDelayMs:      2000,
			MaxDelayMs:      6000,
			CooldownSeconds: 300,
		},
		Ledger: LedgerConfig{Backend: "file"},
		Reply: ReplyConfig{
			FeedURL:    "https://x.com/home",
			MaxReplies: 10,
		},
		Unfollow:  UnfollowConfig{MaxUnfollows: 50},
		Bookmarks: BookmarksConfig{MaxRemovals: 50},
		Community: CommunityConfig{MaxJoins: 5},
		Watch:     WatchConfig{IntervalHours: 4},
	}
}

// Validate checks the few hard platform constraints. Most odd values
// degrade at run time instead; only these abort a run before any action.
func (c *Config) Validate() error {
	if n := len(c.Post.PollOptions); n != 0 && (n < 2 || n > 4) {
		return fmt.Errorf("poll needs 2-4 options, got %d", n)
	}
	if c.Ledger.Backend != "" && c.Ledger.Backend != "file" && c.Ledger.Backend != "sqlite" {
		return fmt.Errorf("unknown ledger backend %q", c.Ledger.Backend)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "xactions"), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the directory for the database, ledgers and reports.
func DataDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "xactions"), nil
}

// Load reads config from disk.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
