package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/app"
	"github.com/nirholas/XActions-sub002/internal/config"
	"github.com/nirholas/XActions-sub002/internal/logger"
)

var (
	version = "0.1.0"

	// Global flags.
	logLevel string
	preview  bool
	headful  bool
)

var rootCmd = &cobra.Command{
	Use:   "xactions",
	Short: "Bulk automation for X.com driven through a real browser",
	Long: `xactions drives a logged-in X.com session through Chrome to run bulk
actions against whatever the page renders: auto-reply to matching posts,
prune the following list, clear bookmarks, join communities, or scrape
records without touching anything.

Every action already performed is remembered across runs, so re-running
an automation never acts on the same post or account twice.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&preview, "preview", "n", false, "decide everything, act on nothing")
	rootCmd.PersistentFlags().BoolVar(&headful, "headful", false, "show the browser window")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadApp loads config (writing defaults on first run) and builds the
// shared application state.
func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, fmt.Errorf("writing default config: %w", saveErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if headful {
		cfg.Browser.Headless = false
	}

	log := logger.New(logLevel)
	return app.New(cfg, log)
}
