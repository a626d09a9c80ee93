// Package app wires configuration, the browser session, storage and the
// automations into runnable units for the CLI.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/nirholas/XActions-sub002/internal/actions"
	"github.com/nirholas/XActions-sub002/internal/auth"
	"github.com/nirholas/XActions-sub002/internal/browser"
	"github.com/nirholas/XActions-sub002/internal/config"
	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/export"
	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/ledger"
	"github.com/nirholas/XActions-sub002/internal/store"
	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

// App holds the long-lived pieces shared by every command.
type App struct {
	Config *config.Config
	Log    zerolog.Logger
	Auth   *auth.Manager

	store   *store.Store
	dataDir string
}

// New loads everything the commands need. The run-history database opens
// lazily so read-only commands work without it.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrConfig, err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}

	cookiePath, err := auth.DefaultCookieStorePath()
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Log:     log,
		Auth:    auth.NewManager(auth.NewCookieStore(cookiePath), log),
		dataDir: dataDir,
	}, nil
}

// Close releases the run-history database if it was opened.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the run-history database, opening it on first use.
func (a *App) Store() (*store.Store, error) {
	if a.store == nil {
		st, err := store.Open(filepath.Join(a.dataDir, "xactions.db"))
		if err != nil {
			return nil, err
		}
		a.store = st
	}
	return a.store, nil
}

// Session opens an authenticated browser tab. The caller must cancel it.
func (a *App) Session(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if !a.Auth.IsAuthenticated() {
		return nil, nil, fmt.Errorf("%w: no stored session, run login first", engine.ErrConfig)
	}
	cookies, err := a.Auth.Cookies()
	if err != nil {
		return nil, nil, fmt.Errorf("loading session: %w", err)
	}
	return browser.NewContext(ctx, a.Config.Browser.Headless, cookies)
}

// openLedger opens the acted-id ledger for one automation, on the
// backend the config selects.
func (a *App) openLedger(automation string) (ledger.Ledger, error) {
	if a.Config.Ledger.Backend == "sqlite" {
		st, err := a.Store()
		if err != nil {
			return nil, err
		}
		return st.Ledger(automation), nil
	}
	path := filepath.Join(a.dataDir, "ledgers", automation+".json")
	return ledger.OpenFile(path)
}

// Throttle builds the action-pacing throttle from config.
func (a *App) Throttle() *throttle.Throttle {
	return throttle.New(throttle.Window{
		Min: time.Duration(a.Config.Throttle.MinDelayMs) * time.Millisecond,
		Max: time.Duration(a.Config.Throttle.MaxDelayMs) * time.Millisecond,
	})
}

func (a *App) runnerOptions() actions.Options {
	eng := a.Config.Engine
	return actions.Options{
		Settle:         time.Duration(eng.SettleMs) * time.Millisecond,
		MaxEmptyRounds: eng.MaxEmptyRounds,
		MaxRounds:      eng.MaxScrollRounds,
		MaxFailures:    eng.MaxFailures,
		Cooldown:       time.Duration(a.Config.Throttle.CooldownSeconds) * time.Second,
	}
}

// Execute opens a session, runs the task built over it, and records the
// outcome in the run history and a JSON report. The report path is
// returned alongside the result.
func (a *App) Execute(ctx context.Context, build func(surface.Surface) actions.Task) (engine.RunResult, string, error) {
	browserCtx, cancel, err := a.Session(ctx)
	if err != nil {
		return engine.RunResult{}, "", err
	}
	defer cancel()

	surf := surface.NewChrome()
	task := build(surf)

	led, err := a.openLedger(task.Config.Name)
	if err != nil {
		return engine.RunResult{}, "", fmt.Errorf("opening ledger: %w", err)
	}
	defer led.Close()

	runner := actions.NewRunner(actions.Deps{
		Surface:  surf,
		Ledger:   led,
		Throttle: a.Throttle(),
		Log:      a.Log,
	}, a.runnerOptions())

	started := time.Now()
	res, runErr := runner.Run(browserCtx, task)

	// Record what happened even when the run ended early.
	rep := export.NewReport(task.Config.Name, started, &res)
	path, err := rep.Write(filepath.Join(a.dataDir, "runs"))
	if err != nil {
		a.Log.Warn().Err(err).Msg("report not written")
		path = ""
	}
	if st, err := a.Store(); err == nil {
		saveErr := st.SaveRun(store.RunRow{
			ID:         rep.RunID,
			Automation: task.Config.Name,
			StartedAt:  rep.StartedAt,
			FinishedAt: rep.FinishedAt,
			Acted:      res.Acted,
			Skipped:    res.Skipped,
			Failed:     res.Failed,
			Rounds:     res.Rounds,
			Preview:    res.Preview,
		})
		if saveErr != nil {
			a.Log.Warn().Err(saveErr).Msg("run history not saved")
		}
	}

	return res, path, runErr
}

// Scrape opens a session and collects records without acting.
func (a *App) Scrape(ctx context.Context, opts actions.ScrapeOptions) ([]extract.Record, error) {
	browserCtx, cancel, err := a.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	surf := surface.NewChrome()
	runner := actions.NewRunner(actions.Deps{
		Surface:  surf,
		Ledger:   ledger.NewMemory(),
		Throttle: a.Throttle(),
		Log:      a.Log,
	}, a.runnerOptions())

	return runner.Scrape(browserCtx, opts)
}

// Compose opens a session and publishes a single post.
func (a *App) Compose(ctx context.Context, opts actions.PostOptions) error {
	browserCtx, cancel, err := a.Session(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	return actions.Compose(browserCtx, surface.NewChrome(), opts)
}
