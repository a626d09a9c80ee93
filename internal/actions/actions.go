// Package actions defines the bulk automations: each one binds an
// extractor, targeting rules and a DOM action into an engine run against
// a specific page.
package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/ledger"
	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

// Waits bounds the polls for secondary surfaces (composers, confirmation
// sheets) that render some time after the click that summons them.
type Waits struct {
	Interval time.Duration
	Timeout  time.Duration
}

func (w Waits) orDefaults() Waits {
	if w.Interval <= 0 {
		w.Interval = 250 * time.Millisecond
	}
	if w.Timeout <= 0 {
		w.Timeout = 10 * time.Second
	}
	return w
}

// Task binds an automation's engine configuration to the page it runs
// against.
type Task struct {
	StartURL  string
	Ready     string
	Direction engine.ScrollDirection
	Config    engine.Config
}

// Deps are the shared collaborators every automation needs.
type Deps struct {
	Surface  surface.Surface
	Ledger   ledger.Ledger
	Throttle *throttle.Throttle
	Log      zerolog.Logger
}

// Options carries the engine tunables from operator config into a run.
type Options struct {
	Settle         time.Duration
	MaxEmptyRounds int
	MaxRounds      int
	MaxFailures    int
	Cooldown       time.Duration
	// Sleep overrides the cursor's settle sleep, for tests.
	Sleep throttle.Sleeper
	Waits Waits
}

// Runner executes Tasks.
type Runner struct {
	deps Deps
	opts Options
}

// NewRunner creates a runner over the shared dependencies.
func NewRunner(deps Deps, opts Options) *Runner {
	return &Runner{deps: deps, opts: opts}
}

// Run navigates to the task's page, waits for it to render, and drives
// the engine until the task's ceiling or the feed is exhausted.
func (r *Runner) Run(ctx context.Context, t Task) (engine.RunResult, error) {
	log := r.deps.Log.With().Str("automation", t.Config.Name).Logger()

	if t.StartURL != "" {
		if err := r.deps.Surface.Navigate(ctx, t.StartURL); err != nil {
			return engine.RunResult{}, fmt.Errorf("opening %s: %w", t.StartURL, err)
		}
	}
	if t.Ready != "" {
		waits := r.opts.Waits.orDefaults()
		err := surface.WaitFor(ctx, surface.VisibleWithin(r.deps.Surface, t.Ready), waits.Interval, waits.Timeout)
		if err != nil {
			return engine.RunResult{}, fmt.Errorf("page never rendered %s: %w", t.Ready, err)
		}
	}

	cursor := engine.NewCursor(r.deps.Surface, t.Config.Extractor.CandidateSelector(), engine.CursorOptions{
		Direction:      t.Direction,
		Settle:         r.opts.Settle,
		MaxEmptyRounds: r.opts.MaxEmptyRounds,
		MaxRounds:      r.opts.MaxRounds,
		Sleep:          r.opts.Sleep,
	})
	collector := engine.NewCollector(r.deps.Surface, cursor, log)
	sentinel := engine.NewSentinel(r.deps.Surface, r.deps.Throttle, log, engine.SentinelOptions{
		Cooldown: r.opts.Cooldown,
	})

	if t.Config.MaxFailures <= 0 {
		t.Config.MaxFailures = r.opts.MaxFailures
	}

	exec, err := engine.NewExecutor(t.Config, engine.Deps{
		Surface:   r.deps.Surface,
		Collector: collector,
		Sentinel:  sentinel,
		Ledger:    r.deps.Ledger,
		Throttle:  r.deps.Throttle,
		Log:       log,
	})
	if err != nil {
		return engine.RunResult{}, err
	}
	return exec.Run(ctx)
}
