package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/ledger"
	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

// Trigger matches records by keyword and supplies the action payload,
// e.g. the reply text. Matching is case-insensitive substring containment.
type Trigger struct {
	Keywords []string
	Payload  string
}

// Matches reports whether any keyword occurs in text.
func (t Trigger) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range t.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Filters are the AND-combined targeting predicates evaluated against a
// record's fields before any trigger matching.
type Filters struct {
	// Allow, when non-empty, restricts actions to these author handles.
	Allow []string
	// Deny excludes these author handles even when a trigger matches.
	Deny []string
	// IgnoreVerified skips records from verified accounts.
	IgnoreVerified bool
	// IgnoreReplies skips records that are themselves replies.
	IgnoreReplies bool
	// MinEngagement / MaxEngagement bound the engagement count read from
	// EngagementKey. MaxEngagement 0 means unbounded above.
	MinEngagement int
	MaxEngagement int
	// EngagementKey names the field the bounds apply to, "likes" by
	// default.
	EngagementKey string
}

// Accept reports whether the record passes every configured predicate.
func (f Filters) Accept(r extract.Record) bool {
	author := strings.ToLower(r.Author())
	if len(f.Allow) > 0 && !containsFold(f.Allow, author) {
		return false
	}
	if containsFold(f.Deny, author) {
		return false
	}
	if f.IgnoreVerified && r.Bool("is_verified") {
		return false
	}
	if f.IgnoreReplies && r.Bool("is_reply") {
		return false
	}

	key := f.EngagementKey
	if key == "" {
		key = "likes"
	}
	engagement := r.Int(key)
	if f.MinEngagement > 0 && engagement < f.MinEngagement {
		return false
	}
	if f.MaxEngagement > 0 && engagement > f.MaxEngagement {
		return false
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimPrefix(h, "@"), needle) {
			return true
		}
	}
	return false
}

// ActionFunc performs the side effect for one record. payload is the
// trigger-supplied text, empty when the automation has no triggers.
type ActionFunc func(ctx context.Context, rec extract.Record, payload string) error

// MarkPolicy decides when a record enters the ledger relative to its
// action.
type MarkPolicy int

const (
	// MarkAfterConfirm adds the id only once the action's completion
	// signal arrived. A failed action stays retryable on the next run.
	MarkAfterConfirm MarkPolicy = iota
	// MarkBeforeAction adds the id before attempting the action, for
	// click-then-confirm controls where a repeated attempt is worse than
	// a lost one.
	MarkBeforeAction
)

// ActedRecord summarizes one record the run acted (or would act) on.
type ActedRecord struct {
	ID      string       `json:"id"`
	Kind    extract.Kind `json:"kind"`
	Summary string       `json:"summary"`
	At      time.Time    `json:"at"`
}

// RunResult summarizes a completed run.
type RunResult struct {
	Acted   int           `json:"acted"`
	Skipped int           `json:"skipped"`
	Failed  int           `json:"failed"`
	Rounds  int           `json:"rounds"`
	Elapsed time.Duration `json:"elapsed"`
	Preview bool          `json:"preview"`
	Records []ActedRecord `json:"records,omitempty"`
}

// DefaultMaxFailures ends a run early when transient action failures
// dominate instead of letting it spin against a broken page.
const DefaultMaxFailures = 10

// Config describes one automation run.
type Config struct {
	// Name identifies the automation in logs and reports.
	Name string
	// Extractor produces the records this run considers.
	Extractor extract.Extractor
	// MaxActions is the act-count ceiling. Required.
	MaxActions int
	// BatchSize bounds a single collect pass. Defaults to MaxActions or
	// 20, whichever is larger.
	BatchSize int
	// MaxFailures is the transient-failure budget. Defaults to
	// DefaultMaxFailures.
	MaxFailures int
	// Preview runs all decision logic but suppresses the action and the
	// ledger write.
	Preview bool
	// Triggers gate records by keyword; the first match supplies the
	// payload. Empty means every record matches with an empty payload.
	Triggers []Trigger
	// Filters are the targeting predicates.
	Filters Filters
	// Mark is the ledger ordering policy.
	Mark MarkPolicy
	// Action performs the side effect. Required unless Preview is set.
	Action ActionFunc
	// Dismiss resets the page after a failed action. Defaults to
	// pressing Escape.
	Dismiss func(ctx context.Context) error
}

// Deps are the collaborators an Executor composes.
type Deps struct {
	Surface   surface.Surface
	Collector *Collector
	Sentinel  *Sentinel
	Ledger    ledger.Ledger
	Throttle  *throttle.Throttle
	Log       zerolog.Logger
}

// ErrConfig marks operator configuration errors, the one fatal class: a
// run aborts before any action rather than degrading.
var ErrConfig = errors.New("invalid configuration")

// Executor composes collection, filtering, the ledger, the throttle and
// the sentinel into "collect then act on up to N records."
type Executor struct {
	cfg  Config
	deps Deps
}

// NewExecutor validates cfg and builds an executor.
func NewExecutor(cfg Config, deps Deps) (*Executor, error) {
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("%w: extractor is required", ErrConfig)
	}
	if cfg.MaxActions <= 0 {
		return nil, fmt.Errorf("%w: max actions must be positive", ErrConfig)
	}
	if cfg.Action == nil && !cfg.Preview {
		return nil, fmt.Errorf("%w: action is required outside preview mode", ErrConfig)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = cfg.MaxActions
		if cfg.BatchSize < 20 {
			cfg.BatchSize = 20
		}
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = DefaultMaxFailures
	}
	if deps.Surface == nil || deps.Collector == nil || deps.Sentinel == nil || deps.Ledger == nil || deps.Throttle == nil {
		return nil, fmt.Errorf("%w: missing executor dependency", ErrConfig)
	}
	return &Executor{cfg: cfg, deps: deps}, nil
}

// Run executes the automation until the act ceiling, the feed, or the
// failure budget is exhausted. A single failed action never aborts the
// run; only a cancelled context does.
func (e *Executor) Run(ctx context.Context) (RunResult, error) {
	start := time.Now()
	res := RunResult{Preview: e.cfg.Preview}
	cursor := e.deps.Collector.Cursor()

	// seen tracks every record already decided this run, so re-extracted
	// nodes are not reconsidered across batches.
	seen := make(map[string]bool)

	log := e.deps.Log.With().Str("automation", e.cfg.Name).Logger()
	log.Info().
		Int("max_actions", e.cfg.MaxActions).
		Bool("preview", e.cfg.Preview).
		Msg("run started")

loop:
	for res.Acted < e.cfg.MaxActions {
		if err := ctx.Err(); err != nil {
			return e.finish(res, start, log), err
		}
		if err := e.deps.Sentinel.Check(ctx); err != nil {
			return e.finish(res, start, log), err
		}

		batch, err := e.deps.Collector.Collect(ctx, e.cfg.BatchSize, e.cfg.Extractor,
			func(r extract.Record) bool { return !seen[r.ID] })
		if err != nil {
			if batch == nil || batch.Len() == 0 {
				return e.finish(res, start, log), err
			}
			// Keep the partial batch; the failure is logged and the
			// next iteration retries extraction.
			log.Warn().Err(err).Int("partial", batch.Len()).Msg("collection ended early")
		}

		progressed := false
		for _, rec := range batch.Records() {
			if res.Acted >= e.cfg.MaxActions {
				break loop
			}
			if err := ctx.Err(); err != nil {
				return e.finish(res, start, log), err
			}
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			progressed = true

			if err := e.process(ctx, rec, &res, log); err != nil {
				return e.finish(res, start, log), err
			}
			if res.Failed >= e.cfg.MaxFailures {
				log.Warn().Int("failed", res.Failed).Msg("failure budget exhausted, ending run")
				break loop
			}
		}

		if !progressed {
			if cursor.Exhausted() {
				break
			}
			if _, err := cursor.Advance(ctx); err != nil {
				return e.finish(res, start, log), err
			}
			if cursor.Exhausted() {
				break
			}
		}
	}

	return e.finish(res, start, log), nil
}

func (e *Executor) finish(res RunResult, start time.Time, log zerolog.Logger) RunResult {
	res.Rounds = e.deps.Collector.Cursor().Rounds()
	res.Elapsed = time.Since(start)
	log.Info().
		Int("acted", res.Acted).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Int("rounds", res.Rounds).
		Dur("elapsed", res.Elapsed).
		Msg("run finished")
	return res
}

// process applies the per-record decision sequence in its strict order.
// It returns an error only for cancellation; every record-level problem
// is absorbed into the counters.
func (e *Executor) process(ctx context.Context, rec extract.Record, res *RunResult, log zerolog.Logger) error {
	if e.deps.Ledger.Contains(rec.ID) {
		res.Skipped++
		log.Debug().Str("id", rec.ID).Msg("skip: already in ledger")
		return nil
	}
	if !e.cfg.Filters.Accept(rec) {
		res.Skipped++
		log.Debug().Str("id", rec.ID).Str("author", rec.Author()).Msg("skip: filtered")
		return nil
	}

	var payload string
	if len(e.cfg.Triggers) > 0 {
		matched := false
		for _, trig := range e.cfg.Triggers {
			if trig.Matches(rec.Text()) {
				payload = trig.Payload
				matched = true
				break
			}
		}
		if !matched {
			res.Skipped++
			log.Debug().Str("id", rec.ID).Msg("skip: no trigger matched")
			return nil
		}
	}

	if e.cfg.Preview {
		res.Acted++
		res.Records = append(res.Records, e.acted(rec))
		log.Info().Str("id", rec.ID).Str("author", rec.Author()).Msg("preview: would act")
		return nil
	}

	if e.cfg.Mark == MarkBeforeAction {
		if err := e.deps.Ledger.Add(rec.ID); err != nil {
			log.Error().Err(err).Str("id", rec.ID).Msg("ledger write failed")
		}
	}

	if err := e.cfg.Action(ctx, rec, payload); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		res.Failed++
		log.Warn().Err(err).
			Str("id", rec.ID).
			Str("author", rec.Author()).
			Msg("action failed, dismissing overlay and continuing")
		e.dismiss(ctx, log)
		return nil
	}

	if e.cfg.Mark == MarkAfterConfirm {
		if err := e.deps.Ledger.Add(rec.ID); err != nil {
			log.Error().Err(err).Str("id", rec.ID).Msg("ledger write failed")
		}
	}
	res.Acted++
	res.Records = append(res.Records, e.acted(rec))
	log.Info().Str("id", rec.ID).Str("author", rec.Author()).Int("acted", res.Acted).Msg("acted")

	return e.deps.Throttle.Wait(ctx)
}

// dismiss returns the page to a known state after a failed action so the
// stray overlay cannot swallow the next record's clicks.
func (e *Executor) dismiss(ctx context.Context, log zerolog.Logger) {
	var err error
	if e.cfg.Dismiss != nil {
		err = e.cfg.Dismiss(ctx)
	} else {
		err = e.deps.Surface.PressEscape(ctx)
	}
	if err != nil {
		log.Debug().Err(err).Msg("overlay dismissal failed")
	}
}

func (e *Executor) acted(rec extract.Record) ActedRecord {
	summary := rec.Text()
	if len(summary) > 80 {
		// Back up to a rune boundary so the cut never leaves invalid
		// UTF-8 in the report.
		cut := 80
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut]
	}
	return ActedRecord{ID: rec.ID, Kind: rec.Kind, Summary: summary, At: time.Now()}
}
