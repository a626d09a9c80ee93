// Package engine implements the incremental collection-and-action loop:
// a feed cursor surfaces more of a virtualized list, a collector gathers
// deduplicated records out of it, and an executor acts on a bounded
// subset with throttled pacing and an idempotency ledger.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

// CursorState is the feed cursor's pagination state.
type CursorState int

const (
	// Scanning means further scrolling may still reveal new candidates.
	Scanning CursorState = iota
	// Exhausted is terminal: the empty-round streak or the round ceiling
	// was hit and the engine must stop requesting advances.
	Exhausted
)

// ScrollDirection selects which edge of the feed the cursor scrolls
// toward. Conversation views load older content at the top.
type ScrollDirection int

const (
	ScrollDown ScrollDirection = iota
	ScrollUp
)

// Cursor defaults. Both ceilings are tunables; the per-script values in
// the field vary with no clear rationale, so nothing here is hardcoded
// at the call sites.
const (
	DefaultSettleDelay    = 750 * time.Millisecond
	DefaultMaxEmptyRounds = 4
	DefaultMaxRounds      = 50
)

// CursorOptions tunes a Cursor. Zero values take the defaults above.
type CursorOptions struct {
	Direction      ScrollDirection
	Settle         time.Duration
	MaxEmptyRounds int
	MaxRounds      int
	Sleep          throttle.Sleeper
}

// Cursor drives incremental reveal of a virtualized feed. Each Advance
// scrolls, waits for lazy content to settle, and reports whether the
// candidate-node count grew.
type Cursor struct {
	surface  surface.Surface
	selector string
	opts     CursorOptions

	state       CursorState
	rounds      int
	emptyStreak int
	lastCount   int
}

// NewCursor creates a cursor counting nodes matched by selector.
func NewCursor(s surface.Surface, selector string, opts CursorOptions) *Cursor {
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettleDelay
	}
	if opts.MaxEmptyRounds <= 0 {
		opts.MaxEmptyRounds = DefaultMaxEmptyRounds
	}
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.Sleep == nil {
		opts.Sleep = throttle.SleepContext
	}
	return &Cursor{surface: s, selector: selector, opts: opts}
}

// Advance scrolls once and reports whether new candidates appeared.
// Advancing an exhausted cursor is a no-op.
func (c *Cursor) Advance(ctx context.Context) (bool, error) {
	if c.state == Exhausted {
		return false, nil
	}

	var err error
	if c.opts.Direction == ScrollUp {
		err = c.surface.ScrollTop(ctx)
	} else {
		err = c.surface.ScrollBottom(ctx)
	}
	if err != nil {
		return false, fmt.Errorf("scroll: %w", err)
	}

	// The page re-renders asynchronously with no completion signal;
	// give lazy content a fixed settle window.
	if err := c.opts.Sleep(ctx, c.opts.Settle); err != nil {
		return false, err
	}

	count, err := c.surface.CandidateCount(ctx, c.selector)
	if err != nil {
		return false, fmt.Errorf("count candidates: %w", err)
	}

	grew := count > c.lastCount
	c.lastCount = count
	c.rounds++
	if grew {
		c.emptyStreak = 0
	} else {
		c.emptyStreak++
	}

	if c.emptyStreak >= c.opts.MaxEmptyRounds || c.rounds >= c.opts.MaxRounds {
		c.state = Exhausted
	}
	return grew, nil
}

// State reports the cursor's pagination state.
func (c *Cursor) State() CursorState { return c.state }

// Exhausted reports whether pagination has terminated.
func (c *Cursor) Exhausted() bool { return c.state == Exhausted }

// Rounds reports how many advances have been performed.
func (c *Cursor) Rounds() int { return c.rounds }
