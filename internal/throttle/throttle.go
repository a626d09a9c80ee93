// Package throttle paces actions with randomized delays so bulk runs look
// less like automation to the platform's abuse defenses.
package throttle

import (
	"context"
	"math/rand"
	"time"
)

// Window bounds the randomized pause drawn between consecutive actions.
type Window struct {
	Min time.Duration
	Max time.Duration
}

// Sleeper suspends the caller for the given duration. Production code uses
// SleepContext; tests swap in a recording no-op.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext sleeps for d or until ctx is cancelled.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Nop returns immediately. For tests.
func Nop(ctx context.Context, d time.Duration) error { return ctx.Err() }

// jitterFactor is the symmetric fraction applied on top of the uniform
// draw, so even a fixed window never produces identical spacing.
const jitterFactor = 0.15

// Throttle draws randomized delays from a window.
type Throttle struct {
	window Window
	rng    *rand.Rand
	sleep  Sleeper
}

// New creates a throttle over the given window. A zero or inverted window
// degrades to its usable part rather than failing.
func New(w Window) *Throttle {
	if w.Max < w.Min {
		w.Min, w.Max = w.Max, w.Min
	}
	return &Throttle{
		window: w,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:  SleepContext,
	}
}

// WithSleeper replaces the sleep function and returns the throttle.
func (t *Throttle) WithSleeper(s Sleeper) *Throttle {
	t.sleep = s
	return t
}

// Delay draws the next pause: uniform in [Min, Max] plus symmetric jitter,
// clamped so it never goes negative.
func (t *Throttle) Delay() time.Duration {
	span := t.window.Max - t.window.Min
	d := t.window.Min
	if span > 0 {
		d += time.Duration(t.rng.Int63n(int64(span) + 1))
	}
	jitter := time.Duration((t.rng.Float64()*2 - 1) * jitterFactor * float64(d))
	d += jitter
	if d < 0 {
		d = 0
	}
	return d
}

// Wait suspends for one drawn delay.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.sleep(ctx, t.Delay())
}

// Cooldown suspends for a fixed long pause, used after a rate-limit
// banner is detected.
func (t *Throttle) Cooldown(ctx context.Context, d time.Duration) error {
	return t.sleep(ctx, d)
}
