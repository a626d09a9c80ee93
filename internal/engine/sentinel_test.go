package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

func newTestSentinel(f *surface.Fake, rec *sleepRecorder) *Sentinel {
	th := throttle.New(throttle.Window{}).WithSleeper(rec.sleep)
	return NewSentinel(f, th, zerolog.Nop(), SentinelOptions{Cooldown: 5 * time.Minute})
}

func TestSentinelDetectsAbuseTerms(t *testing.T) {
	cases := []string{
		"You're doing that too many times.",
		"Rate Limit exceeded",
		"Please try again later",
		"Slow Down! You are posting too fast",
	}

	for _, banner := range cases {
		f := surface.NewFake()
		f.SetText(`[data-testid="toast"]`, banner)
		s := newTestSentinel(f, &sleepRecorder{})
		assert.True(t, s.Detected(context.Background()), "banner %q should be detected", banner)
	}
}

func TestSentinelIgnoresOrdinaryToasts(t *testing.T) {
	f := surface.NewFake()
	f.SetText(`[data-testid="toast"]`, "Your post was sent")
	s := newTestSentinel(f, &sleepRecorder{})
	assert.False(t, s.Detected(context.Background()))
}

func TestSentinelCheckSleepsCooldown(t *testing.T) {
	f := surface.NewFake()
	f.SetText(`[role="alert"]`, "rate limit reached, try again in a few minutes")
	rec := &sleepRecorder{}
	s := newTestSentinel(f, rec)

	require.NoError(t, s.Check(context.Background()))
	assert.Equal(t, 1, rec.count(5*time.Minute))
	assert.Equal(t, 1, s.Trips())
}

func TestSentinelIsLevelTriggered(t *testing.T) {
	f := surface.NewFake()
	f.SetText(`[data-testid="toast"]`, "too many requests")
	rec := &sleepRecorder{}
	s := newTestSentinel(f, rec)
	ctx := context.Background()

	require.NoError(t, s.Check(ctx))
	require.NoError(t, s.Check(ctx))
	assert.Equal(t, 2, rec.count(5*time.Minute), "a persisting banner re-triggers on every check")

	// Once the banner clears, checks are free.
	f.SetText(`[data-testid="toast"]`, "")
	require.NoError(t, s.Check(ctx))
	assert.Equal(t, 2, rec.count(5*time.Minute))
}

func TestSentinelNoBannerNoSleep(t *testing.T) {
	f := surface.NewFake()
	rec := &sleepRecorder{}
	s := newTestSentinel(f, rec)

	require.NoError(t, s.Check(context.Background()))
	assert.Empty(t, rec.slept)
}
