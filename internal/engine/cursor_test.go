package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

func newTestCursor(f *surface.Fake, opts CursorOptions) *Cursor {
	opts.Sleep = throttle.Nop
	return NewCursor(f, "article", opts)
}

func TestCursorGrowthResetsStreak(t *testing.T) {
	f := surface.NewFake()
	f.Counts = []int{0, 5, 5, 10, 10, 10, 10}
	c := newTestCursor(f, CursorOptions{MaxEmptyRounds: 3})
	ctx := context.Background()

	grew, err := c.Advance(ctx) // round 1: 5 > 0
	require.NoError(t, err)
	assert.True(t, grew)

	grew, err = c.Advance(ctx) // round 2: 5 == 5
	require.NoError(t, err)
	assert.False(t, grew)
	assert.Equal(t, Scanning, c.State())

	grew, err = c.Advance(ctx) // round 3: 10 > 5, streak resets
	require.NoError(t, err)
	assert.True(t, grew)
	assert.Equal(t, Scanning, c.State())
}

func TestCursorExhaustsAfterEmptyStreak(t *testing.T) {
	f := surface.NewFake()
	f.Counts = []int{7}
	c := newTestCursor(f, CursorOptions{MaxEmptyRounds: 3})
	ctx := context.Background()

	// First advance grows (7 from 0), then the count never moves.
	_, err := c.Advance(ctx)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.False(t, c.Exhausted())
		_, err := c.Advance(ctx)
		require.NoError(t, err)
	}
	assert.True(t, c.Exhausted())

	// Exhausted is terminal: further advances are no-ops.
	scrolls := f.Scrolls
	grew, err := c.Advance(ctx)
	require.NoError(t, err)
	assert.False(t, grew)
	assert.Equal(t, scrolls, f.Scrolls)
}

func TestCursorRoundCeiling(t *testing.T) {
	f := surface.NewFake()
	// Strictly growing forever; only the round ceiling can stop it.
	counts := make([]int, 100)
	for i := range counts {
		counts[i] = i + 1
	}
	f.Counts = counts

	c := newTestCursor(f, CursorOptions{MaxRounds: 5})
	ctx := context.Background()

	for !c.Exhausted() {
		_, err := c.Advance(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, c.Rounds())
}

func TestCursorScrollDirection(t *testing.T) {
	f := surface.NewFake()
	f.Counts = []int{1}
	c := newTestCursor(f, CursorOptions{Direction: ScrollUp})

	_, err := c.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.Scrolls)
}
