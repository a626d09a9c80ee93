package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

func newTestCollector(f *surface.Fake, opts CursorOptions) *Collector {
	opts.Sleep = throttle.Nop
	cursor := NewCursor(f, extract.PostExtractor{}.CandidateSelector(), opts)
	return NewCollector(f, cursor, zerolog.Nop())
}

func TestCollectAccumulatesAcrossRounds(t *testing.T) {
	f := surface.NewFake()
	f.Counts = []int{2, 4}
	f.Payloads = []string{
		postsPayload(t, fakePost{ID: "p1"}, fakePost{ID: "p2"}),
		postsPayload(t, fakePost{ID: "p1"}, fakePost{ID: "p2"}, fakePost{ID: "p3"}, fakePost{ID: "p4"}),
	}
	col := newTestCollector(f, CursorOptions{MaxEmptyRounds: 2})

	batch, err := col.Collect(context.Background(), 10, extract.PostExtractor{}, nil)
	require.NoError(t, err)

	// Partial batch once the feed exhausts, never an error.
	assert.Equal(t, 4, batch.Len())
	assert.True(t, col.Cursor().Exhausted())
}

func TestCollectStopsAtCeiling(t *testing.T) {
	f := surface.NewFake()
	f.Counts = []int{3}
	f.Payloads = []string{
		postsPayload(t, fakePost{ID: "p1"}, fakePost{ID: "p2"}, fakePost{ID: "p3"}),
	}
	col := newTestCollector(f, CursorOptions{})

	batch, err := col.Collect(context.Background(), 2, extract.PostExtractor{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Len())
	assert.Equal(t, 0, f.Scrolls, "no further reveal once the ceiling is reached")
}

func TestCollectRejectionIsNotAbsence(t *testing.T) {
	f := surface.NewFake()
	f.Counts = []int{3}
	f.Payloads = []string{
		postsPayload(t,
			fakePost{ID: "p1", Author: "spam"},
			fakePost{ID: "p2", Author: "ok"},
			fakePost{ID: "p3", Author: "spam"}),
	}
	col := newTestCollector(f, CursorOptions{MaxEmptyRounds: 2})

	batch, err := col.Collect(context.Background(), 10, extract.PostExtractor{},
		func(r extract.Record) bool { return r.Author() == "ok" })
	require.NoError(t, err)

	require.Equal(t, 1, batch.Len())
	assert.Equal(t, "p2", batch.Records()[0].ID)
}

func TestCollectEmptyFeedTerminates(t *testing.T) {
	f := surface.NewFake()
	col := newTestCollector(f, CursorOptions{MaxEmptyRounds: 3})

	batch, err := col.Collect(context.Background(), 5, extract.PostExtractor{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, batch.Len())
	assert.Equal(t, 3, col.Cursor().Rounds())
}

func TestCollectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := surface.NewFake()
	col := newTestCollector(f, CursorOptions{})
	_, err := col.Collect(ctx, 5, extract.PostExtractor{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
