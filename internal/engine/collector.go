package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

// Collector composes a cursor and an extractor into "collect up to N
// matching records". A partial batch is a valid result, never an error.
type Collector struct {
	surface surface.Surface
	cursor  *Cursor
	log     zerolog.Logger
}

// NewCollector creates a collector over the given cursor.
func NewCollector(s surface.Surface, cursor *Cursor, log zerolog.Logger) *Collector {
	return &Collector{surface: s, cursor: cursor, log: log}
}

// Cursor returns the underlying feed cursor.
func (c *Collector) Cursor() *Cursor { return c.cursor }

// Collect gathers up to maxItems accepted records, advancing the cursor
// between extraction passes until the batch is full or the feed is
// exhausted. Records rejected by accept are dropped silently; rejection
// is not absence, so it never feeds the cursor's empty-round streak.
func (c *Collector) Collect(ctx context.Context, maxItems int, ex extract.Extractor, accept func(extract.Record) bool) (*Batch, error) {
	batch := NewBatch(maxItems)

	for {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		raw, err := c.surface.Extract(ctx, ex.Script())
		if err != nil {
			return batch, fmt.Errorf("extract %s candidates: %w", ex.Kind(), err)
		}
		records, err := ex.Decode(raw)
		if err != nil {
			return batch, fmt.Errorf("decode %s candidates: %w", ex.Kind(), err)
		}

		for _, rec := range records {
			if batch.Has(rec.ID) {
				continue
			}
			if accept != nil && !accept(rec) {
				continue
			}
			if !batch.Add(rec) {
				break
			}
		}

		if batch.Full() || c.cursor.Exhausted() {
			break
		}
		if _, err := c.cursor.Advance(ctx); err != nil {
			return batch, err
		}
	}

	c.log.Debug().
		Str("kind", string(ex.Kind())).
		Int("collected", batch.Len()).
		Int("rounds", c.cursor.Rounds()).
		Msg("batch collected")
	return batch, nil
}
