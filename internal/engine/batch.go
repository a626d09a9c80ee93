package engine

import "github.com/nirholas/XActions-sub002/internal/extract"

// Batch is an insertion-ordered, dedup-by-id collection of records with a
// size ceiling. The insertion order is the later processing order, so the
// oldest-visible record is acted on first. For a duplicate id the first
// occurrence wins; re-adding never changes stored fields.
type Batch struct {
	limit int
	order []string
	byID  map[string]extract.Record
}

// NewBatch creates a batch holding at most limit records. A non-positive
// limit means unbounded.
func NewBatch(limit int) *Batch {
	return &Batch{limit: limit, byID: make(map[string]extract.Record)}
}

// Add inserts a record unless its id is already present or the batch is
// full. It reports whether the batch can still accept more records.
func (b *Batch) Add(r extract.Record) bool {
	if b.Full() {
		return false
	}
	if _, ok := b.byID[r.ID]; ok {
		return true
	}
	b.byID[r.ID] = r
	b.order = append(b.order, r.ID)
	return !b.Full()
}

// Has reports whether id is already in the batch.
func (b *Batch) Has(id string) bool {
	_, ok := b.byID[id]
	return ok
}

// Len reports how many records the batch holds.
func (b *Batch) Len() int { return len(b.order) }

// Full reports whether the size ceiling has been reached.
func (b *Batch) Full() bool { return b.limit > 0 && len(b.order) >= b.limit }

// Records returns the records in insertion order.
func (b *Batch) Records() []extract.Record {
	out := make([]extract.Record, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}
	return out
}
