package actions

import (
	"context"
	"fmt"

	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

// ExtractorFor maps a record kind name to its extractor.
func ExtractorFor(kind string) (extract.Extractor, error) {
	switch extract.Kind(kind) {
	case extract.KindPost:
		return extract.PostExtractor{}, nil
	case extract.KindAccount:
		return extract.AccountExtractor{}, nil
	case extract.KindConversation:
		return extract.ConversationExtractor{}, nil
	case extract.KindCommunity:
		return extract.CommunityExtractor{}, nil
	case extract.KindSpace:
		return extract.SpaceExtractor{}, nil
	case extract.KindNotification:
		return extract.NotificationExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

// ScrapeOptions configures read-only collection.
type ScrapeOptions struct {
	URL       string
	Extractor extract.Extractor
	Max       int
	// Direction sets how the cursor reveals more candidates. Use
	// DirectionFor to get the right default for a kind.
	Direction engine.ScrollDirection
}

// DirectionFor returns the scroll direction that reveals older content
// for the given record kind. Conversation history loads above the
// viewport; every other surface paginates downward.
func DirectionFor(kind extract.Kind) engine.ScrollDirection {
	if kind == extract.KindConversation {
		return engine.ScrollUp
	}
	return engine.ScrollDown
}

// Scrape collects up to Max records from a page without acting on any of
// them. It is the only automation that bypasses the executor: there is
// no action, no ledger and no trigger, just the cursor-driven collect
// loop.
func (r *Runner) Scrape(ctx context.Context, opts ScrapeOptions) ([]extract.Record, error) {
	if opts.Extractor == nil {
		return nil, fmt.Errorf("%w: extractor is required", engine.ErrConfig)
	}
	if opts.Max <= 0 {
		return nil, fmt.Errorf("%w: max records must be positive", engine.ErrConfig)
	}

	log := r.deps.Log.With().Str("automation", "scrape").Logger()

	if opts.URL != "" {
		if err := r.deps.Surface.Navigate(ctx, opts.URL); err != nil {
			return nil, fmt.Errorf("opening %s: %w", opts.URL, err)
		}
		waits := r.opts.Waits.orDefaults()
		err := surface.WaitFor(ctx, surface.VisibleWithin(r.deps.Surface, selPrimaryColumn), waits.Interval, waits.Timeout)
		if err != nil {
			return nil, fmt.Errorf("page never rendered: %w", err)
		}
	}

	cursor := engine.NewCursor(r.deps.Surface, opts.Extractor.CandidateSelector(), engine.CursorOptions{
		Direction:      opts.Direction,
		Settle:         r.opts.Settle,
		MaxEmptyRounds: r.opts.MaxEmptyRounds,
		MaxRounds:      r.opts.MaxRounds,
		Sleep:          r.opts.Sleep,
	})
	collector := engine.NewCollector(r.deps.Surface, cursor, log)

	batch, err := collector.Collect(ctx, opts.Max, opts.Extractor, nil)
	if batch == nil {
		return nil, err
	}
	return batch.Records(), err
}
