package actions

import (
	"context"
	"fmt"

	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

// UnbookmarkOptions configures bulk bookmark removal.
type UnbookmarkOptions struct {
	MaxRemovals int
	Preview     bool
	Waits       Waits
}

// Unbookmark clears the bookmarks page. Removal has no confirmation
// surface and the post stays rendered after its bookmark is gone, so the
// id is marked before the click and removal is verified by the button
// flipping state.
func Unbookmark(s surface.Surface, opts UnbookmarkOptions) Task {
	return Task{
		StartURL: "https://x.com/i/bookmarks",
		Ready:    selPrimaryColumn,
		Config: engine.Config{
			Name:       "unbookmark",
			Extractor:  extract.PostExtractor{},
			MaxActions: opts.MaxRemovals,
			Preview:    opts.Preview,
			Mark:       engine.MarkBeforeAction,
			Action:     unbookmarkAction(s, opts.Waits.orDefaults()),
		},
	}
}

func unbookmarkAction(s surface.Surface, waits Waits) engine.ActionFunc {
	return func(ctx context.Context, rec extract.Record, _ string) error {
		removeBtn := withinPost(rec.ID, selRemoveBookmark)
		if err := s.Click(ctx, removeBtn); err != nil {
			return fmt.Errorf("remove-bookmark button for %s: %w", rec.ID, err)
		}
		if err := surface.WaitFor(ctx, surface.GoneWithin(s, removeBtn), waits.Interval, waits.Timeout); err != nil {
			return fmt.Errorf("bookmark removal of %s not confirmed: %w", rec.ID, err)
		}
		return nil
	}
}
