package actions

import (
	"context"
	"fmt"

	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

// UnfollowOptions configures the bulk-unfollow automation.
type UnfollowOptions struct {
	// Username owns the following list being pruned.
	Username string
	// Keep lists handles never unfollowed, with or without a leading @.
	Keep         []string
	MaxUnfollows int
	Preview      bool
	Waits        Waits
}

// Unfollow walks the account's following list and unfollows every handle
// not on the keep list. Each unfollow goes through the confirmation
// sheet; the id enters the ledger before the click because a second
// confirm on an already-unfollowed account re-follows it.
func Unfollow(s surface.Surface, opts UnfollowOptions) Task {
	return Task{
		StartURL: fmt.Sprintf("https://x.com/%s/following", opts.Username),
		Ready:    selPrimaryColumn,
		Config: engine.Config{
			Name:       "unfollow",
			Extractor:  extract.AccountExtractor{},
			MaxActions: opts.MaxUnfollows,
			Preview:    opts.Preview,
			Filters:    engine.Filters{Deny: opts.Keep},
			Mark:       engine.MarkBeforeAction,
			Action:     unfollowAction(s, opts.Waits.orDefaults()),
		},
	}
}

func unfollowAction(s surface.Surface, waits Waits) engine.ActionFunc {
	return func(ctx context.Context, rec extract.Record, _ string) error {
		unfollowBtn := withinUserCell(rec.ID, `button[data-testid$="-unfollow"]`)
		if err := s.Click(ctx, unfollowBtn); err != nil {
			return fmt.Errorf("unfollow button for @%s: %w", rec.ID, err)
		}
		if err := surface.WaitFor(ctx, surface.VisibleWithin(s, selConfirmSheet), waits.Interval, waits.Timeout); err != nil {
			return fmt.Errorf("confirmation sheet for @%s: %w", rec.ID, err)
		}
		if err := s.Click(ctx, selConfirmSheet); err != nil {
			return fmt.Errorf("confirming unfollow of @%s: %w", rec.ID, err)
		}
		if err := surface.WaitFor(ctx, surface.GoneWithin(s, selConfirmSheet), waits.Interval, waits.Timeout); err != nil {
			return fmt.Errorf("unfollow of @%s not confirmed: %w", rec.ID, err)
		}
		return nil
	}
}
