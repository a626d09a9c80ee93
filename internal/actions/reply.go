package actions

import (
	"context"
	"fmt"

	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

// ReplyOptions configures the auto-reply automation.
type ReplyOptions struct {
	FeedURL    string
	MaxReplies int
	Triggers   []engine.Trigger
	Filters    engine.Filters
	Preview    bool
	Waits      Waits
}

// AutoReply replies to posts whose text matches a trigger, with the
// trigger's reply text. Replies are marked in the ledger only after the
// composer closes, the page's own send confirmation.
func AutoReply(s surface.Surface, opts ReplyOptions) Task {
	url := opts.FeedURL
	if url == "" {
		url = "https://x.com/home"
	}
	return Task{
		StartURL: url,
		Ready:    selPrimaryColumn,
		Config: engine.Config{
			Name:       "reply",
			Extractor:  extract.PostExtractor{},
			MaxActions: opts.MaxReplies,
			Preview:    opts.Preview,
			Triggers:   opts.Triggers,
			Filters:    opts.Filters,
			Mark:       engine.MarkAfterConfirm,
			Action:     replyAction(s, opts.Waits.orDefaults()),
		},
	}
}

func replyAction(s surface.Surface, waits Waits) engine.ActionFunc {
	return func(ctx context.Context, rec extract.Record, payload string) error {
		if err := s.Click(ctx, withinPost(rec.ID, selReplyButton)); err != nil {
			return fmt.Errorf("opening composer for %s: %w", rec.ID, err)
		}
		if err := surface.WaitFor(ctx, surface.VisibleWithin(s, selComposer), waits.Interval, waits.Timeout); err != nil {
			return fmt.Errorf("composer for %s: %w", rec.ID, err)
		}
		if err := s.Type(ctx, selComposer, payload); err != nil {
			return fmt.Errorf("writing reply to %s: %w", rec.ID, err)
		}
		if err := s.Click(ctx, selSendReply); err != nil {
			return fmt.Errorf("sending reply to %s: %w", rec.ID, err)
		}
		// The composer closing is the only send confirmation the page gives.
		if err := surface.WaitFor(ctx, surface.GoneWithin(s, selComposer), waits.Interval, waits.Timeout); err != nil {
			return fmt.Errorf("reply to %s not confirmed: %w", rec.ID, err)
		}
		return nil
	}
}
