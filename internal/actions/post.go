package actions

import (
	"context"
	"fmt"

	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

// PostOptions configures a one-shot post.
type PostOptions struct {
	Text string
	// PollOptions, when set, attaches a poll. The platform accepts two to
	// four choices.
	PollOptions []string
	Waits       Waits
}

// Compose publishes a single post, optionally with a poll. Unlike the
// bulk automations this is a one-shot interaction with no ledger or
// cursor behind it.
func Compose(ctx context.Context, s surface.Surface, opts PostOptions) error {
	if opts.Text == "" {
		return fmt.Errorf("%w: post text is required", engine.ErrConfig)
	}
	if n := len(opts.PollOptions); n != 0 && (n < 2 || n > 4) {
		return fmt.Errorf("%w: poll needs 2-4 options, got %d", engine.ErrConfig, n)
	}
	waits := opts.Waits.orDefaults()

	if err := s.Navigate(ctx, "https://x.com/compose/post"); err != nil {
		return fmt.Errorf("opening composer: %w", err)
	}
	if err := surface.WaitFor(ctx, surface.VisibleWithin(s, selComposer), waits.Interval, waits.Timeout); err != nil {
		return fmt.Errorf("composer: %w", err)
	}
	if err := s.Type(ctx, selComposer, opts.Text); err != nil {
		return fmt.Errorf("writing post: %w", err)
	}

	if len(opts.PollOptions) > 0 {
		if err := s.Click(ctx, selAddPoll); err != nil {
			return fmt.Errorf("adding poll: %w", err)
		}
		if err := surface.WaitFor(ctx, surface.VisibleWithin(s, pollChoiceInput(1)), waits.Interval, waits.Timeout); err != nil {
			return fmt.Errorf("poll editor: %w", err)
		}
		for i, choice := range opts.PollOptions {
			if err := s.Type(ctx, pollChoiceInput(i+1), choice); err != nil {
				return fmt.Errorf("poll choice %d: %w", i+1, err)
			}
		}
	}

	if err := s.Click(ctx, selSendReply); err != nil {
		return fmt.Errorf("sending post: %w", err)
	}
	if err := surface.WaitFor(ctx, surface.GoneWithin(s, selComposer), waits.Interval, waits.Timeout); err != nil {
		return fmt.Errorf("post not confirmed: %w", err)
	}
	return nil
}
