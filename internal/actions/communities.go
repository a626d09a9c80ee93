package actions

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/extract"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

// CommunitiesOptions configures community joining.
type CommunitiesOptions struct {
	// Keywords filter the explore results by community name.
	Keywords []string
	MaxJoins int
	Preview  bool
	Waits    Waits
}

// JoinCommunities searches the communities explorer and joins matches by
// keyword. Already-joined communities are filtered out at extraction time
// via the joined field; an id enters the ledger after the join button
// flips to its joined state.
func JoinCommunities(s surface.Surface, opts CommunitiesOptions) Task {
	startURL := "https://x.com/i/communities/suggested"
	if len(opts.Keywords) > 0 {
		q := url.QueryEscape(strings.Join(opts.Keywords, " "))
		startURL = "https://x.com/search?q=" + q + "&f=communities"
	}

	var triggers []engine.Trigger
	for _, kw := range opts.Keywords {
		triggers = append(triggers, engine.Trigger{Keywords: []string{kw}})
	}

	return Task{
		StartURL: startURL,
		Ready:    selPrimaryColumn,
		Config: engine.Config{
			Name:       "communities",
			Extractor:  extract.CommunityExtractor{},
			MaxActions: opts.MaxJoins,
			Preview:    opts.Preview,
			Triggers:   triggers,
			Mark:       engine.MarkAfterConfirm,
			Action:     joinAction(s, opts.Waits.orDefaults()),
		},
	}
}

func joinAction(s surface.Surface, waits Waits) engine.ActionFunc {
	return func(ctx context.Context, rec extract.Record, _ string) error {
		if rec.Bool("joined") {
			return nil
		}
		joinBtn := fmt.Sprintf(`a[href^="/i/communities/%s"] %s`, rec.ID, selJoinButton)
		if err := s.Click(ctx, joinBtn); err != nil {
			return fmt.Errorf("join button for community %s: %w", rec.ID, err)
		}
		if err := surface.WaitFor(ctx, surface.GoneWithin(s, joinBtn), waits.Interval, waits.Timeout); err != nil {
			return fmt.Errorf("join of community %s not confirmed: %w", rec.ID, err)
		}
		return nil
	}
}
