package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/actions"
	"github.com/nirholas/XActions-sub002/internal/config"
	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

var replyMax int

var replyCmd = &cobra.Command{
	Use:   "reply",
	Short: "Reply to posts matching the configured triggers",
	Long: `Scans the configured feed and replies to posts whose text matches a
trigger from the config file, using the trigger's reply text. Posts
already replied to on earlier runs are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.Config.Reply
		if len(cfg.Triggers) == 0 {
			return fmt.Errorf("%w: no reply triggers configured", engine.ErrConfig)
		}
		if replyMax > 0 {
			cfg.MaxReplies = replyMax
		}

		opts := replyRunOptions(cfg, preview)
		res, reportPath, err := a.Execute(cmd.Context(), func(s surface.Surface) actions.Task {
			return actions.AutoReply(s, opts)
		})
		printResult(res, reportPath)
		return err
	},
}

// replyRunOptions maps the config file's reply section onto the
// automation's options. Both the one-shot and the scheduled command go
// through here so they target identically.
func replyRunOptions(cfg config.ReplyConfig, preview bool) actions.ReplyOptions {
	var triggers []engine.Trigger
	for _, t := range cfg.Triggers {
		triggers = append(triggers, engine.Trigger{Keywords: t.Keywords, Payload: t.Reply})
	}
	return actions.ReplyOptions{
		FeedURL:    cfg.FeedURL,
		MaxReplies: cfg.MaxReplies,
		Triggers:   triggers,
		Filters: engine.Filters{
			Allow:          cfg.Filters.AllowedAccounts,
			Deny:           cfg.Filters.MutedAccounts,
			IgnoreVerified: cfg.Filters.IgnoreVerified,
			IgnoreReplies:  cfg.Filters.IgnoreReplies,
			MinEngagement:  cfg.Filters.MinLikes,
			MaxEngagement:  cfg.Filters.MaxLikes,
		},
		Preview: preview,
	}
}

func init() {
	replyCmd.Flags().IntVar(&replyMax, "max", 0, "override the configured reply ceiling")
	rootCmd.AddCommand(replyCmd)
}

const timeRound = 100 * time.Millisecond

func printResult(res engine.RunResult, reportPath string) {
	verb := "acted on"
	if res.Preview {
		verb = "would act on"
	}
	fmt.Printf("%s %d, skipped %d, failed %d (%d scroll rounds, %s)\n",
		verb, res.Acted, res.Skipped, res.Failed, res.Rounds, res.Elapsed.Round(timeRound))
	if reportPath != "" {
		fmt.Println("report:", reportPath)
	}
}
