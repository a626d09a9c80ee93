package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/actions"
	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/scheduler"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the reply automation on the configured interval",
	Long: `Runs the auto-reply automation immediately and then again every
interval_hours from the config file, until interrupted. The ledger
carries across iterations, so each pass only replies to posts that
appeared since the last one.`,
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

		opts := replyRunOptions(cfg, preview)
		runOnce := func() {
			res, reportPath, err := a.Execute(cmd.Context(), func(s surface.Surface) actions.Task {
				return actions.AutoReply(s, opts)
			})
			if err != nil {
				a.Log.Error().Err(err).Msg("watch iteration failed")
				return
			}
			printResult(res, reportPath)
		}

		runOnce()

		sched := scheduler.New(a.Log)
		if err := sched.EveryHours(a.Config.Watch.IntervalHours, runOnce); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case <-cmd.Context().Done():
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
