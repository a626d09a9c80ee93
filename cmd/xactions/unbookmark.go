package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/actions"
	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

var unbookmarkMax int

var unbookmarkCmd = &cobra.Command{
	Use:   "unbookmark",
	Short: "Remove saved bookmarks in bulk",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		max := a.Config.Bookmarks.MaxRemovals
		if unbookmarkMax > 0 {
			max = unbookmarkMax
		}
		if max <= 0 {
			return fmt.Errorf("%w: max removals must be positive", engine.ErrConfig)
		}

		res, reportPath, err := a.Execute(cmd.Context(), func(s surface.Surface) actions.Task {
			return actions.Unbookmark(s, actions.UnbookmarkOptions{
				MaxRemovals: max,
				Preview:     preview,
			})
		})
		printResult(res, reportPath)
		return err
	},
}

func init() {
	unbookmarkCmd.Flags().IntVar(&unbookmarkMax, "max", 0, "override the configured removal ceiling")
	rootCmd.AddCommand(unbookmarkCmd)
}
