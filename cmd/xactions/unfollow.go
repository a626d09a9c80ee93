package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/actions"
	"github.com/nirholas/XActions-sub002/internal/engine"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

var unfollowMax int

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <username>",
	Short: "Unfollow accounts from your following list",
	Long: `Walks the following list of the given account and unfollows every
handle not on the keep list from the config file. Each unfollow goes
through X's confirmation sheet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.Config.Unfollow
		if unfollowMax > 0 {
			cfg.MaxUnfollows = unfollowMax
		}
		if cfg.MaxUnfollows <= 0 {
			return fmt.Errorf("%w: max unfollows must be positive", engine.ErrConfig)
		}

		res, reportPath, err := a.Execute(cmd.Context(), func(s surface.Surface) actions.Task {
			return actions.Unfollow(s, actions.UnfollowOptions{
				Username:     args[0],
				Keep:         cfg.Keep,
				MaxUnfollows: cfg.MaxUnfollows,
				Preview:      preview,
			})
		})
		printResult(res, reportPath)
		return err
	},
}

func init() {
	unfollowCmd.Flags().IntVar(&unfollowMax, "max", 0, "override the configured unfollow ceiling")
	rootCmd.AddCommand(unfollowCmd)
}
