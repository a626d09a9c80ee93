package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/actions"
)

var postPollOptions []string

var postCmd = &cobra.Command{
	Use:   "post <text>",
	Short: "Publish a single post, optionally with a poll",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.Compose(cmd.Context(), actions.PostOptions{
			Text:        args[0],
			PollOptions: postPollOptions,
		})
		if err != nil {
			return err
		}
		fmt.Println("posted")
		return nil
	},
}

func init() {
	postCmd.Flags().StringSliceVar(&postPollOptions, "poll", nil, "poll choices (2-4), turns the post into a poll")
	rootCmd.AddCommand(postCmd)
}
