package main

import (
	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/actions"
	"github.com/nirholas/XActions-sub002/internal/surface"
)

var communitiesKeywords []string

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "Join communities matching the configured keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.Config.Community
		keywords := cfg.Keywords
		if len(communitiesKeywords) > 0 {
			keywords = communitiesKeywords
		}

		res, reportPath, err := a.Execute(cmd.Context(), func(s surface.Surface) actions.Task {
			return actions.JoinCommunities(s, actions.CommunitiesOptions{
				Keywords: keywords,
				MaxJoins: cfg.MaxJoins,
				Preview:  preview,
			})
		})
		printResult(res, reportPath)
		return err
	},
}

func init() {
	communitiesCmd.Flags().StringSliceVar(&communitiesKeywords, "keyword", nil, "override the configured community keywords")
	rootCmd.AddCommand(communitiesCmd)
}
