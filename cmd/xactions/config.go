package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println("#", path)
		return toml.NewEncoder(os.Stdout).Encode(a.Config)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
