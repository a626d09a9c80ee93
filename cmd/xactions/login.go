package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to X.com and store the session",
	Long: `Opens a visible browser window on the X.com login page. Log in
normally; once the home timeline loads, the session cookies are captured
and stored for every other command to reuse.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if a.Auth.IsAuthenticated() {
			fmt.Println("already logged in; run logout first to switch accounts")
			return nil
		}
		if err := a.Auth.Login(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("logged in")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored X.com session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Auth.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
