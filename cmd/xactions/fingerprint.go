package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chromedp/chromedp"
	"github.com/spf13/cobra"

	xbrowser "github.com/nirholas/XActions-sub002/internal/browser"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Audit the stealth configuration against a bot-detection page",
	Long: `Opens a visible browser with the same anti-detection options every
automation uses and loads a fingerprinting test page, so you can see
which signals leak. Close the window or interrupt to exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		allocCtx, cancelAlloc := chromedp.NewExecAllocator(cmd.Context(), xbrowser.Options(false)...)
		defer cancelAlloc()

		browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
		defer cancelBrowser()

		if err := chromedp.Run(browserCtx, chromedp.Navigate("https://bot.sannysoft.com")); err != nil {
			return fmt.Errorf("opening detection page: %w", err)
		}

		fmt.Println("inspect the results, then interrupt to exit")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case <-browserCtx.Done():
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)
}
