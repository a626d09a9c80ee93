package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/nirholas/XActions-sub002/internal/config"
)

var runsOpen bool

var runsCmd = &cobra.Command{
	Use:   "runs <automation>",
	Short: "Show recent runs of an automation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if runsOpen {
			return openLatestReport(args[0])
		}

		st, err := a.Store()
		if err != nil {
			return err
		}
		rows, err := st.RecentRuns(args[0], 20)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tACTED\tSKIPPED\tFAILED\tROUNDS\tPREVIEW")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%v\n",
				r.StartedAt.Format("2006-01-02 15:04"), r.Acted, r.Skipped, r.Failed, r.Rounds, r.Preview)
		}
		return w.Flush()
	},
}

// openLatestReport opens the newest JSON report for the automation in
// the default browser.
func openLatestReport(automation string) error {
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	matches, err := filepath.Glob(filepath.Join(dataDir, "runs", automation+"-*.json"))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no reports found for %s", automation)
	}
	sort.Strings(matches)
	return browser.OpenFile(matches[len(matches)-1])
}

func init() {
	runsCmd.Flags().BoolVar(&runsOpen, "open", false, "open the latest report in the browser")
	rootCmd.AddCommand(runsCmd)
}
