// Package export writes per-run JSON reports for later inspection.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nirholas/XActions-sub002/internal/engine"
)

// Report is the on-disk record of one automation run.
type Report struct {
	RunID      string                `json:"run_id"`
	Automation string                `json:"automation"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	Preview    bool                  `json:"preview"`
	Acted      int                   `json:"acted"`
	Skipped    int                   `json:"skipped"`
	Failed     int                   `json:"failed"`
	Rounds     int                   `json:"rounds"`
	Records    []engine.ActedRecord `json:"records"`
}

// NewReport builds a Report from a finished run.
func NewReport(automation string, started time.Time, res *engine.RunResult) *Report {
	return &Report{
		RunID:      uuid.NewString(),
		Automation: automation,
		StartedAt:  started,
		FinishedAt: started.Add(res.Elapsed),
		Preview:    res.Preview,
		Acted:      res.Acted,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		Rounds:     res.Rounds,
		Records:    res.Records,
	}
}

// Write saves the report under dir as <automation>-<timestamp>.json and
// returns the path. The write goes through a temp file so a crash never
// leaves a truncated report behind.
func (r *Report) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", r.Automation, r.StartedAt.Format("2006-01-02T15-04-05"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
