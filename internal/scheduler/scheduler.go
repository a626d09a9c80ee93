// Package scheduler runs automations on a recurring interval for watch
// mode.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a stopped scheduler.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), log: log}
}

// EveryHours registers job to run every n hours.
func (s *Scheduler) EveryHours(n int, job func()) error {
	if n <= 0 {
		return fmt.Errorf("interval must be positive, got %d", n)
	}
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %dh", n), job)
	if err != nil {
		return fmt.Errorf("scheduling job: %w", err)
	}
	return nil
}

// Start begins running registered jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.log.Info().Msg("scheduler started")
	s.cron.Start()
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}
