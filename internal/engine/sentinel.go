package engine

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nirholas/XActions-sub002/internal/surface"
	"github.com/nirholas/XActions-sub002/internal/throttle"
)

// DefaultAbuseTerms are the phrases X shows in transient notifications
// when a session is being rate limited.
var DefaultAbuseTerms = []string{
	"rate limit",
	"too many",
	"try again",
	"slow down",
}

// DefaultBannerRegions are the transient-notification regions scanned for
// those phrases.
var DefaultBannerRegions = []string{
	`[data-testid="toast"]`,
	`[role="alert"]`,
}

// DefaultCooldown is the pause forced after a rate-limit banner.
const DefaultCooldown = 5 * time.Minute

// SentinelOptions tunes a Sentinel. Zero values take the defaults.
type SentinelOptions struct {
	Regions  []string
	Terms    []string
	Cooldown time.Duration
}

// Sentinel scans the page for rate-limit banners before each batch of
// actions and forces a long cooldown when one is present. The check is
// level triggered: the banner can reappear, so every batch re-checks.
type Sentinel struct {
	surface  surface.Surface
	throttle *throttle.Throttle
	opts     SentinelOptions
	log      zerolog.Logger
	trips    int
}

// NewSentinel creates a sentinel over the given surface.
func NewSentinel(s surface.Surface, th *throttle.Throttle, log zerolog.Logger, opts SentinelOptions) *Sentinel {
	if len(opts.Regions) == 0 {
		opts.Regions = DefaultBannerRegions
	}
	if len(opts.Terms) == 0 {
		opts.Terms = DefaultAbuseTerms
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}
	return &Sentinel{surface: s, throttle: th, opts: opts, log: log}
}

// Detected reports whether any scanned region currently shows an abuse
// term. Unreadable regions are skipped; detection is best effort.
func (s *Sentinel) Detected(ctx context.Context) bool {
	for _, region := range s.opts.Regions {
		text, err := s.surface.Text(ctx, region)
		if err != nil || text == "" {
			continue
		}
		lower := strings.ToLower(text)
		for _, term := range s.opts.Terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}

// Check sleeps one cooldown if a banner is detected, then returns. The
// only error it surfaces is a cancelled sleep.
func (s *Sentinel) Check(ctx context.Context) error {
	if !s.Detected(ctx) {
		return nil
	}
	s.trips++
	s.log.Warn().
		Dur("cooldown", s.opts.Cooldown).
		Int("trips", s.trips).
		Msg("rate limit banner detected, cooling down")
	return s.throttle.Cooldown(ctx, s.opts.Cooldown)
}

// Trips reports how many cooldowns this sentinel has forced.
func (s *Sentinel) Trips() int { return s.trips }
