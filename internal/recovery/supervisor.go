// Package recovery detects non-progressing sessions and escalates through
// recovery tiers: close whatever is covering the screen, then restart the
// application and re-navigate to the last checkpoint.
package recovery

import (
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/nav"
)

// Signature is the cheap per-iteration fingerprint compared against the
// previous iteration to detect a screen that stopped changing.
type Signature struct {
	State         detect.PageState
	Discriminator string
}

// Zero reports whether the signature carries no information. Empty
// discriminators (failed text reads) must not count as "identical".
func (s Signature) Zero() bool {
	return s.Discriminator == ""
}

// Config controls stuck detection and hard recovery.
type Config struct {
	// Threshold is how many consecutive identical signatures declare
	// non-progress. Defaults to 3.
	Threshold int
	// SettleTime is how long to wait after an app restart.
	SettleTime time.Duration
}

func (c *Config) applyDefaults() {
	if c.Threshold <= 0 {
		c.Threshold = 3
	}
	if c.SettleTime <= 0 {
		c.SettleTime = 4 * time.Second
	}
}

// Supervisor watches signatures and runs the recovery tiers.
// Single-session ownership, not safe for concurrent use.
type Supervisor struct {
	cfg    Config
	screen core.Screen
	popups *nav.Popups
	clock  core.Clock
	logger *zap.Logger

	last Signature
	seen int
}

// NewSupervisor creates a Supervisor.
func NewSupervisor(cfg Config, screen core.Screen, popups *nav.Popups, clock core.Clock, logger *zap.Logger) *Supervisor {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Supervisor{
		cfg:    cfg,
		screen: screen,
		popups: popups,
		clock:  clock,
		logger: logger,
	}
}

// Observe feeds the current iteration's signature and reports whether
// non-progress is declared: the same signature seen Threshold consecutive
// times. The previous signature is discarded after comparison.
func (s *Supervisor) Observe(sig Signature) bool {
	if sig.Zero() || sig != s.last {
		s.last = sig
		s.seen = 1
		return false
	}
	s.seen++
	if s.seen < s.cfg.Threshold {
		s.logger.Debug("identical screen signature",
			zap.Int("count", s.seen),
			zap.String("discriminator", sig.Discriminator))
		return false
	}
	s.logger.Warn("non-progress declared",
		zap.String("state", sig.State.String()),
		zap.String("discriminator", sig.Discriminator))
	return true
}

// Reset clears the signature history, e.g. after a deliberate navigation.
func (s *Supervisor) Reset() {
	s.last = Signature{}
	s.seen = 0
}

// Recover runs the escalation ladder after Observe declared non-progress.
//
// Tier 1 closes system dialogs, in-app popups, and presses back. If the
// screen then produces a different signature the condition is cleared.
// Tier 2 force-restarts the application, waits for it to settle, and calls
// checkpoint to re-navigate to the last known good screen (the caller's
// checkpoint combines re-navigation with the smart scroll resume). A failed
// checkpoint is fatal for the run.
func (s *Supervisor) Recover(resample func() Signature, checkpoint func() bool) error {
	s.logger.Info("recovery tier 1: clearing obstructions")
	s.popups.CloseSystemDialog()
	s.popups.CloseAll()
	s.screen.PressBack()
	s.clock.Sleep(500 * time.Millisecond)

	if sig := resample(); sig != s.last {
		s.logger.Info("tier 1 cleared the condition")
		s.Reset()
		return nil
	}

	s.logger.Warn("recovery tier 2: restarting application")
	if err := s.screen.RestartApp(); err != nil {
		s.logger.Error("app restart failed", zap.Error(err))
		return core.ErrRecoveryFailed
	}
	s.clock.Sleep(s.cfg.SettleTime)

	if checkpoint == nil || !checkpoint() {
		return core.ErrRecoveryFailed
	}
	s.logger.Info("tier 2 recovery complete")
	s.Reset()
	return nil
}
