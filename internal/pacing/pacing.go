// Package pacing throttles action bursts. It is the primary lever against
// rate-based abuse detection: after a configured number of actions the
// session rests for a randomized duration, and an optional token-bucket
// limiter enforces a ceiling on actions per minute.
package pacing

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
)

// Config controls the pause cadence.
type Config struct {
	PauseAfterActions int
	PauseMin          time.Duration
	PauseMax          time.Duration
	// ActionsPerMinute, when > 0, adds a hard rate ceiling on top of the
	// randomized pauses.
	ActionsPerMinute int
}

// Controller counts actions and injects rest periods. Not safe for
// concurrent use; one controller belongs to one session.
type Controller struct {
	cfg     Config
	clock   core.Clock
	rng     core.Rand
	emitter *core.Emitter
	logger  *zap.Logger
	limiter *rate.Limiter

	actions int
}

// NewController creates a pacing controller.
func NewController(cfg Config, clock core.Clock, rng core.Rand, emitter *core.Emitter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		cfg:     cfg,
		clock:   clock,
		rng:     rng,
		emitter: emitter,
		logger:  logger,
	}
	if cfg.ActionsPerMinute > 0 {
		perSecond := rate.Limit(float64(cfg.ActionsPerMinute) / 60.0)
		c.limiter = rate.NewLimiter(perSecond, cfg.ActionsPerMinute)
	}
	return c
}

// NoteAction records one performed action and, when a rate ceiling is
// configured, blocks until the limiter admits it.
func (c *Controller) NoteAction(ctx context.Context) {
	c.actions++
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.logger.Debug("rate limiter wait aborted", zap.Error(err))
		}
	}
}

// Actions returns the count of actions since the last pause.
func (c *Controller) Actions() int { return c.actions }

// MaybePause sleeps for uniform(min,max) once the action counter reaches
// the configured threshold, then resets the counter. Called once per
// target-processing iteration; returns whether a pause happened.
func (c *Controller) MaybePause() bool {
	if c.cfg.PauseAfterActions <= 0 || c.actions < c.cfg.PauseAfterActions {
		return false
	}

	duration := c.rng.Duration(c.cfg.PauseMin, c.cfg.PauseMax)
	seconds := int(duration.Round(time.Second) / time.Second)
	c.logger.Info("taking a break", zap.Int("seconds", seconds))
	c.emitter.Pause(seconds)

	c.clock.Sleep(duration)
	c.actions = 0
	return true
}

// HumanDelay sleeps a uniform inter-action delay.
func (c *Controller) HumanDelay(min, max time.Duration) {
	c.clock.Sleep(c.rng.Duration(min, max))
}
