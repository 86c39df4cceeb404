// Package workflow contains the session orchestrators. Each workflow
// drives one engagement strategy end to end and owns its completion
// reason.
package workflow

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/config"
	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
	"github.com/masterFuf/taktik-bot-sub000/internal/nav"
	"github.com/masterFuf/taktik-bot-sub000/internal/recovery"
	"github.com/masterFuf/taktik-bot-sub000/internal/stats"
)

// Completion reasons, written once per session.
const (
	ReasonMaxVideos       = "max_videos_reached"
	ReasonMaxLikes        = "max_likes_reached"
	ReasonMaxFollows      = "max_follows_reached"
	ReasonMaxProfiles     = "max_profiles_reached"
	ReasonMaxUnfollows    = "max_unfollows_reached"
	ReasonNoMoreFollowers = "no_more_followers"
	ReasonStopped         = "stopped_by_user"
	ReasonRecoveryFailed  = "recovery_failed"
	ReasonError           = "error"
	ReasonCompleted       = "completed"
)

// Context bundles the capabilities every workflow composes over. Each
// field is independently replaceable in tests.
type Context struct {
	Cfg        *config.Config
	Screen     core.Screen
	Detector   *detect.Detector
	Navigator  *nav.Navigator
	Actions    *nav.Actions
	Popups     *nav.Popups
	Supervisor *recovery.Supervisor
	Ledger     ledger.Ledger
	Stats      *stats.Session
	Emitter    *core.Emitter
	Clock      core.Clock
	Rand       core.Rand
	Logger     *zap.Logger
	SessionID  string
}

// NewContext wires the standard capability set over a screen. The
// ledger stays nil-able so dry runs work without storage.
func NewContext(cfg *config.Config, screen core.Screen, store ledger.Ledger, emitter *core.Emitter, clock core.Clock, rng core.Rand, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = core.RealClock{}
	}
	if rng == nil {
		rng = core.NewRand(cfg.Session.Seed)
	}
	if emitter == nil {
		emitter = core.NewEmitter(logger)
	}

	detector := detect.NewDetector(screen, logger)
	popups := nav.NewPopups(screen, detector, clock, logger)
	sess := stats.NewSession(clock)
	// Swallowed storage failures still count against the error threshold.
	if res, ok := store.(*ledger.Resilient); ok {
		res.OnError(sess.Error)
	}
	return &Context{
		Cfg:        cfg,
		Screen:     screen,
		Detector:   detector,
		Navigator:  nav.NewNavigator(screen, detector, popups, clock, logger),
		Actions:    nav.NewActions(screen, clock, logger),
		Popups:     popups,
		Supervisor: recovery.NewSupervisor(recovery.Config{}, screen, popups, clock, logger),
		Ledger:     store,
		Stats:      sess,
		Emitter:    emitter,
		Clock:      clock,
		Rand:       rng,
		Logger:     logger,
	}
}

// tooManyErrors reports whether the session's total error count has
// reached the configured abort threshold. Checked at every loop
// boundary; errors need not be consecutive.
func (c *Context) tooManyErrors() bool {
	max := c.Cfg.Session.MaxErrors
	return max > 0 && c.Stats.Errors() >= max
}

// lifecycle provides the shared Stop/Pause/Resume surface. The flags
// are atomics because Stop arrives from the signal handler goroutine.
type lifecycle struct {
	running atomic.Bool
	paused  atomic.Bool
	halt    atomic.Bool
}

func (l *lifecycle) Running() bool { return l.running.Load() }
func (l *lifecycle) Paused() bool  { return l.paused.Load() }

// Stop requests a graceful end; the loop notices at its next iteration.
func (l *lifecycle) Stop()   { l.halt.Store(true) }
func (l *lifecycle) Pause()  { l.paused.Store(true) }
func (l *lifecycle) Resume() { l.paused.Store(false) }

func (l *lifecycle) stopRequested() bool { return l.halt.Load() }

// holdWhilePaused blocks the loop while paused, polling twice a second.
func (l *lifecycle) holdWhilePaused(clock core.Clock) {
	for l.paused.Load() && !l.halt.Load() {
		clock.Sleep(500 * time.Millisecond)
	}
}
