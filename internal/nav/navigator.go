// Package nav drives multi-step screen transitions with verification,
// retries and fallback, plus the atomic UI actions the engine performs on
// targets.
package nav

import (
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
)

const (
	clickTimeout = 5 * time.Second
	pollInterval = 500 * time.Millisecond
)

// Step is a single navigation action plus the screen state that confirms it
// landed. Alt, when set, performs the same action through an alternate
// locator set and is used on retries.
type Step struct {
	Name       string
	Do         func() bool
	Alt        func() bool
	Expect     detect.PageState
	Timeout    time.Duration
	MaxRetries int
}

// Navigator executes step sequences against the screen. Navigation
// functions are written to be idempotent where possible: ensure-style flows
// are no-ops when already in place, because callers invoke them
// speculatively before nearly every other operation.
type Navigator struct {
	screen   core.Screen
	detector *detect.Detector
	popups   *Popups
	clock    core.Clock
	logger   *zap.Logger
}

// NewNavigator creates a Navigator.
func NewNavigator(screen core.Screen, detector *detect.Detector, popups *Popups, clock core.Clock, logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{
		screen:   screen,
		detector: detector,
		popups:   popups,
		clock:    clock,
		logger:   logger,
	}
}

// Run executes steps sequentially. Each step is retried up to its
// MaxRetries through the alternate path, then once more after a generic
// dismiss+back; only then does the sequence fail.
func (n *Navigator) Run(steps []Step) bool {
	for _, step := range steps {
		if !n.runStep(step) {
			n.logger.Warn("navigation step failed", zap.String("step", step.Name))
			return false
		}
	}
	return true
}

func (n *Navigator) runStep(step Step) bool {
	timeout := step.Timeout
	if timeout == 0 {
		timeout = clickTimeout
	}

	if step.Do() && n.awaitState(step.Expect, timeout) {
		return true
	}

	for attempt := 0; attempt < step.MaxRetries; attempt++ {
		n.logger.Debug("retrying navigation step",
			zap.String("step", step.Name),
			zap.Int("attempt", attempt+1))
		do := step.Do
		if step.Alt != nil {
			do = step.Alt
		}
		if do() && n.awaitState(step.Expect, timeout) {
			return true
		}
	}

	// Generic fallback: something may be covering the screen.
	n.popups.CloseAll()
	n.screen.PressBack()
	n.clock.Sleep(500 * time.Millisecond)
	return step.Do() && n.awaitState(step.Expect, timeout)
}

// awaitState blocks until the detector confirms want or timeout elapses.
// StateUnknown means the step carries no expectation.
func (n *Navigator) awaitState(want detect.PageState, timeout time.Duration) bool {
	if want == detect.StateUnknown {
		return true
	}
	deadline := n.clock.Now().Add(timeout)
	for {
		if n.detector.Classify() == want {
			return true
		}
		if !n.clock.Now().Before(deadline) {
			return false
		}
		n.clock.Sleep(pollInterval)
	}
}

// AwaitState is the exported form used by workflows after scroll gestures.
func (n *Navigator) AwaitState(want detect.PageState, timeout time.Duration) bool {
	return n.awaitState(want, timeout)
}
