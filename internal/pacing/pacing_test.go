package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
)

func newController(cfg Config) (*Controller, *core.FakeClock, *[]int) {
	clock := core.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	emitter := core.NewEmitter(nil)
	pauses := &[]int{}
	emitter.OnPause(func(s int) { *pauses = append(*pauses, s) })
	c := NewController(cfg, clock, core.NewRand(1), emitter, nil)
	return c, clock, pauses
}

func TestController_PausesAfterThreshold(t *testing.T) {
	cfg := Config{
		PauseAfterActions: 3,
		PauseMin:          30 * time.Second,
		PauseMax:          60 * time.Second,
	}
	c, clock, pauses := newController(cfg)
	ctx := context.Background()

	// Two actions: below threshold, no pause.
	c.NoteAction(ctx)
	c.NoteAction(ctx)
	if c.MaybePause() {
		t.Fatal("paused below threshold")
	}
	if len(clock.Slept()) != 0 {
		t.Fatal("slept below threshold")
	}

	// Third action triggers exactly one pause.
	c.NoteAction(ctx)
	if !c.MaybePause() {
		t.Fatal("expected pause at threshold")
	}
	if len(*pauses) != 1 {
		t.Fatalf("expected 1 pause event, got %d", len(*pauses))
	}
	if sec := (*pauses)[0]; sec < 30 || sec > 60 {
		t.Errorf("pause duration %ds outside [30,60]", sec)
	}

	// Counter resets to zero immediately after.
	if c.Actions() != 0 {
		t.Errorf("counter not reset: %d", c.Actions())
	}
	if c.MaybePause() {
		t.Error("paused again without new actions")
	}
}

func TestController_SleepCoversFullDuration(t *testing.T) {
	cfg := Config{
		PauseAfterActions: 1,
		PauseMin:          45 * time.Second,
		PauseMax:          45 * time.Second,
	}
	c, clock, _ := newController(cfg)

	c.NoteAction(context.Background())
	c.MaybePause()

	slept := clock.Slept()
	if len(slept) != 1 || slept[0] != 45*time.Second {
		t.Errorf("unexpected sleep record: %v", slept)
	}
}

func TestController_DisabledWhenThresholdZero(t *testing.T) {
	c, _, _ := newController(Config{})
	c.NoteAction(context.Background())
	if c.MaybePause() {
		t.Error("paused with pacing disabled")
	}
}
