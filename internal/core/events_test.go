package core

import (
	"testing"

	"go.uber.org/zap"
)

func TestEmitter_PanickingCallbackIsIsolated(t *testing.T) {
	e := NewEmitter(zap.NewNop())
	e.OnStats(func(map[string]any) { panic("consumer bug") })

	// Must not propagate
	e.Stats(map[string]any{"likes": 1})
}

func TestEmitter_ActionPayload(t *testing.T) {
	e := NewEmitter(zap.NewNop())

	var got map[string]any
	e.OnAction(func(m map[string]any) { got = m })

	e.Action("like", "alice")

	if got["action"] != "like" || got["target"] != "alice" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestEmitter_NilCallbacksAreNoOps(t *testing.T) {
	e := NewEmitter(nil)
	e.Stats(nil)
	e.Action("follow", "bob")
	e.Pause(30)
	e.Video(nil)
	e.Profile(nil)
}
