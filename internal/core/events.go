package core

import "go.uber.org/zap"

// Emitter fans workflow events out to externally supplied callbacks.
// Callbacks receive plain maps so consumers (the desktop bridge) need no
// knowledge of internal types. A panic inside a callback is logged and
// swallowed; a misbehaving consumer never aborts the session.
type Emitter struct {
	logger *zap.Logger

	onStats   func(map[string]any)
	onAction  func(map[string]any)
	onPause   func(seconds int)
	onVideo   func(map[string]any)
	onProfile func(map[string]any)
}

// NewEmitter creates an Emitter with no callbacks registered.
func NewEmitter(logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{logger: logger}
}

func (e *Emitter) OnStats(fn func(map[string]any))   { e.onStats = fn }
func (e *Emitter) OnAction(fn func(map[string]any))  { e.onAction = fn }
func (e *Emitter) OnPause(fn func(seconds int))      { e.onPause = fn }
func (e *Emitter) OnVideo(fn func(map[string]any))   { e.onVideo = fn }
func (e *Emitter) OnProfile(fn func(map[string]any)) { e.onProfile = fn }

// Stats emits a stats snapshot.
func (e *Emitter) Stats(m map[string]any) {
	if e.onStats == nil {
		return
	}
	e.safely("stats", func() { e.onStats(m) })
}

// Action emits a single action event {action, target}.
func (e *Emitter) Action(action, target string) {
	if e.onAction == nil {
		return
	}
	e.safely("action", func() {
		e.onAction(map[string]any{"action": action, "target": target})
	})
}

// Pause emits the integer-rounded duration of a pacing pause, in seconds.
func (e *Emitter) Pause(seconds int) {
	if e.onPause == nil {
		return
	}
	e.safely("pause", func() { e.onPause(seconds) })
}

// Video emits info about the video currently on screen.
func (e *Emitter) Video(m map[string]any) {
	if e.onVideo == nil {
		return
	}
	e.safely("video", func() { e.onVideo(m) })
}

// Profile emits a scraped profile.
func (e *Emitter) Profile(m map[string]any) {
	if e.onProfile == nil {
		return
	}
	e.safely("profile", func() { e.onProfile(m) })
}

func (e *Emitter) safely(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("event callback panicked",
				zap.String("callback", name),
				zap.Any("panic", r))
		}
	}()
	fn()
}
