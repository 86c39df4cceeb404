package core

import "time"

// Clock provides time operations that can be mocked for testing.
// Sleep is the engine's only suspension point; the fake clock makes
// watch times and pacing pauses instantaneous under test.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Sleep(d time.Duration)
}

// RealClock uses the standard time package.
type RealClock struct{}

func (RealClock) Now() time.Time                  { return time.Now() }
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }
func (RealClock) Sleep(d time.Duration)           { time.Sleep(d) }

// FakeClock is a test clock that can be manually advanced. Sleep advances
// the clock immediately and records the requested duration.
type FakeClock struct {
	current time.Time
	slept   []time.Duration
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{current: start}
}

func (f *FakeClock) Now() time.Time                  { return f.current }
func (f *FakeClock) Since(t time.Time) time.Duration { return f.current.Sub(t) }
func (f *FakeClock) Advance(d time.Duration)         { f.current = f.current.Add(d) }
func (f *FakeClock) Set(t time.Time)                 { f.current = t }

func (f *FakeClock) Sleep(d time.Duration) {
	f.current = f.current.Add(d)
	f.slept = append(f.slept, d)
}

// Slept returns every duration passed to Sleep, in order.
func (f *FakeClock) Slept() []time.Duration {
	out := make([]time.Duration, len(f.slept))
	copy(out, f.slept)
	return out
}
