// Package core defines the fundamental interfaces and types shared by the
// session engine: the screen provider boundary, clock, randomness source,
// error kinds, and event emission.
package core

import "time"

// LocatorSet is an ordered list of alternative queries for one UI element.
// Queries are tried in order; Alt holds a second set used when a navigation
// step is retried after a timeout.
type LocatorSet struct {
	Name    string
	Queries []string
	Alt     []string
}

// HasAlt reports whether an alternate query set exists for retries.
func (ls LocatorSet) HasAlt() bool {
	return len(ls.Alt) > 0
}

// Alternate returns a LocatorSet that resolves through the alternate queries.
// If no alternates exist, the receiver is returned unchanged.
func (ls LocatorSet) Alternate() LocatorSet {
	if !ls.HasAlt() {
		return ls
	}
	return LocatorSet{Name: ls.Name, Queries: ls.Alt}
}

// Rect is an element's bounding box in screen coordinates.
type Rect struct {
	Left, Top, Right, Bottom int
}

// CenterX returns the horizontal center of the rect.
func (r Rect) CenterX() int { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center of the rect.
func (r Rect) CenterY() int { return (r.Top + r.Bottom) / 2 }

// Overlaps reports whether two rects overlap vertically. Used to match a
// username text to the follow button in the same list row.
func (r Rect) OverlapsVertically(other Rect) bool {
	return r.Top < other.Bottom && r.Bottom > other.Top
}

// Element is one resolved UI element.
type Element struct {
	Text   string
	Bounds Rect
}

// Screen is the device-automation boundary. Implementations resolve locator
// sets against the live UI hierarchy; every call is synchronous and may retry
// internally across the set's alternative queries.
//
// The production implementation lives outside this module (it is owned by the
// desktop bridge); tests and dry runs use the screenjson package.
type Screen interface {
	// Exists reports whether any query in the set resolves within timeout.
	Exists(ls LocatorSet, timeout time.Duration) bool
	// Click resolves the set and taps the first match.
	Click(ls LocatorSet, timeout time.Duration) bool
	// ClickAt taps an absolute coordinate.
	ClickAt(x, y int) bool
	// GetText returns the text of the first match, if any.
	GetText(ls LocatorSet, timeout time.Duration) (string, bool)
	// SetText focuses the first match and replaces its text.
	SetText(ls LocatorSet, text string, timeout time.Duration) bool
	// All returns every element matching the set, in layout order.
	All(ls LocatorSet) []Element
	// Swipe performs a gesture between two points.
	Swipe(x1, y1, x2, y2 int, duration time.Duration)
	// PressBack presses the system back affordance.
	PressBack()
	// RestartApp force-stops and relaunches the target application.
	RestartApp() error
	// ScreenSize returns the device resolution.
	ScreenSize() (w, h int)
}
