package screenjson

import (
	"testing"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
)

const script = `{
	"size": [1080, 2400],
	"start": "feed",
	"frames": [
		{
			"name": "feed",
			"elements": [
				{"locator": "video_author", "text": "alice", "bounds": [0, 100, 400, 160]},
				{"locator": "video_like_count", "text": "1.2K"},
				{"locator": "search_entry", "bounds": [900, 0, 1080, 100]}
			],
			"click": {"search_entry": "search"},
			"swipe": "feed_2"
		},
		{
			"name": "feed_2",
			"elements": [
				{"locator": "video_author", "text": "bob"}
			],
			"back": "feed"
		},
		{
			"name": "search",
			"elements": [
				{"locator": "search_input"}
			],
			"back": "feed"
		}
	]
}`

func locator(name string) core.LocatorSet {
	return core.LocatorSet{Name: name, Queries: []string{"..."}}
}

func TestClickTransitions(t *testing.T) {
	s, err := New(script)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !s.Exists(locator("video_author"), 0) {
		t.Fatal("author missing on start frame")
	}

	if !s.Click(locator("search_entry"), 0) {
		t.Fatal("click failed")
	}
	if s.Frame() != "search" {
		t.Errorf("frame = %q, want search", s.Frame())
	}

	// Element absent from the current frame: click fails, no transition.
	if s.Click(locator("video_author"), 0) {
		t.Error("clicked element not on frame")
	}
	if s.Frame() != "search" {
		t.Errorf("frame moved to %q on failed click", s.Frame())
	}
}

func TestSwipeAndBack(t *testing.T) {
	s, _ := New(script)

	s.Swipe(540, 1800, 540, 600, 0)
	if s.Frame() != "feed_2" {
		t.Fatalf("frame = %q after swipe, want feed_2", s.Frame())
	}
	if text, ok := s.GetText(locator("video_author"), 0); !ok || text != "bob" {
		t.Errorf("author = %q, %v", text, ok)
	}

	s.PressBack()
	if s.Frame() != "feed" {
		t.Errorf("frame = %q after back, want feed", s.Frame())
	}
}

func TestClickAtUsesBounds(t *testing.T) {
	s, _ := New(script)

	// Inside the search entry's box.
	if !s.ClickAt(950, 50) {
		t.Fatal("coordinate click missed element")
	}
	if s.Frame() != "search" {
		t.Errorf("frame = %q, want search", s.Frame())
	}
}

func TestClickAtSkipsUnplacedElements(t *testing.T) {
	s, _ := New(script)

	// video_like_count has no bounds entry; its full-screen default must
	// not intercept taps aimed at placed elements or empty space.
	if s.ClickAt(500, 2000) {
		t.Error("coordinate click landed on an unplaced element")
	}
	if s.Frame() != "feed" {
		t.Errorf("frame = %q after missed click, want feed", s.Frame())
	}

	if !s.ClickAt(950, 50) {
		t.Fatal("coordinate click missed the search entry")
	}
	if s.Frame() != "search" {
		t.Errorf("frame = %q, want search", s.Frame())
	}
}

func TestSetTextRecorded(t *testing.T) {
	s, _ := New(script)
	s.Click(locator("search_entry"), 0)

	if !s.SetText(locator("search_input"), "creator_one", 0) {
		t.Fatal("SetText failed")
	}
	if s.Typed("search_input") != "creator_one" {
		t.Errorf("typed = %q", s.Typed("search_input"))
	}
}

func TestRestartReturnsToStart(t *testing.T) {
	s, _ := New(script)
	s.Swipe(0, 0, 0, 0, 0)

	if err := s.RestartApp(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Frame() != "feed" {
		t.Errorf("frame = %q after restart, want feed", s.Frame())
	}
}

func TestDefaultBoundsCoverScreen(t *testing.T) {
	s, _ := New(script)

	els := s.All(locator("video_like_count"))
	if len(els) != 1 {
		t.Fatalf("got %d elements, want 1", len(els))
	}
	if els[0].Bounds.Right != 1080 || els[0].Bounds.Bottom != 2400 {
		t.Errorf("default bounds = %+v", els[0].Bounds)
	}
}

func TestNewRejectsBadScripts(t *testing.T) {
	if _, err := New("not json"); err == nil {
		t.Error("accepted invalid JSON")
	}
	if _, err := New(`{"frames": []}`); err == nil {
		t.Error("accepted script without start frame")
	}
	if _, err := New(`{"start": "x", "frames": []}`); err == nil {
		t.Error("accepted undefined start frame")
	}
}
