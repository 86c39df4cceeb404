// Package screenjson implements the Screen interface over a JSON script
// of captured UI frames. It backs dry runs and replay: the same workflow
// code drives a recorded device session instead of a live one.
//
// A script is a JSON document:
//
//	{
//	  "size": [1080, 2400],
//	  "start": "feed",
//	  "frames": [
//	    {
//	      "name": "feed",
//	      "elements": [
//	        {"locator": "video_author", "text": "alice", "bounds": [0, 100, 400, 160]}
//	      ],
//	      "click": {"search_entry": "search"},
//	      "back": "feed",
//	      "swipe": "feed_next"
//	    }
//	  ]
//	}
//
// Elements are keyed by locator set name, not by raw query, so scripts
// stay readable and survive selector updates.
package screenjson

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
)

// Screen replays a frame script. It satisfies core.Screen.
type Screen struct {
	mu      sync.Mutex
	doc     string
	current string
	start   string

	gestures []string
	typed    map[string]string
}

// Load reads a script from disk.
func Load(path string) (*Screen, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading screen script: %w", err)
	}
	return New(string(data))
}

// New builds a Screen from a script document.
func New(doc string) (*Screen, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("screen script is not valid JSON")
	}
	start := gjson.Get(doc, "start").String()
	if start == "" {
		return nil, fmt.Errorf("screen script has no start frame")
	}
	if !gjson.Get(doc, `frames.#(name=="`+start+`")`).Exists() {
		return nil, fmt.Errorf("start frame %q not defined", start)
	}
	return &Screen{doc: doc, current: start, start: start, typed: make(map[string]string)}, nil
}

// Frame returns the name of the frame currently showing.
func (s *Screen) Frame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Gestures returns the recorded gesture log, for replay inspection.
func (s *Screen) Gestures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.gestures))
	copy(out, s.gestures)
	return out
}

// Typed returns the text entered into a locator, if any.
func (s *Screen) Typed(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typed[name]
}

func (s *Screen) frame() gjson.Result {
	return gjson.Get(s.doc, `frames.#(name=="`+s.current+`")`)
}

func (s *Screen) elements(name string) []gjson.Result {
	return s.frame().Get(`elements.#(locator=="` + name + `")#`).Array()
}

func (s *Screen) transition(kind, key string) bool {
	var next string
	switch kind {
	case "click":
		next = s.frame().Get("click." + key).String()
	case "back":
		next = s.frame().Get("back").String()
	case "swipe":
		next = s.frame().Get("swipe").String()
	}
	if next == "" {
		return false
	}
	if !gjson.Get(s.doc, `frames.#(name=="`+next+`")`).Exists() {
		return false
	}
	s.current = next
	return true
}

func (s *Screen) bounds(el gjson.Result) core.Rect {
	r, ok := explicitBounds(el)
	if !ok {
		w, h := s.size()
		return core.Rect{Right: w, Bottom: h}
	}
	return r
}

func explicitBounds(el gjson.Result) (core.Rect, bool) {
	b := el.Get("bounds").Array()
	if len(b) != 4 {
		return core.Rect{}, false
	}
	return core.Rect{
		Left:   int(b[0].Int()),
		Top:    int(b[1].Int()),
		Right:  int(b[2].Int()),
		Bottom: int(b[3].Int()),
	}, true
}

func (s *Screen) size() (int, int) {
	dims := gjson.Get(s.doc, "size").Array()
	if len(dims) != 2 {
		return 1080, 2400
	}
	return int(dims[0].Int()), int(dims[1].Int())
}

func (s *Screen) Exists(ls core.LocatorSet, _ time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.elements(ls.Name)) > 0
}

func (s *Screen) Click(ls core.LocatorSet, _ time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.elements(ls.Name)) == 0 {
		return false
	}
	s.gestures = append(s.gestures, "click:"+ls.Name)
	s.transition("click", ls.Name)
	return true
}

func (s *Screen) ClickAt(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestures = append(s.gestures, fmt.Sprintf("click_at:%d,%d", x, y))
	// Only placed elements receive coordinate taps. Elements without a
	// bounds entry default to full screen and would swallow every tap.
	for _, el := range s.frame().Get("elements").Array() {
		b, ok := explicitBounds(el)
		if !ok {
			continue
		}
		if x >= b.Left && x < b.Right && y >= b.Top && y < b.Bottom {
			s.transition("click", el.Get("locator").String())
			return true
		}
	}
	return false
}

func (s *Screen) GetText(ls core.LocatorSet, _ time.Duration) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	els := s.elements(ls.Name)
	if len(els) == 0 {
		return "", false
	}
	return els[0].Get("text").String(), true
}

func (s *Screen) SetText(ls core.LocatorSet, text string, _ time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.elements(ls.Name)) == 0 {
		return false
	}
	s.typed[ls.Name] = text
	s.gestures = append(s.gestures, "type:"+ls.Name)
	return true
}

func (s *Screen) All(ls core.LocatorSet) []core.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	els := s.elements(ls.Name)
	out := make([]core.Element, 0, len(els))
	for _, el := range els {
		out = append(out, core.Element{
			Text:   el.Get("text").String(),
			Bounds: s.bounds(el),
		})
	}
	return out
}

func (s *Screen) Swipe(x1, y1, x2, y2 int, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestures = append(s.gestures, fmt.Sprintf("swipe:%d,%d->%d,%d", x1, y1, x2, y2))
	s.transition("swipe", "")
}

func (s *Screen) PressBack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestures = append(s.gestures, "back")
	s.transition("back", "")
}

func (s *Screen) RestartApp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestures = append(s.gestures, "restart")
	s.current = s.start
	return nil
}

func (s *Screen) ScreenSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size()
}
