package workflow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/config"
	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
	"github.com/masterFuf/taktik-bot-sub000/internal/screenjson"
)

// feedFrame renders one For You video screen. The selected home tab is
// what distinguishes it from a standalone player.
func feedFrame(name, author, next string) string {
	return fmt.Sprintf(`{
		"name": %q,
		"elements": [
			{"locator": "home_tab_selected"},
			{"locator": "for_you_tab"},
			{"locator": "like_button"},
			{"locator": "share_button"},
			{"locator": "video_author", "text": %q},
			{"locator": "video_like_count", "text": "10K"}
		],
		"swipe": %q
	}`, name, author, next)
}

func newTestContext(t *testing.T, cfg *config.Config, script string, store ledger.Ledger) (*Context, *screenjson.Screen, *core.FakeClock) {
	t.Helper()
	screen, err := screenjson.New(script)
	if err != nil {
		t.Fatalf("parsing screen script: %v", err)
	}
	clock := core.NewFakeClock(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	c := NewContext(cfg, screen, store, nil, clock, core.NewRand(7), zap.NewNop())
	c.SessionID = "test-session"
	return c, screen, clock
}

func baseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Account.Username = "operator"
	cfg.ApplyDefaults()
	return cfg
}

// memLedger is an in-memory Ledger for orchestrator tests.
type memLedger struct {
	recent     map[string]bool
	records    []ledger.Record
	scopeCount int
}

func newMemLedger() *memLedger {
	return &memLedger{recent: make(map[string]bool)}
}

func (m *memLedger) HasRecentInteraction(_, target string, _ ledger.Kind, _ time.Duration) (bool, error) {
	return m.recent[target], nil
}

func (m *memLedger) RecordInteraction(rec ledger.Record) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memLedger) CountForScope(string, string, ledger.Kind) (int, error) {
	return m.scopeCount, nil
}
func (m *memLedger) Close() error { return nil }

// errLedger fails every call.
type errLedger struct{}

func (errLedger) HasRecentInteraction(string, string, ledger.Kind, time.Duration) (bool, error) {
	return false, errors.New("database is locked")
}
func (errLedger) RecordInteraction(ledger.Record) error { return errors.New("database is locked") }
func (errLedger) CountForScope(string, string, ledger.Kind) (int, error) {
	return 0, errors.New("database is locked")
}
func (errLedger) Close() error { return nil }
