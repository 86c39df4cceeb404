package ledger

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type failingLedger struct{}

func (failingLedger) HasRecentInteraction(string, string, Kind, time.Duration) (bool, error) {
	return true, errors.New("disk gone")
}
func (failingLedger) RecordInteraction(Record) error { return errors.New("disk gone") }
func (failingLedger) CountForScope(string, string, Kind) (int, error) {
	return 99, errors.New("disk gone")
}
func (failingLedger) Close() error { return nil }

func TestResilientDegradesPermissively(t *testing.T) {
	r := NewResilient(failingLedger{}, zap.NewNop())

	// A failed lookup must not block the target.
	ok, err := r.HasRecentInteraction("me", "alice", KindLike, 0)
	if err != nil || ok {
		t.Errorf("got ok=%v err=%v, want false nil", ok, err)
	}

	if err := r.RecordInteraction(Record{Target: "alice", Kind: KindLike}); err != nil {
		t.Errorf("write error surfaced: %v", err)
	}

	n, err := r.CountForScope("me", "feed", KindLike)
	if err != nil || n != 0 {
		t.Errorf("got n=%d err=%v, want 0 nil", n, err)
	}
}

func TestResilientReportsFailures(t *testing.T) {
	r := NewResilient(failingLedger{}, zap.NewNop())
	failures := 0
	r.OnError(func() { failures++ })

	r.HasRecentInteraction("me", "alice", KindLike, 0)
	r.RecordInteraction(Record{Target: "alice", Kind: KindLike})
	r.CountForScope("me", "feed", KindLike)

	// Every swallowed failure reaches the hook exactly once.
	if failures != 3 {
		t.Errorf("failures reported = %d, want 3", failures)
	}

	// A healthy call reports nothing.
	healthy := NewResilient(&stubLedger{}, zap.NewNop())
	healthy.OnError(func() { t.Error("hook fired on success") })
	healthy.RecordInteraction(Record{Target: "alice", Kind: KindLike})
}

// stubLedger succeeds at everything.
type stubLedger struct{}

func (*stubLedger) HasRecentInteraction(string, string, Kind, time.Duration) (bool, error) {
	return false, nil
}
func (*stubLedger) RecordInteraction(Record) error                  { return nil }
func (*stubLedger) CountForScope(string, string, Kind) (int, error) { return 0, nil }
func (*stubLedger) Close() error                                    { return nil }
