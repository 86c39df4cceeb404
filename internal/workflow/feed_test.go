package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
)

func feedScript(videos int) string {
	frames := ""
	for i := 1; i <= videos; i++ {
		next := fmt.Sprintf("feed_%d", i+1)
		if i == videos {
			next = fmt.Sprintf("feed_%d", i)
		}
		if frames != "" {
			frames += ","
		}
		frames += feedFrame(fmt.Sprintf("feed_%d", i), fmt.Sprintf("creator%d", i), next)
	}
	return fmt.Sprintf(`{"size": [1080, 2400], "start": "feed_1", "frames": [%s]}`, frames)
}

func TestFeedStopsAtLikeCap(t *testing.T) {
	cfg := baseConfig()
	cfg.Feed.LikeProbability = 1.0
	cfg.Feed.MaxLikes = 2
	cfg.Feed.MaxVideos = 10

	c, _, _ := newTestContext(t, cfg, feedScript(6), newMemLedger())
	feed := NewFeed(c)

	if err := feed.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := c.Stats.Likes(); got != 2 {
		t.Errorf("likes = %d, want exactly the cap", got)
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonMaxLikes {
		t.Errorf("completion reason = %q, want %q", reason, ReasonMaxLikes)
	}
}

func TestFeedFinishesAtMaxVideos(t *testing.T) {
	cfg := baseConfig()
	cfg.Feed.MaxVideos = 3

	c, _, _ := newTestContext(t, cfg, feedScript(5), nil)
	feed := NewFeed(c)

	if err := feed.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	m := c.Stats.ToMap()
	if m["videos_watched"] != 3 {
		t.Errorf("videos_watched = %v, want 3", m["videos_watched"])
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonMaxVideos {
		t.Errorf("completion reason = %q, want %q", reason, ReasonMaxVideos)
	}
}

func TestFeedStopRequest(t *testing.T) {
	cfg := baseConfig()
	cfg.Feed.MaxVideos = 100

	c, _, _ := newTestContext(t, cfg, feedScript(3), nil)
	feed := NewFeed(c)
	feed.Stop()

	if err := feed.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonStopped {
		t.Errorf("completion reason = %q, want %q", reason, ReasonStopped)
	}
	if feed.Running() {
		t.Error("still marked running after Run returned")
	}
}

func TestFeedRecoversFromRepeatedVideo(t *testing.T) {
	cfg := baseConfig()
	cfg.Feed.MaxVideos = 12

	// A script whose swipe never advances: the same video signature
	// repeats until the supervisor steps in.
	c, _, _ := newTestContext(t, cfg, feedScript(1), nil)
	feed := NewFeed(c)

	if err := feed.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if m := c.Stats.ToMap(); m["recoveries"].(int) < 1 {
		t.Error("no recovery recorded for a stuck feed")
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonMaxVideos {
		t.Errorf("completion reason = %q, want %q", reason, ReasonMaxVideos)
	}
}

func TestFeedCountsLedgerFailures(t *testing.T) {
	cfg := baseConfig()
	cfg.Feed.LikeProbability = 1.0
	cfg.Feed.MaxVideos = 3

	// Every write fails; the wrapper swallows the errors but the session
	// must still count them.
	store := ledger.NewResilient(errLedger{}, nil)
	c, _, _ := newTestContext(t, cfg, feedScript(4), store)
	feed := NewFeed(c)

	if err := feed.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The broken store never blocks the likes themselves.
	if got := c.Stats.Likes(); got != 3 {
		t.Errorf("likes = %d, want 3", got)
	}
	if got := c.Stats.Errors(); got != 3 {
		t.Errorf("errors = %d, want one per failed write", got)
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonMaxVideos {
		t.Errorf("completion reason = %q, want %q", reason, ReasonMaxVideos)
	}
}

func TestFeedAbortsAtErrorThreshold(t *testing.T) {
	cfg := baseConfig()
	cfg.Feed.LikeProbability = 1.0
	cfg.Feed.MaxVideos = 10
	cfg.Session.MaxErrors = 2

	c, _, _ := newTestContext(t, cfg, feedScript(6), errLedger{})
	feed := NewFeed(c)

	err := feed.Run(context.Background())
	if err == nil {
		t.Fatal("Run returned nil past the error threshold")
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonError {
		t.Errorf("completion reason = %q, want %q", reason, ReasonError)
	}
	// Two ledger failures accumulated, the next boundary aborted.
	if got := c.Stats.Errors(); got != 2 {
		t.Errorf("errors = %d, want 2", got)
	}
}

func TestFeedSessionIdempotentReason(t *testing.T) {
	cfg := baseConfig()
	cfg.Feed.MaxVideos = 2

	c, _, _ := newTestContext(t, cfg, feedScript(3), nil)
	feed := NewFeed(c)

	if err := feed.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The teardown path writes ReasonCompleted, which must not clobber
	// the loop's reason.
	if reason := c.Stats.CompletionReason(); reason != ReasonMaxVideos {
		t.Errorf("completion reason = %q, want %q", reason, ReasonMaxVideos)
	}
}
