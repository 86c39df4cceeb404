package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
)

// followersScript models the full journey: search for the target, open
// the profile, open the followers list, visit one follower, watch their
// video, and come back.
const followersScript = `{
	"size": [1080, 2400],
	"start": "home",
	"frames": [
		{
			"name": "home",
			"elements": [
				{"locator": "home_tab_selected"},
				{"locator": "for_you_tab"},
				{"locator": "search_entry", "bounds": [900, 0, 1080, 100]}
			],
			"click": {"search_entry": "search"}
		},
		{
			"name": "search",
			"elements": [
				{"locator": "search_input"},
				{"locator": "search_submit"}
			],
			"click": {"search_submit": "results"},
			"back": "home"
		},
		{
			"name": "results",
			"elements": [
				{"locator": "search_results_panel"},
				{"locator": "users_tab"},
				{"locator": "first_user_result", "text": "big_creator"}
			],
			"click": {"first_user_result": "creator_profile"}
		},
		{
			"name": "creator_profile",
			"elements": [
				{"locator": "profile_username", "text": "@big_creator"},
				{"locator": "profile_stat_value", "text": "1,204"},
				{"locator": "profile_stat_value", "text": "250"},
				{"locator": "profile_stat_value", "text": "88.2K"},
				{"locator": "followers_counter", "text": "250 Followers", "bounds": [400, 300, 700, 360]}
			],
			"click": {"followers_counter": "followers_list"},
			"back": "results"
		},
		{
			"name": "followers_list",
			"elements": [
				{"locator": "followers_list", "bounds": [0, 0, 1080, 120]},
				{"locator": "follower_username", "text": "old.friend", "bounds": [120, 200, 600, 280]},
				{"locator": "follower_any_button", "text": "Friends", "bounds": [700, 200, 1000, 280]},
				{"locator": "follower_username", "text": "fresh_face", "bounds": [120, 300, 600, 380]},
				{"locator": "follower_any_button", "text": "Follow", "bounds": [700, 300, 1000, 380]}
			],
			"click": {"follower_username": "follower_profile"}
		},
		{
			"name": "follower_profile",
			"elements": [
				{"locator": "profile_username", "text": "@fresh_face"},
				{"locator": "profile_stat_value", "text": "12"},
				{"locator": "profile_stat_value", "text": "340"},
				{"locator": "profile_stat_value", "text": "1.1K"},
				{"locator": "profile_grid_item", "bounds": [0, 800, 360, 1200]}
			],
			"click": {"profile_grid_item": "follower_player"},
			"back": "followers_list"
		},
		{
			"name": "follower_player",
			"elements": [
				{"locator": "video_press_layer"},
				{"locator": "like_button"},
				{"locator": "share_button"},
				{"locator": "video_author", "text": "fresh_face"},
				{"locator": "video_like_count", "text": "420"}
			],
			"back": "follower_profile"
		}
	]
}`

func TestFollowersVisitsAndEngages(t *testing.T) {
	cfg := baseConfig()
	cfg.Followers.Targets = []string{"big_creator"}
	cfg.Followers.LikeProbability = 1.0
	cfg.Followers.MaxProfiles = 1
	cfg.Followers.VideosPerProfile = 1

	store := newMemLedger()
	c, screen, _ := newTestContext(t, cfg, followersScript, store)
	w := NewFollowers(c)

	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	m := c.Stats.ToMap()
	// The "Friends" row is skipped, the fresh follower is visited.
	if m["already_friends"] != 1 {
		t.Errorf("already_friends = %v, want 1", m["already_friends"])
	}
	if c.Stats.ProfilesVisited() != 1 {
		t.Errorf("profiles_visited = %d, want 1", c.Stats.ProfilesVisited())
	}
	if c.Stats.Likes() != 1 {
		t.Errorf("likes = %d, want 1", c.Stats.Likes())
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonMaxProfiles {
		t.Errorf("completion reason = %q, want %q", reason, ReasonMaxProfiles)
	}

	// The like must be in the ledger, attributed to the video author.
	found := false
	for _, rec := range store.records {
		if rec.Kind == ledger.KindLike && rec.Target == "fresh_face" {
			found = true
		}
	}
	if !found {
		t.Errorf("no like record for fresh_face, records: %+v", store.records)
	}

	// Session ends back on the followers list.
	if screen.Frame() != "followers_list" {
		t.Errorf("final frame = %q, want followers_list", screen.Frame())
	}
}

func TestFollowersSkipsRecentlyEngaged(t *testing.T) {
	cfg := baseConfig()
	cfg.Followers.Targets = []string{"big_creator"}
	cfg.Followers.LikeProbability = 1.0
	cfg.Followers.MaxProfiles = 5

	store := newMemLedger()
	store.recent["fresh_face"] = true
	c, _, _ := newTestContext(t, cfg, followersScript, store)
	w := NewFollowers(c)

	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if c.Stats.ProfilesVisited() != 0 {
		t.Errorf("profiles_visited = %d, want 0 when everyone is deduped", c.Stats.ProfilesVisited())
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonCompleted {
		t.Errorf("completion reason = %q, want %q", reason, ReasonCompleted)
	}
}

func TestFollowersBudgetSeedsFromLedger(t *testing.T) {
	cfg := baseConfig()
	cfg.Followers.Targets = []string{"big_creator"}

	// The persisted scope count outlives the process; the in-memory map
	// only covers the current run.
	store := newMemLedger()
	store.scopeCount = 240
	c, _, _ := newTestContext(t, cfg, followersScript, store)
	w := NewFollowers(c)

	if got := w.alreadyVisited(); got != 240 {
		t.Errorf("alreadyVisited = %d, want the ledger count", got)
	}

	// Once the run has seen more than the store recorded, the local map
	// wins.
	for i := 0; i < 241; i++ {
		w.visited[fmt.Sprintf("user%d", i)] = true
	}
	if got := w.alreadyVisited(); got != 241 {
		t.Errorf("alreadyVisited = %d, want 241", got)
	}

	// A failing store falls back to the local count and is counted as an
	// error.
	c2, _, _ := newTestContext(t, cfg, followersScript, errLedger{})
	w2 := NewFollowers(c2)
	if got := w2.alreadyVisited(); got != 0 {
		t.Errorf("alreadyVisited = %d, want 0 on storage failure", got)
	}
	if c2.Stats.Errors() != 1 {
		t.Errorf("errors = %d, want 1", c2.Stats.Errors())
	}
}

func TestFollowersRequiresTargets(t *testing.T) {
	cfg := baseConfig()
	c, _, _ := newTestContext(t, cfg, followersScript, nil)
	w := NewFollowers(c)

	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error without targets")
	}
	if reason := c.Stats.CompletionReason(); reason != ReasonError {
		t.Errorf("completion reason = %q, want %q", reason, ReasonError)
	}
}
