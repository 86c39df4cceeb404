package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
account:
  username: tester
session:
  seed: 42
  actions_per_minute: 12
feed:
  like_probability: 0.4
  follow_probability: 0.05
  max_likes: 30
  watch_min: 3s
  watch_max: 9s
  pause:
    after_actions: 10
    min: 30s
    max: 60s
  filters:
    skip_ads: true
    excluded_hashtags: [crypto, forex]
followers:
  targets: [creator_one, creator_two]
  like_probability: 0.6
  max_profiles: 50
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Session.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Session.Seed)
	}
	if cfg.Feed.WatchMin != 3*time.Second || cfg.Feed.WatchMax != 9*time.Second {
		t.Errorf("watch window = %v..%v", cfg.Feed.WatchMin, cfg.Feed.WatchMax)
	}
	if cfg.Feed.Pause.AfterActions != 10 {
		t.Errorf("pause.after_actions = %d, want 10", cfg.Feed.Pause.AfterActions)
	}
	if len(cfg.Followers.Targets) != 2 || cfg.Followers.Targets[0] != "creator_one" {
		t.Errorf("followers targets = %v", cfg.Followers.Targets)
	}
	if !cfg.Feed.Filters.SkipAds {
		t.Error("skip_ads not parsed")
	}

	// Defaults applied for omitted fields.
	if cfg.Device.AppID == "" {
		t.Error("app id default missing")
	}
	if cfg.Ledger.Window != 168*time.Hour {
		t.Errorf("ledger window = %v, want 168h", cfg.Ledger.Window)
	}
	if cfg.Followers.VideosPerProfile != 2 {
		t.Errorf("videos_per_profile default = %d, want 2", cfg.Followers.VideosPerProfile)
	}
}

func TestLoadConfigRejectsBadProbability(t *testing.T) {
	path := writeConfig(t, `
account:
  username: tester
feed:
  like_probability: 1.5
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for probability > 1")
	}
}

func TestLoadConfigRequiresUsername(t *testing.T) {
	path := writeConfig(t, `
feed:
  like_probability: 0.5
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for missing username")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateWatchWindow(t *testing.T) {
	cfg := &Config{Account: AccountConfig{Username: "x"}}
	cfg.ApplyDefaults()
	cfg.Feed.WatchMin = 10 * time.Second
	cfg.Feed.WatchMax = 5 * time.Second

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted watch window")
	}
}
