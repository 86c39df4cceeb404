// Package config handles YAML configuration parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Account AccountConfig `yaml:"account"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Session SessionConfig `yaml:"session"`

	Feed      FeedConfig      `yaml:"feed"`
	Followers FollowersConfig `yaml:"followers"`
	Unfollow  UnfollowConfig  `yaml:"unfollow"`
	Scrape    ScrapeConfig    `yaml:"scrape"`
}

// DeviceConfig identifies the device the session drives.
type DeviceConfig struct {
	Serial string `yaml:"serial"`
	AppID  string `yaml:"app_id"`
}

// AccountConfig identifies the account acting in the session.
type AccountConfig struct {
	Username string `yaml:"username"`
}

// LedgerConfig controls the dedup store.
type LedgerConfig struct {
	DataDir string        `yaml:"data_dir"`
	Window  time.Duration `yaml:"window"`
}

// SessionConfig holds cross-workflow session behavior.
type SessionConfig struct {
	// Seed makes a run reproducible; zero seeds from the clock.
	Seed             int64 `yaml:"seed"`
	MaxErrors        int   `yaml:"max_errors"`
	ActionsPerMinute int   `yaml:"actions_per_minute"`
}

// PauseConfig inserts a long rest after a burst of actions.
type PauseConfig struct {
	AfterActions int           `yaml:"after_actions"`
	Min          time.Duration `yaml:"min"`
	Max          time.Duration `yaml:"max"`
}

// FiltersConfig decides which videos qualify for engagement.
type FiltersConfig struct {
	SkipAds          bool     `yaml:"skip_ads"`
	SkipAlreadyLiked bool     `yaml:"skip_already_liked"`
	MinLikeCount     int      `yaml:"min_like_count"`
	MaxLikeCount     int      `yaml:"max_like_count"`
	RequiredHashtags []string `yaml:"required_hashtags"`
	ExcludedHashtags []string `yaml:"excluded_hashtags"`
}

// FeedConfig drives the For You feed workflow.
type FeedConfig struct {
	LikeProbability     float64       `yaml:"like_probability"`
	FollowProbability   float64       `yaml:"follow_probability"`
	FavoriteProbability float64       `yaml:"favorite_probability"`
	MaxLikes            int           `yaml:"max_likes"`
	MaxFollows          int           `yaml:"max_follows"`
	MaxFavorites        int           `yaml:"max_favorites"`
	MaxVideos           int           `yaml:"max_videos"`
	WatchMin            time.Duration `yaml:"watch_min"`
	WatchMax            time.Duration `yaml:"watch_max"`
	Pause               PauseConfig   `yaml:"pause"`
	Filters             FiltersConfig `yaml:"filters"`
}

// FollowersConfig drives the followers-list workflow.
type FollowersConfig struct {
	Targets           []string      `yaml:"targets"`
	LikeProbability   float64       `yaml:"like_probability"`
	FollowProbability float64       `yaml:"follow_probability"`
	MaxProfiles       int           `yaml:"max_profiles"`
	MaxLikes          int           `yaml:"max_likes"`
	MaxFollows        int           `yaml:"max_follows"`
	VideosPerProfile  int           `yaml:"videos_per_profile"`
	IncludeFriends    bool          `yaml:"include_friends"`
	WatchMin          time.Duration `yaml:"watch_min"`
	WatchMax          time.Duration `yaml:"watch_max"`
	Pause             PauseConfig   `yaml:"pause"`
	Filters           FiltersConfig `yaml:"filters"`
}

// UnfollowConfig drives the following-cleanup workflow.
type UnfollowConfig struct {
	MaxUnfollows   int           `yaml:"max_unfollows"`
	Whitelist      []string      `yaml:"whitelist"`
	IncludeFriends bool          `yaml:"include_friends"`
	DelayMin       time.Duration `yaml:"delay_min"`
	DelayMax       time.Duration `yaml:"delay_max"`
}

// ScrapeConfig drives the profile-scraping workflow.
type ScrapeConfig struct {
	Targets     []string `yaml:"targets"`
	MaxProfiles int      `yaml:"max_profiles"`
	OutputPath  string   `yaml:"output_path"`
}

// LoadConfig reads and parses a YAML configuration file, applies
// defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero values that have sensible fallbacks.
func (c *Config) ApplyDefaults() {
	if c.Device.AppID == "" {
		c.Device.AppID = "com.zhiliaoapp.musically"
	}
	if c.Ledger.DataDir == "" {
		c.Ledger.DataDir = "data"
	}
	if c.Ledger.Window == 0 {
		c.Ledger.Window = 168 * time.Hour
	}
	if c.Session.MaxErrors == 0 {
		c.Session.MaxErrors = 5
	}
	if c.Feed.WatchMin == 0 {
		c.Feed.WatchMin = 2 * time.Second
	}
	if c.Feed.WatchMax == 0 {
		c.Feed.WatchMax = 8 * time.Second
	}
	if c.Followers.VideosPerProfile == 0 {
		c.Followers.VideosPerProfile = 2
	}
	if c.Followers.WatchMin == 0 {
		c.Followers.WatchMin = 2 * time.Second
	}
	if c.Followers.WatchMax == 0 {
		c.Followers.WatchMax = 6 * time.Second
	}
	if c.Unfollow.DelayMin == 0 {
		c.Unfollow.DelayMin = 2 * time.Second
	}
	if c.Unfollow.DelayMax == 0 {
		c.Unfollow.DelayMax = 5 * time.Second
	}
	if c.Scrape.OutputPath == "" {
		c.Scrape.OutputPath = "scraped.json"
	}
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.Account.Username == "" {
		return fmt.Errorf("account.username is required")
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"feed.like_probability", c.Feed.LikeProbability},
		{"feed.follow_probability", c.Feed.FollowProbability},
		{"feed.favorite_probability", c.Feed.FavoriteProbability},
		{"followers.like_probability", c.Followers.LikeProbability},
		{"followers.follow_probability", c.Followers.FollowProbability},
	} {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", p.name, p.value)
		}
	}
	if c.Feed.WatchMin > c.Feed.WatchMax {
		return fmt.Errorf("feed.watch_min exceeds feed.watch_max")
	}
	if c.Followers.WatchMin > c.Followers.WatchMax {
		return fmt.Errorf("followers.watch_min exceeds followers.watch_max")
	}
	if p := c.Feed.Pause; p.AfterActions > 0 && p.Min > p.Max {
		return fmt.Errorf("feed.pause.min exceeds feed.pause.max")
	}
	if p := c.Followers.Pause; p.AfterActions > 0 && p.Min > p.Max {
		return fmt.Errorf("followers.pause.min exceeds followers.pause.max")
	}
	if c.Session.ActionsPerMinute < 0 {
		return fmt.Errorf("session.actions_per_minute must not be negative")
	}
	return nil
}
