// Package detect classifies the current screen into a discrete page state
// and extracts video/profile data from it. Classification is a single pass
// of cheap existence checks; it never clicks.
package detect

import (
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/selectors"
)

// PageState is the discrete classification of the current screen.
type PageState int

const (
	StateUnknown PageState = iota
	StateFeed
	StateProfile
	StateFollowersList
	StateInbox
	StateStory
	StateVideoPlayer
	StateSearchResults
)

func (s PageState) String() string {
	switch s {
	case StateFeed:
		return "feed"
	case StateProfile:
		return "profile"
	case StateFollowersList:
		return "followers_list"
	case StateInbox:
		return "inbox"
	case StateStory:
		return "story"
	case StateVideoPlayer:
		return "video_player"
	case StateSearchResults:
		return "search_results"
	default:
		return "unknown"
	}
}

// conditionGroup accepts a state when at least minMatches of its predicates
// resolve and none of its excludes do.
type conditionGroup struct {
	state      PageState
	predicates []core.LocatorSet
	minMatches int
	excludes   []core.LocatorSet
}

// Detector classifies screens via ordered condition groups.
type Detector struct {
	screen core.Screen
	logger *zap.Logger
	probe  time.Duration
	groups []conditionGroup
}

// probeTimeout bounds each existence check; detection must stay cheap.
const probeTimeout = 500 * time.Millisecond

// NewDetector creates a Detector over the given screen.
func NewDetector(screen core.Screen, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		screen: screen,
		logger: logger,
		probe:  probeTimeout,
		groups: defaultGroups(),
	}
}

// defaultGroups returns the evaluation order. Groups are evaluated top-down
// and the first satisfied group wins, so the more specific screens come
// first. Story and the video player share affordances with Profile/Feed and
// therefore require two independent predicates.
func defaultGroups() []conditionGroup {
	return []conditionGroup{
		{
			state: StateStory,
			predicates: []core.LocatorSet{
				selectors.StoryTimestamp,
				selectors.StoryClose,
				selectors.StoryFollow,
				selectors.StoryMessageInput,
			},
			minMatches: 2,
		},
		{
			state: StateVideoPlayer,
			predicates: []core.LocatorSet{
				selectors.VideoPressLayer,
				selectors.LikeButton,
				selectors.ShareButton,
			},
			minMatches: 2,
			// The feed shows the same player affordances; the selected
			// home tab marks it as the feed rather than a standalone
			// player opened from a profile grid.
			excludes: []core.LocatorSet{selectors.HomeTabSelected},
		},
		{
			state: StateFollowersList,
			predicates: []core.LocatorSet{
				selectors.FollowersTabSelected,
				selectors.FollowersList,
				selectors.FollowerAnyButton,
			},
			minMatches: 1,
			// A profile page also shows follower-ish strings; the @username
			// element only exists on profiles.
			excludes: []core.LocatorSet{selectors.ProfileUsername},
		},
		{
			state: StateProfile,
			predicates: []core.LocatorSet{
				selectors.ProfileUsername,
				selectors.ProfileDisplayName,
				selectors.ProfileStatLabel,
				selectors.ProfileNoVideos,
			},
			minMatches: 1,
			// List screens transiently show profile-like strings.
			excludes: []core.LocatorSet{selectors.FollowersList},
		},
		{
			state: StateSearchResults,
			predicates: []core.LocatorSet{
				selectors.SearchResultsPanel,
				selectors.UsersTab,
			},
			minMatches: 1,
		},
		{
			state: StateInbox,
			predicates: []core.LocatorSet{
				selectors.InboxTitle,
				selectors.InboxTabSelected,
			},
			minMatches: 1,
		},
		{
			state: StateFeed,
			predicates: []core.LocatorSet{
				selectors.HomeTabSelected,
				selectors.ForYouTab,
			},
			minMatches: 1,
		},
	}
}

// Classify returns the current page state. Single-pass and side-effect
// free: the first group whose predicate count meets its threshold wins.
func (d *Detector) Classify() PageState {
	for _, g := range d.groups {
		if d.matches(g) {
			return g.state
		}
	}
	return StateUnknown
}

func (d *Detector) matches(g conditionGroup) bool {
	for _, ex := range g.excludes {
		if d.screen.Exists(ex, d.probe) {
			return false
		}
	}
	matches := 0
	for _, p := range g.predicates {
		if d.screen.Exists(p, d.probe) {
			matches++
			if matches >= g.minMatches {
				return true
			}
		}
	}
	return false
}

// Is reports whether the current screen matches want. Cheaper than a full
// Classify when the caller only cares about one state, but still honors
// group ordering so ambiguous screens resolve the same way.
func (d *Detector) Is(want PageState) bool {
	return d.Classify() == want
}
