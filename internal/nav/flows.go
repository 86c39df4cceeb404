package nav

import (
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/selectors"
)

// EnsureFeed puts the session on the main feed. A no-op when already there.
func (n *Navigator) EnsureFeed() bool {
	n.popups.CloseAll()
	if n.detector.Classify() == detect.StateFeed {
		return true
	}

	ok := n.Run([]Step{
		{
			Name:       "open home tab",
			Do:         func() bool { return n.screen.Click(selectors.HomeTab, clickTimeout) },
			Expect:     detect.StateFeed,
			MaxRetries: 2,
		},
	})
	if !ok {
		return false
	}
	// The For You sub-tab may not be selected after a cold start.
	n.screen.Click(selectors.ForYouTab, 1*time.Second)
	n.popups.CloseAll()
	return n.detector.Classify() == detect.StateFeed
}

// OpenProfileOf searches for a user and opens the first matching profile.
func (n *Navigator) OpenProfileOf(query string) bool {
	if !n.searchFor(query) {
		return false
	}

	return n.Run([]Step{
		{
			Name:       "open users tab",
			Do:         func() bool { return n.screen.Click(selectors.UsersTab, clickTimeout) },
			Expect:     detect.StateSearchResults,
			MaxRetries: 1,
		},
		{
			Name: "open first user result",
			Do:   func() bool { return n.screen.Click(selectors.FirstUserResult, clickTimeout) },
			Alt: func() bool {
				return n.screen.Click(selectors.FirstUserResult.Alternate(), clickTimeout)
			},
			Expect:     detect.StateProfile,
			MaxRetries: 2,
		},
	})
}

// OpenFollowersOf searches for a user, opens their profile, and opens the
// followers list. It returns the target's follower total when readable
// (0 when not), for the smart scroll heuristic.
func (n *Navigator) OpenFollowersOf(query string) (total int, ok bool) {
	if !n.OpenProfileOf(query) {
		return 0, false
	}

	// Read the counter before clicking it; the count drives scroll budgets.
	if text, found := n.screen.GetText(selectors.FollowersCounter, 2*time.Second); found {
		total = detect.ParseFollowerTotal(text)
		if total > 0 {
			n.logger.Info("target follower total", zap.Int("total", total), zap.String("target", query))
		}
	}

	ok = n.Run([]Step{
		{
			Name: "open followers counter",
			Do:   func() bool { return n.screen.Click(selectors.FollowersCounter, clickTimeout) },
			Alt: func() bool {
				return n.screen.Click(selectors.FollowersCounter.Alternate(), clickTimeout)
			},
			Expect:     detect.StateFollowersList,
			MaxRetries: 2,
		},
	})
	return total, ok
}

// searchFor opens search, types the query and submits, recovering from the
// accidental inbox navigation a notification tap can cause.
func (n *Navigator) searchFor(query string) bool {
	attempt := func() bool {
		return n.Run([]Step{
			{
				Name:       "open search",
				Do:         func() bool { return n.screen.Click(selectors.SearchEntry, clickTimeout) },
				MaxRetries: 1,
			},
			{
				Name: "type query",
				Do:   func() bool { return n.screen.SetText(selectors.SearchInput, query, clickTimeout) },
			},
			{
				Name:       "submit search",
				Do:         func() bool { return n.screen.Click(selectors.SearchSubmit, clickTimeout) },
				Expect:     detect.StateSearchResults,
				MaxRetries: 1,
			},
		})
	}

	if attempt() {
		return true
	}
	// A notification banner may have dragged us to the inbox mid-flow.
	if n.detector.Classify() == detect.StateInbox {
		n.screen.PressBack()
		n.clock.Sleep(1 * time.Second)
		return attempt()
	}
	return false
}

// OpenOwnFollowing opens the operator account's Following list (used by the
// unfollow workflow).
func (n *Navigator) OpenOwnFollowing() bool {
	return n.Run([]Step{
		{
			Name:       "open own profile",
			Do:         func() bool { return n.screen.Click(selectors.ProfileTab, clickTimeout) },
			Expect:     detect.StateProfile,
			MaxRetries: 2,
		},
		{
			Name: "open following list",
			Do:   func() bool { return n.screen.Click(selectors.FollowingListOpener, clickTimeout) },
			Alt: func() bool {
				return n.screen.Click(selectors.FollowingCounter.Alternate(), clickTimeout)
			},
			Expect:     detect.StateFollowersList,
			MaxRetries: 2,
		},
	})
}

// OpenFirstGridPost enters the video player from the first item of a
// profile's post grid.
func (n *Navigator) OpenFirstGridPost() bool {
	return n.Run([]Step{
		{
			Name: "open first grid post",
			Do:   func() bool { return n.screen.Click(selectors.ProfileGridItem, clickTimeout) },
			Alt: func() bool {
				return n.screen.Click(selectors.ProfileGridItem.Alternate(), clickTimeout)
			},
			Expect:     detect.StateVideoPlayer,
			MaxRetries: 1,
		},
	})
}

// ReturnToFollowersList walks back to the followers list from wherever a
// profile visit left the UI: player → profile → list, closing stories on
// the way. Bounded at five attempts.
func (n *Navigator) ReturnToFollowersList() bool {
	const maxAttempts = 5
	for attempt := 0; attempt < maxAttempts; attempt++ {
		n.clock.Sleep(500 * time.Millisecond)
		switch n.detector.Classify() {
		case detect.StateFollowersList:
			return true
		case detect.StateStory:
			if !n.screen.Click(selectors.StoryClose, 2*time.Second) {
				n.screen.PressBack()
			}
			n.clock.Sleep(1 * time.Second)
		case detect.StateVideoPlayer, detect.StateProfile:
			n.screen.PressBack()
			n.clock.Sleep(1 * time.Second)
		default:
			n.screen.PressBack()
			n.clock.Sleep(1 * time.Second)
		}
	}
	n.logger.Warn("could not return to followers list")
	return false
}
