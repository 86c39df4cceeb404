package nav

import (
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/selectors"
)

const actionTimeout = 2 * time.Second

// Actions bundles the atomic UI interactions performed on targets. Each
// returns whether the underlying tap reported success; counters must only
// advance on true.
type Actions struct {
	screen core.Screen
	clock  core.Clock
	logger *zap.Logger
}

// NewActions creates the atomic action set.
func NewActions(screen core.Screen, clock core.Clock, logger *zap.Logger) *Actions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Actions{screen: screen, clock: clock, logger: logger}
}

// LikeVideo taps the like button of the current video.
func (a *Actions) LikeVideo() bool {
	if !a.screen.Click(selectors.LikeButton, actionTimeout) {
		return false
	}
	a.logger.Info("liked video")
	return true
}

// FollowAuthor taps the follow button overlaid on the current video.
func (a *Actions) FollowAuthor() bool {
	if !a.screen.Click(selectors.FollowButton, actionTimeout) {
		return false
	}
	a.logger.Info("followed author")
	return true
}

// FollowProfile taps the follow button on a profile page.
func (a *Actions) FollowProfile() bool {
	if !a.screen.Click(selectors.ProfileFollowButton, actionTimeout) {
		return false
	}
	a.logger.Info("followed profile")
	return true
}

// FavoriteVideo taps the favorite/bookmark button of the current video.
func (a *Actions) FavoriteVideo() bool {
	if !a.screen.Click(selectors.FavoriteButton, actionTimeout) {
		if !a.screen.Click(selectors.FavoriteButton.Alternate(), actionTimeout) {
			return false
		}
	}
	a.logger.Info("favorited video")
	return true
}

// ScrollToNextVideo swipes up one full video height.
func (a *Actions) ScrollToNextVideo() bool {
	w, h := a.screen.ScreenSize()
	if w == 0 || h == 0 {
		return false
	}
	a.screen.Swipe(w/2, h*3/4, w/2, h/4, 300*time.Millisecond)
	return true
}

// ScrollList scrolls a vertical list (followers, following, search results)
// by about half a screen.
func (a *Actions) ScrollList() {
	w, h := a.screen.ScreenSize()
	if w == 0 || h == 0 {
		return
	}
	a.screen.Swipe(w/2, h*2/3, w/2, h/3, 300*time.Millisecond)
}

// GoBack prefers the in-app back affordance (some devices have no system
// back button) and falls back to the system press.
func (a *Actions) GoBack() {
	if a.screen.Click(selectors.BackButton, actionTimeout) {
		a.clock.Sleep(500 * time.Millisecond)
		return
	}
	a.screen.PressBack()
	a.clock.Sleep(500 * time.Millisecond)
}
