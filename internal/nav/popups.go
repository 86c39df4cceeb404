package nav

import (
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/selectors"
)

const popupProbe = 1 * time.Second

// Popups closes the interruptions the application throws during a session:
// system dialogs, notification banners, accidental inbox navigation, and
// the various in-app promotional popups.
type Popups struct {
	screen   core.Screen
	detector *detect.Detector
	clock    core.Clock
	logger   *zap.Logger
}

// NewPopups creates the popup closer.
func NewPopups(screen core.Screen, detector *detect.Detector, clock core.Clock, logger *zap.Logger) *Popups {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Popups{screen: screen, detector: detector, clock: clock, logger: logger}
}

// CloseAll runs the full chain once and reports whether anything was
// closed. System dialogs come first: they sit above everything else.
func (p *Popups) CloseAll() bool {
	if p.CloseSystemDialog() {
		return true
	}

	if p.screen.Exists(selectors.NotificationBanner, popupProbe) {
		p.screen.PressBack()
		p.settle("notification banner dismissed")
		return true
	}

	if p.detector.Classify() == detect.StateInbox {
		p.screen.PressBack()
		p.settle("escaped inbox page")
		return true
	}

	inApp := []struct {
		marker core.LocatorSet
		close  core.LocatorSet
		what   string
	}{
		{selectors.LinkEmailPopup, selectors.PopupNotNow, "link email popup"},
		{selectors.CollectionsPopup, selectors.PopupNotNow, "collections popup"},
		{selectors.FollowFriendsPopup, selectors.PopupClose, "follow friends popup"},
	}
	for _, popup := range inApp {
		if !p.screen.Exists(popup.marker, popupProbe) {
			continue
		}
		if p.screen.Click(popup.close, popupProbe) || p.screen.Click(popup.close.Alternate(), popupProbe) {
			p.settle(popup.what + " closed")
			return true
		}
	}

	return false
}

// CloseSystemDialog dismisses Android-level dialogs (input method picker,
// permission prompts) with a back press.
func (p *Popups) CloseSystemDialog() bool {
	if !p.screen.Exists(selectors.SystemInputMethodPopup, popupProbe) {
		return false
	}
	p.screen.PressBack()
	p.settle("system dialog closed")
	return true
}

// DismissSuggestionPage backs out of the "Follow back / Not interested"
// suggestion screen the feed sometimes lands on.
func (p *Popups) DismissSuggestionPage() bool {
	if !p.screen.Exists(selectors.SuggestionPage, popupProbe) {
		return false
	}
	if !p.screen.Click(selectors.SuggestionDismiss, popupProbe) {
		p.screen.PressBack()
	}
	p.settle("suggestion page dismissed")
	return true
}

// CloseCommentsPanel closes an accidentally opened comments section.
func (p *Popups) CloseCommentsPanel() bool {
	if !p.screen.Exists(selectors.CommentsPanel, popupProbe) {
		return false
	}
	if !p.screen.Click(selectors.CommentsClose, popupProbe) {
		p.screen.PressBack()
	}
	p.settle("comments panel closed")
	return true
}

func (p *Popups) settle(msg string) {
	p.logger.Debug(msg)
	p.clock.Sleep(500 * time.Millisecond)
}
