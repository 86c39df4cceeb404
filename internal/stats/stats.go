// Package stats accumulates per-session engagement counters.
package stats

import (
	"sync"
	"time"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
)

// Session holds the running totals for one workflow run. All methods are
// safe for concurrent use; the orchestrator and the signal handler both
// touch it.
type Session struct {
	mu    sync.Mutex
	clock core.Clock
	start time.Time

	videosWatched      int
	videosLiked        int
	videosFavorited    int
	videosSkipped      int
	adsSkipped         int
	usersFollowed      int
	usersUnfollowed    int
	profilesVisited    int
	profilesScraped    int
	followersSeen      int
	alreadyFriends     int
	popupsClosed       int
	suggestionsHandled int
	recoveries         int
	errors             int

	completionReason string
}

func NewSession(clock core.Clock) *Session {
	if clock == nil {
		clock = core.RealClock{}
	}
	return &Session{clock: clock, start: clock.Now()}
}

func (s *Session) VideoWatched()      { s.bump(&s.videosWatched) }
func (s *Session) VideoLiked()        { s.bump(&s.videosLiked) }
func (s *Session) VideoFavorited()    { s.bump(&s.videosFavorited) }
func (s *Session) VideoSkipped()      { s.bump(&s.videosSkipped) }
func (s *Session) AdSkipped()         { s.bump(&s.adsSkipped) }
func (s *Session) UserFollowed()      { s.bump(&s.usersFollowed) }
func (s *Session) UserUnfollowed()    { s.bump(&s.usersUnfollowed) }
func (s *Session) ProfileVisited()    { s.bump(&s.profilesVisited) }
func (s *Session) ProfileScraped()    { s.bump(&s.profilesScraped) }
func (s *Session) FollowerSeen()      { s.bump(&s.followersSeen) }
func (s *Session) AlreadyFriend()     { s.bump(&s.alreadyFriends) }
func (s *Session) PopupClosed()       { s.bump(&s.popupsClosed) }
func (s *Session) SuggestionHandled() { s.bump(&s.suggestionsHandled) }
func (s *Session) Recovery()          { s.bump(&s.recoveries) }
func (s *Session) Error()             { s.bump(&s.errors) }

func (s *Session) bump(field *int) {
	s.mu.Lock()
	*field++
	s.mu.Unlock()
}

func (s *Session) Likes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videosLiked
}

func (s *Session) Favorites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videosFavorited
}

func (s *Session) Follows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usersFollowed
}

func (s *Session) Unfollows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usersUnfollowed
}

func (s *Session) ProfilesVisited() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profilesVisited
}

func (s *Session) Scraped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profilesScraped
}

func (s *Session) Errors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors
}

// SetCompletionReason records why the session ended. The first caller
// wins; later calls are ignored so a user stop is not overwritten by
// the teardown path.
func (s *Session) SetCompletionReason(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completionReason == "" {
		s.completionReason = reason
	}
}

func (s *Session) CompletionReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completionReason
}

// ToMap snapshots the counters for event emission and the final report.
func (s *Session) ToMap() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := s.clock.Since(s.start)
	return map[string]any{
		"videos_watched":      s.videosWatched,
		"videos_liked":        s.videosLiked,
		"videos_favorited":    s.videosFavorited,
		"videos_skipped":      s.videosSkipped,
		"ads_skipped":         s.adsSkipped,
		"users_followed":      s.usersFollowed,
		"users_unfollowed":    s.usersUnfollowed,
		"profiles_visited":    s.profilesVisited,
		"profiles_scraped":    s.profilesScraped,
		"followers_seen":      s.followersSeen,
		"already_friends":     s.alreadyFriends,
		"popups_closed":       s.popupsClosed,
		"suggestions_handled": s.suggestionsHandled,
		"recoveries":          s.recoveries,
		"errors":              s.errors,
		"elapsed_seconds":     int(elapsed.Seconds()),
		"completion_reason":   s.completionReason,
	}
}
