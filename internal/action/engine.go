// Package action decides, per video, which engagement actions to take
// and executes them through the UI layer.
package action

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/config"
	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
	"github.com/masterFuf/taktik-bot-sub000/internal/pacing"
	"github.com/masterFuf/taktik-bot-sub000/internal/stats"
)

// UI is the subset of screen gestures the engine needs.
type UI interface {
	LikeVideo() bool
	FollowAuthor() bool
	FollowProfile() bool
	FavoriteVideo() bool
}

// Probabilities are the per-action Bernoulli parameters.
type Probabilities struct {
	Like     float64
	Follow   float64
	Favorite float64
}

// Caps limit how many of each action a session may perform. Zero means
// unlimited.
type Caps struct {
	MaxLikes     int
	MaxFollows   int
	MaxFavorites int
}

// Outcome reports what happened to one video.
type Outcome struct {
	Liked      bool
	Followed   bool
	Favorited  bool
	Skipped    bool
	SkipReason string
}

// Engine evaluates filters, rolls probabilities, and executes actions in
// a fixed order so runs with the same seed replay identically.
type Engine struct {
	probs   Probabilities
	caps    Caps
	filters config.FiltersConfig

	ui      UI
	store   ledger.Ledger
	pacer   *pacing.Controller
	session *stats.Session
	emitter *core.Emitter
	rng     core.Rand
	logger  *zap.Logger

	accountID string
	sessionID string
	scope     string
	window    time.Duration
}

type Deps struct {
	UI        UI
	Ledger    ledger.Ledger
	Pacer     *pacing.Controller
	Stats     *stats.Session
	Emitter   *core.Emitter
	Rand      core.Rand
	Logger    *zap.Logger
	AccountID string
	SessionID string
	Scope     string
	Window    time.Duration
}

func NewEngine(probs Probabilities, caps Caps, filters config.FiltersConfig, deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		probs:     probs,
		caps:      caps,
		filters:   filters,
		ui:        deps.UI,
		store:     deps.Ledger,
		pacer:     deps.Pacer,
		session:   deps.Stats,
		emitter:   deps.Emitter,
		rng:       deps.Rand,
		logger:    logger,
		accountID: deps.AccountID,
		sessionID: deps.SessionID,
		scope:     deps.Scope,
		window:    deps.Window,
	}
}

// DecideAndExecute runs the filter chain and then the action sequence
// like, follow, favorite against the current video. Counters, events,
// and ledger records update only when the gesture actually landed.
func (e *Engine) DecideAndExecute(ctx context.Context, info detect.VideoInfo) Outcome {
	if reason := e.filterReason(info); reason != "" {
		e.logger.Debug("video filtered",
			zap.String("author", info.Author),
			zap.String("reason", reason))
		e.session.VideoSkipped()
		return Outcome{Skipped: true, SkipReason: reason}
	}

	var out Outcome

	// Disabled kinds and cap checks come before the draw so neither
	// consumes randomness and the remaining sequence stays seed-stable.
	if e.probs.Like > 0 && e.capOpen(e.caps.MaxLikes, e.session.Likes()) && e.rng.Float64() < e.probs.Like {
		if e.ui.LikeVideo() {
			out.Liked = true
			e.session.VideoLiked()
			e.record(info.Author, ledger.KindLike)
			e.emitter.Action("like", info.Author)
			e.pacer.NoteAction(ctx)
		}
	}

	if e.probs.Follow > 0 && e.capOpen(e.caps.MaxFollows, e.session.Follows()) &&
		!e.recentlyFollowed(info.Author) && e.rng.Float64() < e.probs.Follow {
		if e.ui.FollowAuthor() {
			out.Followed = true
			e.session.UserFollowed()
			e.record(info.Author, ledger.KindFollow)
			e.emitter.Action("follow", info.Author)
			e.pacer.NoteAction(ctx)
		}
	}

	if e.probs.Favorite > 0 && e.capOpen(e.caps.MaxFavorites, e.session.Favorites()) && e.rng.Float64() < e.probs.Favorite {
		if e.ui.FavoriteVideo() {
			out.Favorited = true
			e.session.VideoFavorited()
			e.record(info.Author, ledger.KindFavorite)
			e.emitter.Action("favorite", info.Author)
			e.pacer.NoteAction(ctx)
		}
	}

	return out
}

// MaybeFollowProfile rolls the follow probability against a profile page
// instead of a video overlay. Used when a profile has nothing playable.
func (e *Engine) MaybeFollowProfile(ctx context.Context, username string) bool {
	if e.probs.Follow <= 0 || !e.capOpen(e.caps.MaxFollows, e.session.Follows()) || e.recentlyFollowed(username) {
		return false
	}
	if e.rng.Float64() >= e.probs.Follow {
		return false
	}
	if !e.ui.FollowProfile() {
		return false
	}
	e.session.UserFollowed()
	e.record(username, ledger.KindFollow)
	e.emitter.Action("follow", username)
	e.pacer.NoteAction(ctx)
	return true
}

// CapsExhausted reports whether every action with a configured cap has
// reached it. The workflow uses this to finish early instead of
// scrolling through videos it can no longer act on.
func (e *Engine) CapsExhausted() bool {
	anyCapped := false
	for _, c := range []struct {
		cap   int
		count int
		prob  float64
	}{
		{e.caps.MaxLikes, e.session.Likes(), e.probs.Like},
		{e.caps.MaxFollows, e.session.Follows(), e.probs.Follow},
		{e.caps.MaxFavorites, e.session.Favorites(), e.probs.Favorite},
	} {
		if c.cap <= 0 || c.prob <= 0 {
			continue
		}
		anyCapped = true
		if c.count < c.cap {
			return false
		}
	}
	return anyCapped
}

func (e *Engine) capOpen(cap, count int) bool {
	return cap <= 0 || count < cap
}

func (e *Engine) filterReason(info detect.VideoInfo) string {
	if e.filters.SkipAds && info.Ad {
		e.session.AdSkipped()
		return "ad"
	}
	if e.filters.SkipAlreadyLiked && info.Liked {
		return "already_liked"
	}
	if e.filters.MinLikeCount > 0 || e.filters.MaxLikeCount > 0 {
		likes := detect.ParseCount(info.LikeCount)
		if e.filters.MinLikeCount > 0 && likes < e.filters.MinLikeCount {
			return "below_min_likes"
		}
		if e.filters.MaxLikeCount > 0 && likes > e.filters.MaxLikeCount {
			return "above_max_likes"
		}
	}
	if len(e.filters.RequiredHashtags) > 0 || len(e.filters.ExcludedHashtags) > 0 {
		tags := Hashtags(info.Description)
		for _, excluded := range e.filters.ExcludedHashtags {
			if tags[strings.ToLower(excluded)] {
				return "excluded_hashtag"
			}
		}
		for _, required := range e.filters.RequiredHashtags {
			if !tags[strings.ToLower(required)] {
				return "missing_hashtag"
			}
		}
	}
	return ""
}

func (e *Engine) recentlyFollowed(author string) bool {
	if author == "" || e.store == nil {
		return false
	}
	recent, err := e.store.HasRecentInteraction(e.accountID, author, ledger.KindFollow, e.window)
	if err != nil {
		// Permissive: a broken ledger never blocks the session, but the
		// failure still counts against the error threshold.
		e.session.Error()
		e.logger.Warn("ledger check failed", zap.Error(err))
		return false
	}
	return recent
}

func (e *Engine) record(target string, kind ledger.Kind) {
	if e.store == nil || target == "" {
		return
	}
	err := e.store.RecordInteraction(ledger.Record{
		AccountID: e.accountID,
		Target:    target,
		Kind:      kind,
		Success:   true,
		SessionID: e.sessionID,
		Scope:     e.scope,
	})
	if err != nil {
		e.session.Error()
		e.logger.Warn("ledger record failed", zap.Error(err))
	}
}

// Hashtags extracts the lowercased #tags from a video description.
func Hashtags(description string) map[string]bool {
	tags := make(map[string]bool)
	for _, field := range strings.Fields(description) {
		if !strings.HasPrefix(field, "#") {
			continue
		}
		tag := strings.ToLower(strings.TrimPrefix(field, "#"))
		tag = strings.TrimFunc(tag, func(r rune) bool {
			return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_')
		})
		if tag != "" {
			tags[tag] = true
		}
	}
	return tags
}
