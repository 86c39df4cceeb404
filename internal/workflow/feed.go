package workflow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/action"
	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/pacing"
	"github.com/masterFuf/taktik-bot-sub000/internal/recovery"
)

// Feed scrolls the For You feed, watching and probabilistically engaging
// with each video.
type Feed struct {
	lifecycle
	c      *Context
	engine *action.Engine
	pacer  *pacing.Controller
}

func NewFeed(c *Context) *Feed {
	cfg := c.Cfg.Feed
	pacer := pacing.NewController(pacing.Config{
		PauseAfterActions: cfg.Pause.AfterActions,
		PauseMin:          cfg.Pause.Min,
		PauseMax:          cfg.Pause.Max,
		ActionsPerMinute:  c.Cfg.Session.ActionsPerMinute,
	}, c.Clock, c.Rand, c.Emitter, c.Logger)

	engine := action.NewEngine(
		action.Probabilities{Like: cfg.LikeProbability, Follow: cfg.FollowProbability, Favorite: cfg.FavoriteProbability},
		action.Caps{MaxLikes: cfg.MaxLikes, MaxFollows: cfg.MaxFollows, MaxFavorites: cfg.MaxFavorites},
		cfg.Filters,
		action.Deps{
			UI:        c.Actions,
			Ledger:    c.Ledger,
			Pacer:     pacer,
			Stats:     c.Stats,
			Emitter:   c.Emitter,
			Rand:      c.Rand,
			Logger:    c.Logger,
			AccountID: c.Cfg.Account.Username,
			SessionID: c.SessionID,
			Scope:     "feed",
			Window:    c.Cfg.Ledger.Window,
		},
	)

	return &Feed{c: c, engine: engine, pacer: pacer}
}

func (f *Feed) Run(ctx context.Context) error {
	f.running.Store(true)
	defer f.running.Store(false)
	defer f.finish()

	if !f.c.Navigator.EnsureFeed() {
		f.c.Stats.SetCompletionReason(ReasonError)
		return core.NewOpError("feed.ensure", core.KindFatal, errors.New("could not reach the feed"))
	}

	cfg := f.c.Cfg.Feed

	for watched := 0; cfg.MaxVideos <= 0 || watched < cfg.MaxVideos; watched++ {
		if f.stopRequested() || ctx.Err() != nil {
			f.c.Stats.SetCompletionReason(ReasonStopped)
			return nil
		}
		if f.c.tooManyErrors() {
			f.c.Stats.SetCompletionReason(ReasonError)
			return core.NewOpError("feed.run", core.KindFatal, errors.New("error threshold reached"))
		}
		f.holdWhilePaused(f.c.Clock)

		info := f.c.Detector.VideoInfo()
		f.c.Stats.VideoWatched()
		f.c.Emitter.Video(info.ToMap())

		sig := recovery.Signature{State: detect.StateFeed, Discriminator: info.Signature()}
		if f.c.Supervisor.Observe(sig) {
			f.c.Stats.Recovery()
			err := f.c.Supervisor.Recover(f.sample, f.c.Navigator.EnsureFeed)
			if err != nil {
				f.c.Stats.SetCompletionReason(ReasonRecoveryFailed)
				return err
			}
			continue
		}

		// Ads get swiped away without the usual dwell.
		if !(cfg.Filters.SkipAds && info.Ad) {
			f.pacer.HumanDelay(cfg.WatchMin, cfg.WatchMax)
		}

		f.engine.DecideAndExecute(ctx, info)

		if f.engine.CapsExhausted() {
			f.c.Stats.SetCompletionReason(f.capReason())
			return nil
		}

		f.pacer.MaybePause()

		if !f.c.Actions.ScrollToNextVideo() {
			f.c.Stats.Error()
			f.c.Logger.Warn("scroll failed", zap.Int("errors", f.c.Stats.Errors()))
			// A suggestion interstitial or an open comments panel can
			// swallow the swipe.
			if f.c.Popups.CloseAll() || f.c.Popups.CloseCommentsPanel() {
				f.c.Stats.PopupClosed()
			}
			if f.c.Popups.DismissSuggestionPage() {
				f.c.Stats.SuggestionHandled()
			}
		}
	}

	f.c.Stats.SetCompletionReason(ReasonMaxVideos)
	return nil
}

func (f *Feed) sample() recovery.Signature {
	return recovery.Signature{
		State:         f.c.Detector.Classify(),
		Discriminator: f.c.Detector.VideoInfo().Signature(),
	}
}

func (f *Feed) capReason() string {
	cfg := f.c.Cfg.Feed
	if cfg.MaxLikes > 0 && f.c.Stats.Likes() >= cfg.MaxLikes {
		return ReasonMaxLikes
	}
	return ReasonMaxFollows
}

func (f *Feed) finish() {
	f.c.Stats.SetCompletionReason(ReasonCompleted)
	f.c.Emitter.Stats(f.c.Stats.ToMap())
	f.c.Logger.Info("feed session finished",
		zap.String("reason", f.c.Stats.CompletionReason()),
		zap.Int("liked", f.c.Stats.Likes()),
		zap.Int("followed", f.c.Stats.Follows()))
}
