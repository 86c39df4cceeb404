package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/action"
	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
	"github.com/masterFuf/taktik-bot-sub000/internal/pacing"
	"github.com/masterFuf/taktik-bot-sub000/internal/recovery"
	"github.com/masterFuf/taktik-bot-sub000/internal/selectors"
)

// usernameClickX is where a follower row is tapped to open the profile.
// Tapping further left hits the avatar, which opens a story when the
// account has one active.
const usernameClickX = 280

// Followers works through the followers list of each configured target
// account, visiting profiles and engaging with their videos.
type Followers struct {
	lifecycle
	c      *Context
	engine *action.Engine
	pacer  *pacing.Controller

	visited map[string]bool
}

func NewFollowers(c *Context) *Followers {
	cfg := c.Cfg.Followers
	pacer := pacing.NewController(pacing.Config{
		PauseAfterActions: cfg.Pause.AfterActions,
		PauseMin:          cfg.Pause.Min,
		PauseMax:          cfg.Pause.Max,
		ActionsPerMinute:  c.Cfg.Session.ActionsPerMinute,
	}, c.Clock, c.Rand, c.Emitter, c.Logger)

	engine := action.NewEngine(
		action.Probabilities{Like: cfg.LikeProbability, Follow: cfg.FollowProbability},
		action.Caps{MaxLikes: cfg.MaxLikes, MaxFollows: cfg.MaxFollows},
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
			Scope:     "followers",
			Window:    c.Cfg.Ledger.Window,
		},
	)

	return &Followers{c: c, engine: engine, pacer: pacer, visited: make(map[string]bool)}
}

func (w *Followers) Run(ctx context.Context) error {
	w.running.Store(true)
	defer w.running.Store(false)
	defer w.finish()

	if len(w.c.Cfg.Followers.Targets) == 0 {
		w.c.Stats.SetCompletionReason(ReasonError)
		return core.NewOpError("followers.run", core.KindFatal, fmt.Errorf("no target accounts configured"))
	}

	for _, target := range w.c.Cfg.Followers.Targets {
		if w.stopRequested() || ctx.Err() != nil {
			w.c.Stats.SetCompletionReason(ReasonStopped)
			return nil
		}
		done, err := w.workTarget(ctx, target)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	w.c.Stats.SetCompletionReason(ReasonCompleted)
	return nil
}

// workTarget drains one target's followers list. It returns done=true
// when a session-level limit ended the run.
func (w *Followers) workTarget(ctx context.Context, target string) (done bool, err error) {
	total, ok := w.c.Navigator.OpenFollowersOf(target)
	if !ok {
		w.c.Stats.Error()
		w.c.Logger.Warn("could not open followers list", zap.String("target", target))
		return false, nil
	}

	budget := recovery.ScrollBudget(w.alreadyVisited(), total)
	idleScrolls := 0

	for {
		if w.stopRequested() || ctx.Err() != nil {
			w.c.Stats.SetCompletionReason(ReasonStopped)
			return true, nil
		}
		if w.c.tooManyErrors() {
			w.c.Stats.SetCompletionReason(ReasonError)
			return true, core.NewOpError("followers.run", core.KindFatal, fmt.Errorf("error threshold reached"))
		}
		w.holdWhilePaused(w.c.Clock)

		rows := w.visibleRows()
		progressed := false
		for _, row := range rows {
			if w.visited[row.username] {
				continue
			}
			w.visited[row.username] = true
			w.c.Stats.FollowerSeen()

			if !w.c.Cfg.Followers.IncludeFriends && row.mutual() {
				w.c.Stats.AlreadyFriend()
				continue
			}
			if w.recentlyEngaged(row.username) {
				continue
			}

			progressed = true
			w.visitProfile(ctx, row)

			if w.c.Stats.ProfilesVisited() >= w.c.Cfg.Followers.MaxProfiles && w.c.Cfg.Followers.MaxProfiles > 0 {
				w.c.Stats.SetCompletionReason(ReasonMaxProfiles)
				return true, nil
			}
			if w.engine.CapsExhausted() {
				w.c.Stats.SetCompletionReason(w.capReason())
				return true, nil
			}
			if w.stopRequested() {
				w.c.Stats.SetCompletionReason(ReasonStopped)
				return true, nil
			}
		}

		if progressed {
			idleScrolls = 0
		} else {
			idleScrolls++
			if idleScrolls >= budget {
				w.c.Logger.Info("followers list exhausted",
					zap.String("target", target),
					zap.Int("seen", len(w.visited)))
				return false, nil
			}
		}

		if stuck := w.c.Supervisor.Observe(w.listSignature(rows)); stuck {
			w.c.Stats.Recovery()
			err := w.c.Supervisor.Recover(
				func() recovery.Signature { return w.listSignature(w.visibleRows()) },
				func() bool { _, ok := w.c.Navigator.OpenFollowersOf(target); return ok },
			)
			if err != nil {
				w.c.Stats.SetCompletionReason(ReasonRecoveryFailed)
				return true, err
			}
		}

		w.c.Actions.ScrollList()
		w.pacer.HumanDelay(500*time.Millisecond, 1500*time.Millisecond)
	}
}

// visitProfile opens one follower's profile, watches a handful of their
// videos through the decision engine, and returns to the list.
func (w *Followers) visitProfile(ctx context.Context, row followerRow) {
	w.c.Screen.ClickAt(usernameClickX, row.bounds.CenterY())
	if !w.c.Navigator.AwaitState(detect.StateProfile, 5*time.Second) {
		w.c.Stats.Error()
		w.c.Navigator.ReturnToFollowersList()
		return
	}

	profile := w.c.Detector.ProfileInfo()
	w.c.Stats.ProfileVisited()
	w.c.Emitter.Profile(profile.ToMap())

	if w.c.Screen.Exists(selectors.ProfileNoVideos, 0) || !w.c.Navigator.OpenFirstGridPost() {
		w.c.Logger.Debug("profile has no playable videos", zap.String("username", row.username))
		// Nothing to watch, but the follow roll still applies.
		w.engine.MaybeFollowProfile(ctx, row.username)
		w.c.Navigator.ReturnToFollowersList()
		return
	}

	perProfile := w.c.Cfg.Followers.VideosPerProfile
	for i := 0; i < perProfile; i++ {
		if w.stopRequested() || w.engine.CapsExhausted() {
			break
		}
		info := w.c.Detector.VideoInfo()
		// The player shows the creator's videos; attribute them to the
		// profile owner when the author element is unreadable.
		if info.Author == "" {
			info.Author = row.username
		}
		w.c.Stats.VideoWatched()
		w.c.Emitter.Video(info.ToMap())
		w.pacer.HumanDelay(w.c.Cfg.Followers.WatchMin, w.c.Cfg.Followers.WatchMax)
		w.engine.DecideAndExecute(ctx, info)
		w.pacer.MaybePause()
		if i < perProfile-1 && !w.c.Actions.ScrollToNextVideo() {
			break
		}
	}

	w.c.Navigator.ReturnToFollowersList()
}

type followerRow struct {
	username     string
	button       string
	bounds       core.Rect
	buttonBounds core.Rect
}

// mutual reports whether the row's action button shows an existing
// relationship.
func (r followerRow) mutual() bool {
	b := strings.ToLower(r.button)
	return b == "friends" || b == "following"
}

// friends reports a mutual-follow row specifically. In the Following
// list every row carries Following or Friends, so mutual() cannot tell
// them apart there.
func (r followerRow) friends() bool {
	return strings.EqualFold(r.button, "friends")
}

// visibleRows pairs each username TextView with the action button
// sharing its vertical band.
func (w *Followers) visibleRows() []followerRow {
	names := w.c.Screen.All(selectors.FollowerUsername)
	buttons := w.c.Screen.All(selectors.FollowerAnyButton)

	rows := make([]followerRow, 0, len(names))
	for _, el := range names {
		username := core.NormalizeUsername(el.Text)
		if !core.ValidUsername(username) {
			continue
		}
		row := followerRow{username: username, bounds: el.Bounds}
		for _, btn := range buttons {
			if el.Bounds.OverlapsVertically(btn.Bounds) {
				row.button = btn.Text
				row.buttonBounds = btn.Bounds
				break
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// listSignature fingerprints the visible page of the list for stuck
// detection: same first row, last row, and row count means no movement.
func (w *Followers) listSignature(rows []followerRow) recovery.Signature {
	if len(rows) == 0 {
		return recovery.Signature{State: detect.StateFollowersList, Discriminator: "empty"}
	}
	return recovery.Signature{
		State:         detect.StateFollowersList,
		Discriminator: fmt.Sprintf("%s_%s_%d", rows[0].username, rows[len(rows)-1].username, len(rows)),
	}
}

// alreadyVisited feeds the scroll budget. The ledger count survives
// process restarts; the in-process map covers the current run before
// its follows are recorded.
func (w *Followers) alreadyVisited() int {
	visited := len(w.visited)
	if w.c.Ledger == nil {
		return visited
	}
	n, err := w.c.Ledger.CountForScope(w.c.Cfg.Account.Username, "followers", ledger.KindFollow)
	if err != nil {
		w.c.Stats.Error()
		return visited
	}
	if n > visited {
		return n
	}
	return visited
}

func (w *Followers) recentlyEngaged(username string) bool {
	if w.c.Ledger == nil {
		return false
	}
	recent, err := w.c.Ledger.HasRecentInteraction(w.c.Cfg.Account.Username, username, ledger.KindFollow, w.c.Cfg.Ledger.Window)
	if err != nil {
		w.c.Stats.Error()
		return false
	}
	return recent
}

func (w *Followers) capReason() string {
	cfg := w.c.Cfg.Followers
	if cfg.MaxLikes > 0 && w.c.Stats.Likes() >= cfg.MaxLikes {
		return ReasonMaxLikes
	}
	return ReasonMaxFollows
}

func (w *Followers) finish() {
	w.c.Stats.SetCompletionReason(ReasonCompleted)
	w.c.Emitter.Stats(w.c.Stats.ToMap())
	w.c.Logger.Info("followers session finished",
		zap.String("reason", w.c.Stats.CompletionReason()),
		zap.Int("profiles", w.c.Stats.ProfilesVisited()),
		zap.Int("followed", w.c.Stats.Follows()))
}
