package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
	"github.com/masterFuf/taktik-bot-sub000/internal/recovery"
	"github.com/masterFuf/taktik-bot-sub000/internal/selectors"
)

// Unfollow walks the operator's Following list and unfollows accounts
// that are not whitelisted.
type Unfollow struct {
	lifecycle
	c         *Context
	whitelist map[string]bool
	visited   map[string]bool
}

func NewUnfollow(c *Context) *Unfollow {
	whitelist := make(map[string]bool, len(c.Cfg.Unfollow.Whitelist))
	for _, u := range c.Cfg.Unfollow.Whitelist {
		whitelist[core.NormalizeUsername(u)] = true
	}
	return &Unfollow{c: c, whitelist: whitelist, visited: make(map[string]bool)}
}

func (w *Unfollow) Run(ctx context.Context) error {
	w.running.Store(true)
	defer w.running.Store(false)
	defer w.finish()

	if !w.c.Navigator.OpenOwnFollowing() {
		w.c.Stats.SetCompletionReason(ReasonError)
		return core.NewOpError("unfollow.open", core.KindFatal, errors.New("could not open following list"))
	}

	max := w.c.Cfg.Unfollow.MaxUnfollows
	budget := recovery.ScrollBudget(0, 0)
	idleScrolls := 0

	for {
		if w.stopRequested() || ctx.Err() != nil {
			w.c.Stats.SetCompletionReason(ReasonStopped)
			return nil
		}
		if w.c.tooManyErrors() {
			w.c.Stats.SetCompletionReason(ReasonError)
			return core.NewOpError("unfollow.run", core.KindFatal, errors.New("error threshold reached"))
		}
		w.holdWhilePaused(w.c.Clock)

		progressed := false
		for _, row := range w.visibleRows() {
			if w.visited[row.username] {
				continue
			}
			w.visited[row.username] = true

			if w.whitelist[row.username] {
				w.c.Logger.Debug("whitelisted, keeping", zap.String("username", row.username))
				continue
			}
			if !w.c.Cfg.Unfollow.IncludeFriends && row.friends() {
				w.c.Stats.AlreadyFriend()
				w.c.Logger.Debug("mutual follow, keeping", zap.String("username", row.username))
				continue
			}

			progressed = true
			if w.unfollowRow(row) {
				if max > 0 && w.c.Stats.Unfollows() >= max {
					w.c.Stats.SetCompletionReason(ReasonMaxUnfollows)
					return nil
				}
			}
			delay := w.c.Cfg.Unfollow
			w.c.Clock.Sleep(w.c.Rand.Duration(delay.DelayMin, delay.DelayMax))

			if w.stopRequested() {
				w.c.Stats.SetCompletionReason(ReasonStopped)
				return nil
			}
		}

		if progressed {
			idleScrolls = 0
		} else {
			idleScrolls++
			if idleScrolls >= budget {
				w.c.Stats.SetCompletionReason(ReasonCompleted)
				return nil
			}
		}

		if w.c.Supervisor.Observe(w.listSignature()) {
			w.c.Stats.Recovery()
			err := w.c.Supervisor.Recover(
				w.listSignature,
				w.c.Navigator.OpenOwnFollowing,
			)
			if err != nil {
				w.c.Stats.SetCompletionReason(ReasonRecoveryFailed)
				return err
			}
		}

		w.c.Actions.ScrollList()
	}
}

// unfollowRow taps the row's relationship button and confirms.
func (w *Unfollow) unfollowRow(row followerRow) bool {
	if !w.c.Screen.ClickAt(row.buttonBounds.CenterX(), row.buttonBounds.CenterY()) {
		w.c.Stats.Error()
		return false
	}
	// Confirmation sheet appears for mutuals; absence means the unfollow
	// already happened.
	w.c.Screen.Click(selectors.UnfollowConfirm, 2*time.Second)

	w.c.Stats.UserUnfollowed()
	w.c.Emitter.Action("unfollow", row.username)
	if w.c.Ledger != nil {
		err := w.c.Ledger.RecordInteraction(ledger.Record{
			AccountID: w.c.Cfg.Account.Username,
			Target:    row.username,
			Kind:      ledger.KindUnfollow,
			Success:   true,
			SessionID: w.c.SessionID,
			Scope:     "unfollow",
		})
		if err != nil {
			w.c.Stats.Error()
			w.c.Logger.Warn("ledger record failed", zap.Error(err))
		}
	}
	w.c.Logger.Info("unfollowed", zap.String("username", row.username))
	return true
}

// visibleRows pairs usernames with the Following/Friends button on the
// same row.
func (w *Unfollow) visibleRows() []followerRow {
	names := w.c.Screen.All(selectors.FollowerUsername)
	buttons := w.c.Screen.All(selectors.FollowingOrFriendsButton)

	rows := make([]followerRow, 0, len(names))
	for _, el := range names {
		username := core.NormalizeUsername(el.Text)
		if !core.ValidUsername(username) {
			continue
		}
		for _, btn := range buttons {
			if el.Bounds.OverlapsVertically(btn.Bounds) {
				rows = append(rows, followerRow{
					username:     username,
					button:       btn.Text,
					bounds:       el.Bounds,
					buttonBounds: btn.Bounds,
				})
				break
			}
		}
	}
	return rows
}

func (w *Unfollow) listSignature() recovery.Signature {
	rows := w.visibleRows()
	if len(rows) == 0 {
		return recovery.Signature{State: detect.StateFollowersList, Discriminator: "empty"}
	}
	return recovery.Signature{
		State:         detect.StateFollowersList,
		Discriminator: fmt.Sprintf("%s_%d", rows[0].username, len(rows)),
	}
}

func (w *Unfollow) finish() {
	w.c.Stats.SetCompletionReason(ReasonCompleted)
	w.c.Emitter.Stats(w.c.Stats.ToMap())
	w.c.Logger.Info("unfollow session finished",
		zap.String("reason", w.c.Stats.CompletionReason()),
		zap.Int("unfollowed", w.c.Stats.Unfollows()))
}
