package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/detect"
	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
)

// ScrapedProfile is one collected profile, serialized to the output
// file.
type ScrapedProfile struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Following   int       `json:"following"`
	Followers   int       `json:"followers"`
	Likes       int       `json:"likes"`
	Bio         string    `json:"bio"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Scrape visits each configured profile and collects its public fields
// without engaging.
type Scrape struct {
	lifecycle
	c       *Context
	results []ScrapedProfile
}

func NewScrape(c *Context) *Scrape {
	return &Scrape{c: c}
}

func (w *Scrape) Run(ctx context.Context) error {
	w.running.Store(true)
	defer w.running.Store(false)
	defer w.finish()

	cfg := w.c.Cfg.Scrape
	if len(cfg.Targets) == 0 {
		w.c.Stats.SetCompletionReason(ReasonError)
		return core.NewOpError("scrape.run", core.KindFatal, errors.New("no scrape targets configured"))
	}

	for _, target := range cfg.Targets {
		if w.stopRequested() || ctx.Err() != nil {
			w.c.Stats.SetCompletionReason(ReasonStopped)
			break
		}
		if w.c.tooManyErrors() {
			w.c.Stats.SetCompletionReason(ReasonError)
			return core.NewOpError("scrape.run", core.KindFatal, errors.New("error threshold reached"))
		}
		w.holdWhilePaused(w.c.Clock)

		username := core.NormalizeUsername(target)
		if !core.ValidUsername(username) {
			w.c.Logger.Warn("invalid scrape target", zap.String("target", target))
			continue
		}
		if w.recentlyScraped(username) {
			w.c.Logger.Debug("scraped recently, skipping", zap.String("username", username))
			continue
		}

		if !w.c.Navigator.OpenProfileOf(username) {
			w.c.Stats.Error()
			w.c.Logger.Warn("could not open profile", zap.String("username", username))
			continue
		}
		if !w.c.Navigator.AwaitState(detect.StateProfile, 5*time.Second) {
			w.c.Stats.Error()
			continue
		}

		info := w.c.Detector.ProfileInfo()
		if info.Username == "" {
			info.Username = username
		}
		w.results = append(w.results, ScrapedProfile{
			Username:    info.Username,
			DisplayName: info.DisplayName,
			Following:   info.Following,
			Followers:   info.Followers,
			Likes:       info.Likes,
			Bio:         info.Bio,
			ScrapedAt:   w.c.Clock.Now(),
		})
		w.c.Stats.ProfileScraped()
		w.c.Emitter.Profile(info.ToMap())
		w.record(info.Username)
		w.c.Actions.GoBack()

		if cfg.MaxProfiles > 0 && len(w.results) >= cfg.MaxProfiles {
			w.c.Stats.SetCompletionReason(ReasonMaxProfiles)
			break
		}
	}

	if err := w.writeOutput(cfg.OutputPath); err != nil {
		w.c.Stats.SetCompletionReason(ReasonError)
		return core.NewOpError("scrape.write", core.KindFatal, err)
	}
	w.c.Stats.SetCompletionReason(ReasonCompleted)
	return nil
}

// Results returns the profiles collected so far.
func (w *Scrape) Results() []ScrapedProfile {
	return w.results
}

func (w *Scrape) writeOutput(path string) error {
	if path == "" || len(w.results) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(w.results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (w *Scrape) recentlyScraped(username string) bool {
	if w.c.Ledger == nil {
		return false
	}
	recent, err := w.c.Ledger.HasRecentInteraction(w.c.Cfg.Account.Username, username, ledger.KindScrape, w.c.Cfg.Ledger.Window)
	if err != nil {
		w.c.Stats.Error()
		return false
	}
	return recent
}

func (w *Scrape) record(username string) {
	if w.c.Ledger == nil {
		return
	}
	err := w.c.Ledger.RecordInteraction(ledger.Record{
		AccountID: w.c.Cfg.Account.Username,
		Target:    username,
		Kind:      ledger.KindScrape,
		Success:   true,
		SessionID: w.c.SessionID,
		Scope:     "scrape",
	})
	if err != nil {
		w.c.Stats.Error()
		w.c.Logger.Warn("ledger record failed", zap.Error(err))
	}
}

func (w *Scrape) finish() {
	w.c.Stats.SetCompletionReason(ReasonCompleted)
	w.c.Emitter.Stats(w.c.Stats.ToMap())
	w.c.Logger.Info("scrape session finished",
		zap.String("reason", w.c.Stats.CompletionReason()),
		zap.Int("profiles", w.c.Stats.Scraped()))
}
