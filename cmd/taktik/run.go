package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/masterFuf/taktik-bot-sub000/internal/config"
	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
	"github.com/masterFuf/taktik-bot-sub000/internal/screenjson"
	"github.com/masterFuf/taktik-bot-sub000/internal/workflow"
)

// orchestrator is what every workflow exposes to the command layer.
type orchestrator interface {
	Run(ctx context.Context) error
	Stop()
}

var screenScript string

var runCmd = &cobra.Command{
	Use:   "run {feed|followers|unfollow|scrape}",
	Short: "Run an engagement workflow",
	Long: `Run an engagement workflow against a screen source.

Examples:
  taktik run feed --config config.yaml --screen capture.json
  taktik run followers -c config.yaml --screen capture.json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"feed", "followers", "unfollow", "scrape"},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		if screenScript == "" {
			return fmt.Errorf("--screen is required (path to a captured screen script)")
		}
		screen, err := screenjson.Load(screenScript)
		if err != nil {
			return err
		}

		store, err := ledger.Open(cfg.Ledger.DataDir, core.RealClock{})
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer store.Close()

		sessionID, err := store.CreateSession(cfg.Account.Username, args[0])
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}

		wc := workflow.NewContext(cfg, screen, ledger.NewResilient(store, logger), nil, nil, nil, logger)
		wc.SessionID = sessionID

		var w orchestrator
		switch args[0] {
		case "feed":
			w = workflow.NewFeed(wc)
		case "followers":
			w = workflow.NewFollowers(wc)
		case "unfollow":
			w = workflow.NewUnfollow(wc)
		case "scrape":
			w = workflow.NewScrape(wc)
		default:
			return fmt.Errorf("unknown workflow %q", args[0])
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			w.Stop()
		}()

		logger.Info("session starting",
			zap.String("workflow", args[0]),
			zap.String("session", sessionID),
			zap.String("account", cfg.Account.Username))

		runErr := w.Run(ctx)

		reason := wc.Stats.CompletionReason()
		if err := store.EndSession(sessionID, reason); err != nil {
			logger.Warn("could not close session row", zap.Error(err))
		}
		printStats(wc.Stats.ToMap())
		return runErr
	},
}

func init() {
	runCmd.Flags().StringVar(&screenScript, "screen", "", "path to the screen script driving the session")
}

func printStats(m map[string]any) {
	fmt.Printf("session finished: %v\n", m["completion_reason"])
	for _, key := range []string{
		"videos_watched", "videos_liked", "videos_favorited", "videos_skipped",
		"ads_skipped", "users_followed", "users_unfollowed",
		"profiles_visited", "profiles_scraped", "followers_seen",
		"recoveries", "errors", "elapsed_seconds",
	} {
		if v, ok := m[key]; ok {
			fmt.Printf("  %-18s %v\n", key, v)
		}
	}
}
