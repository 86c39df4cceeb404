package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masterFuf/taktik-bot-sub000/internal/config"
	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/screenjson"
	"github.com/masterFuf/taktik-bot-sub000/internal/workflow"
)

var replayWorkflow string

var replayCmd = &cobra.Command{
	Use:   "replay <script.json>",
	Short: "Replay a workflow against a captured screen script",
	Long: `Replay runs a workflow against a captured screen script without a
ledger, printing every gesture the session would perform. With a fixed
seed in the configuration the gesture log is fully deterministic.`,
	Args: cobra.ExactArgs(1),
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

		screen, err := screenjson.Load(args[0])
		if err != nil {
			return err
		}

		wc := workflow.NewContext(cfg, screen, nil, nil, nil, core.NewRand(cfg.Session.Seed), logger)

		var w orchestrator
		switch replayWorkflow {
		case "feed":
			w = workflow.NewFeed(wc)
		case "followers":
			w = workflow.NewFollowers(wc)
		case "unfollow":
			w = workflow.NewUnfollow(wc)
		case "scrape":
			w = workflow.NewScrape(wc)
		default:
			return fmt.Errorf("unknown workflow %q", replayWorkflow)
		}

		runErr := w.Run(cmd.Context())

		fmt.Printf("replayed %d gestures, final frame %q\n", len(screen.Gestures()), screen.Frame())
		for _, g := range screen.Gestures() {
			fmt.Println("  " + g)
		}
		fmt.Printf("completion: %v\n", wc.Stats.CompletionReason())
		return runErr
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayWorkflow, "workflow", "feed", "workflow to replay")
}
