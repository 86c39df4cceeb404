package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/masterFuf/taktik-bot-sub000/internal/config"
	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the interaction ledger",
}

var ledgerSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := store.RecentSessions(limit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("no sessions recorded")
			return nil
		}
		for _, s := range sessions {
			end := "running"
			if !s.EndedAt.IsZero() {
				end = fmt.Sprintf("%s (%s)", s.EndedAt.Format(time.RFC3339), s.EndReason)
			}
			fmt.Printf("%s  %-10s %-12s %s -> %s\n",
				s.ID, s.Workflow, s.AccountID, s.StartedAt.Format(time.RFC3339), end)
		}
		return nil
	},
}

var ledgerCheckCmd = &cobra.Command{
	Use:   "check <target>",
	Short: "Check whether a target was interacted with recently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()

		target := core.NormalizeUsername(args[0])
		kindFlag, _ := cmd.Flags().GetString("kind")
		recent, err := store.HasRecentInteraction(cfg.Account.Username, target, ledger.Kind(kindFlag), cfg.Ledger.Window)
		if err != nil {
			return err
		}
		if recent {
			fmt.Printf("%s: %s within the last %s\n", target, kindFlag, cfg.Ledger.Window)
		} else {
			fmt.Printf("%s: no recent %s\n", target, kindFlag)
		}
		return nil
	},
}

func openLedger() (*ledger.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return ledger.Open(cfg.Ledger.DataDir, core.RealClock{})
}

func init() {
	ledgerSessionsCmd.Flags().Int("limit", 20, "maximum sessions to list")
	ledgerCheckCmd.Flags().String("kind", "follow", "interaction kind to check")
	ledgerCmd.AddCommand(ledgerSessionsCmd)
	ledgerCmd.AddCommand(ledgerCheckCmd)
}
