package cmd

import (
	"fmt"

	"github.com/abhisek/learntrack/internal/store"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Print the topic board without launching the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		svc, _, err := newService(cmd.Context(), st, nil, nil)
		if err != nil {
			return err
		}

		for _, t := range svc.Topics() {
			status, err := svc.EffectiveStatus(t.ID)
			if err != nil {
				return err
			}
			last := "never"
			if t.LastAttempt != nil {
				last = t.LastAttempt.Format("2006-01-02")
			}
			fmt.Printf("%s %-28s %-12s best %3d  %2d attempts  last %s\n",
				status.Icon(), t.Name, status.Label(), t.BestScore, t.Attempts, last)
		}
		return nil
	},
}
