package cmd

import (
	"fmt"

	"github.com/abhisek/learntrack/internal/store"
	"github.com/abhisek/learntrack/internal/topic"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
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

		all := svc.Topics()
		var mastered, inProgress int
		for _, t := range all {
			status, err := svc.EffectiveStatus(t.ID)
			if err != nil {
				continue
			}
			switch status {
			case topic.Mastered:
				mastered++
			case topic.InProgress:
				inProgress++
			}
		}

		attempts := svc.Ledger().All()
		var scoreSum int
		for _, a := range attempts {
			scoreSum += a.Score
		}
		avg := 0
		if len(attempts) > 0 {
			avg = scoreSum / len(attempts)
		}

		fmt.Printf("Topics:       %d/%d mastered, %d in progress\n", mastered, len(all), inProgress)
		fmt.Printf("Quizzes:      %d taken, average score %d\n", len(attempts), avg)
		fmt.Printf("Streak:       %d days (last activity %s)\n",
			svc.Streak().Streak, svc.Streak().LastActivityDate)
		return nil
	},
}
