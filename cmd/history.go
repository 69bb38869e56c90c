package cmd

import (
	"fmt"

	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the attempt history without launching the TUI",
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

		attempts := svc.Ledger().All()
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}
		for _, a := range attempts {
			name := a.Subject.ID
			if a.Subject.Kind == quiz.SubjectTopic {
				if t, err := svc.Topic(a.Subject.ID); err == nil {
					name = t.Name
				}
			}
			retake := ""
			if a.IsRetake {
				retake = "  (retake)"
			}
			fmt.Printf("%s  %-28s %d/%d correct  score %3d  %ds%s\n",
				a.CompletedAt.Format("2006-01-02 15:04"), name,
				a.CorrectAnswers, a.TotalQuestions, a.Score, a.TimeTakenSeconds, retake)
		}
		return nil
	},
}
