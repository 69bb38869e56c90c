package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/learntrack/internal/llm"
	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/quizgen"
	"github.com/abhisek/learntrack/internal/topic"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions for a topic (no database)",
	Long: `Generate and interactively answer questions for a specific topic.

This is a stateless developer tool — no database, no progress tracking, no
streak. Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Topic ID from the seed curriculum (required)")
	previewCmd.Flags().Int("count", quizgen.DefaultQuestionCount, "Number of questions to generate")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topicID, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")

	graph := topic.NewSeedGraph()
	t, err := graph.Get(topicID)
	if err != nil {
		return fmt.Errorf("unknown topic %q (try one of: %s)", topicID, strings.Join(topicIDs(graph), ", "))
	}

	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := quizgen.New(provider, quizgen.DefaultConfig())

	fmt.Printf("Topic: %s — %s\n", t.ID, t.Name)
	fmt.Printf("Generating %d questions...\n\n", count)

	questions, err := gen.Generate(ctx, quizgen.GenerateInput{
		Subject:     quiz.TopicSubject(t.ID),
		Title:       t.Name,
		Description: t.Description,
		Count:       count,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	labels := []string{"A", "B", "C", "D"}
	var correct int

	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(questions))
		fmt.Println(q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer (1-4): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		picked, err := strconv.Atoi(answer)
		if err != nil || picked < 1 || picked > quiz.OptionCount {
			fmt.Print("(not a valid option)\n\n")
			continue
		}

		if picked-1 == q.CorrectIndex {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s) %s\n",
				labels[q.CorrectIndex], q.Options[q.CorrectIndex])
		}

		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct (score %d) ──\n",
		correct, len(questions), quiz.Percentage(correct, len(questions)))
	return nil
}

// topicIDs lists the seed curriculum ids for error messages.
func topicIDs(g *topic.Graph) []string {
	all := g.All()
	ids := make([]string, 0, len(all))
	for _, t := range all {
		ids = append(ids, t.ID)
	}
	return ids
}
