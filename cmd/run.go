package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/abhisek/learntrack/internal/app"
	"github.com/abhisek/learntrack/internal/engine"
	"github.com/abhisek/learntrack/internal/llm"
	"github.com/abhisek/learntrack/internal/quizgen"
	"github.com/abhisek/learntrack/internal/screens/home"
	"github.com/abhisek/learntrack/internal/store"
	"github.com/abhisek/learntrack/internal/topic"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds the engine, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	var gen quizgen.Generator
	provider, err := llm.NewProviderFromEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Falling back to the built-in question bank.")
	} else {
		gen = quizgen.New(provider, quizgen.DefaultConfig())
	}

	// The TUI drives the countdown from its own frame timer, so no
	// scheduler is wired here. Background failures — persistence writes,
	// silent bank fallbacks — are collected and reported once the
	// terminal is back in normal mode.
	var mu sync.Mutex
	var warnings []error
	warn := func(e error) {
		mu.Lock()
		warnings = append(warnings, e)
		mu.Unlock()
	}
	svc, source, err := newService(ctx, st, gen, warn)
	if err != nil {
		return err
	}
	source.UseHistory(svc.Ledger())
	source.NotifyFallback(warn)

	content, err := registerContent(cmd, source, gen)
	if err != nil {
		return err
	}

	runErr := app.Run(app.Options{Service: svc, Content: content})

	mu.Lock()
	defer mu.Unlock()
	for _, e := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", e)
	}
	return runErr
}

// registerContent loads the --content file, if given, and registers it as
// a quizzable subject. The menu entry only appears when this returns a
// non-nil Content.
func registerContent(cmd *cobra.Command, source *quizgen.Source, gen quizgen.Generator) (*home.Content, error) {
	path, _ := cmd.Flags().GetString("content")
	if path == "" {
		return nil, nil
	}
	if gen == nil {
		return nil, fmt.Errorf("--content needs a configured LLM provider; the built-in bank only covers the curriculum")
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	if len(strings.TrimSpace(string(text))) == 0 {
		return nil, fmt.Errorf("content file %s is empty", path)
	}

	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	source.RegisterContent(quizgen.Content{
		ID:    title,
		Title: title,
		Text:  string(text),
	})
	return &home.Content{ID: title, Title: title}, nil
}

// newService assembles the engine over the store's repositories and the
// seed curriculum. The question source is returned alongside so callers
// can attach history and content after the engine's ledger is warm.
func newService(ctx context.Context, st *store.Store, gen quizgen.Generator, onPersist func(error)) (*engine.Service, *quizgen.Source, error) {
	graph := topic.NewSeedGraph()
	source := quizgen.NewSource(graph, gen)

	initial, err := st.Streaks().LoadStreak(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load streak: %w", err)
	}

	svc, err := engine.NewService(ctx, engine.Options{
		Graph:          graph,
		Questions:      source,
		Topics:         st.Topics(),
		Attempts:       st.Attempts(),
		Streaks:        st.Streaks(),
		InitialStreak:  initial,
		OnPersistError: onPersist,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build engine: %w", err)
	}
	return svc, source, nil
}
