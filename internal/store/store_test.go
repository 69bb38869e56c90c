package store

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/learntrack/internal/ledger"
	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/streak"
	"github.com/abhisek/learntrack/internal/topic"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"topic_progress", "attempts", "streak"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestTopicProgressRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Topics()
	ctx := context.Background()

	// Empty store has no overlay.
	got, err := repo.ListTopics(ctx)
	if err != nil {
		t.Fatalf("list (empty): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty store returned %d topics", len(got))
	}

	at := time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
	saved, err := repo.UpdateTopicProgress(ctx, topic.Topic{
		ID:          "arrays",
		Status:      topic.StatusMastered,
		Score:       85,
		BestScore:   92,
		Attempts:    3,
		LastAttempt: &at,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if saved.ID != "arrays" {
		t.Errorf("saved id = %q, want arrays", saved.ID)
	}

	got, err = repo.ListTopics(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	row, ok := got["arrays"]
	if !ok {
		t.Fatal("arrays missing after update")
	}
	if row.Status != topic.StatusMastered || row.Score != 85 || row.BestScore != 92 || row.Attempts != 3 {
		t.Errorf("progress = %+v, want mastered/85/92/3", row)
	}
	if row.LastAttempt == nil || !row.LastAttempt.Equal(at) {
		t.Errorf("LastAttempt = %v, want %v", row.LastAttempt, at)
	}
}

func TestTopicProgressUpsertOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.Topics()
	ctx := context.Background()

	base := topic.Topic{ID: "loops", Status: topic.StatusInProgress, Score: 40, BestScore: 40, Attempts: 1}
	if _, err := repo.UpdateTopicProgress(ctx, base); err != nil {
		t.Fatal(err)
	}
	base.Score = 90
	base.BestScore = 90
	base.Attempts = 2
	base.Status = topic.StatusMastered
	if _, err := repo.UpdateTopicProgress(ctx, base); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListTopics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if row := got["loops"]; row.Attempts != 2 || row.Status != topic.StatusMastered {
		t.Errorf("after upsert: %+v, want attempts 2, mastered", row)
	}
}

func sampleAttempt(id string, subject quiz.Subject, completedAt time.Time) ledger.Attempt {
	return ledger.Attempt{
		ID:      id,
		Subject: subject,
		Questions: []quiz.Question{{
			ID:           "q1",
			Prompt:       "2+2?",
			Options:      [quiz.OptionCount]string{"3", "4", "5", "6"},
			CorrectIndex: 1,
			Explanation:  "basic addition",
		}},
		Answers:          map[int]int{0: 1},
		Score:            100,
		CorrectAnswers:   1,
		TotalQuestions:   1,
		StartedAt:        completedAt.Add(-time.Minute),
		CompletedAt:      completedAt,
		TimeTakenSeconds: 60,
	}
}

func TestAttemptRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	subject := quiz.TopicSubject("arrays")

	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a1", "a2"} {
		if err := repo.CreateAttempt(ctx, sampleAttempt(id, subject, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	attempts, err := repo.ListAttempts(ctx, subject)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 2 || attempts[0].ID != "a1" || attempts[1].ID != "a2" {
		t.Fatalf("attempts = %v, want [a1 a2] in completion order", attempts)
	}

	got := attempts[0]
	if got.Score != 100 || got.CorrectAnswers != 1 || got.TimeTakenSeconds != 60 {
		t.Errorf("attempt fields = %+v", got)
	}
	if len(got.Questions) != 1 || got.Questions[0].CorrectIndex != 1 {
		t.Errorf("questions did not survive round trip: %+v", got.Questions)
	}
	if got.Answers[0] != 1 {
		t.Errorf("answers = %v, want {0:1}", got.Answers)
	}
	if !got.CompletedAt.Equal(base) {
		t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, base)
	}

	single, err := repo.GetAttempt(ctx, "a2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if single.ID != "a2" {
		t.Errorf("GetAttempt = %s, want a2", single.ID)
	}
}

func TestAttemptsIsolatedBySubject(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	at := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	if err := repo.CreateAttempt(ctx, sampleAttempt("t1", quiz.TopicSubject("arrays"), at)); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateAttempt(ctx, sampleAttempt("c1", quiz.ContentSubject("arrays"), at)); err != nil {
		t.Fatal(err)
	}

	topicAttempts, err := repo.ListAttempts(ctx, quiz.TopicSubject("arrays"))
	if err != nil {
		t.Fatal(err)
	}
	if len(topicAttempts) != 1 || topicAttempts[0].ID != "t1" {
		t.Errorf("topic attempts = %v, want [t1]", topicAttempts)
	}
}

func TestListAllAttemptsSpansSubjectKinds(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	if err := repo.CreateAttempt(ctx, sampleAttempt("t1", quiz.TopicSubject("arrays"), base.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateAttempt(ctx, sampleAttempt("c1", quiz.ContentSubject("notes-1"), base)); err != nil {
		t.Fatal(err)
	}

	attempts, err := repo.ListAllAttempts(ctx)
	if err != nil {
		t.Fatalf("ListAllAttempts() error: %v", err)
	}
	if len(attempts) != 2 || attempts[0].ID != "c1" || attempts[1].ID != "t1" {
		t.Fatalf("attempts = %v, want [c1 t1] in completion order", attempts)
	}
	if attempts[0].Subject != quiz.ContentSubject("notes-1") {
		t.Errorf("content subject = %+v, want content/notes-1", attempts[0].Subject)
	}
	if attempts[1].Subject != quiz.TopicSubject("arrays") {
		t.Errorf("topic subject = %+v, want topic/arrays", attempts[1].Subject)
	}
}

func TestStreakRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Streaks()
	ctx := context.Background()

	// Fresh store yields the zero state.
	state, err := repo.LoadStreak(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if state.Streak != 0 || !state.LastActivityDate.IsZero() {
		t.Fatalf("empty streak = %+v, want zero state", state)
	}

	want := streak.State{Streak: 4, LastActivityDate: streak.Date{Year: 2024, Month: time.January, Day: 10}}
	if err := repo.UpdateStreak(ctx, want); err != nil {
		t.Fatalf("update: %v", err)
	}

	state, err = repo.LoadStreak(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state != want {
		t.Errorf("streak = %+v, want %+v", state, want)
	}

	// Single-row upsert: a second write overwrites, never accumulates.
	want.Streak = 5
	want.LastActivityDate.Day = 11
	if err := repo.UpdateStreak(ctx, want); err != nil {
		t.Fatal(err)
	}
	state, err = repo.LoadStreak(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if state != want {
		t.Errorf("streak after second write = %+v, want %+v", state, want)
	}
	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM streak").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("streak table holds %d rows, want 1", count)
	}
}

func TestResetWipesLearnerData(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Topics().UpdateTopicProgress(ctx, topic.Topic{
		ID:     "arrays",
		Status: topic.StatusInProgress,
		Score:  40,
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Streaks().UpdateStreak(ctx, streak.State{
		Streak:           3,
		LastActivityDate: streak.Date{Year: 2026, Month: time.August, Day: 27},
	}); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	topics, err := s.Topics().ListTopics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 0 {
		t.Errorf("reset left %d topic rows", len(topics))
	}
	state, err := s.Streaks().LoadStreak(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if state.Streak != 0 {
		t.Errorf("reset left streak %d", state.Streak)
	}
}
