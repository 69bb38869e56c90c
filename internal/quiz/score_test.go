package quiz

import "testing"

func sampleQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:           string(rune('a' + i)),
			Prompt:       "q",
			Options:      [OptionCount]string{"w", "x", "y", "z"},
			CorrectIndex: i % OptionCount,
		}
	}
	return qs
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds half up
		{3, 8, 38}, // 37.5 rounds half up
		{4, 5, 80},
		{0, 0, 0},
		{1, 0, 0},
	}

	for _, tt := range tests {
		got := Percentage(tt.correct, tt.total)
		if got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	qs := sampleQuestions(4)

	allCorrect := map[int]int{}
	for i, q := range qs {
		allCorrect[i] = q.CorrectIndex
	}
	if got := Score(qs, allCorrect); got != 100 {
		t.Errorf("all-correct Score() = %d, want 100", got)
	}

	if got := Score(qs, map[int]int{}); got != 0 {
		t.Errorf("unanswered Score() = %d, want 0", got)
	}

	if got := Score(nil, nil); got != 0 {
		t.Errorf("empty Score() = %d, want 0", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	qs := sampleQuestions(3)
	answers := map[int]int{0: qs[0].CorrectIndex, 1: (qs[1].CorrectIndex + 1) % OptionCount}

	first := Score(qs, answers)
	for range 10 {
		if got := Score(qs, answers); got != first {
			t.Fatalf("Score() not deterministic: %d then %d", first, got)
		}
	}
	if first < 0 || first > 100 {
		t.Errorf("Score() = %d outside [0, 100]", first)
	}
}

func TestCorrectCountTreatsUnansweredAsIncorrect(t *testing.T) {
	qs := sampleQuestions(3)
	answers := map[int]int{
		0: qs[0].CorrectIndex,                    // correct
		1: (qs[1].CorrectIndex + 1) % OptionCount, // wrong
		// 2 left unanswered
	}

	if got := CorrectCount(qs, answers); got != 1 {
		t.Errorf("CorrectCount() = %d, want 1", got)
	}
	if got := Score(qs, answers); got != 33 {
		t.Errorf("Score() = %d, want 33", got)
	}
}

func TestIsMastery(t *testing.T) {
	tests := []struct {
		score int
		want  bool
	}{
		{79, false},
		{80, true},
		{100, true},
		{0, false},
	}
	for _, tt := range tests {
		if got := IsMastery(tt.score); got != tt.want {
			t.Errorf("IsMastery(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
