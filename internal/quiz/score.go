package quiz

// MasteryThreshold is the minimum percentage score that masters a topic.
// Consumed by the engine's completion path; exported so tests and callers
// never re-derive it.
const MasteryThreshold = 80

// CorrectCount returns how many recorded answers match their question's
// correct option. Unanswered questions count as incorrect.
func CorrectCount(questions []Question, answers map[int]int) int {
	correct := 0
	for i, q := range questions {
		if a, ok := answers[i]; ok && a == q.CorrectIndex {
			correct++
		}
	}
	return correct
}

// Score returns the percentage score for the given answer set, as an
// integer in [0, 100] with half-up rounding. An empty question set scores 0.
func Score(questions []Question, answers map[int]int) int {
	if len(questions) == 0 {
		return 0
	}
	return Percentage(CorrectCount(questions, answers), len(questions))
}

// Percentage computes round-half-up of correct/total*100 in integer
// arithmetic, avoiding float rounding surprises at .5 boundaries.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (correct*100*2 + total) / (total * 2)
}

// IsMastery reports whether a score crosses the mastery threshold.
func IsMastery(score int) bool {
	return score >= MasteryThreshold
}
