package domain

const (
	PromoteThreshold = 90.0
	DemoteThreshold  = 50.0
)

// AdjustExpertise applies the adaptive difficulty rule to a pre-session
// expertise level. Both the speculative prefetch and formal session
// completion must go through this function.
func AdjustExpertise(level int, score float64) int {
	level = ClampExpertise(level)
	switch {
	case score >= PromoteThreshold:
		return ClampExpertise(level + 1)
	case score <= DemoteThreshold:
		return ClampExpertise(level - 1)
	default:
		return level
	}
}

// ScoreQuiz returns the percentage of items whose chosen option equals the
// correct index. answers is sparse: a missing entry counts as wrong.
func ScoreQuiz(items []QuizItem, answers map[int]int) float64 {
	if len(items) == 0 {
		return 0
	}
	correct := 0
	for i, item := range items {
		if chosen, ok := answers[i]; ok && chosen == item.CorrectIndex {
			correct++
		}
	}
	return float64(correct) / float64(len(items)) * 100
}
