package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustExpertise_Boundaries(t *testing.T) {
	assert.Equal(t, 5, AdjustExpertise(4, 90))
	assert.Equal(t, 5, AdjustExpertise(4, 92))
	assert.Equal(t, 3, AdjustExpertise(4, 50))
	assert.Equal(t, 4, AdjustExpertise(4, 50.1))
	assert.Equal(t, 4, AdjustExpertise(4, 89.9))
}

func TestAdjustExpertise_ClampsAtCeilingAndFloor(t *testing.T) {
	assert.Equal(t, 10, AdjustExpertise(10, 100))
	assert.Equal(t, 1, AdjustExpertise(1, 45))
	assert.Equal(t, 1, AdjustExpertise(1, 0))
}

func TestAdjustExpertise_UnchangedBranchIsIdempotent(t *testing.T) {
	for _, score := range []float64{51, 60, 75, 89} {
		level := 6
		for i := 0; i < 5; i++ {
			level = AdjustExpertise(level, score)
		}
		assert.Equal(t, 6, level, "score %v", score)
	}
}

func TestAdjustExpertise_NeverLeavesRange(t *testing.T) {
	for level := MinExpertise; level <= MaxExpertise; level++ {
		for score := 0.0; score <= 100; score += 5 {
			got := AdjustExpertise(level, score)
			assert.GreaterOrEqual(t, got, MinExpertise)
			assert.LessOrEqual(t, got, MaxExpertise)
		}
	}
}

func quizOf(correct ...int) []QuizItem {
	items := make([]QuizItem, len(correct))
	for i, c := range correct {
		items[i] = QuizItem{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: c}
	}
	return items
}

func TestScoreQuiz_RealDivision(t *testing.T) {
	items := quizOf(0, 1, 2)
	answers := map[int]int{0: 0, 1: 3, 2: 2}

	assert.Equal(t, float64(2)/float64(3)*100, ScoreQuiz(items, answers))
}

func TestScoreQuiz_EmptyQuizScoresZero(t *testing.T) {
	assert.Equal(t, 0.0, ScoreQuiz(nil, nil))
	assert.Equal(t, 0.0, ScoreQuiz([]QuizItem{}, map[int]int{0: 1}))
}

func TestScoreQuiz_UnansweredCountsAsWrong(t *testing.T) {
	items := quizOf(1, 1, 1, 1, 1)
	assert.Equal(t, 40.0, ScoreQuiz(items, map[int]int{0: 1, 3: 1}))
}

func TestScoreQuiz_AllCorrect(t *testing.T) {
	items := quizOf(2, 0, 1, 3, 2)
	answers := map[int]int{0: 2, 1: 0, 2: 1, 3: 3, 4: 2}
	assert.Equal(t, 100.0, ScoreQuiz(items, answers))
}
