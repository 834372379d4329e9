package quiz_service

import "github.com/QuangLP2607/DATN-final-sub001/internal/entity"

// ScoringPolicy turns per-question correctness into a score. The source
// systems disagree on the formula, so it stays configurable.
type ScoringPolicy string

const (
	// PolicyProportional: correctCount / totalQuestions * totalScore.
	PolicyProportional ScoringPolicy = "proportional"
	// PolicyWeighted: sum of the point values of correctly answered questions.
	PolicyWeighted ScoringPolicy = "weighted"
)

func (p ScoringPolicy) Score(quiz *entity.Quiz, correct []bool) (correctCount int, score float64) {
	for _, ok := range correct {
		if ok {
			correctCount++
		}
	}

	switch p {
	case PolicyWeighted:
		for i, ok := range correct {
			if ok {
				score += quiz.Questions[i].Points
			}
		}
	default:
		if len(quiz.Questions) > 0 {
			score = float64(correctCount) / float64(len(quiz.Questions)) * quiz.TotalScore
		}
	}

	return correctCount, score
}
