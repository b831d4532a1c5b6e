package learning

import (
	"errors"

	"github.com/ecolearn/backend/internal/models"
)

// ErrAnswerCountMismatch rejects a submission whose answer list does not
// line up with the quiz's questions. Nothing is graded or persisted.
var ErrAnswerCountMismatch = errors.New("number of answers does not match number of questions")

// GradeResult is the outcome of grading one submission.
type GradeResult struct {
	Results []models.QuestionResult
	Correct int
	Wrong   int
}

// Grade compares submitted option indices against the stored correct
// indices, position by position. A question is correct iff the indices
// match exactly; an out-of-range index is simply wrong. No partial
// credit.
func Grade(questions []models.Question, answers []int) (*GradeResult, error) {
	if len(answers) != len(questions) {
		return nil, ErrAnswerCountMismatch
	}

	result := &GradeResult{
		Results: make([]models.QuestionResult, 0, len(questions)),
	}
	for i, q := range questions {
		isCorrect := answers[i] == q.Answer
		if isCorrect {
			result.Correct++
		} else {
			result.Wrong++
		}
		result.Results = append(result.Results, models.QuestionResult{
			Question:  q.Question,
			Selected:  answers[i],
			Correct:   q.Answer,
			IsCorrect: isCorrect,
		})
	}
	return result, nil
}
