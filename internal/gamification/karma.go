package gamification

import "github.com/ecolearn/backend/internal/models"

// Karma point constants.
const (
	SignupBonus        = 50 // one-time, on account creation
	DailyLoginBonus    = 5  // at most once per distinct calendar date
	CorrectAnswerKarma = 10 // per correct answer, non-keechak quizzes
	WrongAnswerPenalty = 10 // per wrong answer, keechak quizzes only
	DefaultQuestPoints = 10 // lesson/quest completion fallback
)

// QuizKarma computes the karma delta for a graded quiz. Keechak quizzes
// only deduct for wrong answers; every other category only rewards
// correct ones. Balances are allowed to go negative, no floor applies.
func QuizKarma(category string, correct, wrong int) (earned, deducted int64) {
	if category == models.CategoryKeechak {
		return 0, int64(wrong) * WrongAnswerPenalty
	}
	return int64(correct) * CorrectAnswerKarma, 0
}

// QuestPoints returns the karma awarded for completing an activity,
// falling back to the default when the activity carries no point value.
func QuestPoints(points int) int64 {
	if points <= 0 {
		return DefaultQuestPoints
	}
	return int64(points)
}
