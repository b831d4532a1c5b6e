package models

import "time"

// ── Reference & join rows ─────────────────────────────────

type Badge struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// BadgeInfo is the joined badge projection returned on user profiles.
type BadgeInfo struct {
	Name       string    `json:"name"`
	ImageURL   string    `json:"image_url"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Completion categories in user_quests. At most one row exists per
// (user, quest_type, quest_id); it is never updated after creation.
const (
	QuestTypeLesson = "lesson"
	QuestTypeQuiz   = "quiz"
)

// ── Quiz submission ───────────────────────────────────────

type QuizSubmitRequest struct {
	QuizID  int64 `json:"quiz_id"`
	Answers []int `json:"answers"`
}

type QuestionResult struct {
	Question  string `json:"question"`
	Selected  int    `json:"selected"`
	Correct   int    `json:"correct"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizSubmitResponse struct {
	Marks           int              `json:"marks"`
	Total           int              `json:"total"`
	Results         []QuestionResult `json:"results"`
	KarmaEarned     int64            `json:"karma_earned"`
	KarmaDeducted   int64            `json:"karma_deducted"`
	NewBadges       []string         `json:"new_badges"`
	KeechakMessages []string         `json:"keechak_messages,omitempty"`
}

// ── Lesson / quest completion ─────────────────────────────

type CompleteRequest struct {
	QuestID  int64   `json:"quest_id"`
	ProofURL *string `json:"proof_url,omitempty"`
}

type CompleteResponse struct {
	Success     bool     `json:"success"`
	KarmaEarned int64    `json:"karma_earned"`
	NewBadges   []string `json:"new_badges"`
}

// ── Leaderboard ───────────────────────────────────────────

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"user_id"`
	Name          string `json:"name"`
	KarmaPoints   int64  `json:"karma_points"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type BadgesResponse struct {
	Badges []BadgeInfo `json:"badges"`
}
