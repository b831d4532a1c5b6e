package models

import "time"

type School struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	City      string    `json:"city"`
	Kind      string    `json:"kind"` // "school" or "college"
	CreatedAt time.Time `json:"created_at"`
}

// Question is a single multiple-choice quiz question. Answer is the
// index into Options of the correct choice.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

type Quiz struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	DayID     int        `json:"day_id"`
	Points    int        `json:"points"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// Quiz categories. Keechak quizzes deduct karma for wrong answers and
// award nothing for correct ones.
const (
	CategoryDaily   = "daily"
	CategoryKeechak = "keechak"
)

type Lesson struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Level     string    `json:"level"`
	DayID     int       `json:"day_id"`
	Points    int       `json:"points"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentItem is one entry in the /learning/content listing: a lesson
// or a quiz, flagged with the caller's completion status. Quiz entries
// never carry correct-answer indices.
type ContentItem struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Type      string            `json:"type"` // "lesson" or "quiz"
	Category  string            `json:"category,omitempty"`
	Level     string            `json:"level,omitempty"`
	Points    int               `json:"points"`
	Content   string            `json:"content,omitempty"`
	Questions []ContentQuestion `json:"questions,omitempty"`
	Completed bool              `json:"completed"`
}

type ContentQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type ContentResponse struct {
	DayID   int           `json:"day_id"`
	Content []ContentItem `json:"content"`
}

type InstitutesResponse struct {
	Institutes []School `json:"institutes"`
}

// GenerateQuizRequest is the admin request to AI-generate a new quiz.
type GenerateQuizRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
	Category     string `json:"category"`
	DayID        int    `json:"day_id"`
	Points       int    `json:"points"`
}
