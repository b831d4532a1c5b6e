package learning

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ecolearn/backend/internal/models"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Content lookups ─────────────────────────────────────

func (s *Store) GetQuiz(quizID int64) (*models.Quiz, error) {
	var q models.Quiz
	var questionsJSON []byte
	err := s.db.QueryRow(
		`SELECT id, title, category, day_id, points, questions, created_at
		 FROM quizzes WHERE id = $1`,
		quizID,
	).Scan(&q.ID, &q.Title, &q.Category, &q.DayID, &q.Points, &questionsJSON, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
		return nil, fmt.Errorf("decode quiz questions: %w", err)
	}
	return &q, nil
}

func (s *Store) GetLesson(lessonID int64) (*models.Lesson, error) {
	var l models.Lesson
	err := s.db.QueryRow(
		`SELECT id, title, type, level, day_id, points, content, created_at
		 FROM lessons WHERE id = $1`,
		lessonID,
	).Scan(&l.ID, &l.Title, &l.Type, &l.Level, &l.DayID, &l.Points, &l.Content, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) ListLessonsByDay(dayID int) ([]models.Lesson, error) {
	rows, err := s.db.Query(
		`SELECT id, title, type, level, day_id, points, content, created_at
		 FROM lessons WHERE day_id = $1 ORDER BY id`,
		dayID,
	)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Type, &l.Level, &l.DayID, &l.Points, &l.Content, &l.CreatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (s *Store) ListQuizzesByDay(dayID int) ([]models.Quiz, error) {
	rows, err := s.db.Query(
		`SELECT id, title, category, day_id, points, questions, created_at
		 FROM quizzes WHERE day_id = $1 ORDER BY id`,
		dayID,
	)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var q models.Quiz
		var questionsJSON []byte
		if err := rows.Scan(&q.ID, &q.Title, &q.Category, &q.DayID, &q.Points, &questionsJSON, &q.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
			return nil, fmt.Errorf("decode quiz questions: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (s *Store) CreateQuiz(quiz *models.Quiz) (int64, error) {
	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return 0, fmt.Errorf("encode quiz questions: %w", err)
	}
	var id int64
	err = s.db.QueryRow(
		`INSERT INTO quizzes (title, category, day_id, points, questions)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		quiz.Title, quiz.Category, quiz.DayID, quiz.Points, questionsJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create quiz: %w", err)
	}
	return id, nil
}

func (s *Store) GetUserRole(userID int64) (string, error) {
	var role string
	err := s.db.QueryRow(`SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
	return role, err
}

// ── Completion tracking ─────────────────────────────────

// RecordQuizSubmission atomically marks the quiz completed, appends the
// history record, and applies the signed karma delta. Returns false
// with no side effects when a completion record already exists; the
// unique constraint on user_quests closes the double-submit race.
func (s *Store) RecordQuizSubmission(userID, quizID int64, answers []int, results []models.QuestionResult, marks, total int, karmaDelta int64) (bool, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return false, fmt.Errorf("encode answers: %w", err)
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return false, fmt.Errorf("encode results: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin submission: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO user_quests (user_id, quest_type, quest_id) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, quest_type, quest_id) DO NOTHING`,
		userID, models.QuestTypeQuiz, quizID,
	)
	if err != nil {
		return false, fmt.Errorf("mark quiz completed: %w", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return false, err
	} else if rows == 0 {
		return false, nil
	}

	if _, err := tx.Exec(
		`INSERT INTO quiz_history (user_id, quiz_id, answers, results, marks, total)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, quizID, answersJSON, resultsJSON, marks, total,
	); err != nil {
		return false, fmt.Errorf("append quiz history: %w", err)
	}

	if karmaDelta != 0 {
		if _, err := tx.Exec(
			`UPDATE users SET karma_points = karma_points + $2, updated_at = NOW() WHERE id = $1`,
			userID, karmaDelta,
		); err != nil {
			return false, fmt.Errorf("apply quiz karma: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit submission: %w", err)
	}
	return true, nil
}

// RecordQuestCompletion atomically creates the completion record and
// awards the activity's karma. Returns false when already completed.
func (s *Store) RecordQuestCompletion(userID int64, questType string, questID int64, proofURL *string, karma int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin completion: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO user_quests (user_id, quest_type, quest_id, proof_url) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, quest_type, quest_id) DO NOTHING`,
		userID, questType, questID, proofURL,
	)
	if err != nil {
		return false, fmt.Errorf("mark quest completed: %w", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return false, err
	} else if rows == 0 {
		return false, nil
	}

	if _, err := tx.Exec(
		`UPDATE users SET karma_points = karma_points + $2, updated_at = NOW() WHERE id = $1`,
		userID, karma,
	); err != nil {
		return false, fmt.Errorf("apply quest karma: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit completion: %w", err)
	}
	return true, nil
}

// GetCompletedQuests returns which of the given lesson and quiz ids the
// user has completed, keyed by quest type.
func (s *Store) GetCompletedQuests(userID int64, lessonIDs, quizIDs []int64) (map[string]map[int64]bool, error) {
	completed := map[string]map[int64]bool{
		models.QuestTypeLesson: {},
		models.QuestTypeQuiz:   {},
	}

	rows, err := s.db.Query(
		`SELECT quest_type, quest_id FROM user_quests
		 WHERE user_id = $1
		   AND ((quest_type = 'lesson' AND quest_id = ANY($2))
		     OR (quest_type = 'quiz' AND quest_id = ANY($3)))`,
		userID, pq.Array(lessonIDs), pq.Array(quizIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("get completed quests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var questType string
		var questID int64
		if err := rows.Scan(&questType, &questID); err != nil {
			return nil, err
		}
		if m, ok := completed[questType]; ok {
			m[questID] = true
		}
	}
	return completed, rows.Err()
}
