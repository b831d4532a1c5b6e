package learning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ecolearn/backend/internal/gamification"
	"github.com/ecolearn/backend/internal/generator"
	"github.com/ecolearn/backend/internal/models"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestNotFound    = errors.New("quest not found")
	ErrAlreadyCompleted = errors.New("already completed")
	ErrForbidden        = errors.New("teacher role required")
)

type Service struct {
	store     *Store
	gam       *gamification.Service
	generator *generator.Generator
}

func NewService(store *Store, gam *gamification.Service, gen *generator.Generator) *Service {
	return &Service{store: store, gam: gam, generator: gen}
}

// GenerateQuiz AI-generates a quiz on a topic and stores it. Restricted
// to teacher accounts.
func (s *Service) GenerateQuiz(ctx context.Context, userID int64, req models.GenerateQuizRequest) (*models.Quiz, error) {
	role, err := s.store.GetUserRole(userID)
	if err != nil {
		return nil, fmt.Errorf("load user role: %w", err)
	}
	if role != models.RoleTeacher {
		return nil, ErrForbidden
	}

	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}
	if req.Category == "" {
		req.Category = models.CategoryDaily
	}
	if req.DayID < 1 || req.DayID > 7 {
		req.DayID = isoWeekday(time.Now())
	}

	questions, err := s.generator.GenerateQuiz(ctx, req.Topic, req.NumQuestions)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	quiz := &models.Quiz{
		Title:     req.Topic,
		Category:  req.Category,
		DayID:     req.DayID,
		Points:    req.Points,
		Questions: questions,
	}
	id, err := s.store.CreateQuiz(quiz)
	if err != nil {
		return nil, err
	}
	quiz.ID = id
	return quiz, nil
}

// SubmitQuiz grades a submission and runs the reward pipeline: validate
// → grade → atomically complete + record history + apply karma → badge
// sync. A repeated submission for the same (user, quiz) pair is
// rejected with ErrAlreadyCompleted and changes nothing.
func (s *Service) SubmitQuiz(userID int64, req models.QuizSubmitRequest, now time.Time) (*models.QuizSubmitResponse, error) {
	quiz, err := s.store.GetQuiz(req.QuizID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}

	grade, err := Grade(quiz.Questions, req.Answers)
	if err != nil {
		return nil, err
	}

	earned, deducted := gamification.QuizKarma(quiz.Category, grade.Correct, grade.Wrong)

	completed, err := s.store.RecordQuizSubmission(
		userID, quiz.ID, req.Answers, grade.Results, grade.Correct, len(quiz.Questions), earned-deducted,
	)
	if err != nil {
		return nil, fmt.Errorf("record submission: %w", err)
	}
	if !completed {
		return nil, ErrAlreadyCompleted
	}

	newBadges, err := s.gam.SyncBadges(userID)
	if err != nil {
		log.Printf("[learning] badge sync failed for user %d: %v", userID, err)
		newBadges = nil
	}
	if newBadges == nil {
		newBadges = []string{}
	}

	resp := &models.QuizSubmitResponse{
		Marks:         grade.Correct,
		Total:         len(quiz.Questions),
		Results:       grade.Results,
		KarmaEarned:   earned,
		KarmaDeducted: deducted,
		NewBadges:     newBadges,
	}

	// The Keechak mascot taunts weekend players.
	if isWeekend(now) {
		resp.KeechakMessages = keechakMessages(grade.Results)
	}

	return resp, nil
}

// CompleteQuest marks a lesson (or quiz) as completed and awards its
// point value. Lessons are resolved first, matching the original
// content layout where both share an id space.
func (s *Service) CompleteQuest(userID int64, req models.CompleteRequest) (*models.CompleteResponse, error) {
	questType := models.QuestTypeLesson
	var points int64

	lesson, err := s.store.GetLesson(req.QuestID)
	switch {
	case err == nil:
		points = gamification.QuestPoints(lesson.Points)
	case errors.Is(err, sql.ErrNoRows):
		quiz, qerr := s.store.GetQuiz(req.QuestID)
		if errors.Is(qerr, sql.ErrNoRows) {
			return nil, ErrQuestNotFound
		}
		if qerr != nil {
			return nil, fmt.Errorf("load quest: %w", qerr)
		}
		questType = models.QuestTypeQuiz
		points = gamification.QuestPoints(quiz.Points)
	default:
		return nil, fmt.Errorf("load quest: %w", err)
	}

	completed, err := s.store.RecordQuestCompletion(userID, questType, req.QuestID, req.ProofURL, points)
	if err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	if !completed {
		return nil, ErrAlreadyCompleted
	}

	newBadges, err := s.gam.SyncBadges(userID)
	if err != nil {
		log.Printf("[learning] badge sync failed for user %d: %v", userID, err)
		newBadges = nil
	}
	if newBadges == nil {
		newBadges = []string{}
	}

	return &models.CompleteResponse{
		Success:     true,
		KarmaEarned: points,
		NewBadges:   newBadges,
	}, nil
}

// GetContent lists the lessons and quizzes for a day, flagged with the
// caller's completion status. Quizzes are served without answer keys.
func (s *Service) GetContent(userID int64, dayID int, now time.Time) (*models.ContentResponse, error) {
	if dayID <= 0 || dayID > 7 {
		dayID = isoWeekday(now)
	}

	lessons, err := s.store.ListLessonsByDay(dayID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	quizzes, err := s.store.ListQuizzesByDay(dayID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}

	lessonIDs := make([]int64, 0, len(lessons))
	for _, l := range lessons {
		lessonIDs = append(lessonIDs, l.ID)
	}
	quizIDs := make([]int64, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}

	completed, err := s.store.GetCompletedQuests(userID, lessonIDs, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	content := make([]models.ContentItem, 0, len(lessons)+len(quizzes))
	for _, l := range lessons {
		content = append(content, models.ContentItem{
			ID:        l.ID,
			Title:     l.Title,
			Type:      models.QuestTypeLesson,
			Level:     l.Level,
			Points:    l.Points,
			Content:   l.Content,
			Completed: completed[models.QuestTypeLesson][l.ID],
		})
	}
	for _, q := range quizzes {
		questions := make([]models.ContentQuestion, 0, len(q.Questions))
		for _, question := range q.Questions {
			questions = append(questions, models.ContentQuestion{
				Question: question.Question,
				Options:  question.Options,
			})
		}
		content = append(content, models.ContentItem{
			ID:        q.ID,
			Title:     q.Title,
			Type:      models.QuestTypeQuiz,
			Category:  q.Category,
			Points:    q.Points,
			Questions: questions,
			Completed: completed[models.QuestTypeQuiz][q.ID],
		})
	}

	return &models.ContentResponse{DayID: dayID, Content: content}, nil
}

// isoWeekday returns Monday=1 .. Sunday=7 for the given time in UTC.
func isoWeekday(t time.Time) int {
	d := int(t.UTC().Weekday())
	if d == 0 {
		d = 7
	}
	return d
}

func isWeekend(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func keechakMessages(results []models.QuestionResult) []string {
	messages := make([]string, 0, len(results))
	for i, r := range results {
		if r.IsCorrect {
			messages = append(messages, fmt.Sprintf("Q%d: Correct! Keechak runs away!", i+1))
		} else {
			messages = append(messages, fmt.Sprintf("Q%d: Wrong! Keechak steals your karma!", i+1))
		}
	}
	return messages
}
