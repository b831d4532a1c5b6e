package learning

import (
	"errors"
	"testing"

	"github.com/ecolearn/backend/internal/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{Question: "Which gas do trees absorb?", Options: []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"}, Answer: 1},
		{Question: "Which bin takes glass?", Options: []string{"Green", "Blue", "Red", "Yellow"}, Answer: 0},
		{Question: "What powers solar panels?", Options: []string{"Wind", "Coal", "Sunlight", "Water"}, Answer: 2},
	}
}

func TestGrade_AllCorrect(t *testing.T) {
	got, err := Grade(sampleQuestions(), []int{1, 0, 2})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got.Correct != 3 || got.Wrong != 0 {
		t.Errorf("expected 3 correct 0 wrong, got %d/%d", got.Correct, got.Wrong)
	}
	for i, r := range got.Results {
		if !r.IsCorrect {
			t.Errorf("result %d: expected correct", i)
		}
	}
}

func TestGrade_Mixed(t *testing.T) {
	got, err := Grade(sampleQuestions(), []int{1, 3, 2})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got.Correct != 2 || got.Wrong != 1 {
		t.Errorf("expected 2 correct 1 wrong, got %d/%d", got.Correct, got.Wrong)
	}
	if got.Results[1].IsCorrect {
		t.Error("result 1: expected wrong")
	}
	if got.Results[1].Selected != 3 || got.Results[1].Correct != 0 {
		t.Errorf("result 1: selected=%d correct=%d, want 3 and 0", got.Results[1].Selected, got.Results[1].Correct)
	}
}

func TestGrade_AnswerCountMismatch(t *testing.T) {
	_, err := Grade(sampleQuestions(), []int{1, 0})
	if !errors.Is(err, ErrAnswerCountMismatch) {
		t.Fatalf("expected ErrAnswerCountMismatch, got: %v", err)
	}

	_, err = Grade(sampleQuestions(), []int{1, 0, 2, 3})
	if !errors.Is(err, ErrAnswerCountMismatch) {
		t.Fatalf("expected ErrAnswerCountMismatch for too many answers, got: %v", err)
	}
}

func TestGrade_OutOfRangeIndexIsWrong(t *testing.T) {
	got, err := Grade(sampleQuestions(), []int{9, -1, 2})
	if err != nil {
		t.Fatalf("out-of-range indices should grade, not error: %v", err)
	}

	if got.Correct != 1 || got.Wrong != 2 {
		t.Errorf("expected 1 correct 2 wrong, got %d/%d", got.Correct, got.Wrong)
	}
}

func TestGrade_EmptyQuiz(t *testing.T) {
	got, err := Grade(nil, nil)
	if err != nil {
		t.Fatalf("expected no error for empty quiz, got: %v", err)
	}
	if got.Correct != 0 || got.Wrong != 0 || len(got.Results) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}
