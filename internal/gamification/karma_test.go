package gamification

import (
	"testing"

	"github.com/ecolearn/backend/internal/models"
)

func TestQuizKarma_DailyCategory(t *testing.T) {
	earned, deducted := QuizKarma(models.CategoryDaily, 4, 1)

	if earned != 40 {
		t.Errorf("expected 40 earned for 4 correct answers, got %d", earned)
	}
	if deducted != 0 {
		t.Errorf("expected no deduction for daily quiz, got %d", deducted)
	}
}

func TestQuizKarma_KeechakCategory(t *testing.T) {
	earned, deducted := QuizKarma(models.CategoryKeechak, 1, 2)

	if earned != 0 {
		t.Errorf("keechak quiz should earn nothing, got %d", earned)
	}
	if deducted != 20 {
		t.Errorf("expected 20 deducted for 2 wrong answers, got %d", deducted)
	}
}

func TestQuizKarma_PerfectKeechak(t *testing.T) {
	earned, deducted := QuizKarma(models.CategoryKeechak, 5, 0)

	if earned != 0 || deducted != 0 {
		t.Errorf("perfect keechak should be karma-neutral, got earned=%d deducted=%d", earned, deducted)
	}
}

func TestQuizKarma_UnknownCategoryRewards(t *testing.T) {
	earned, deducted := QuizKarma("weekly", 3, 2)

	if earned != 30 {
		t.Errorf("unknown categories reward like daily, got earned=%d", earned)
	}
	if deducted != 0 {
		t.Errorf("unknown categories should not deduct, got %d", deducted)
	}
}

func TestQuestPoints(t *testing.T) {
	tests := []struct {
		points int
		want   int64
	}{
		{0, DefaultQuestPoints},
		{-5, DefaultQuestPoints},
		{1, 1},
		{25, 25},
	}

	for _, tt := range tests {
		got := QuestPoints(tt.points)
		if got != tt.want {
			t.Errorf("QuestPoints(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}
