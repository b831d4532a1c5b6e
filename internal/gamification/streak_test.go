package gamification

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestUpdateStreak_FirstLogin(t *testing.T) {
	got := UpdateStreak(nil, day(0))

	if got.Streak != 1 {
		t.Errorf("expected streak 1 on first login, got %d", got.Streak)
	}
	if !got.NewDay {
		t.Error("expected NewDay true on first login")
	}
	if len(got.Dates) != 1 {
		t.Errorf("expected 1 date, got %d", len(got.Dates))
	}
}

func TestUpdateStreak_SameDayIdempotent(t *testing.T) {
	first := UpdateStreak(nil, day(0))
	second := UpdateStreak(first.Dates, day(0))

	if second.Streak != first.Streak {
		t.Errorf("same-day repeat changed streak: %d → %d", first.Streak, second.Streak)
	}
	if second.NewDay {
		t.Error("expected NewDay false on same-day repeat")
	}
	if len(second.Dates) != len(first.Dates) {
		t.Errorf("same-day repeat changed date count: %d → %d", len(first.Dates), len(second.Dates))
	}
}

func TestUpdateStreak_ConsecutiveDays(t *testing.T) {
	prior := []time.Time{day(-2), day(-1)}

	got := UpdateStreak(prior, day(0))
	if got.Streak != 3 {
		t.Errorf("expected streak 3 for three consecutive days, got %d", got.Streak)
	}
	if !got.NewDay {
		t.Error("expected NewDay true")
	}
}

func TestUpdateStreak_GapResets(t *testing.T) {
	// Active two days ago but not yesterday.
	prior := []time.Time{day(-5), day(-4), day(-2)}

	got := UpdateStreak(prior, day(0))
	if got.Streak != 1 {
		t.Errorf("expected streak 1 after a gap, got %d", got.Streak)
	}
}

func TestUpdateStreak_IgnoresTimeOfDay(t *testing.T) {
	prior := []time.Time{day(-1).Add(23*time.Hour + 59*time.Minute)}

	got := UpdateStreak(prior, day(0).Add(8*time.Hour))
	if got.Streak != 2 {
		t.Errorf("expected streak 2 regardless of time of day, got %d", got.Streak)
	}
}

func TestUpdateStreak_DatesSortedAscending(t *testing.T) {
	prior := []time.Time{day(-1), day(-5), day(-3)}

	got := UpdateStreak(prior, day(0))
	for i := 1; i < len(got.Dates); i++ {
		if !got.Dates[i-1].Before(got.Dates[i]) {
			t.Fatalf("dates not strictly ascending at index %d: %v", i, got.Dates)
		}
	}
}

func TestStreak_ReadOnly(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"today only", []time.Time{day(0)}, 1},
		{"three days", []time.Time{day(-2), day(-1), day(0)}, 3},
		{"missed today", []time.Time{day(-2), day(-1)}, 0},
		{"gap in middle", []time.Time{day(-3), day(-1), day(0)}, 2},
	}

	for _, tt := range tests {
		got := Streak(tt.dates, day(0))
		if got != tt.want {
			t.Errorf("%s: Streak() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
