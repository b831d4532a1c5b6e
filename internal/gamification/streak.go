package gamification

import (
	"sort"
	"time"
)

// StreakUpdate is the result of folding today's activity into a user's
// login-date history.
type StreakUpdate struct {
	Dates  []time.Time // deduplicated calendar dates, ascending
	Streak int
	NewDay bool // today was not already in the set
}

// UpdateStreak inserts today into the prior activity-date set (a no-op
// when already present) and counts consecutive calendar days ending at
// today. Dates are compared at calendar-day granularity in UTC; the
// returned streak is always at least 1 because today is in the set.
func UpdateStreak(prior []time.Time, today time.Time) StreakUpdate {
	today = truncateDay(today)

	seen := make(map[time.Time]bool, len(prior)+1)
	for _, d := range prior {
		seen[truncateDay(d)] = true
	}

	newDay := !seen[today]
	seen[today] = true

	streak := 0
	for d := today; seen[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return StreakUpdate{Dates: dates, Streak: streak, NewDay: newDay}
}

// Streak counts consecutive calendar days present in dates, ending at
// today, without modifying the set.
func Streak(dates []time.Time, today time.Time) int {
	today = truncateDay(today)
	seen := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		seen[truncateDay(d)] = true
	}
	streak := 0
	for d := today; seen[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
