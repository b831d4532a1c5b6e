package gamification

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ecolearn/backend/internal/models"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Login dates ─────────────────────────────────────────

// InsertLoginDate records an activity date for a user. Returns true when
// the date was not already present; the unique constraint makes this the
// once-per-day gate for the login bonus.
func (s *Store) InsertLoginDate(userID int64, date time.Time) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO user_login_dates (user_id, login_date) VALUES ($1, $2)
		 ON CONFLICT (user_id, login_date) DO NOTHING`,
		userID, date.UTC().Format("2006-01-02"),
	)
	if err != nil {
		return false, fmt.Errorf("insert login date: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Store) GetLoginDates(userID int64) ([]time.Time, error) {
	rows, err := s.db.Query(
		`SELECT login_date FROM user_login_dates WHERE user_id = $1 ORDER BY login_date`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get login dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// ── Streak & karma ──────────────────────────────────────

func (s *Store) SetLearningStreak(userID int64, streak int) error {
	_, err := s.db.Exec(
		`UPDATE users SET learning_streak = $2, updated_at = NOW() WHERE id = $1`,
		userID, streak,
	)
	return err
}

// AddKarma applies a signed delta as a single atomic increment so
// concurrent submissions never lose updates.
func (s *Store) AddKarma(userID int64, delta int64) error {
	_, err := s.db.Exec(
		`UPDATE users SET karma_points = karma_points + $2, updated_at = NOW() WHERE id = $1`,
		userID, delta,
	)
	return err
}

func (s *Store) GetKarmaAndStreak(userID int64) (int64, int, error) {
	var karma int64
	var streak int
	err := s.db.QueryRow(
		`SELECT karma_points, learning_streak FROM users WHERE id = $1`,
		userID,
	).Scan(&karma, &streak)
	if err != nil {
		return 0, 0, fmt.Errorf("get karma and streak: %w", err)
	}
	return karma, streak, nil
}

// ── Badges ──────────────────────────────────────────────

func (s *Store) GetUnlockedBadgeNames(userID int64) (map[string]bool, error) {
	rows, err := s.db.Query(
		`SELECT b.name FROM user_badges ub
		 JOIN badges b ON b.id = ub.badge_id
		 WHERE ub.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get unlocked badges: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		unlocked[name] = true
	}
	return unlocked, rows.Err()
}

func (s *Store) FindBadgesByName(names []string) (map[string]models.Badge, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, image_url FROM badges WHERE name = ANY($1)`,
		pq.Array(names),
	)
	if err != nil {
		return nil, fmt.Errorf("find badges: %w", err)
	}
	defer rows.Close()

	badges := make(map[string]models.Badge)
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.ImageURL); err != nil {
			return nil, err
		}
		badges[b.Name] = b
	}
	return badges, rows.Err()
}

// UnlockBadge creates the unlock record. Returns true only when this
// call inserted the row, so concurrent evaluations report a badge as
// newly awarded exactly once.
func (s *Store) UnlockBadge(userID, badgeID int64) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO user_badges (user_id, badge_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, badge_id) DO NOTHING`,
		userID, badgeID,
	)
	if err != nil {
		return false, fmt.Errorf("unlock badge: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Store) GetUserBadges(userID int64) ([]models.BadgeInfo, error) {
	rows, err := s.db.Query(
		`SELECT b.name, b.image_url, ub.unlocked_at
		 FROM user_badges ub
		 JOIN badges b ON b.id = ub.badge_id
		 WHERE ub.user_id = $1
		 ORDER BY ub.unlocked_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get user badges: %w", err)
	}
	defer rows.Close()

	var badges []models.BadgeInfo
	for rows.Next() {
		var b models.BadgeInfo
		if err := rows.Scan(&b.Name, &b.ImageURL, &b.UnlockedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// ── Leaderboard ─────────────────────────────────────────

func (s *Store) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, u.karma_points,
		        ROW_NUMBER() OVER (ORDER BY u.karma_points DESC, u.id) AS rank
		 FROM users u
		 ORDER BY u.karma_points DESC, u.id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.KarmaPoints, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetUserRank(userID int64) (int, error) {
	var rank int
	err := s.db.QueryRow(
		`SELECT COALESCE(
		    (SELECT rank FROM (
		        SELECT id, ROW_NUMBER() OVER (ORDER BY karma_points DESC, id) AS rank
		        FROM users
		    ) r WHERE r.id = $1),
		    0
		)`,
		userID,
	).Scan(&rank)
	return rank, err
}
