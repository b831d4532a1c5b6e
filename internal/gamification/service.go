package gamification

import (
	"fmt"
	"log"
	"time"

	"github.com/ecolearn/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// DailyActivity is the outcome of folding a login into the user's
// streak and karma state.
type DailyActivity struct {
	Streak       int
	BonusAwarded bool
	NewBadges    []string
}

// RecordDailyActivity runs the login path of the pipeline: record
// today's date, recompute the streak, grant the daily bonus when today
// was actually new, then re-evaluate badges. Safe to call repeatedly on
// the same day; the date-row insert gates the bonus.
func (s *Service) RecordDailyActivity(userID int64, now time.Time) (*DailyActivity, error) {
	newDay, err := s.store.InsertLoginDate(userID, now)
	if err != nil {
		return nil, fmt.Errorf("record login date: %w", err)
	}

	dates, err := s.store.GetLoginDates(userID)
	if err != nil {
		return nil, fmt.Errorf("load login dates: %w", err)
	}

	update := UpdateStreak(dates, now)
	if err := s.store.SetLearningStreak(userID, update.Streak); err != nil {
		return nil, fmt.Errorf("update streak: %w", err)
	}

	if newDay {
		if err := s.store.AddKarma(userID, DailyLoginBonus); err != nil {
			return nil, fmt.Errorf("award daily bonus: %w", err)
		}
	}

	newBadges, err := s.SyncBadges(userID)
	if err != nil {
		// Unlocks are idempotent; the next evaluation picks them up.
		log.Printf("[gamification] badge sync failed for user %d: %v", userID, err)
		newBadges = nil
	}

	return &DailyActivity{
		Streak:       update.Streak,
		BonusAwarded: newDay,
		NewBadges:    newBadges,
	}, nil
}

// SyncBadges re-evaluates the rule table against the user's current
// karma and streak and unlocks anything newly qualifying. Names without
// a badge reference row are skipped. Calling twice with unchanged state
// returns an empty list the second time.
func (s *Service) SyncBadges(userID int64) ([]string, error) {
	karma, streak, err := s.store.GetKarmaAndStreak(userID)
	if err != nil {
		return nil, err
	}

	qualified := QualifiedBadges(karma, streak)
	if len(qualified) == 0 {
		return nil, nil
	}

	unlocked, err := s.store.GetUnlockedBadgeNames(userID)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range qualified {
		if !unlocked[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	badges, err := s.store.FindBadgesByName(missing)
	if err != nil {
		return nil, err
	}

	var newBadges []string
	for _, name := range missing {
		badge, ok := badges[name]
		if !ok {
			// Reference row absent — skip, not an error.
			continue
		}
		inserted, err := s.store.UnlockBadge(userID, badge.ID)
		if err != nil {
			return newBadges, err
		}
		if inserted {
			newBadges = append(newBadges, name)
		}
	}
	return newBadges, nil
}

// ── Profile helpers (delegate to store) ─────────────────

func (s *Service) UserBadges(userID int64) ([]models.BadgeInfo, error) {
	return s.store.GetUserBadges(userID)
}

func (s *Service) UserRank(userID int64) (int, error) {
	return s.store.GetUserRank(userID)
}

func (s *Service) LoginDates(userID int64) ([]time.Time, error) {
	return s.store.GetLoginDates(userID)
}

// AwardKarmaAndSync applies a signed karma delta and re-checks badges.
// Used by callers that do their own completion bookkeeping.
func (s *Service) AwardKarmaAndSync(userID int64, delta int64) ([]string, error) {
	if delta != 0 {
		if err := s.store.AddKarma(userID, delta); err != nil {
			return nil, fmt.Errorf("apply karma delta: %w", err)
		}
	}
	return s.SyncBadges(userID)
}
