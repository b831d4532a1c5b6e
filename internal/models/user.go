package models

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type SignupRequest struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Gender   *string `json:"gender,omitempty"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	SchoolID int64   `json:"school_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login response. ExpiresIn is in seconds.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	NewBadges   []string `json:"new_badges,omitempty"`
}

type SignupResponse struct {
	User      UserProfile `json:"user"`
	NewBadges []string    `json:"new_badges,omitempty"`
}

// UserProfile is the /me projection: user fields plus the joined school
// sub-object, unlocked badges, and leaderboard rank.
type UserProfile struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Age             int         `json:"age"`
	Gender          *string     `json:"gender"`
	Phone           string      `json:"phone"`
	Email           string      `json:"email"`
	KarmaPoints     int64       `json:"karma_points"`
	School          SchoolInfo  `json:"school"`
	LearningStreak  int         `json:"learning_streak"`
	LoginDates      []string    `json:"login_dates"`
	Role            string      `json:"role"`
	Badges          []BadgeInfo `json:"badges"`
	LeaderboardRank int         `json:"leaderboard_rank"`
}

type SchoolInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	City string `json:"city"`
	Type string `json:"type"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
