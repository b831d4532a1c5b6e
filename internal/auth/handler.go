package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ecolearn/backend/internal/gamification"
	"github.com/ecolearn/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecretOnce sync.Once
	jwtSecret     []byte
)

// SigningKey returns the HMAC signing key for auth tokens. It is
// resolved on first use, not at package init, so a key that main loads
// from .env during startup is honored.
func SigningKey() []byte {
	jwtSecretOnce.Do(func() {
		jwtSecret = []byte(signingKey())
	})
	return jwtSecret
}

func signingKey() string {
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		return v
	}
	return "change-this-secret-in-prod"
}

// tokenTTL returns the access-token lifetime, configurable via
// ACCESS_TOKEN_EXPIRE_MINUTES.
func tokenTTL() time.Duration {
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return 60 * time.Minute
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type Handler struct {
	db  *sql.DB
	gam *gamification.Service
}

func NewHandler(db *sql.DB, gam *gamification.Service) *Handler {
	return &Handler{db: db, gam: gam}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if msg := validateSignup(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg})
		return
	}

	// The referenced school or college must exist.
	var schoolExists bool
	if err := h.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM schools WHERE id = $1)`, req.SchoolID,
	).Scan(&schoolExists); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	if !schoolExists {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid school_id"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	var userID int64
	err = h.db.QueryRow(
		`INSERT INTO users (name, age, gender, phone, email, password, karma_points, school_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		req.Name, req.Age, req.Gender, req.Phone, req.Email, string(hashedPassword),
		gamification.SignupBonus, req.SchoolID,
	).Scan(&userID)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Email already registered"})
			return
		}
		if strings.Contains(err.Error(), "users_phone_key") {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Phone already registered"})
			return
		}
		log.Printf("[auth] signup insert failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create account"})
		return
	}

	// Signup bonus alone unlocks nothing today, but the rules are
	// re-checked here so threshold changes take effect uniformly.
	newBadges, err := h.gam.SyncBadges(userID)
	if err != nil {
		log.Printf("[auth] badge sync failed for user %d: %v", userID, err)
	}

	profile, err := h.getProfile(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load profile"})
		return
	}

	writeJSON(w, http.StatusCreated, models.SignupResponse{User: *profile, NewBadges: newBadges})
}

func validateSignup(req models.SignupRequest) string {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		return "Name, email, phone, and password are required"
	}
	if !strings.ContainsFunc(req.Name, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) {
		return "Name must contain at least one letter"
	}
	if req.Age < 3 || req.Age > 120 {
		return "Age must be between 3 and 120"
	}
	if !phonePattern.MatchString(req.Phone) {
		return "Phone must be digits, optional +, length 7-15"
	}
	if !strings.Contains(req.Email, "@") {
		return "Invalid email address"
	}
	if len(req.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	return ""
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
		return
	}

	var userID int64
	var hashedPassword string
	err := h.db.QueryRow(
		`SELECT id, password FROM users WHERE email = $1`, req.Email,
	).Scan(&userID, &hashedPassword)
	// Same message whether the account is missing or the password is
	// wrong, so the response never reveals which.
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Incorrect email or password"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Incorrect email or password"})
		return
	}

	activity, err := h.gam.RecordDailyActivity(userID, time.Now().UTC())
	if err != nil {
		log.Printf("[auth] daily activity update failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update streak"})
		return
	}

	ttl := tokenTTL()
	token, err := generateToken(userID, ttl)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		NewBadges:   activity.NewBadges,
	})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	profile, err := h.getProfile(userID)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		log.Printf("[auth] profile load failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load profile"})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) GetInstitutes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(
		`SELECT id, name, code, city, kind, created_at FROM schools ORDER BY name`,
	)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list institutes"})
		return
	}
	defer rows.Close()

	var institutes []models.School
	for rows.Next() {
		var s models.School
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.City, &s.Kind, &s.CreatedAt); err != nil {
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list institutes"})
			return
		}
		institutes = append(institutes, s)
	}
	if institutes == nil {
		institutes = []models.School{}
	}

	writeJSON(w, http.StatusOK, models.InstitutesResponse{Institutes: institutes})
}

// getProfile assembles the UserProfile projection: user row, school
// sub-object, unlocked badges, login dates, leaderboard rank.
func (h *Handler) getProfile(userID int64) (*models.UserProfile, error) {
	var p models.UserProfile
	var schoolID int64
	err := h.db.QueryRow(
		`SELECT id, name, age, gender, phone, email, karma_points, school_id, learning_streak, role
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Email,
		&p.KarmaPoints, &schoolID, &p.LearningStreak, &p.Role)
	if err != nil {
		return nil, err
	}

	var school models.School
	err = h.db.QueryRow(
		`SELECT id, name, code, city, kind FROM schools WHERE id = $1`, schoolID,
	).Scan(&school.ID, &school.Name, &school.Code, &school.City, &school.Kind)
	if err == nil {
		p.School = models.SchoolInfo{
			ID:   school.ID,
			Name: school.Name,
			Code: school.Code,
			City: school.City,
			Type: school.Kind,
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	badges, err := h.gam.UserBadges(userID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []models.BadgeInfo{}
	}
	p.Badges = badges

	dates, err := h.gam.LoginDates(userID)
	if err != nil {
		return nil, err
	}
	p.LoginDates = make([]string, 0, len(dates))
	for _, d := range dates {
		p.LoginDates = append(p.LoginDates, d.UTC().Format("2006-01-02"))
	}

	rank, err := h.gam.UserRank(userID)
	if err != nil {
		return nil, err
	}
	p.LeaderboardRank = rank

	return &p, nil
}

func generateToken(userID int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(SigningKey())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
