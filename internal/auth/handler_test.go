package auth

import (
	"testing"
	"time"

	"github.com/ecolearn/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Runs before any other test in this package touches SigningKey, so
// the key has not been memoized yet — mirroring a secret that only
// becomes visible after main loads .env.
func TestSigningKey_HonorsEnvLoadedAfterInit(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "configured-after-package-init")

	if got := string(SigningKey()); got != "configured-after-package-init" {
		t.Errorf("SigningKey() = %q, want the value from the environment", got)
	}
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	token, err := generateToken(42, time.Minute)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return SigningKey(), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify against SigningKey(): %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if id, _ := claims["user_id"].(float64); int64(id) != 42 {
		t.Errorf("user_id claim = %v, want 42", claims["user_id"])
	}
	if _, hasExp := claims["exp"]; !hasExp {
		t.Error("token missing exp claim")
	}
}

func TestValidateSignup(t *testing.T) {
	valid := func() models.SignupRequest {
		return models.SignupRequest{
			Name:     "Asha Verma",
			Age:      14,
			Phone:    "+911234567890",
			Email:    "asha@example.com",
			Password: "longenough",
			SchoolID: 1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*models.SignupRequest)
		wantErr bool
	}{
		{"valid request", func(r *models.SignupRequest) {}, false},
		{"missing name", func(r *models.SignupRequest) { r.Name = "" }, true},
		{"numeric-only name", func(r *models.SignupRequest) { r.Name = "12345" }, true},
		{"age too low", func(r *models.SignupRequest) { r.Age = 2 }, true},
		{"age too high", func(r *models.SignupRequest) { r.Age = 121 }, true},
		{"bad phone", func(r *models.SignupRequest) { r.Phone = "not-a-phone" }, true},
		{"bad email", func(r *models.SignupRequest) { r.Email = "no-at-sign" }, true},
		{"short password", func(r *models.SignupRequest) { r.Password = "short" }, true},
	}

	for _, tt := range tests {
		req := valid()
		tt.mutate(&req)
		msg := validateSignup(req)
		if tt.wantErr && msg == "" {
			t.Errorf("%s: expected validation error, got none", tt.name)
		}
		if !tt.wantErr && msg != "" {
			t.Errorf("%s: unexpected validation error: %s", tt.name, msg)
		}
	}
}
