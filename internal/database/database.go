package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "ecolearn_user")
	password := getEnv("DB_PASSWORD", "ecolearn_password")
	dbname := getEnv("DB_NAME", "ecolearn")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS schools (
		id         BIGSERIAL PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		code       VARCHAR(50) NOT NULL DEFAULT '',
		city       VARCHAR(100) NOT NULL DEFAULT '',
		kind       VARCHAR(20) NOT NULL DEFAULT 'school',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS users (
		id              BIGSERIAL PRIMARY KEY,
		name            VARCHAR(100) NOT NULL,
		age             INT NOT NULL CHECK (age >= 3 AND age <= 120),
		gender          VARCHAR(20),
		phone           VARCHAR(20) UNIQUE NOT NULL,
		email           VARCHAR(255) UNIQUE NOT NULL,
		password        VARCHAR(255) NOT NULL,
		karma_points    BIGINT NOT NULL DEFAULT 0,
		school_id       BIGINT NOT NULL REFERENCES schools(id),
		learning_streak INT NOT NULL DEFAULT 0,
		role            VARCHAR(20) NOT NULL DEFAULT 'student',
		created_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_users_karma ON users(karma_points DESC);

	CREATE TABLE IF NOT EXISTS user_login_dates (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		login_date DATE NOT NULL,
		UNIQUE(user_id, login_date)
	);

	CREATE INDEX IF NOT EXISTS idx_login_dates_user ON user_login_dates(user_id, login_date DESC);

	CREATE TABLE IF NOT EXISTS badges (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100) UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS user_badges (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		badge_id    BIGINT NOT NULL REFERENCES badges(id) ON DELETE CASCADE,
		unlocked_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, badge_id)
	);

	CREATE INDEX IF NOT EXISTS idx_user_badges_user ON user_badges(user_id);

	CREATE TABLE IF NOT EXISTS lessons (
		id         BIGSERIAL PRIMARY KEY,
		title      VARCHAR(255) NOT NULL,
		type       VARCHAR(20) NOT NULL DEFAULT 'lesson',
		level      VARCHAR(20) NOT NULL DEFAULT 'beginner',
		day_id     INT NOT NULL,
		points     INT NOT NULL DEFAULT 10,
		content    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_lessons_day ON lessons(day_id);

	CREATE TABLE IF NOT EXISTS quizzes (
		id         BIGSERIAL PRIMARY KEY,
		title      VARCHAR(255) NOT NULL,
		category   VARCHAR(20) NOT NULL DEFAULT 'daily',
		day_id     INT NOT NULL,
		points     INT NOT NULL DEFAULT 10,
		questions  JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_quizzes_day ON quizzes(day_id);
	CREATE INDEX IF NOT EXISTS idx_quizzes_category ON quizzes(category);

	CREATE TABLE IF NOT EXISTS user_quests (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		quest_type   VARCHAR(20) NOT NULL,
		quest_id     BIGINT NOT NULL,
		completed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		proof_url    TEXT,
		UNIQUE(user_id, quest_type, quest_id)
	);

	CREATE INDEX IF NOT EXISTS idx_user_quests_user ON user_quests(user_id);

	CREATE TABLE IF NOT EXISTS quiz_history (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		quiz_id      BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		answers      JSONB NOT NULL,
		results      JSONB NOT NULL,
		marks        INT NOT NULL,
		total        INT NOT NULL,
		submitted_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_quiz_history_user ON quiz_history(user_id, submitted_at DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Seed badge reference data. The evaluator tolerates missing rows,
	// but a fresh database should start with the full set.
	seedBadges := []struct {
		name, description string
	}{
		{"Eco Newbie", "Start a learning streak"},
		{"Eco Enthusiast", "3-day learning streak"},
		{"Eco Warrior", "7-day learning streak"},
		{"Eco Champion", "14-day learning streak"},
		{"Eco Legend", "30-day learning streak"},
		{"Green Sprout", "Earn 100 karma points"},
		{"Tree Planter", "Earn 250 karma points"},
		{"Water Saver", "Earn 500 karma points"},
		{"Plastic Buster", "Earn 1000 karma points"},
		{"Earth Guardian", "Earn 2000 karma points"},
	}
	for _, b := range seedBadges {
		if _, err := db.Exec(
			`INSERT INTO badges (name, description) VALUES ($1, $2)
			 ON CONFLICT (name) DO NOTHING`,
			b.name, b.description,
		); err != nil {
			return fmt.Errorf("seed badges: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
