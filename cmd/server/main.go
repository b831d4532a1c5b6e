package main

import (
	"log"
	"net/http"
	"os"

	"github.com/ecolearn/backend/internal/auth"
	"github.com/ecolearn/backend/internal/database"
	"github.com/ecolearn/backend/internal/gamification"
	"github.com/ecolearn/backend/internal/generator"
	"github.com/ecolearn/backend/internal/learning"
	"github.com/ecolearn/backend/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services and handlers
	gamService := gamification.NewService(gamification.NewStore(db))
	gamHandler := gamification.NewHandler(gamService)

	learningService := learning.NewService(learning.NewStore(db), gamService, generator.NewGenerator())
	learningHandler := learning.NewHandler(learningService)

	authHandler := auth.NewHandler(db, gamService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/institutes", authHandler.GetInstitutes).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/learning/content", learningHandler.GetContent).Methods("GET")
	protected.HandleFunc("/learning/complete", learningHandler.CompleteQuest).Methods("POST")
	protected.HandleFunc("/learning/quiz/submit", learningHandler.SubmitQuiz).Methods("POST")
	protected.HandleFunc("/gamification/leaderboard", gamHandler.GetLeaderboard).Methods("GET")
	protected.HandleFunc("/gamification/badges", gamHandler.GetBadges).Methods("GET")
	protected.HandleFunc("/admin/quizzes/generate", learningHandler.GenerateQuiz).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
