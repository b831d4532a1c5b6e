package learning

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ecolearn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.QuizSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.QuizID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "quiz_id is required"})
		return
	}

	resp, err := h.service.SubmitQuiz(userID, req, time.Now().UTC())
	if err != nil {
		writeServiceError(w, err, "Quiz submission failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.QuestID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "quest_id is required"})
		return
	}

	resp, err := h.service.CompleteQuest(userID, req)
	if err != nil {
		writeServiceError(w, err, "Completion failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	dayID := 0
	if v := r.URL.Query().Get("day_id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 7 {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "day_id must be between 1 and 7"})
			return
		}
		dayID = n
	}

	resp, err := h.service.GetContent(userID, dayID, time.Now().UTC())
	if err != nil {
		log.Printf("[learning] GetContent error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get content"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topic is required"})
		return
	}

	quiz, err := h.service.GenerateQuiz(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err, "Quiz generation failed")
		return
	}

	writeJSON(w, http.StatusCreated, quiz)
}

// writeServiceError maps pipeline errors onto the response taxonomy:
// missing content 404, rejected input 400, repeat completion 409,
// anything else a 500.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
	case errors.Is(err, ErrQuestNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quest not found"})
	case errors.Is(err, ErrAnswerCountMismatch):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Number of answers does not match number of questions"})
	case errors.Is(err, ErrAlreadyCompleted):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Already completed"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Teacher role required"})
	default:
		log.Printf("[learning] %s: %v", fallback, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: fallback})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
