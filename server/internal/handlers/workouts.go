package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fitlog/fitlog/models"
	"github.com/fitlog/fitlog/server/internal/middleware"
	"github.com/fitlog/fitlog/server/internal/services"
)

// WorkoutService - то, что нужно обработчикам тренировок от сервиса.
type WorkoutService interface {
	Create(ctx context.Context, username string, req models.CreateWorkoutRequest) (*models.RemoteWorkout, error)
	List(ctx context.Context, username string) ([]models.RemoteWorkout, error)
}

// WorkoutHandler обслуживает /api/workouts. Маршруты закрыты middleware.RequireUser.
type WorkoutHandler struct {
	service WorkoutService
}

// NewWorkoutHandler создает обработчик тренировок.
func NewWorkoutHandler(s WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: s}
}

// List отвечает {"workouts": [...]}, новые первыми.
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	workouts, err := h.service.List(r.Context(), username)
	if err != nil {
		log.Printf("[WorkoutHandler] Ошибка чтения тренировок '%s': %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if workouts == nil {
		workouts = []models.RemoteWorkout{}
	}
	writeJSON(w, http.StatusOK, models.WorkoutListResponse{Workouts: workouts})
}

// Create принимает {type, date, exercises} и отвечает 201 {"ok":true}.
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req models.CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	created, err := h.service.Create(r.Context(), username, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWorkout) {
			writeError(w, http.StatusBadRequest, "type, date and exercises required")
			return
		}
		log.Printf("[WorkoutHandler] Ошибка сохранения тренировки '%s': %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("[WorkoutHandler] Тренировка %d сохранена для '%s'", created.ID, username)
	writeOK(w, http.StatusCreated)
}
