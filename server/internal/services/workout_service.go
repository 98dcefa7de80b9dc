package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fitlog/fitlog/models"
	"github.com/fitlog/fitlog/server/internal/repository"
)

// ErrInvalidWorkout - в запросе нет типа, даты или упражнений.
var ErrInvalidWorkout = errors.New("некорректная тренировка")

// WorkoutService сохраняет и отдает тренировки пользователя.
type WorkoutService interface {
	Create(ctx context.Context, username string, req models.CreateWorkoutRequest) (*models.RemoteWorkout, error)
	List(ctx context.Context, username string) ([]models.RemoteWorkout, error)
}

var _ WorkoutService = (*workoutService)(nil)

type workoutService struct {
	repo     repository.WorkoutRepository
	validate *validator.Validate
}

// NewWorkoutService создает сервис тренировок.
func NewWorkoutService(repo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create проверяет наличие полей и сохраняет тренировку как есть.
// Строка упражнений хранится непрозрачно.
func (s *workoutService) Create(
	ctx context.Context,
	username string,
	req models.CreateWorkoutRequest,
) (*models.RemoteWorkout, error) {
	req.Type = strings.TrimSpace(req.Type)
	req.Date = strings.TrimSpace(req.Date)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkout, err)
	}

	workout := &models.RemoteWorkout{
		Username:  username,
		Type:      req.Type,
		Date:      req.Date,
		Exercises: req.Exercises,
	}
	if _, err := s.repo.CreateWorkout(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// List возвращает тренировки пользователя, новые первыми.
func (s *workoutService) List(ctx context.Context, username string) ([]models.RemoteWorkout, error) {
	return s.repo.ListWorkouts(ctx, username)
}
