package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/fitlog/fitlog/models"
)

// WorkoutRepository хранит тренировки пользователей на сервере.
type WorkoutRepository interface {
	CreateWorkout(ctx context.Context, workout *models.RemoteWorkout) (int64, error)
	ListWorkouts(ctx context.Context, username string) ([]models.RemoteWorkout, error)
}

type postgresWorkoutRepository struct {
	db *sqlx.DB
}

// NewPostgresWorkoutRepository создает репозиторий тренировок поверх PostgreSQL.
func NewPostgresWorkoutRepository(db *sqlx.DB) WorkoutRepository {
	return &postgresWorkoutRepository{db: db}
}

const (
	insertWorkoutQuery = `INSERT INTO workouts (username, type, date, exercises)
VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	selectWorkoutsQuery = `SELECT id, username, type, date, exercises, created_at
FROM workouts WHERE username = $1 ORDER BY id DESC`
)

// CreateWorkout сохраняет тренировку и заполняет ID и CreatedAt.
func (r *postgresWorkoutRepository) CreateWorkout(ctx context.Context, workout *models.RemoteWorkout) (int64, error) {
	row := r.db.QueryRowxContext(ctx, insertWorkoutQuery,
		workout.Username, workout.Type, workout.Date, workout.Exercises)
	if err := row.Scan(&workout.ID, &workout.CreatedAt); err != nil {
		return 0, fmt.Errorf("ошибка сохранения тренировки: %w", err)
	}

	log.Printf("[WorkoutRepo] Тренировка %d сохранена для '%s'", workout.ID, workout.Username)
	return workout.ID, nil
}

// ListWorkouts возвращает тренировки пользователя, новые первыми.
func (r *postgresWorkoutRepository) ListWorkouts(ctx context.Context, username string) ([]models.RemoteWorkout, error) {
	workouts := []models.RemoteWorkout{}
	if err := r.db.SelectContext(ctx, &workouts, selectWorkoutsQuery, username); err != nil {
		return nil, fmt.Errorf("ошибка чтения тренировок: %w", err)
	}
	return workouts, nil
}
