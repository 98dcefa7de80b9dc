package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout - формат календарной даты тренировки.
const DateLayout = "2006-01-02"

// Exercise - одно упражнение внутри тренировки.
type Exercise struct {
	Name   string  `json:"name" validate:"required"`
	Sets   int     `json:"sets" validate:"min=1"`
	Reps   int     `json:"reps" validate:"min=1"`
	Weight float64 `json:"weight" validate:"gte=0"`
}

// Workout - одна записанная тренировка пользователя.
// Порядок Exercises значим: порядок добавления = порядок отображения.
type Workout struct {
	ID              string     `json:"id"`
	Username        string     `json:"username" validate:"required"`
	Name            string     `json:"name,omitempty"`
	Type            string     `json:"type" validate:"required"`
	Date            string     `json:"date" validate:"required,datetime=2006-01-02"`
	Goal            string     `json:"goal,omitempty"`
	Intensity       string     `json:"intensity,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty" validate:"omitempty,min=0"`
	Rating          *int       `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Notes           string     `json:"notes,omitempty"`
	Exercises       []Exercise `json:"exercises" validate:"required,min=1,dive"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// CreateWorkoutRequest - тело POST /api/workouts.
// Сервер принимает только тип, дату и сериализованный список упражнений.
type CreateWorkoutRequest struct {
	Type      string `json:"type" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Exercises string `json:"exercises" validate:"required"`
}

// RemoteWorkout - тренировка в том виде, в котором ее хранит сервер.
type RemoteWorkout struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"-"`
	Type      string    `db:"type" json:"type"`
	Date      string    `db:"date" json:"date"`
	Exercises string    `db:"exercises" json:"exercises"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WorkoutListResponse - ответ GET /api/workouts.
type WorkoutListResponse struct {
	Workouts []RemoteWorkout `json:"workouts"`
}

// SyncState показывает, где хранится запись тренировки.
type SyncState string

const (
	SyncRemoteOnly SyncState = "remote" // Сохранена только на сервере
	SyncLocalOnly  SyncState = "local"  // Сохранена только локально
	SyncPending    SyncState = "pending"
)

// EncodeExercises сериализует список упражнений в строку для сервера.
func EncodeExercises(exercises []Exercise) (string, error) {
	data, err := json.Marshal(exercises)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации упражнений: %w", err)
	}
	return string(data), nil
}

// DecodeExercises разбирает сериализованный список упражнений.
func DecodeExercises(raw string) ([]Exercise, error) {
	if raw == "" {
		return nil, nil
	}
	var exercises []Exercise
	if err := json.Unmarshal([]byte(raw), &exercises); err != nil {
		return nil, fmt.Errorf("ошибка разбора упражнений: %w", err)
	}
	return exercises, nil
}

// ToWorkout переводит серверную запись в общий вид Workout.
func (rw RemoteWorkout) ToWorkout(username string) Workout {
	// Ошибка разбора не фатальна: показываем тренировку без упражнений
	exercises, _ := DecodeExercises(rw.Exercises)
	return Workout{
		ID:        fmt.Sprintf("remote-%d", rw.ID),
		Username:  username,
		Type:      rw.Type,
		Date:      rw.Date,
		Exercises: exercises,
		CreatedAt: rw.CreatedAt,
	}
}
