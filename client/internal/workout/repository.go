// Package workout сохраняет и читает тренировки пользователя.
// Сохранение идет сначала на сервер, локальное хранилище используется,
// только если сервер не принял запись.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fitlog/fitlog/client/internal/api"
	"github.com/fitlog/fitlog/client/internal/kvstore"
	"github.com/fitlog/fitlog/models"
)

var (
	// ErrInvalidWorkout возвращается, если тренировка не прошла проверку.
	ErrInvalidWorkout = errors.New("некорректная тренировка")
	// ErrSaveFailed возвращается, если тренировку не удалось сохранить ни на сервере, ни локально.
	ErrSaveFailed = errors.New("не удалось сохранить тренировку")
)

// Entry - тренировка вместе с признаком того, где она хранится.
type Entry struct {
	models.Workout
	Sync models.SyncState
}

// Repository реализует сохранение и чтение тренировок.
type Repository struct {
	client   api.Client
	store    kvstore.Store
	validate *validator.Validate
	newID    func() string
	now      func() time.Time
	mu       sync.Mutex
}

// NewRepository создает репозиторий тренировок.
func NewRepository(client api.Client, store kvstore.Store) *Repository {
	return &Repository{
		client:   client,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Validate проверяет тренировку без сохранения.
// Пробелы по краям текстовых полей не учитываются.
func (r *Repository) Validate(w models.Workout) error {
	if err := r.validate.Struct(normalize(w)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWorkout, err)
	}
	return nil
}

// Save сохраняет тренировку. Если сервер принял запись, локальная копия
// не создается и возвращается SyncRemoteOnly. Иначе запись добавляется
// в локальный список и возвращается SyncLocalOnly.
// Ошибка сервера наружу не передается.
func (r *Repository) Save(ctx context.Context, w models.Workout) (models.Workout, models.SyncState, error) {
	w = normalize(w)
	if err := r.Validate(w); err != nil {
		return models.Workout{}, "", err
	}
	w.ID = r.newID()
	w.CreatedAt = r.now().UTC()

	exercises, err := models.EncodeExercises(w.Exercises)
	if err != nil {
		return models.Workout{}, "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	resp := r.client.CreateWorkout(ctx, models.CreateWorkoutRequest{
		Type:      w.Type,
		Date:      w.Date,
		Exercises: exercises,
	})
	if resp.OK {
		slog.Info("Тренировка сохранена на сервере", "username", w.Username, "type", w.Type, "date", w.Date)
		return w, models.SyncRemoteOnly, nil
	}
	slog.Info("Сервер не принял тренировку, сохраняем локально",
		"username", w.Username, "status", resp.Status, "error", resp.Err)

	r.mu.Lock()
	defer r.mu.Unlock()

	workouts := r.load()
	workouts = append(workouts, w)
	if err = r.store.Set(kvstore.KeyWorkouts, workouts); err != nil {
		slog.Error("Ошибка локального сохранения тренировки", "error", err)
		return models.Workout{}, "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return w, models.SyncLocalOnly, nil
}

// ListForUser возвращает локальные тренировки пользователя в порядке добавления.
// Тренировки, сохраненные только на сервере, сюда не попадают.
func (r *Repository) ListForUser(username string) []models.Workout {
	var result []models.Workout
	for _, w := range r.load() {
		if w.Username == username {
			result = append(result, w)
		}
	}
	return result
}

// History объединяет тренировки сервера и локальные тренировки пользователя.
// Серверные записи идут первыми в порядке создания, за ними локальные.
// Недоступность сервера не ошибка: возвращаются только локальные записи.
func (r *Repository) History(ctx context.Context, username string) []Entry {
	var entries []Entry

	resp := r.client.ListWorkouts(ctx)
	if resp.OK {
		var list models.WorkoutListResponse
		if err := resp.Decode(&list); err != nil {
			slog.Warn("Не удалось разобрать список тренировок сервера", "error", err)
		} else {
			// Сервер отдает новые первыми
			remote := slices.Clone(list.Workouts)
			slices.Reverse(remote)
			for _, rw := range remote {
				entries = append(entries, Entry{Workout: rw.ToWorkout(username), Sync: models.SyncRemoteOnly})
			}
		}
	}

	for _, w := range r.ListForUser(username) {
		entries = append(entries, Entry{Workout: w, Sync: models.SyncLocalOnly})
	}
	return entries
}

// Clear удаляет все локальные тренировки всех пользователей.
func (r *Repository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Set(kvstore.KeyWorkouts, []models.Workout{}); err != nil {
		return fmt.Errorf("ошибка очистки тренировок: %w", err)
	}
	return nil
}

// normalize обрезает пробелы в типе, дате и названиях упражнений.
// Упражнения копируются, срез вызывающего не меняется.
func normalize(w models.Workout) models.Workout {
	w.Type = strings.TrimSpace(w.Type)
	w.Date = strings.TrimSpace(w.Date)
	if w.Exercises != nil {
		exercises := make([]models.Exercise, len(w.Exercises))
		for i, e := range w.Exercises {
			e.Name = strings.TrimSpace(e.Name)
			exercises[i] = e
		}
		w.Exercises = exercises
	}
	return w
}

// Workouts извлекает тренировки из списка записей.
func Workouts(entries []Entry) []models.Workout {
	result := make([]models.Workout, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Workout)
	}
	return result
}

func (r *Repository) load() []models.Workout {
	var workouts []models.Workout
	if !r.store.Get(kvstore.KeyWorkouts, &workouts) {
		return nil
	}
	return workouts
}
