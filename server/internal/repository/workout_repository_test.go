package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlog/fitlog/models"
	"github.com/fitlog/fitlog/server/internal/repository"
)

var (
	insertWorkoutSQL  = regexp.QuoteMeta(`INSERT INTO workouts (username, type, date, exercises)`)
	selectWorkoutsSQL = regexp.QuoteMeta(`SELECT id, username, type, date, exercises, created_at`)
)

func TestWorkoutRepository_CreateWorkout(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Успешное сохранение", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(insertWorkoutSQL).
			WithArgs("bob", "Pecho", "2024-05-01", `[{"name":"Press","sets":3,"reps":10,"weight":50}]`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), createdAt))

		w := &models.RemoteWorkout{
			Username:  "bob",
			Type:      "Pecho",
			Date:      "2024-05-01",
			Exercises: `[{"name":"Press","sets":3,"reps":10,"weight":50}]`,
		}
		id, err := repository.NewPostgresWorkoutRepository(db).CreateWorkout(context.Background(), w)
		require.NoError(t, err)
		assert.Equal(t, int64(12), id)
		assert.Equal(t, int64(12), w.ID)
		assert.Equal(t, createdAt, w.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(insertWorkoutSQL).WillReturnError(errors.New("disk full"))

		id, err := repository.NewPostgresWorkoutRepository(db).
			CreateWorkout(context.Background(), &models.RemoteWorkout{Username: "bob"})
		require.Error(t, err)
		assert.Zero(t, id)
	})
}

func TestWorkoutRepository_ListWorkouts(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Новые первыми", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectWorkoutsSQL).WithArgs("bob").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "type", "date", "exercises", "created_at"}).
				AddRow(int64(2), "bob", "Pierna", "2024-05-02", "[]", createdAt).
				AddRow(int64(1), "bob", "Pecho", "2024-05-01", "[]", createdAt))

		workouts, err := repository.NewPostgresWorkoutRepository(db).ListWorkouts(context.Background(), "bob")
		require.NoError(t, err)
		require.Len(t, workouts, 2)
		assert.Equal(t, int64(2), workouts[0].ID)
		assert.Equal(t, "Pierna", workouts[0].Type)
		assert.Equal(t, "bob", workouts[1].Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустой список не nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectWorkoutsSQL).WithArgs("ann").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "type", "date", "exercises", "created_at"}))

		workouts, err := repository.NewPostgresWorkoutRepository(db).ListWorkouts(context.Background(), "ann")
		require.NoError(t, err)
		assert.NotNil(t, workouts)
		assert.Empty(t, workouts)
	})

	t.Run("Ошибка базы", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectWorkoutsSQL).WillReturnError(errors.New("timeout"))

		_, err := repository.NewPostgresWorkoutRepository(db).ListWorkouts(context.Background(), "bob")
		require.Error(t, err)
	})
}
