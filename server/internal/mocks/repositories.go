// Package mocks содержит testify-моки репозиториев сервера.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fitlog/fitlog/models"
	"github.com/fitlog/fitlog/server/internal/repository"
)

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.WorkoutRepository = (*WorkoutRepository)(nil)
)

// UserRepository - мок repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:errcheck // Допустимо для моков
}

// WorkoutRepository - мок repository.WorkoutRepository.
type WorkoutRepository struct {
	mock.Mock
}

func (m *WorkoutRepository) CreateWorkout(ctx context.Context, workout *models.RemoteWorkout) (int64, error) {
	args := m.Called(ctx, workout)
	return args.Get(0).(int64), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *WorkoutRepository) ListWorkouts(ctx context.Context, username string) ([]models.RemoteWorkout, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RemoteWorkout), args.Error(1) //nolint:errcheck // Допустимо для моков
}
