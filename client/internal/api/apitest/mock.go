// Package apitest содержит мок API клиента для тестов других пакетов.
package apitest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fitlog/fitlog/client/internal/api"
	"github.com/fitlog/fitlog/models"
)

// MockClient - мок для api.Client.
type MockClient struct {
	mock.Mock
}

var _ api.Client = (*MockClient)(nil)

func (m *MockClient) response(args mock.Arguments) api.Response {
	resp, _ := args.Get(0).(api.Response)
	return resp
}

// Register мокирует метод Register.
func (m *MockClient) Register(ctx context.Context, username, password string) api.Response {
	return m.response(m.Called(ctx, username, password))
}

// Login мокирует метод Login.
func (m *MockClient) Login(ctx context.Context, username, password string) api.Response {
	return m.response(m.Called(ctx, username, password))
}

// CurrentSession мокирует метод CurrentSession.
func (m *MockClient) CurrentSession(ctx context.Context) api.Response {
	return m.response(m.Called(ctx))
}

// Logout мокирует метод Logout.
func (m *MockClient) Logout(ctx context.Context) api.Response {
	return m.response(m.Called(ctx))
}

// CreateWorkout мокирует метод CreateWorkout.
func (m *MockClient) CreateWorkout(ctx context.Context, req models.CreateWorkoutRequest) api.Response {
	return m.response(m.Called(ctx, req))
}

// ListWorkouts мокирует метод ListWorkouts.
func (m *MockClient) ListWorkouts(ctx context.Context) api.Response {
	return m.response(m.Called(ctx))
}

// SessionCookies мокирует метод SessionCookies.
func (m *MockClient) SessionCookies() []models.SessionCookie {
	args := m.Called()
	cookies, _ := args.Get(0).([]models.SessionCookie)
	return cookies
}

// SetSessionCookies мокирует метод SetSessionCookies.
func (m *MockClient) SetSessionCookies(cookies []models.SessionCookie) {
	m.Called(cookies)
}

// BaseURL мокирует метод BaseURL.
func (m *MockClient) BaseURL() string {
	args := m.Called()
	return args.String(0)
}

// Offline настраивает мок так, будто сервер недоступен для всех запросов.
func (m *MockClient) Offline() *MockClient {
	unreachable := api.Response{Err: api.ErrNetworkUnavailable}
	m.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(unreachable).Maybe()
	m.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(unreachable).Maybe()
	m.On("CurrentSession", mock.Anything).Return(unreachable).Maybe()
	m.On("Logout", mock.Anything).Return(unreachable).Maybe()
	m.On("CreateWorkout", mock.Anything, mock.Anything).Return(unreachable).Maybe()
	m.On("ListWorkouts", mock.Anything).Return(unreachable).Maybe()
	m.On("SessionCookies").Return([]models.SessionCookie(nil)).Maybe()
	m.On("SetSessionCookies", mock.Anything).Return().Maybe()
	m.On("BaseURL").Return("http://127.0.0.1:5000").Maybe()
	return m
}
