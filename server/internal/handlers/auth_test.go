package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitlog/fitlog/server/internal/handlers"
	"github.com/fitlog/fitlog/server/internal/middleware"
	"github.com/fitlog/fitlog/server/internal/services"
)

// MockAuthService - мок handlers.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func setupAuthRouter(h *handlers.AuthHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/register", h.Register)
	r.Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)
	r.Get("/api/current_user", h.CurrentUser)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		callService    bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Успешная регистрация",
			body:           `{"username":" bob ","password":"pw"}`,
			callService:    true,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"ok":true}`,
		},
		{
			name:           "Имя занято",
			body:           `{"username":"bob","password":"pw"}`,
			callService:    true,
			serviceErr:     services.ErrUsernameTaken,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"user exists"}`,
		},
		{
			name:           "Внутренняя ошибка",
			body:           `{"username":"bob","password":"pw"}`,
			callService:    true,
			serviceErr:     errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
		{
			name:           "Пустой пароль",
			body:           `{"username":"bob","password":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"username and password required"}`,
		},
		{
			name:           "Имя из пробелов",
			body:           `{"username":"   ","password":"pw"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"username and password required"}`,
		},
		{
			name:           "Невалидный JSON",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid json"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			if tt.callService {
				svc.On("Register", mock.Anything, "bob", "pw").Return(tt.serviceErr).Once()
			}
			router := setupAuthRouter(handlers.NewAuthHandler(svc, handlers.CookieOptions{}))

			req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Успешный вход ставит cookie", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "bob", "pw").Return("signed-token", nil).Once()
		router := setupAuthRouter(handlers.NewAuthHandler(svc, handlers.CookieOptions{Secure: true, TTL: time.Hour}))

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"bob","password":"pw"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"ok":true,"username":"bob"}`, rr.Body.String())

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("Неверные данные 401", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "bob", "bad").Return("", services.ErrInvalidCredentials).Once()
		router := setupAuthRouter(handlers.NewAuthHandler(svc, handlers.CookieOptions{}))

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"bob","password":"bad"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"invalid credentials"}`, rr.Body.String())
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("Внутренняя ошибка 500", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "bob", "pw").Return("", errors.New("db down")).Once()
		router := setupAuthRouter(handlers.NewAuthHandler(svc, handlers.CookieOptions{}))

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"bob","password":"pw"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("Пустые поля 400", func(t *testing.T) {
		svc := new(MockAuthService)
		router := setupAuthRouter(handlers.NewAuthHandler(svc, handlers.CookieOptions{}))

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	router := setupAuthRouter(handlers.NewAuthHandler(new(MockAuthService), handlers.CookieOptions{}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	h := handlers.NewAuthHandler(new(MockAuthService), handlers.CookieOptions{})

	t.Run("Без сессии username null", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.CurrentUser(rr, httptest.NewRequest(http.MethodGet, "/api/current_user", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"username":null}`, rr.Body.String())
	})

	t.Run("С сессией", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/current_user", nil)
		req = req.WithContext(middleware.WithUsername(req.Context(), "bob"))
		rr := httptest.NewRecorder()
		h.CurrentUser(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"username":"bob"}`, rr.Body.String())
	})
}
