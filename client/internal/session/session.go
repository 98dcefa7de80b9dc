// Package session управляет регистрацией, входом и текущей сессией клиента.
// Сначала используется сервер, при его недоступности или отказе
// выполняется локальная проверка по хранилищу.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fitlog/fitlog/client/internal/api"
	"github.com/fitlog/fitlog/client/internal/kvstore"
	"github.com/fitlog/fitlog/models"
)

var (
	// ErrEmptyCredentials возвращается, если имя пользователя или пароль не заданы.
	ErrEmptyCredentials = errors.New("имя пользователя и пароль обязательны")
	// ErrDuplicateUser возвращается при локальной регистрации существующего имени.
	ErrDuplicateUser = errors.New("пользователь уже существует")
	// ErrInvalidCredentials возвращается, если вход не подтвержден ни сервером, ни локально.
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	// ErrMissingSession возвращается, если текущего пользователя нет.
	ErrMissingSession = errors.New("сессия не найдена")
)

// Source указывает, кто подтвердил сессию или регистрацию.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Context - текущий пользователь, передаваемый защищенным экранам.
type Context struct {
	Username string
	Source   Source
}

// Manager реализует операции сессии поверх API клиента и хранилища.
type Manager struct {
	client   api.Client
	store    kvstore.Store
	classify func(api.Response, string) api.LoginOutcome
	validate *validator.Validate
	now      func() time.Time
	mu       sync.Mutex // Сериализует чтение-изменение-запись списка пользователей
}

// Option настраивает Manager.
type Option func(*Manager)

// WithLenientLogin включает совместимый разбор ответа входа.
func WithLenientLogin() Option {
	return func(m *Manager) {
		m.classify = api.ClassifyLoginLenient
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager создает менеджер сессий.
func NewManager(client api.Client, store kvstore.Store, opts ...Option) *Manager {
	m := &Manager{
		client:   client,
		store:    store,
		classify: api.ClassifyLogin,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HashPassword возвращает hex SHA-256 пароля. Хеш детерминирован и без соли,
// чтобы локальный вход сравнивал его с сохраненной записью.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register регистрирует пользователя на сервере, а при неудаче - локально.
// Возвращает источник, подтвердивший регистрацию.
func (m *Manager) Register(ctx context.Context, username, password string) (Source, error) {
	if err := m.validate.Struct(models.RegisterRequest{Username: username, Password: password}); err != nil {
		return "", ErrEmptyCredentials
	}

	resp := m.client.Register(ctx, username, password)
	if resp.OK {
		slog.Info("Пользователь зарегистрирован на сервере", "username", username)
		return SourceRemote, nil
	}
	slog.Info("Регистрация на сервере не удалась, используем локальное хранилище",
		"username", username, "status", resp.Status, "error", resp.Err)

	m.mu.Lock()
	defer m.mu.Unlock()

	users := m.loadUsers()
	for _, u := range users {
		if u.Username == username {
			return "", ErrDuplicateUser
		}
	}

	users = append(users, models.LocalUser{
		Username:     username,
		PasswordHash: HashPassword(password),
		CreatedAt:    m.now().UTC(),
	})
	if err := m.store.Set(kvstore.KeyUsers, users); err != nil {
		return "", fmt.Errorf("ошибка сохранения пользователя: %w", err)
	}
	slog.Info("Пользователь зарегистрирован локально", "username", username)
	return SourceLocal, nil
}

// Login выполняет вход. Ответ сервера разбирается classify, при любом
// исходе кроме успеха проверяется локальная запись пользователя.
func (m *Manager) Login(ctx context.Context, username, password string) (Context, error) {
	if err := m.validate.Struct(models.LoginRequest{Username: username, Password: password}); err != nil {
		return Context{}, ErrEmptyCredentials
	}

	outcome := m.classify(m.client.Login(ctx, username, password), username)
	if outcome.Accepted() {
		if err := m.setCurrentUser(outcome.Username); err != nil {
			return Context{}, err
		}
		m.saveCookies()
		slog.Info("Вход выполнен на сервере", "username", outcome.Username)
		return Context{Username: outcome.Username, Source: SourceRemote}, nil
	}
	slog.Info("Сервер не подтвердил вход, проверяем локально",
		"username", username, "outcome", outcome.Kind.String(), "status", outcome.Status)

	hash := HashPassword(password)
	for _, u := range m.loadUsers() {
		if u.Username == username && u.PasswordHash == hash {
			if err := m.setCurrentUser(username); err != nil {
				return Context{}, err
			}
			slog.Info("Вход выполнен локально", "username", username)
			return Context{Username: username, Source: SourceLocal}, nil
		}
	}
	return Context{}, ErrInvalidCredentials
}

// Check определяет текущего пользователя: сначала по сессии сервера,
// затем по сохраненному значению. Без пользователя возвращает ErrMissingSession.
func (m *Manager) Check(ctx context.Context) (Context, error) {
	if username, ok := api.SessionUsername(m.client.CurrentSession(ctx)); ok {
		if err := m.setCurrentUser(username); err != nil {
			slog.Warn("Не удалось сохранить пользователя сессии сервера", "error", err)
		}
		return Context{Username: username, Source: SourceRemote}, nil
	}

	var username string
	if m.store.Get(kvstore.KeyCurrentUser, &username) && username != "" {
		return Context{Username: username, Source: SourceLocal}, nil
	}
	return Context{}, ErrMissingSession
}

// Logout завершает сессию. Ответ сервера не учитывается,
// локальная сессия очищается всегда.
func (m *Manager) Logout(ctx context.Context) error {
	resp := m.client.Logout(ctx)
	slog.Debug("Выход на сервере", "ok", resp.OK, "status", resp.Status)

	if err := m.store.Remove(kvstore.KeyCurrentUser); err != nil {
		return fmt.Errorf("ошибка очистки сессии: %w", err)
	}
	if err := m.store.Remove(kvstore.KeySessionCookie); err != nil {
		return fmt.Errorf("ошибка удаления куки сессии: %w", err)
	}
	m.client.SetSessionCookies(nil)
	return nil
}

// Users возвращает локально зарегистрированных пользователей.
func (m *Manager) Users() []models.LocalUser {
	return m.loadUsers()
}

// Restore загружает сохраненную куку сессии в API клиент.
// Кука другого сервера не восстанавливается.
func (m *Manager) Restore() {
	var stored models.StoredSession
	if !m.store.Get(kvstore.KeySessionCookie, &stored) || len(stored.Cookies) == 0 {
		return
	}
	if !sameServer(stored.BaseURL, m.client.BaseURL()) {
		slog.Info("Сохраненная кука выдана другим сервером, пропускаем",
			"saved", stored.BaseURL, "current", m.client.BaseURL())
		return
	}
	m.client.SetSessionCookies(stored.Cookies)
	slog.Debug("Кука сессии восстановлена", "count", len(stored.Cookies))
}

func sameServer(a, b string) bool {
	return a != "" && strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}

func (m *Manager) loadUsers() []models.LocalUser {
	var users []models.LocalUser
	if !m.store.Get(kvstore.KeyUsers, &users) {
		return nil
	}
	return users
}

func (m *Manager) setCurrentUser(username string) error {
	if err := m.store.Set(kvstore.KeyCurrentUser, username); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

func (m *Manager) saveCookies() {
	cookies := m.client.SessionCookies()
	if len(cookies) == 0 {
		return
	}
	stored := models.StoredSession{BaseURL: m.client.BaseURL(), Cookies: cookies}
	if err := m.store.Set(kvstore.KeySessionCookie, stored); err != nil {
		slog.Warn("Не удалось сохранить куку сессии", "error", err)
	}
}
