package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/fitlog/fitlog/models"
)

// ErrNetworkUnavailable сигнализирует о сбое транспорта (сервер недоступен, таймаут).
var ErrNetworkUnavailable = errors.New("сервер недоступен")

// Client определяет интерфейс для взаимодействия с API сервера FitLog.
// Ни один метод не возвращает ошибку и не паникует: любой сбой попадает
// в Response, а вызывающая сторона трактует OK == false как сигнал
// перейти к локальному хранилищу.
type Client interface {
	// Register регистрирует нового пользователя.
	Register(ctx context.Context, username, password string) Response
	// Login аутентифицирует пользователя, сервер выставляет сессионную куку.
	Login(ctx context.Context, username, password string) Response
	// CurrentSession запрашивает пользователя текущей сессии.
	CurrentSession(ctx context.Context) Response
	// Logout завершает сессию на сервере.
	Logout(ctx context.Context) Response
	// CreateWorkout сохраняет тренировку на сервере.
	CreateWorkout(ctx context.Context, req models.CreateWorkoutRequest) Response
	// ListWorkouts получает тренировки пользователя текущей сессии.
	ListWorkouts(ctx context.Context) Response
	// SessionCookies возвращает куки сервера для сохранения между запусками.
	SessionCookies() []models.SessionCookie
	// SetSessionCookies восстанавливает ранее сохраненные куки.
	SetSessionCookies(cookies []models.SessionCookie)
	// BaseURL возвращает адрес сервера.
	BaseURL() string
}

// httpClient реализует интерфейс Client для взаимодействия с сервером по HTTP.
type httpClient struct {
	baseURL    string       // Базовый URL сервера, например "http://127.0.0.1:5000"
	httpClient *http.Client // HTTP клиент с cookie jar
	jar        http.CookieJar
}

// NewHTTPClient создает новый экземпляр API клиента.
// timeout == 0 означает поведение транспорта по умолчанию (без таймаута).
func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	// cookiejar.New с nil опциями не возвращает ошибку
	jar, _ := cookiejar.New(nil)
	return &httpClient{
		baseURL: baseURL,
		jar:     jar,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}
}

func (c *httpClient) BaseURL() string {
	return c.baseURL
}

// Register отправляет запрос на регистрацию на сервер.
func (c *httpClient) Register(ctx context.Context, username, password string) Response {
	return c.do(ctx, http.MethodPost, "/api/register", models.RegisterRequest{
		Username: username,
		Password: password,
	})
}

// Login отправляет запрос на вход на сервер.
func (c *httpClient) Login(ctx context.Context, username, password string) Response {
	return c.do(ctx, http.MethodPost, "/api/login", models.LoginRequest{
		Username: username,
		Password: password,
	})
}

// CurrentSession запрашивает имя пользователя текущей сессии.
func (c *httpClient) CurrentSession(ctx context.Context) Response {
	return c.do(ctx, http.MethodGet, "/api/current_user", nil)
}

// Logout завершает сессию. Результат вызывающей стороне обычно не важен.
func (c *httpClient) Logout(ctx context.Context) Response {
	return c.do(ctx, http.MethodPost, "/api/logout", nil)
}

// CreateWorkout отправляет тренировку на сервер.
func (c *httpClient) CreateWorkout(ctx context.Context, req models.CreateWorkoutRequest) Response {
	return c.do(ctx, http.MethodPost, "/api/workouts", req)
}

// ListWorkouts получает тренировки пользователя с сервера.
func (c *httpClient) ListWorkouts(ctx context.Context) Response {
	return c.do(ctx, http.MethodGet, "/api/workouts", nil)
}

// SessionCookies возвращает куки, которые сервер выставил для базового URL.
func (c *httpClient) SessionCookies() []models.SessionCookie {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil
	}
	var cookies []models.SessionCookie
	for _, cookie := range c.jar.Cookies(u) {
		cookies = append(cookies, models.SessionCookie{Name: cookie.Name, Value: cookie.Value})
	}
	return cookies
}

// SetSessionCookies кладет сохраненные куки обратно в jar.
func (c *httpClient) SetSessionCookies(cookies []models.SessionCookie) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		slog.Warn("Не удалось разобрать URL сервера для восстановления кук", "url", c.baseURL, "error", err)
		return
	}
	httpCookies := make([]*http.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		httpCookies = append(httpCookies, &http.Cookie{Name: cookie.Name, Value: cookie.Value, Path: "/"})
	}
	c.jar.SetCookies(u, httpCookies)
}

// do выполняет запрос и упаковывает любой результат в Response.
func (c *httpClient) do(ctx context.Context, method, path string, body any) (result Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Паника при выполнении запроса к API", "path", path, "panic", r)
			result = Response{Err: fmt.Errorf("%w: %v", ErrNetworkUnavailable, r)}
		}
	}()

	// Формируем URL эндпоинта
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return Response{Err: fmt.Errorf("ошибка формирования URL '%s': %w", path, err)}
	}

	var reader io.Reader
	if body != nil {
		jsonData, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			return Response{Err: fmt.Errorf("ошибка кодирования тела запроса: %w", errMarshal)}
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return Response{Err: fmt.Errorf("ошибка создания запроса %s %s: %w", method, path, err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("Сервер недоступен", "method", method, "path", path, "error", err)
		return Response{Err: fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("Ошибка чтения тела ответа", "path", path, "error", err)
	}

	result = Response{
		OK:     resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices,
		Status: resp.StatusCode,
		Data:   parseBody(raw),
	}
	slog.Debug("Ответ API", "method", method, "path", path, "status", result.Status, "ok", result.OK)
	return result
}

// parseBody пробует разобрать JSON, при неудаче возвращает текст как есть.
func parseBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return string(raw)
	}
	return data
}
