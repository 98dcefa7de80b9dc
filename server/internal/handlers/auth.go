package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fitlog/fitlog/models"
	"github.com/fitlog/fitlog/server/internal/middleware"
	"github.com/fitlog/fitlog/server/internal/services"
)

// AuthService - то, что нужно обработчикам аутентификации от сервиса.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// CookieOptions задает атрибуты cookie сессии.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

// AuthHandler обслуживает регистрацию, вход, выход и текущую сессию.
type AuthHandler struct {
	service  AuthService
	cookie   CookieOptions
	validate *validator.Validate
}

// NewAuthHandler создает обработчик аутентификации.
func NewAuthHandler(s AuthService, cookie CookieOptions) *AuthHandler {
	if cookie.TTL <= 0 {
		cookie.TTL = services.DefaultTokenTTL
	}
	return &AuthHandler{
		service:  s,
		cookie:   cookie,
		validate: validator.New(),
	}
}

// decodeCredentials читает {username, password}. Имя обрезается по краям, пароль нет.
func (h *AuthHandler) decodeCredentials(w http.ResponseWriter, r *http.Request) (models.LoginRequest, bool) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return req, false
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "username and password required")
		return req, false
	}
	return req, true
}

// Register: 201 {"ok":true}, 400 при пустых полях, 409 если имя занято.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "user exists")
			return
		}
		log.Printf("[AuthHandler] Ошибка регистрации '%s': %v", req.Username, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeOK(w, http.StatusCreated)
}

// Login: 200 {"ok":true,"username":...} и cookie сессии, 401 при неверных данных.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("[AuthHandler] Ошибка входа '%s': %v", req.Username, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.cookie.TTL.Seconds())))
	writeJSON(w, http.StatusOK, models.LoginResponse{OK: true, Username: req.Username})
}

// Logout всегда отвечает 200 и стирает cookie сессии.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeOK(w, http.StatusOK)
}

// CurrentUser: {"username": "..."} или {"username": null} без сессии.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	resp := models.CurrentUserResponse{}
	if username, ok := middleware.UsernameFromContext(r.Context()); ok {
		resp.Username = &username
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
