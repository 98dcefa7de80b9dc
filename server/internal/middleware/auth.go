package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// SessionCookieName - имя HttpOnly cookie с токеном сессии.
const SessionCookieName = "fitlog_session"

type contextKey string

// UsernameKey - ключ имени пользователя в контексте запроса.
const UsernameKey contextKey = "username"

// TokenParser проверяет токен сессии и возвращает имя пользователя.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// Session читает cookie сессии и кладет имя пользователя в контекст.
// Запрос без сессии или с невалидным токеном проходит дальше анонимным.
func Session(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			username, err := parser.ParseToken(cookie.Value)
			if err != nil {
				log.Printf("[AuthMiddleware] Отклонен токен сессии: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}

// RequireUser отвечает 401, если в контексте нет пользователя.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UsernameFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUsername возвращает контекст с именем пользователя.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}

// UsernameFromContext извлекает имя пользователя из контекста.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok && username != ""
}
