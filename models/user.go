package models

import "time"

// User представляет пользователя на сервере.
// Тэги `db` используются для маппинга с полями БД с помощью sqlx.
// Тэги `json` используются для (де)сериализации JSON.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"` // Не отправляем хеш пароля в JSON
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// LocalUser - запись пользователя в локальном хранилище клиента.
// Создается при регистрации без сервера и больше не изменяется.
type LocalUser struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest представляет тело запроса на регистрацию.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest представляет тело запроса на вход.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse представляет тело ответа при успешном входе.
type LoginResponse struct {
	OK       bool   `json:"ok"`
	Username string `json:"username"`
}

// CurrentUserResponse - ответ /api/current_user. Username равен nil без сессии.
type CurrentUserResponse struct {
	Username *string `json:"username"`
}

// StatusResponse - общий ответ вида {"ok": true} или {"error": "..."}.
type StatusResponse struct {
	OK    bool   `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

// SessionCookie - непрозрачная сессионная кука сервера, сохраняемая клиентом.
type SessionCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StoredSession - сохраненные куки вместе с адресом сервера, который их выдал.
// Куки отдаются только тому же серверу.
type StoredSession struct {
	BaseURL string          `json:"baseUrl"`
	Cookies []SessionCookie `json:"cookies"`
}
