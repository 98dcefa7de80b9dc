// Package kvstore хранит значения клиента по ключам в сериализованном (JSON) виде.
// Каждый ключ читается и записывается целиком, транзакций между ключами нет.
package kvstore

import (
	"errors"
	"log/slog"
)

// Ключи, которые использует клиент.
const (
	KeyUsers         = "fitlog_users"
	KeyWorkouts      = "fitlog_workouts"
	KeyCurrentUser   = "current_user"
	KeySessionCookie = "session_cookie"
	KeyServerURL     = "server_url"
)

// ErrStorageFull возвращается, если запись превысит квоту хранилища.
var ErrStorageFull = errors.New("хранилище переполнено")

// Store определяет интерфейс хранилища ключ-значение.
type Store interface {
	// Set сериализует value и сохраняет под ключом key, заменяя прежнее значение.
	Set(key string, value any) error
	// Get десериализует значение ключа в dst.
	// Возвращает false, если ключ не задан или значение не удалось разобрать.
	Get(key string, dst any) bool
	// Remove удаляет ключ. Удаление отсутствующего ключа не ошибка.
	Remove(key string) error
	// Clear удаляет все ключи.
	Clear() error
	// Keys возвращает список сохраненных ключей.
	Keys() []string
}

// Initialize создает пустые списки пользователей и тренировок, если их еще нет.
func Initialize(s Store) error {
	var users []any
	if !s.Get(KeyUsers, &users) {
		if err := s.Set(KeyUsers, []any{}); err != nil {
			return err
		}
		slog.Debug("Инициализирован пустой список пользователей")
	}
	var workouts []any
	if !s.Get(KeyWorkouts, &workouts) {
		if err := s.Set(KeyWorkouts, []any{}); err != nil {
			return err
		}
		slog.Debug("Инициализирован пустой список тренировок")
	}
	return nil
}
