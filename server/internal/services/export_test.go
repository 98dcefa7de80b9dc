package services

import "time"

// SetClock подменяет часы сервиса аутентификации в тестах.
func SetClock(s AuthService, now func() time.Time) {
	s.(*authService).now = now
}
