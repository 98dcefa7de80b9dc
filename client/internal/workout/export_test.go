package workout

import "time"

// SetIDGenerator подменяет генератор идентификаторов в тестах.
func (r *Repository) SetIDGenerator(fn func() string) {
	r.newID = fn
}

// SetClock подменяет источник времени в тестах.
func (r *Repository) SetClock(fn func() time.Time) {
	r.now = fn
}
