package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Response - результат обращения к API.
// Data содержит разобранный JSON или сырой текст, если тело не JSON.
type Response struct {
	OK     bool  // Транспорт отработал и статус 2xx
	Status int   // HTTP статус, 0 если ответа не было
	Data   any   // Тело ответа
	Err    error // Ошибка транспорта или подготовки запроса
}

// Reachable сообщает, получил ли клиент хоть какой-то ответ сервера.
func (r Response) Reachable() bool {
	return r.Status != 0
}

// Field возвращает поле JSON-объекта из тела ответа.
func (r Response) Field(name string) (any, bool) {
	obj, ok := r.Data.(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := obj[name]
	return value, ok
}

// StringField возвращает строковое поле тела или пустую строку.
func (r Response) StringField(name string) string {
	value, ok := r.Field(name)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// Decode перекладывает тело ответа в структуру dst.
func (r Response) Decode(dst any) error {
	if r.Data == nil {
		return errors.New("пустое тело ответа")
	}
	if _, isText := r.Data.(string); isText {
		return errors.New("тело ответа не является JSON")
	}
	data, err := json.Marshal(r.Data)
	if err != nil {
		return fmt.Errorf("ошибка кодирования тела ответа: %w", err)
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("ошибка декодирования тела ответа: %w", err)
	}
	return nil
}

// SessionUsername извлекает пользователя из ответа /api/current_user.
// Сессия считается действующей только при статусе 2xx и непустом username.
func SessionUsername(r Response) (string, bool) {
	if !r.OK {
		return "", false
	}
	username := r.StringField("username")
	return username, username != ""
}
