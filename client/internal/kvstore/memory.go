package kvstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// MemoryStore хранит значения в памяти процесса. Используется в тестах
// и при запуске с -data :memory:.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]json.RawMessage
	maxBytes int64
}

// NewMemoryStore создает пустое хранилище в памяти.
// maxBytes <= 0 отключает квоту.
func NewMemoryStore(maxBytes int64) *MemoryStore {
	return &MemoryStore{values: make(map[string]json.RawMessage), maxBytes: maxBytes}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("ошибка сериализации значения '%s': %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxBytes > 0 && usedBytes(s.values, key, data) > s.maxBytes {
		return ErrStorageFull
	}
	s.values[key] = data
	return nil
}

func (s *MemoryStore) Get(key string, dst any) bool {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("Не удалось разобрать значение из хранилища", "key", key, "error", err)
		return false
	}
	return true
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.values = make(map[string]json.RawMessage)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.values)
}

// usedBytes считает объем всех значений после замены key на data.
func usedBytes(values map[string]json.RawMessage, key string, data []byte) int64 {
	total := int64(len(key) + len(data))
	for k, v := range values {
		if k == key {
			continue
		}
		total += int64(len(k) + len(v))
	}
	return total
}

func sortedKeys(values map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
