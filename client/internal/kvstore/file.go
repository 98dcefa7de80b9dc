package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

const (
	defaultFilePerm = 0600
	defaultDirPerm  = 0o755
	lockSuffix      = ".lock"
)

// FileStore хранит все ключи в одном JSON-документе на диске.
// Запись идет через временный файл и rename, параллельные процессы
// разделяются блокировкой файла <path>.lock.
type FileStore struct {
	path     string
	maxBytes int64
	mu       sync.Mutex
	fileLock *flock.Flock
}

var _ Store = (*FileStore)(nil)

// NewFileStore открывает (или подготавливает к созданию) файл хранилища.
// maxBytes <= 0 отключает квоту.
func NewFileStore(path string, maxBytes int64) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("путь к файлу хранилища не может быть пустым")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
			return nil, fmt.Errorf("ошибка создания каталога хранилища '%s': %w", dir, err)
		}
	}
	s := &FileStore{
		path:     path,
		maxBytes: maxBytes,
		fileLock: flock.New(path + lockSuffix),
	}
	// Проверяем, что существующий файл читается
	if _, err := s.readAll(); err != nil {
		return nil, err
	}
	slog.Info("Хранилище открыто", "path", path)
	return s, nil
}

// Path возвращает путь к файлу хранилища.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("ошибка сериализации значения '%s': %w", key, err)
	}
	return s.update(true, func(values map[string]json.RawMessage) error {
		values[key] = data
		return nil
	})
}

func (s *FileStore) Get(key string, dst any) bool {
	values, err := s.readLocked()
	if err != nil {
		slog.Error("Ошибка чтения хранилища", "path", s.path, "error", err)
		return false
	}
	data, ok := values[key]
	if !ok {
		return false
	}
	if err = json.Unmarshal(data, dst); err != nil {
		slog.Warn("Не удалось разобрать значение из хранилища", "key", key, "error", err)
		return false
	}
	return true
}

func (s *FileStore) Remove(key string) error {
	return s.update(false, func(values map[string]json.RawMessage) error {
		delete(values, key)
		return nil
	})
}

func (s *FileStore) Clear() error {
	return s.update(false, func(values map[string]json.RawMessage) error {
		for k := range values {
			delete(values, k)
		}
		return nil
	})
}

func (s *FileStore) Keys() []string {
	values, err := s.readLocked()
	if err != nil {
		slog.Error("Ошибка чтения хранилища", "path", s.path, "error", err)
		return nil
	}
	return sortedKeys(values)
}

// update перечитывает документ под эксклюзивной блокировкой, применяет fn
// и атомарно записывает результат. При checkQuota квота сравнивается
// с размером итогового файла.
func (s *FileStore) update(checkQuota bool, fn func(values map[string]json.RawMessage) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fileLock.Lock(); err != nil {
		return fmt.Errorf("ошибка блокировки файла '%s': %w", s.fileLock.Path(), err)
	}
	defer func() {
		if errUnlock := s.fileLock.Unlock(); errUnlock != nil {
			slog.Error("Ошибка при снятии блокировки файла", "lockPath", s.fileLock.Path(), "error", errUnlock)
		}
	}()

	values, err := s.readAll()
	if err != nil {
		return err
	}
	if err = fn(values); err != nil {
		return err
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("ошибка сериализации хранилища: %w", err)
	}
	if checkQuota && s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		slog.Warn("Превышена квота хранилища", "size", len(data), "max_bytes", s.maxBytes)
		return ErrStorageFull
	}
	return s.writeAll(data)
}

// readLocked читает документ под разделяемой блокировкой.
func (s *FileStore) readLocked() (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fileLock.RLock(); err != nil {
		return nil, fmt.Errorf("ошибка блокировки файла '%s': %w", s.fileLock.Path(), err)
	}
	defer func() {
		_ = s.fileLock.Unlock()
	}()
	return s.readAll()
}

func (s *FileStore) readAll() (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("ошибка чтения файла '%s': %w", s.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err = json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("файл хранилища '%s' поврежден: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) writeAll(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpPath := tmp.Name()
	// Если rename не случился, временный файл надо убрать
	defer os.Remove(tmpPath)

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("ошибка записи временного файла: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия временного файла: %w", err)
	}
	if err = os.Chmod(tmpPath, defaultFilePerm); err != nil {
		return fmt.Errorf("ошибка установки прав на файл: %w", err)
	}
	if err = os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("ошибка замены файла хранилища '%s': %w", s.path, err)
	}
	return nil
}
