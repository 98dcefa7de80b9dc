package kvstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fitlog/fitlog/client/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// newStores возвращает обе реализации хранилища для общих тестов.
func newStores(t *testing.T, maxBytes int64) map[string]kvstore.Store {
	t.Helper()
	fileStore, err := kvstore.NewFileStore(filepath.Join(t.TempDir(), "fitlog.json"), maxBytes)
	require.NoError(t, err)
	return map[string]kvstore.Store{
		"file":   fileStore,
		"memory": kvstore.NewMemoryStore(maxBytes),
	}
}

func TestStore_SetGet(t *testing.T) {
	for name, store := range newStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("k", sample{Name: "Pecho", Count: 2}))

			var got sample
			require.True(t, store.Get("k", &got), "Значение должно читаться")
			assert.Equal(t, sample{Name: "Pecho", Count: 2}, got)

			// Повторная запись заменяет значение целиком
			require.NoError(t, store.Set("k", sample{Name: "Pierna"}))
			var replaced sample
			require.True(t, store.Get("k", &replaced))
			assert.Equal(t, sample{Name: "Pierna"}, replaced)
		})
	}
}

func TestStore_GetMissingOrInvalid(t *testing.T) {
	for name, store := range newStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			var got sample
			assert.False(t, store.Get("missing", &got), "Отсутствующий ключ")

			require.NoError(t, store.Set("text", "не объект"))
			assert.False(t, store.Get("text", &got), "Значение другого типа не должно разбираться")
		})
	}
}

func TestStore_RemoveClearKeys(t *testing.T) {
	for name, store := range newStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("b", 1))
			require.NoError(t, store.Set("a", 2))
			assert.Equal(t, []string{"a", "b"}, store.Keys())

			require.NoError(t, store.Remove("a"))
			require.NoError(t, store.Remove("a"), "Повторное удаление не ошибка")
			assert.Equal(t, []string{"b"}, store.Keys())

			require.NoError(t, store.Clear())
			assert.Empty(t, store.Keys())
		})
	}
}

func TestStore_Quota(t *testing.T) {
	for name, store := range newStores(t, 32) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("k", "short"))
			err := store.Set("k", "значение, которое точно не помещается в квоту")
			require.ErrorIs(t, err, kvstore.ErrStorageFull)

			// Прежнее значение не должно пострадать
			var got string
			require.True(t, store.Get("k", &got))
			assert.Equal(t, "short", got)
		})
	}
}

func TestFileStore_QuotaBoundsFileSize(t *testing.T) {
	const maxBytes = 300
	path := filepath.Join(t.TempDir(), "fitlog.json")
	store, err := kvstore.NewFileStore(path, maxBytes)
	require.NoError(t, err)

	var full bool
	for i := 0; i < 20; i++ {
		err = store.Set(kvstore.KeyWorkouts, make([]sample, i+1))
		if err != nil {
			require.ErrorIs(t, err, kvstore.ErrStorageFull)
			full = true
			break
		}
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.LessOrEqual(t, info.Size(), int64(maxBytes), "Файл не должен превышать квоту")
	}
	assert.True(t, full, "Квота должна сработать")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(maxBytes))
}

func TestInitialize(t *testing.T) {
	store := kvstore.NewMemoryStore(0)
	require.NoError(t, store.Set(kvstore.KeyUsers, []sample{{Name: "alice"}}))

	require.NoError(t, kvstore.Initialize(store))

	var users []sample
	require.True(t, store.Get(kvstore.KeyUsers, &users))
	assert.Len(t, users, 1, "Существующий список не должен перезаписываться")

	var workouts []sample
	require.True(t, store.Get(kvstore.KeyWorkouts, &workouts))
	assert.Empty(t, workouts)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fitlog.json")
	store, err := kvstore.NewFileStore(path, 0)
	require.NoError(t, err)
	require.NoError(t, store.Set(kvstore.KeyCurrentUser, "alice"))
	assert.Equal(t, path, store.Path())

	reopened, err := kvstore.NewFileStore(path, 0)
	require.NoError(t, err)
	var user string
	require.True(t, reopened.Get(kvstore.KeyCurrentUser, &user))
	assert.Equal(t, "alice", user)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitlog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store, err := kvstore.NewFileStore(path, 0)
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "поврежден")
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := kvstore.NewFileStore("", 0)
	require.Error(t, err)
}
