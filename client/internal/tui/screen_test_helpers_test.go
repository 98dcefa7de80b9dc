//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/fitlog/fitlog/client/internal/api/apitest"
	"github.com/fitlog/fitlog/client/internal/kvstore"
	"github.com/fitlog/fitlog/client/internal/session"
	"github.com/fitlog/fitlog/client/internal/workout"
)

const testServerURL = "http://127.0.0.1:5000"

// newTestModel создает модель с хранилищем в памяти и моком API клиента.
func newTestModel(t *testing.T, client *apitest.MockClient) *model {
	t.Helper()
	store := kvstore.NewMemoryStore(0)
	require.NoError(t, kvstore.Initialize(store))

	m := initModel(false, 0)
	m.store = store
	m.apiClient = client
	m.serverURL = testServerURL
	m.sessions = session.NewManager(client, store)
	m.workouts = workout.NewRepository(client, store)
	return &m
}

// newOfflineModel создает модель, для которой сервер недоступен.
func newOfflineModel(t *testing.T) *model {
	t.Helper()
	return newTestModel(t, new(apitest.MockClient).Offline())
}

// keyRunes создает сообщение о нажатии символьной клавиши.
func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// asModel приводит tea.Model к *model.
func asModel(t *testing.T, m tea.Model) *model {
	t.Helper()
	result, ok := m.(*model)
	require.True(t, ok, "Должен быть возвращен указатель на model")
	return result
}

// loginAs регистрирует и выполняет локальный вход пользователя.
func loginAs(t *testing.T, m *model, username string) {
	t.Helper()
	registerMsg := makeRegisterCmd(m.sessions, username, "pw")()
	m.Update(registerMsg)
	loginMsg, ok := makeLoginCmd(m.sessions, username, "pw")().(loginResultMsg)
	require.True(t, ok)
	require.NoError(t, loginMsg.err)
	m.Update(loginMsg)
	require.Equal(t, dashboardScreen, m.state)
}
