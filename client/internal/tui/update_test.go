//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitlog/fitlog/client/internal/api"
	"github.com/fitlog/fitlog/client/internal/api/apitest"
	"github.com/fitlog/fitlog/client/internal/session"
	"github.com/fitlog/fitlog/client/internal/workout"
	"github.com/fitlog/fitlog/models"
)

func TestUpdate_GlobalMessages(t *testing.T) {
	t.Run("ctrl+c завершает программу", func(t *testing.T) {
		m := newOfflineModel(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("Очистка статуса", func(t *testing.T) {
		m := newOfflineModel(t)
		m.savingStatus = "Сохранено"
		m.Update(clearStatusMsg{})
		assert.Empty(t, m.savingStatus)
	})

	t.Run("Изменение размера окна", func(t *testing.T) {
		m := newOfflineModel(t)
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
		assert.Equal(t, 100, m.width)
		assert.Equal(t, 40, m.height)
		assert.Positive(t, m.loginUsernameInput.Width)
	})
}

func TestHandleSessionCheckedMsg(t *testing.T) {
	t.Run("Нет сессии: переход на начальный экран", func(t *testing.T) {
		m := newOfflineModel(t)
		m.state = dashboardScreen
		m.current = &session.Context{Username: "bob"}

		newM, cmd := m.Update(sessionCheckedMsg{err: session.ErrMissingSession, target: historyScreen})
		model := asModel(t, newM)
		assert.Equal(t, landingScreen, model.state)
		assert.Nil(t, model.current)
		assert.Equal(t, "Требуется вход", model.savingStatus)
		assert.NotNil(t, cmd)
	})

	t.Run("Тихая проверка при запуске не показывает статус", func(t *testing.T) {
		m := newOfflineModel(t)
		newM, cmd := m.Update(sessionCheckedMsg{err: session.ErrMissingSession, target: dashboardScreen, silent: true})
		model := asModel(t, newM)
		assert.Equal(t, landingScreen, model.state)
		assert.Empty(t, model.savingStatus)
		assert.Nil(t, cmd)
	})

	t.Run("Сессия есть: открывается экран и грузится история", func(t *testing.T) {
		m := newOfflineModel(t)
		sess := session.Context{Username: "bob", Source: session.SourceLocal}

		newM, cmd := m.Update(sessionCheckedMsg{sess: sess, target: historyScreen})
		model := asModel(t, newM)
		assert.Equal(t, historyScreen, model.state)
		require.NotNil(t, model.current)
		assert.Equal(t, "bob", model.current.Username)
		require.NotNil(t, cmd)

		loaded, ok := cmd().(historyLoadedMsg)
		require.True(t, ok)
		assert.Equal(t, "bob", loaded.username)
	})

	t.Run("Открытие формы тренировки", func(t *testing.T) {
		m := newOfflineModel(t)
		newM, cmd := m.Update(sessionCheckedMsg{sess: session.Context{Username: "bob"}, target: addWorkoutScreen})
		model := asModel(t, newM)
		assert.Equal(t, addWorkoutScreen, model.state)
		assert.Nil(t, cmd)
		assert.NotEmpty(t, model.workoutInputs[workoutFieldDate].Value())
		assert.True(t, model.workoutInputs[workoutFieldType].Focused())
	})
}

func TestHandleLoginResultMsg(t *testing.T) {
	t.Run("Ошибка входа остается на экране", func(t *testing.T) {
		m := newOfflineModel(t)
		m.state = loginScreen
		newM, _ := m.Update(loginResultMsg{err: session.ErrInvalidCredentials})
		model := asModel(t, newM)
		assert.Equal(t, loginScreen, model.state)
		require.ErrorIs(t, model.err, session.ErrInvalidCredentials)
		assert.Contains(t, model.savingStatus, "Ошибка входа")
	})

	t.Run("Успешный вход открывает панель", func(t *testing.T) {
		m := newOfflineModel(t)
		m.state = loginScreen
		m.loginUsernameInput.SetValue("bob")
		m.loginPasswordInput.SetValue("pw")

		newM, cmd := m.Update(loginResultMsg{sess: session.Context{Username: "bob", Source: session.SourceRemote}})
		model := asModel(t, newM)
		assert.Equal(t, dashboardScreen, model.state)
		assert.Empty(t, model.loginPasswordInput.Value())
		assert.Contains(t, model.savingStatus, "сервер")
		assert.NotNil(t, cmd)
	})
}

func TestHandleRegisterResultMsg(t *testing.T) {
	t.Run("Дубликат пользователя", func(t *testing.T) {
		m := newOfflineModel(t)
		m.state = registerScreen
		newM, _ := m.Update(registerResultMsg{username: "bob", err: session.ErrDuplicateUser})
		model := asModel(t, newM)
		assert.Equal(t, registerScreen, model.state)
		require.ErrorIs(t, model.err, session.ErrDuplicateUser)
	})

	t.Run("Успех ведет на вход с заполненным именем", func(t *testing.T) {
		m := newOfflineModel(t)
		m.state = registerScreen
		newM, _ := m.Update(registerResultMsg{username: "bob", source: session.SourceLocal})
		model := asModel(t, newM)
		assert.Equal(t, loginScreen, model.state)
		assert.Equal(t, "bob", model.loginUsernameInput.Value())
		assert.Equal(t, 1, model.loginRegisterFocusedField)
		assert.True(t, model.loginPasswordInput.Focused())
		assert.Contains(t, model.savingStatus, "локально")
	})
}

func TestHandleHistoryLoadedMsg(t *testing.T) {
	m := newOfflineModel(t)
	m.current = &session.Context{Username: "bob"}
	pending := workout.Entry{
		Workout: models.Workout{ID: "pending-1", Username: "bob", Type: "Pecho", Date: "2024-03-02"},
		Sync:    models.SyncPending,
	}
	m.entries = []workout.Entry{
		{Workout: models.Workout{ID: "old", Username: "bob", Type: "Old", Date: "2024-01-01"}, Sync: models.SyncLocalOnly},
		pending,
	}

	loaded := []workout.Entry{
		{Workout: models.Workout{ID: "remote-1", Username: "bob", Type: "Pierna", Date: "2024-03-01"}, Sync: models.SyncRemoteOnly},
	}

	// История другого пользователя пропускается
	m.Update(historyLoadedMsg{username: "alice", entries: loaded})
	assert.Len(t, m.entries, 2)
	assert.Equal(t, 0, m.historyLoads)

	m.Update(historyLoadedMsg{username: "bob", entries: loaded})
	require.Len(t, m.entries, 2)
	assert.Equal(t, "remote-1", m.entries[0].ID)
	assert.Equal(t, pending, m.entries[1])
	assert.Equal(t, 1, m.historyLoads)
	assert.Len(t, m.historyList.Items(), 2)
}

func TestHandleWorkoutSavedMsg(t *testing.T) {
	newModelWithPending := func(t *testing.T) *model {
		t.Helper()
		m := newOfflineModel(t)
		m.current = &session.Context{Username: "bob"}
		m.entries = []workout.Entry{{
			Workout: models.Workout{ID: "pending-1", Username: "bob", Type: "Pecho", Date: "2024-03-02"},
			Sync:    models.SyncPending,
		}}
		return m
	}

	t.Run("Ошибка убирает временную запись", func(t *testing.T) {
		m := newModelWithPending(t)
		m.Update(workoutSavedMsg{pendingID: "pending-1", err: workout.ErrSaveFailed})
		assert.Empty(t, m.entries)
		require.ErrorIs(t, m.err, workout.ErrSaveFailed)
		assert.Contains(t, m.savingStatus, "Ошибка сохранения")
	})

	t.Run("Локальное сохранение заменяет временную запись", func(t *testing.T) {
		m := newModelWithPending(t)
		saved := models.Workout{ID: "uuid-1", Username: "bob", Type: "Pecho", Date: "2024-03-02"}
		_, cmd := m.Update(workoutSavedMsg{pendingID: "pending-1", workout: saved, state: models.SyncLocalOnly})

		require.Len(t, m.entries, 1)
		assert.Equal(t, workout.Entry{Workout: saved, Sync: models.SyncLocalOnly}, m.entries[0])
		assert.Contains(t, m.savingStatus, "локально")
		assert.NotNil(t, cmd)
	})

	t.Run("Сохранение на сервере", func(t *testing.T) {
		m := newModelWithPending(t)
		saved := models.Workout{ID: "uuid-2", Username: "bob", Type: "Pecho", Date: "2024-03-02"}
		m.Update(workoutSavedMsg{pendingID: "pending-1", workout: saved, state: models.SyncRemoteOnly})

		require.Len(t, m.entries, 1)
		assert.Equal(t, models.SyncRemoteOnly, m.entries[0].Sync)
		assert.Equal(t, "Тренировка сохранена на сервере", m.savingStatus)
	})
}

func TestHandleLogoutDoneMsg(t *testing.T) {
	m := newOfflineModel(t)
	m.state = dashboardScreen
	m.current = &session.Context{Username: "bob"}
	m.typeFilter = "Pecho"

	m.Update(logoutDoneMsg{})
	assert.Equal(t, landingScreen, m.state)
	assert.Nil(t, m.current)
	assert.Empty(t, m.typeFilter)
	assert.Equal(t, "Вы вышли из аккаунта", m.savingStatus)

	m.Update(logoutDoneMsg{err: errors.New("диск")})
	assert.Contains(t, m.savingStatus, "Ошибка выхода")
}

func TestCommands_RemoteSession(t *testing.T) {
	client := new(apitest.MockClient)
	client.On("CurrentSession", mock.Anything).
		Return(api.Response{OK: true, Status: http.StatusOK, Data: map[string]any{"username": "alice"}})
	client.On("ListWorkouts", mock.Anything).Return(api.Response{Err: api.ErrNetworkUnavailable})
	m := newTestModel(t, client)

	msg, ok := checkSessionCmd(m.sessions, dashboardScreen, true)().(sessionCheckedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, session.Context{Username: "alice", Source: session.SourceRemote}, msg.sess)

	m.Update(msg)
	assert.Equal(t, dashboardScreen, m.state)

	loaded, ok := loadHistoryCmd(m.workouts, "alice")().(historyLoadedMsg)
	require.True(t, ok)
	assert.Empty(t, loaded.entries)
	client.AssertExpectations(t)
}
