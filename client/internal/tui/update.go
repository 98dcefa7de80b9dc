package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitlog/fitlog/client/internal/session"
	"github.com/fitlog/fitlog/client/internal/workout"
	"github.com/fitlog/fitlog/models"
)

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// == Глобальные сообщения (не зависят от экрана) ==
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case clearStatusMsg:
		m.savingStatus = ""
		return m, nil

	case sessionCheckedMsg:
		return m.handleSessionCheckedMsg(msg)

	case loginResultMsg:
		return m.handleLoginResultMsg(msg)

	case registerResultMsg:
		return m.handleRegisterResultMsg(msg)

	case logoutDoneMsg:
		return m.handleLogoutDoneMsg(msg)

	case historyLoadedMsg:
		return m.handleHistoryLoadedMsg(msg)

	case workoutSavedMsg:
		return m.handleWorkoutSavedMsg(msg)

	case workoutsClearedMsg:
		return m.handleWorkoutsClearedMsg(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// == Обновление в зависимости от состояния ==
	switch m.state {
	case landingScreen:
		return m.updateLandingScreen(msg)
	case usersScreen:
		return m.updateUsersScreen(msg)
	case loginScreen:
		return m.updateLoginScreen(msg)
	case registerScreen:
		return m.updateRegisterScreen(msg)
	case dashboardScreen:
		return m.updateDashboardScreen(msg)
	case historyScreen:
		return m.updateHistoryScreen(msg)
	case addWorkoutScreen:
		return m.updateAddWorkoutScreen(msg)
	case serverURLInputScreen:
		return m.updateServerURLInputScreen(msg)
	default:
		return m, nil
	}
}

// resize обновляет размеры компонентов.
func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	h, v := m.docStyle.GetFrameSize()
	listWidth := width - h
	listHeight := height - v - helpStatusHeightOffset

	m.usersList.SetSize(listWidth, listHeight)
	m.historyList.SetSize(listWidth, listHeight)

	inputWidth := listWidth - passwordInputOffset
	m.serverURLInput.Width = inputWidth
	m.loginUsernameInput.Width = inputWidth
	m.loginPasswordInput.Width = inputWidth
	m.registerUsernameInput.Width = inputWidth
	m.registerPasswordInput.Width = inputWidth
	for i := range m.workoutInputs {
		m.workoutInputs[i].Width = inputWidth
	}
}

// openProtected проверяет сессию перед переходом на защищенный экран.
func (m *model) openProtected(target screenState) tea.Cmd {
	return checkSessionCmd(m.sessions, target, false)
}

// handleSessionCheckedMsg открывает запрошенный экран или возвращает на начальный.
func (m *model) handleSessionCheckedMsg(msg sessionCheckedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.current = nil
		m.entries = nil
		m.state = landingScreen
		if msg.silent {
			return m, nil
		}
		if errors.Is(msg.err, session.ErrMissingSession) {
			return m.setStatusMessage("Требуется вход")
		}
		slog.Error("Ошибка проверки сессии", "error", msg.err)
		return m.setStatusMessage(fmt.Sprintf("Ошибка проверки сессии: %v", msg.err))
	}

	sess := msg.sess
	if m.current == nil || m.current.Username != sess.Username {
		m.entries = nil
	}
	m.current = &sess
	m.state = msg.target
	slog.Debug("Сессия подтверждена", "username", sess.Username, "source", sess.Source, "screen", msg.target.String())

	if msg.target == addWorkoutScreen {
		m.prepareAddWorkoutScreen()
		return m, nil
	}
	return m, loadHistoryCmd(m.workouts, sess.Username)
}

// handleLoginResultMsg обрабатывает результат входа.
func (m *model) handleLoginResultMsg(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		slog.Info("Вход не выполнен", "error", msg.err)
		return m.setStatusMessage(fmt.Sprintf("Ошибка входа: %v", msg.err))
	}
	m.err = nil
	sess := msg.sess
	m.current = &sess
	m.entries = nil
	m.loginUsernameInput.Reset()
	m.loginPasswordInput.Reset()
	m.loginUsernameInput.Blur()
	m.loginPasswordInput.Blur()
	m.state = dashboardScreen

	_, statusCmd := m.setStatusMessage(fmt.Sprintf("Вход выполнен: %s (%s)", sess.Username, sourceLabel(sess.Source)))
	return m, tea.Batch(loadHistoryCmd(m.workouts, sess.Username), statusCmd, tea.ClearScreen)
}

// handleRegisterResultMsg обрабатывает результат регистрации.
func (m *model) handleRegisterResultMsg(msg registerResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		return m.setStatusMessage(fmt.Sprintf("Ошибка регистрации: %v", msg.err))
	}
	m.err = nil
	m.registerUsernameInput.Reset()
	m.registerPasswordInput.Reset()
	m.registerUsernameInput.Blur()
	m.registerPasswordInput.Blur()

	// После регистрации переходим ко входу с заполненным именем
	m.state = loginScreen
	m.loginRegisterFocusedField = 1
	m.loginUsernameInput.SetValue(msg.username)
	m.loginUsernameInput.Blur()
	m.loginPasswordInput.Focus()
	return m.setStatusMessage(fmt.Sprintf("Регистрация выполнена (%s). Войдите.", sourceLabel(msg.source)))
}

// handleLogoutDoneMsg возвращает на начальный экран после выхода.
func (m *model) handleLogoutDoneMsg(msg logoutDoneMsg) (tea.Model, tea.Cmd) {
	m.current = nil
	m.entries = nil
	m.typeFilter = ""
	m.state = landingScreen
	if msg.err != nil {
		slog.Error("Ошибка выхода", "error", msg.err)
		return m.setStatusMessage(fmt.Sprintf("Ошибка выхода: %v", msg.err))
	}
	return m.setStatusMessage("Вы вышли из аккаунта")
}

// handleHistoryLoadedMsg заменяет список тренировок, сохраняя еще не подтвержденные.
func (m *model) handleHistoryLoadedMsg(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if m.current == nil || m.current.Username != msg.username {
		slog.Debug("История загружена для другого пользователя, пропускаем", "username", msg.username)
		return m, nil
	}
	entries := append([]workout.Entry(nil), msg.entries...)
	for _, e := range m.entries {
		if e.Sync == models.SyncPending {
			entries = append(entries, e)
		}
	}
	m.entries = entries
	m.historyLoads++
	m.refreshHistoryList()
	return m, nil
}

// handleWorkoutsClearedMsg убирает локальные записи из списка и перечитывает историю.
func (m *model) handleWorkoutsClearedMsg(msg workoutsClearedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		slog.Error("Ошибка очистки локальных тренировок", "error", msg.err)
		m.err = msg.err
		return m.setStatusMessage("Не удалось удалить локальные тренировки")
	}
	slog.Info("Локальные тренировки удалены")
	m.entries = slices.DeleteFunc(m.entries, func(e workout.Entry) bool {
		return e.Sync == models.SyncLocalOnly
	})
	m.refreshHistoryList()

	_, statusCmd := m.setStatusMessage("Локальные тренировки удалены")
	if m.current == nil {
		return m, statusCmd
	}
	return m, tea.Batch(statusCmd, loadHistoryCmd(m.workouts, m.current.Username))
}

// handleWorkoutSavedMsg подтверждает или убирает временную запись тренировки.
func (m *model) handleWorkoutSavedMsg(msg workoutSavedMsg) (tea.Model, tea.Cmd) {
	idx := -1
	for i, e := range m.entries {
		if e.Sync == models.SyncPending && e.ID == msg.pendingID {
			idx = i
			break
		}
	}

	if msg.err != nil {
		if idx >= 0 {
			m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
		}
		m.refreshHistoryList()
		m.err = msg.err
		slog.Error("Ошибка сохранения тренировки", "error", msg.err)
		return m.setStatusMessage(fmt.Sprintf("Ошибка сохранения: %v", msg.err))
	}

	if idx >= 0 {
		m.entries[idx] = workout.Entry{Workout: msg.workout, Sync: msg.state}
	}
	m.refreshHistoryList()

	status := "Тренировка сохранена на сервере"
	if msg.state == models.SyncLocalOnly {
		status = "Сервер недоступен, тренировка сохранена локально"
	}
	_, statusCmd := m.setStatusMessage(status)

	// Перечитываем историю, чтобы серверная запись пришла с ее идентификатором
	if m.current != nil {
		return m, tea.Batch(statusCmd, loadHistoryCmd(m.workouts, m.current.Username))
	}
	return m, statusCmd
}

func sourceLabel(source session.Source) string {
	if source == session.SourceRemote {
		return "сервер"
	}
	return "локально"
}
