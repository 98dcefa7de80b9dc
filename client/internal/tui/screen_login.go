package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updateLoginScreen обрабатывает ввод данных для входа.
func (m *model) updateLoginScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	loginAction := func() (tea.Model, tea.Cmd) {
		username := m.loginUsernameInput.Value()
		password := m.loginPasswordInput.Value()
		cmd := makeLoginCmd(m.sessions, username, password)
		m.err = nil
		_, statusCmd := m.setStatusMessage("Выполняется вход...")
		return m, tea.Batch(cmd, statusCmd)
	}

	return m.handleCredentialsInput(
		msg,
		&m.loginUsernameInput,
		&m.loginPasswordInput,
		&m.loginRegisterFocusedField,
		loginAction,
		landingScreen, // Возвращаемся на начальный экран при Esc
	)
}

// viewLoginScreen отображает экран ввода данных для входа.
func (m *model) viewLoginScreen() string {
	return m.viewCredentialsScreen(
		"Вход в FitLog",
		"Нажмите Enter для входа, Esc для возврата",
		m.loginUsernameInput,
		m.loginPasswordInput,
	)
}
