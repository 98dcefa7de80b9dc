package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updateRegisterScreen обрабатывает ввод данных для регистрации.
func (m *model) updateRegisterScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	registerAction := func() (tea.Model, tea.Cmd) {
		username := m.registerUsernameInput.Value()
		password := m.registerPasswordInput.Value()
		cmd := makeRegisterCmd(m.sessions, username, password)
		m.err = nil
		_, statusCmd := m.setStatusMessage("Выполняется регистрация...")
		return m, tea.Batch(cmd, statusCmd)
	}

	return m.handleCredentialsInput(
		msg,
		&m.registerUsernameInput,
		&m.registerPasswordInput,
		&m.loginRegisterFocusedField,
		registerAction,
		landingScreen,
	)
}

// viewRegisterScreen отображает экран регистрации.
func (m *model) viewRegisterScreen() string {
	return m.viewCredentialsScreen(
		"Регистрация в FitLog",
		"Нажмите Enter для регистрации, Esc для возврата",
		m.registerUsernameInput,
		m.registerPasswordInput,
	)
}
