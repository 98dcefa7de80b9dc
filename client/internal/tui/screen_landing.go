package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateLandingScreen обрабатывает выбор между входом и регистрацией.
func (m *model) updateLandingScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "r", "R":
		m.state = registerScreen
		m.err = nil
		m.loginRegisterFocusedField = 0
		m.registerUsernameInput.Focus()
		m.registerPasswordInput.Blur()
		return m, tea.Batch(textinput.Blink, tea.ClearScreen)
	case "l", "L":
		m.state = loginScreen
		m.err = nil
		m.loginRegisterFocusedField = 0
		m.loginUsernameInput.Focus()
		m.loginPasswordInput.Blur()
		return m, tea.Batch(textinput.Blink, tea.ClearScreen)
	case "u", "U":
		m.prepareUsersScreen()
		m.state = usersScreen
		return m, tea.ClearScreen
	case "s", "S":
		m.state = serverURLInputScreen
		m.serverURLInput.SetValue(m.serverURL)
		m.serverURLInput.Focus()
		return m, textinput.Blink
	case "d", "D":
		// Панель доступна, если сессия уже есть
		return m, m.openProtected(dashboardScreen)
	case keyQuit:
		return m, tea.Quit
	}
	return m, nil
}

// viewLandingScreen отображает начальный экран.
func (m *model) viewLandingScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	focusedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")) // Пурпурный
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))  // Серый

	b.WriteString(titleStyle.Render("FitLog - дневник тренировок") + "\n\n")
	b.WriteString("Сервер: " + m.serverURL + "\n\n")
	b.WriteString("Выберите действие:\n")
	b.WriteString("- Вход с существующими данными " + focusedStyle.Render("(L)") + "\n")
	b.WriteString("- Регистрация нового пользователя " + focusedStyle.Render("(R)") + "\n")
	b.WriteString("- Локальные пользователи " + focusedStyle.Render("(U)") + "\n")
	b.WriteString("- Адрес сервера " + focusedStyle.Render("(S)") + "\n")
	b.WriteString("- Панель текущей сессии " + focusedStyle.Render("(D)") + "\n\n")
	b.WriteString(subtleStyle.Render("Без сервера вход и тренировки сохраняются локально"))

	return b.String()
}

// prepareUsersScreen заполняет список локальных пользователей.
func (m *model) prepareUsersScreen() {
	users := m.sessions.Users()
	items := make([]list.Item, 0, len(users))
	for _, u := range users {
		items = append(items, userItem{user: u})
	}
	m.usersList.SetItems(items)
	m.usersList.ResetSelected()
}

// updateUsersScreen обрабатывает список локальных пользователей.
// Enter открывает вход с выбранным именем.
func (m *model) updateUsersScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc, keyBack:
			m.state = landingScreen
			return m, tea.ClearScreen
		case keyEnter:
			if item, isUser := m.usersList.SelectedItem().(userItem); isUser {
				m.state = loginScreen
				m.err = nil
				m.loginUsernameInput.SetValue(item.user.Username)
				m.loginRegisterFocusedField = 1
				m.loginUsernameInput.Blur()
				m.loginPasswordInput.Focus()
				return m, tea.Batch(textinput.Blink, tea.ClearScreen)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.usersList, cmd = m.usersList.Update(msg)
	return m, cmd
}
