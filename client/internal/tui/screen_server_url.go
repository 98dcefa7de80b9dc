package tui

import (
	"fmt"
	"log/slog"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitlog/fitlog/client/internal/kvstore"
)

// updateServerURLInputScreen обрабатывает ввод URL сервера.
func (m *model) updateServerURLInputScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.serverURLInput.Blur()
			m.state = landingScreen
			return m, nil
		case keyEnter:
			newURL := m.serverURLInput.Value()
			if newURL == "" {
				newURL = m.serverURLInput.Placeholder // Используем плейсхолдер если пусто
			}
			if err := validateServerURL(newURL); err != nil {
				m.err = err
				return m.setStatusMessage(err.Error())
			}
			if m.store != nil {
				if err := m.store.Set(kvstore.KeyServerURL, newURL); err != nil {
					slog.Warn("Не удалось сохранить URL сервера", "error", err)
				}
			}
			m.err = nil
			m.connect(newURL)
			slog.Info("URL сервера обновлен", "url", newURL)
			m.serverURLInput.Blur()
			m.state = landingScreen
			return m, tea.ClearScreen
		}
	}
	newInput, inputCmd := m.serverURLInput.Update(msg)
	m.serverURLInput = newInput
	return m, inputCmd
}

// validateServerURL проверяет, что адрес абсолютный http(s) URL.
func validateServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("некорректный URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("некорректный URL '%s': нужен http(s)://хост", raw)
	}
	return nil
}

// viewServerURLInputScreen отображает экран ввода URL сервера.
func (m *model) viewServerURLInputScreen() string {
	view := fmt.Sprintf("Введите URL сервера:\n%s", m.serverURLInput.View())
	if m.err != nil {
		view += "\nОшибка: " + m.err.Error()
	}
	return view
}
