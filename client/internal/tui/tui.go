// Package tui реализует терминальный интерфейс FitLog на bubbletea.
// Экраны только отображают данные, подготовленные пакетами session,
// workout и dashboard.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitlog/fitlog/client/internal/api"
	"github.com/fitlog/fitlog/client/internal/kvstore"
	"github.com/fitlog/fitlog/client/internal/session"
	"github.com/fitlog/fitlog/client/internal/workout"
)

const (
	// DefaultServerURL - адрес сервера по умолчанию.
	DefaultServerURL = "http://127.0.0.1:5000"

	statusMessageTimeout     = 2 * time.Second // Время отображения статусных сообщений
	helpStatusHeightOffset   = 2               // Высота строки помощи и статуса
	docStyleMarginVertical   = 1
	docStyleMarginHorizontal = 2
)

// Options - параметры запуска интерфейса.
type Options struct {
	Store        kvstore.Store
	DataPath     string
	ServerURL    string // Пустое значение: сохраненный адрес или DefaultServerURL
	Timeout      time.Duration
	LenientLogin bool
	RecentCount  int
	Debug        bool
}

// Start запускает TUI приложение и блокируется до выхода.
func Start(opts Options) error {
	if opts.Store == nil {
		return errors.New("хранилище не задано")
	}
	if err := kvstore.Initialize(opts.Store); err != nil {
		return fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	m := newModel(opts)
	slog.Info("Запуск TUI", "server", m.serverURL, "data", opts.DataPath)

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("Ошибка при запуске TUI", "error", err)
		return fmt.Errorf("ошибка TUI: %w", err)
	}
	return nil
}

// newModel создает модель и подключает ее к серверу.
func newModel(opts Options) model {
	m := initModel(opts.Debug, opts.RecentCount)
	m.store = opts.Store
	m.dataPath = opts.DataPath
	m.timeout = opts.Timeout
	m.lenientLogin = opts.LenientLogin
	m.connect(resolveServerURL(opts.ServerURL, opts.Store))
	return m
}

// resolveServerURL выбирает адрес: явно заданный, сохраненный или по умолчанию.
func resolveServerURL(explicit string, store kvstore.Store) string {
	if explicit != "" {
		return explicit
	}
	var saved string
	if store != nil && store.Get(kvstore.KeyServerURL, &saved) && saved != "" {
		return saved
	}
	return DefaultServerURL
}

// connect пересоздает API клиент и зависящие от него сервисы.
func (m *model) connect(serverURL string) {
	m.serverURL = serverURL
	m.apiClient = api.NewHTTPClient(serverURL, m.timeout)

	var opts []session.Option
	if m.lenientLogin {
		opts = append(opts, session.WithLenientLogin())
	}
	manager := session.NewManager(m.apiClient, m.store, opts...)
	manager.Restore()
	m.sessions = manager
	m.workouts = workout.NewRepository(m.apiClient, m.store)
	m.serverURLInput.SetValue(serverURL)
	slog.Info("API клиент инициализирован", "baseURL", serverURL)
}

// Init - команда, выполняемая при запуске приложения.
// Если сессия уже есть, сразу открывается панель.
func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, checkSessionCmd(m.sessions, dashboardScreen, true))
}

// setStatusMessage устанавливает статусное сообщение и запускает таймер для его очистки.
func (m *model) setStatusMessage(status string) (tea.Model, tea.Cmd) {
	m.savingStatus = status
	return m, clearStatusCmd(statusMessageTimeout)
}

// getMainContentView возвращает основное содержимое для текущего состояния.
func (m *model) getMainContentView() string {
	switch m.state {
	case landingScreen:
		return m.viewLandingScreen()
	case usersScreen:
		return m.usersList.View()
	case loginScreen:
		return m.viewLoginScreen()
	case registerScreen:
		return m.viewRegisterScreen()
	case dashboardScreen:
		return m.viewDashboardScreen()
	case historyScreen:
		return m.viewHistoryScreen()
	case addWorkoutScreen:
		return m.viewAddWorkoutScreen()
	case serverURLInputScreen:
		return m.viewServerURLInputScreen()
	default:
		return "Неизвестное состояние!"
	}
}

// getContentAndHelp возвращает содержимое экрана и строку помощи.
func (m *model) getContentAndHelp() (string, string) {
	mainContent := m.getMainContentView()
	help, ok := m.helpTextMap[m.state]
	if !ok {
		help = fmt.Sprintf("State: %s", m.state.String())
	}
	return mainContent, help
}

// getDebugInfoString формирует отладочный подвал.
func (m *model) getDebugInfoString() string {
	var debugInfo strings.Builder
	debugInfo.WriteString(fmt.Sprintf(" [State: %s]\n", m.state.String()))
	debugInfo.WriteString(fmt.Sprintf(" [URL: %s]\n", m.serverURL))
	if m.current != nil {
		debugInfo.WriteString(fmt.Sprintf(" [User: %s (%s)]\n", m.current.Username, m.current.Source))
	} else {
		debugInfo.WriteString(" [User: <none>]\n")
	}
	debugInfo.WriteString(fmt.Sprintf(" [Data: %s]\n", m.dataPath))
	debugInfo.WriteString(fmt.Sprintf(" [Entries: %d, loads: %d]\n", len(m.entries), m.historyLoads))
	if m.store != nil {
		debugInfo.WriteString(fmt.Sprintf(" [Keys: %s]\n", strings.Join(m.store.Keys(), ", ")))
	}
	return debugInfo.String()
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	mainContent, help := m.getContentAndHelp()

	var footer strings.Builder
	if m.savingStatus != "" {
		footer.WriteString("\n")
		footer.WriteString(m.savingStatus)
	}
	if m.debugMode {
		footer.WriteString("\n\n---\nОтладка:\n")
		footer.WriteString(m.getDebugInfoString())
	}

	styledContent := m.docStyle.Render(mainContent)
	return fmt.Sprintf("%s\n%s%s", styledContent, help, footer.String())
}
