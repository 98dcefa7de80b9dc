package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitlog/fitlog/client/internal/api"
	"github.com/fitlog/fitlog/client/internal/kvstore"
	"github.com/fitlog/fitlog/client/internal/session"
	"github.com/fitlog/fitlog/client/internal/workout"
	"github.com/fitlog/fitlog/models"
)

// Состояния (экраны) приложения.
type screenState int

const (
	landingScreen        screenState = iota // Начальный экран: вход или регистрация
	usersScreen                             // Список локальных пользователей
	loginScreen                             // Экран ввода данных для входа
	registerScreen                          // Экран ввода данных для регистрации
	dashboardScreen                         // Панель пользователя
	historyScreen                           // Полная история тренировок
	addWorkoutScreen                        // Форма новой тренировки
	serverURLInputScreen                    // Экран ввода URL сервера
)

func (s screenState) String() string {
	switch s {
	case landingScreen:
		return "landingScreen"
	case usersScreen:
		return "usersScreen"
	case loginScreen:
		return "loginScreen"
	case registerScreen:
		return "registerScreen"
	case dashboardScreen:
		return "dashboardScreen"
	case historyScreen:
		return "historyScreen"
	case addWorkoutScreen:
		return "addWorkoutScreen"
	case serverURLInputScreen:
		return "serverURLInputScreen"
	default:
		return fmt.Sprintf("unknownScreen(%d)", s)
	}
}

// protected сообщает, требует ли экран текущего пользователя.
func (s screenState) protected() bool {
	return s == dashboardScreen || s == historyScreen || s == addWorkoutScreen
}

// Константы для TUI.
const (
	defaultListWidth    = 80 // Стандартная ширина терминала для списка
	defaultListHeight   = 24 // Стандартная высота терминала для списка
	passwordInputOffset = 4  // Отступ для полей ввода

	keyEnter    = "enter"
	keyQuit     = "q"
	keyBack     = "b"
	keyEsc      = "esc"
	keyAdd      = "a"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
	keySave     = "ctrl+s"
)

// sessionService - операции сессии, нужные экранам.
type sessionService interface {
	Register(ctx context.Context, username, password string) (session.Source, error)
	Login(ctx context.Context, username, password string) (session.Context, error)
	Check(ctx context.Context) (session.Context, error)
	Logout(ctx context.Context) error
	Users() []models.LocalUser
	Restore()
}

// workoutService - операции с тренировками, нужные экранам.
type workoutService interface {
	Validate(w models.Workout) error
	Save(ctx context.Context, w models.Workout) (models.Workout, models.SyncState, error)
	History(ctx context.Context, username string) []workout.Entry
	Clear() error
}

// workoutItem - элемент списка тренировок. Реализует интерфейс list.Item.
type workoutItem struct {
	entry workout.Entry
}

func (i workoutItem) Title() string {
	title := fmt.Sprintf("%s  %s", i.entry.Date, i.entry.Type)
	if i.entry.Name != "" {
		title += " - " + i.entry.Name
	}
	return title
}

func (i workoutItem) Description() string {
	desc := fmt.Sprintf("Упражнений: %d", len(i.entry.Exercises))
	if i.entry.Rating != nil {
		desc += fmt.Sprintf(" | Оценка: %d/5", *i.entry.Rating)
	}
	return desc + " " + syncLabel(i.entry.Sync)
}

func (i workoutItem) FilterValue() string { return i.entry.Type }

// userItem - локальный пользователь в списке.
type userItem struct {
	user models.LocalUser
}

func (i userItem) Title() string { return i.user.Username }

func (i userItem) Description() string {
	return "Создан: " + i.user.CreatedAt.Local().Format("2006-01-02 15:04")
}

func (i userItem) FilterValue() string { return i.user.Username }

// syncLabel возвращает метку места хранения тренировки.
func syncLabel(state models.SyncState) string {
	switch state {
	case models.SyncRemoteOnly:
		return "[сервер]"
	case models.SyncLocalOnly:
		return "[локально]"
	case models.SyncPending:
		return "[сохраняется...]"
	default:
		return ""
	}
}

// model представляет состояние TUI приложения.
type model struct {
	state        screenState
	store        kvstore.Store  // Хранилище клиента
	dataPath     string         // Путь к файлу хранилища (для отладки)
	apiClient    api.Client     // Клиент для взаимодействия с API
	serverURL    string         // URL сервера
	sessions     sessionService // Менеджер сессий
	workouts     workoutService // Репозиторий тренировок
	lenientLogin bool           // Совместимый разбор ответа входа
	timeout      time.Duration  // Таймаут запросов к серверу
	recentCount  int            // Сколько последних тренировок показывать на панели
	debugMode    bool           // Показывать отладочный подвал

	current      *session.Context // Текущий пользователь, nil без сессии
	entries      []workout.Entry  // Тренировки текущего пользователя
	historyLoads int              // Сколько раз загружалась история (для отладки)
	pendingSeq   int              // Счетчик временных идентификаторов сохраняемых тренировок
	typeFilter   string           // Фильтр по типу на экране истории
	confirmClear bool             // Ожидается подтверждение очистки локальных тренировок

	usersList   list.Model // Список локальных пользователей
	historyList list.Model // Список истории тренировок

	loginUsernameInput        textinput.Model
	loginPasswordInput        textinput.Model
	registerUsernameInput     textinput.Model
	registerPasswordInput     textinput.Model
	loginRegisterFocusedField int // Индекс активного поля на экранах входа/регистрации

	workoutInputs       []textinput.Model // Поля формы тренировки
	workoutFocusedField int               // Индекс активного поля формы

	serverURLInput textinput.Model // Поле для ввода URL сервера

	savingStatus string // Статусное сообщение внизу экрана
	err          error  // Последняя ошибка для отображения
	width        int
	height       int
	docStyle     lipgloss.Style // Общий стиль для обрамления View
	helpTextMap  map[screenState]string
}

// Сообщение для очистки статуса.
type clearStatusMsg struct{}
