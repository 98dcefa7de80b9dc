package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Константы, используемые при инициализации.
const (
	initPasswordCharLimit = 156
	initURLCharLimit      = 1024
	initURLWidth          = 50
	initUserCharLimit     = 128
	initUserWidth         = 30
	initFieldCharLimit    = 256
	initExercisesLimit    = 2048
	initFieldWidth        = 50
)

// Поля формы тренировки.
const (
	workoutFieldType = iota
	workoutFieldDate
	workoutFieldExercises
	workoutFieldName
	workoutFieldGoal
	workoutFieldIntensity
	workoutFieldDuration
	workoutFieldRating
	workoutFieldNotes
	numWorkoutFields // Общее количество полей формы
)

// Подписи полей формы тренировки.
//
//nolint:gochecknoglobals // Неизменяемая таблица подписей
var workoutFieldLabels = [numWorkoutFields]string{
	workoutFieldType:      "Тип",
	workoutFieldDate:      "Дата",
	workoutFieldExercises: "Упражнения",
	workoutFieldName:      "Название",
	workoutFieldGoal:      "Цель",
	workoutFieldIntensity: "Интенсивность",
	workoutFieldDuration:  "Длительность, мин",
	workoutFieldRating:    "Оценка 0-5",
	workoutFieldNotes:     "Заметки",
}

// initListDelegate настраивает цвета элементов списков.
func initListDelegate() list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(lipgloss.Color("252"))
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.
		Foreground(lipgloss.Color("245"))
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("212")).
		BorderLeftForeground(lipgloss.Color("212"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("240")).
		BorderLeftForeground(lipgloss.Color("212"))
	return delegate
}

// initHistoryList инициализирует список истории тренировок.
func initHistoryList() list.Model {
	l := list.New([]list.Item{}, initListDelegate(), defaultListWidth, defaultListHeight)
	l.Title = "История тренировок"
	l.SetShowHelp(false) // Мы переопределяем справку
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initUsersList инициализирует список локальных пользователей.
func initUsersList() list.Model {
	l := list.New([]list.Item{}, initListDelegate(), defaultListWidth, defaultListHeight)
	l.Title = "Локальные пользователи"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initServerURLInput инициализирует поле ввода URL сервера.
func initServerURLInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = DefaultServerURL
	ti.CharLimit = initURLCharLimit
	ti.Width = initURLWidth
	return ti
}

// initCredentialInputs инициализирует пару полей имя/пароль.
func initCredentialInputs() (textinput.Model, textinput.Model) {
	userInput := textinput.New()
	userInput.Placeholder = "Имя пользователя"
	userInput.CharLimit = initUserCharLimit
	userInput.Width = initUserWidth

	passInput := textinput.New()
	passInput.Placeholder = "Пароль"
	passInput.CharLimit = initPasswordCharLimit
	passInput.Width = initUserWidth
	passInput.EchoMode = textinput.EchoPassword
	return userInput, passInput
}

// initWorkoutInputs инициализирует поля формы тренировки.
func initWorkoutInputs() []textinput.Model {
	inputs := make([]textinput.Model, numWorkoutFields)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = initFieldCharLimit
		ti.Width = initFieldWidth
		ti.Prompt = workoutFieldLabels[i] + ": "
		inputs[i] = ti
	}
	inputs[workoutFieldType].Placeholder = "Pecho"
	inputs[workoutFieldDate].Placeholder = "ГГГГ-ММ-ДД"
	inputs[workoutFieldExercises].Placeholder = "Press 3x10x50; Remo 4x8x40"
	inputs[workoutFieldExercises].CharLimit = initExercisesLimit
	inputs[workoutFieldIntensity].Placeholder = "baja / media / alta"
	inputs[workoutFieldDuration].Placeholder = "60"
	inputs[workoutFieldRating].Placeholder = "4"
	return inputs
}

// initHelpTextMap возвращает строки помощи для экранов.
func initHelpTextMap() map[screenState]string {
	return map[screenState]string{
		landingScreen:        "(l) вход | (r) регистрация | (u) локальные пользователи | (s) сервер | (d) панель | (q) выход",
		usersScreen:          "(↑/↓) навигация | (enter) войти как | (esc) назад",
		loginScreen:          "(tab) след. поле | (enter) войти | (esc) назад",
		registerScreen:       "(tab) след. поле | (enter) зарегистрироваться | (esc) назад",
		dashboardScreen:      "(a) добавить | (h) история | (r) обновить | (o) выйти из аккаунта | (q) выход",
		historyScreen:        "(↑/↓) навигация | (t) фильтр по типу | (a) добавить | (x) очистить локальные | (esc) назад",
		addWorkoutScreen:     "(tab/shift+tab) поля | (ctrl+s) сохранить | (esc) отмена",
		serverURLInputScreen: "(enter) сохранить | (esc) отмена",
	}
}

// initDocStyle инициализирует основной стиль документа.
func initDocStyle() lipgloss.Style {
	return lipgloss.NewStyle().Margin(docStyleMarginVertical, docStyleMarginHorizontal)
}

// initModel создает начальное состояние модели без подключения к серверу.
func initModel(debugMode bool, recentCount int) model {
	loginUserInput, loginPassInput := initCredentialInputs()
	regUserInput, regPassInput := initCredentialInputs()

	return model{
		state:                 landingScreen,
		debugMode:             debugMode,
		recentCount:           recentCount,
		usersList:             initUsersList(),
		historyList:           initHistoryList(),
		loginUsernameInput:    loginUserInput,
		loginPasswordInput:    loginPassInput,
		registerUsernameInput: regUserInput,
		registerPasswordInput: regPassInput,
		workoutInputs:         initWorkoutInputs(),
		serverURLInput:        initServerURLInput(),
		docStyle:              initDocStyle(),
		helpTextMap:           initHelpTextMap(),
	}
}
