package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitlog/fitlog/client/internal/session"
	"github.com/fitlog/fitlog/client/internal/workout"
	"github.com/fitlog/fitlog/models"
)

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
func clearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// --- Сообщения и команды сессии --- //

// sessionCheckedMsg - результат проверки сессии перед открытием экрана.
type sessionCheckedMsg struct {
	sess   session.Context
	err    error
	target screenState // Экран, который нужно открыть при успехе
	silent bool        // Не показывать сообщение при отсутствии сессии
}

type loginResultMsg struct {
	sess session.Context
	err  error
}

type registerResultMsg struct {
	username string
	source   session.Source
	err      error
}

type logoutDoneMsg struct {
	err error
}

// checkSessionCmd проверяет сессию и сообщает, можно ли открыть target.
func checkSessionCmd(sessions sessionService, target screenState, silent bool) tea.Cmd {
	return func() tea.Msg {
		sess, err := sessions.Check(context.Background())
		return sessionCheckedMsg{sess: sess, err: err, target: target, silent: silent}
	}
}

// makeLoginCmd выполняет вход.
func makeLoginCmd(sessions sessionService, username, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := sessions.Login(context.Background(), username, password)
		return loginResultMsg{sess: sess, err: err}
	}
}

// makeRegisterCmd выполняет регистрацию.
func makeRegisterCmd(sessions sessionService, username, password string) tea.Cmd {
	return func() tea.Msg {
		source, err := sessions.Register(context.Background(), username, password)
		return registerResultMsg{username: username, source: source, err: err}
	}
}

// makeLogoutCmd завершает сессию.
func makeLogoutCmd(sessions sessionService) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: sessions.Logout(context.Background())}
	}
}

// --- Сообщения и команды тренировок --- //

type historyLoadedMsg struct {
	username string
	entries  []workout.Entry
}

// workoutSavedMsg - результат сохранения тренировки.
// pendingID указывает на временную запись, добавленную до ответа.
type workoutSavedMsg struct {
	pendingID string
	workout   models.Workout
	state     models.SyncState
	err       error
}

// loadHistoryCmd загружает объединенную историю тренировок пользователя.
func loadHistoryCmd(workouts workoutService, username string) tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{
			username: username,
			entries:  workouts.History(context.Background(), username),
		}
	}
}

// workoutsClearedMsg - результат очистки локальных тренировок.
type workoutsClearedMsg struct {
	err error
}

// clearWorkoutsCmd удаляет все локальные тренировки.
func clearWorkoutsCmd(workouts workoutService) tea.Cmd {
	return func() tea.Msg {
		return workoutsClearedMsg{err: workouts.Clear()}
	}
}

// saveWorkoutCmd сохраняет тренировку.
func saveWorkoutCmd(workouts workoutService, pendingID string, w models.Workout) tea.Cmd {
	return func() tea.Msg {
		saved, state, err := workouts.Save(context.Background(), w)
		return workoutSavedMsg{pendingID: pendingID, workout: saved, state: state, err: err}
	}
}
