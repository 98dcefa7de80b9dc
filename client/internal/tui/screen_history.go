package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitlog/fitlog/client/internal/dashboard"
	"github.com/fitlog/fitlog/client/internal/workout"
)

// refreshHistoryList перестраивает список истории с учетом фильтра.
func (m *model) refreshHistoryList() {
	workouts := dashboard.FilterByType(workout.Workouts(m.entries), m.typeFilter)
	history := dashboard.FullHistory(workouts)

	states := syncStates(m.entries)
	items := make([]list.Item, 0, len(history))
	for _, w := range history {
		items = append(items, workoutItem{entry: workout.Entry{Workout: w, Sync: states[w.ID]}})
	}
	m.historyList.SetItems(items)

	m.historyList.Title = "История тренировок"
	if m.typeFilter != "" {
		m.historyList.Title += " (" + m.typeFilter + ")"
	}
}

// nextTypeFilter переключает фильтр: все типы, затем каждый тип по порядку появления.
func (m *model) nextTypeFilter() {
	types := dashboard.TypeDistribution(workout.Workouts(m.entries))
	if len(types) == 0 {
		m.typeFilter = ""
		return
	}
	if m.typeFilter == "" {
		m.typeFilter = types[0].Type
		return
	}
	for i, tc := range types {
		if tc.Type == m.typeFilter {
			if i+1 < len(types) {
				m.typeFilter = types[i+1].Type
			} else {
				m.typeFilter = ""
			}
			return
		}
	}
	m.typeFilter = ""
}

// updateHistoryScreen обрабатывает экран истории.
func (m *model) updateHistoryScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.confirmClear {
		m.confirmClear = false
		if keyMsg.String() == "y" {
			m.savingStatus = ""
			return m, clearWorkoutsCmd(m.workouts)
		}
		return m.setStatusMessage("Очистка отменена")
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc, keyBack:
			m.state = dashboardScreen
			return m, tea.ClearScreen
		case "t":
			m.nextTypeFilter()
			m.refreshHistoryList()
			m.historyList.ResetSelected()
			return m, nil
		case keyAdd:
			return m, m.openProtected(addWorkoutScreen)
		case "x":
			// Удаляются локальные тренировки всех пользователей
			m.confirmClear = true
			m.savingStatus = "Удалить все локальные тренировки? (y/n)"
			return m, nil
		case keyQuit:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

// viewHistoryScreen отображает полную историю тренировок.
func (m *model) viewHistoryScreen() string {
	return m.historyList.View()
}
