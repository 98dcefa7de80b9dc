package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitlog/fitlog/client/internal/dashboard"
	"github.com/fitlog/fitlog/client/internal/workout"
	"github.com/fitlog/fitlog/models"
)

// updateDashboardScreen обрабатывает клавиши панели пользователя.
func (m *model) updateDashboardScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyAdd:
		return m, m.openProtected(addWorkoutScreen)
	case "h":
		return m, m.openProtected(historyScreen)
	case "r":
		return m, m.openProtected(dashboardScreen)
	case "o":
		return m, makeLogoutCmd(m.sessions)
	case keyQuit:
		return m, tea.Quit
	}
	return m, nil
}

// syncStates сопоставляет идентификатор тренировки и место ее хранения.
func syncStates(entries []workout.Entry) map[string]models.SyncState {
	states := make(map[string]models.SyncState, len(entries))
	for _, e := range entries {
		states[e.ID] = e.Sync
	}
	return states
}

// viewDashboardScreen отображает сводку и последние тренировки.
func (m *model) viewDashboardScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tileStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	username := ""
	if m.current != nil {
		username = m.current.Username
	}
	b.WriteString(titleStyle.Render("Привет, "+username) + "\n\n")

	workouts := workout.Workouts(m.entries)
	summary := dashboard.Summarize(workouts)

	mostRecent := "-"
	if summary.MostRecent != nil {
		mostRecent = summary.MostRecent.Date
	}
	mostCommon := summary.MostCommonType
	if mostCommon == "" {
		mostCommon = "-"
	}
	last := "-"
	if w := dashboard.LastLogged(workouts); w != nil {
		last = fmt.Sprintf("%s %s", w.Date, w.Type)
	}

	tile := func(label, value string) string {
		return tileStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Тренировок", fmt.Sprint(summary.TotalWorkouts)),
		tile("Упражнений", fmt.Sprint(summary.TotalExercises)),
		tile("Активных дней", fmt.Sprint(summary.ActiveDays)),
		tile("Тоннаж, кг", fmt.Sprintf("%.0f", summary.TotalVolume)),
	) + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Последняя дата", mostRecent),
		tile("Частый тип", mostCommon),
		tile("Последняя запись", last),
	) + "\n\n")

	if len(summary.TypeDistribution) > 0 {
		parts := make([]string, 0, len(summary.TypeDistribution))
		for _, tc := range summary.TypeDistribution {
			parts = append(parts, fmt.Sprintf("%s: %d", tc.Type, tc.Count))
		}
		b.WriteString(labelStyle.Render("По типам: ") + strings.Join(parts, ", ") + "\n\n")
	}

	b.WriteString(titleStyle.Render("Последние тренировки") + "\n")
	recent := dashboard.Recent(workouts, m.recentCount)
	if len(recent) == 0 {
		b.WriteString(subtleStyle.Render("Тренировок пока нет. Нажмите (a), чтобы добавить.") + "\n")
	}
	states := syncStates(m.entries)
	for _, w := range recent {
		b.WriteString(fmt.Sprintf("• %s  %-12s упражнений: %d %s\n",
			w.Date, w.Type, len(w.Exercises), subtleStyle.Render(syncLabel(states[w.ID]))))
	}
	return b.String()
}
