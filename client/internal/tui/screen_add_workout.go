package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitlog/fitlog/client/internal/workout"
	"github.com/fitlog/fitlog/models"
)

// prepareAddWorkoutScreen очищает форму и подставляет сегодняшнюю дату.
func (m *model) prepareAddWorkoutScreen() {
	for i := range m.workoutInputs {
		m.workoutInputs[i].Reset()
		m.workoutInputs[i].Blur()
	}
	m.workoutInputs[workoutFieldDate].SetValue(time.Now().Format(models.DateLayout))
	m.workoutFocusedField = workoutFieldType
	m.workoutInputs[workoutFieldType].Focus()
	m.err = nil
}

// focusWorkoutField переводит фокус формы на поле idx.
func (m *model) focusWorkoutField(idx int) {
	m.workoutInputs[m.workoutFocusedField].Blur()
	m.workoutFocusedField = (idx + numWorkoutFields) % numWorkoutFields
	m.workoutInputs[m.workoutFocusedField].Focus()
}

// buildWorkout собирает тренировку из полей формы.
func (m *model) buildWorkout() (models.Workout, error) {
	value := func(field int) string {
		return strings.TrimSpace(m.workoutInputs[field].Value())
	}

	exercises, err := parseExercises(value(workoutFieldExercises))
	if err != nil {
		return models.Workout{}, err
	}
	duration, err := parseOptionalInt(workoutFieldLabels[workoutFieldDuration], value(workoutFieldDuration))
	if err != nil {
		return models.Workout{}, err
	}
	rating, err := parseOptionalInt(workoutFieldLabels[workoutFieldRating], value(workoutFieldRating))
	if err != nil {
		return models.Workout{}, err
	}

	username := ""
	if m.current != nil {
		username = m.current.Username
	}
	return models.Workout{
		Username:        username,
		Name:            value(workoutFieldName),
		Type:            value(workoutFieldType),
		Date:            value(workoutFieldDate),
		Goal:            value(workoutFieldGoal),
		Intensity:       value(workoutFieldIntensity),
		DurationMinutes: duration,
		Rating:          rating,
		Notes:           value(workoutFieldNotes),
		Exercises:       exercises,
	}, nil
}

// submitWorkout проверяет форму, добавляет временную запись и запускает сохранение.
func (m *model) submitWorkout() (tea.Model, tea.Cmd) {
	w, err := m.buildWorkout()
	if err == nil {
		err = m.workouts.Validate(w)
	}
	if err != nil {
		m.err = err
		return m.setStatusMessage(fmt.Sprintf("Ошибка: %v", err))
	}

	m.pendingSeq++
	pendingID := fmt.Sprintf("pending-%d", m.pendingSeq)
	pending := w
	pending.ID = pendingID
	pending.CreatedAt = time.Now()
	m.entries = append(m.entries, workout.Entry{Workout: pending, Sync: models.SyncPending})
	m.refreshHistoryList()

	m.err = nil
	m.workoutInputs[m.workoutFocusedField].Blur()
	m.state = dashboardScreen
	slog.Info("Сохранение тренировки", "type", w.Type, "date", w.Date, "exercises", len(w.Exercises))

	_, statusCmd := m.setStatusMessage("Сохранение...")
	return m, tea.Batch(saveWorkoutCmd(m.workouts, pendingID, w), statusCmd, tea.ClearScreen)
}

// updateAddWorkoutScreen обрабатывает форму новой тренировки.
func (m *model) updateAddWorkoutScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.workoutInputs[m.workoutFocusedField].Blur()
			m.err = nil
			m.state = dashboardScreen
			return m, tea.ClearScreen
		case keySave:
			return m.submitWorkout()
		case keyTab, keyDown:
			m.focusWorkoutField(m.workoutFocusedField + 1)
			return m, textinput.Blink
		case keyShiftTab, keyUp:
			m.focusWorkoutField(m.workoutFocusedField - 1)
			return m, textinput.Blink
		case keyEnter:
			// Enter на последнем поле сохраняет, на остальных переходит дальше
			if m.workoutFocusedField == numWorkoutFields-1 {
				return m.submitWorkout()
			}
			m.focusWorkoutField(m.workoutFocusedField + 1)
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.workoutInputs[m.workoutFocusedField], cmd = m.workoutInputs[m.workoutFocusedField].Update(msg)
	return m, cmd
}

// viewAddWorkoutScreen отображает форму новой тренировки.
func (m *model) viewAddWorkoutScreen() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))

	b.WriteString(titleStyle.Render("Новая тренировка") + "\n\n")
	for i := range m.workoutInputs {
		b.WriteString(m.workoutInputs[i].View() + "\n")
	}
	b.WriteString("\n" + subtleStyle.Render("Упражнения: название подходыxповторения[xвес], через ';'") + "\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Ошибка: "+m.err.Error()) + "\n")
	}
	return b.String()
}
