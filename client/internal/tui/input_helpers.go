package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// Количество полей, обрабатываемых handleCredentialsInput (имя/пароль).
	numCredentialFields = 2
)

// focusInputs переводит фокус на поле idx, снимая его с остальных.
func focusInputs(inputs []*textinput.Model, idx int) {
	for i, input := range inputs {
		if i == idx {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// handleCredentialsKeys обрабатывает нажатия Tab, Shift+Tab и Enter в полях ввода.
// Возвращает модель, команду и флаг, указывающий, была ли клавиша обработана.
func (m *model) handleCredentialsKeys(
	keyMsg tea.KeyMsg,
	input1 *textinput.Model,
	input2 *textinput.Model,
	focusedFieldIdx *int,
	onEnterCmd func() (tea.Model, tea.Cmd),
) (tea.Model, tea.Cmd, bool) {
	inputs := []*textinput.Model{input1, input2}
	switch keyMsg.String() {
	case keyTab, keyDown:
		*focusedFieldIdx = (*focusedFieldIdx + 1) % numCredentialFields
		focusInputs(inputs, *focusedFieldIdx)
		return m, textinput.Blink, true
	case keyShiftTab, keyUp:
		*focusedFieldIdx = (*focusedFieldIdx + numCredentialFields - 1) % numCredentialFields
		focusInputs(inputs, *focusedFieldIdx)
		return m, textinput.Blink, true
	case keyEnter:
		if *focusedFieldIdx == 0 { // Активно первое поле
			*focusedFieldIdx = 1
			focusInputs(inputs, 1)
			return m, textinput.Blink, true
		}
		// Активно второе поле - вызываем действие
		model, cmd := onEnterCmd()
		return model, cmd, true
	default:
		return m, nil, false
	}
}

// handleCredentialsInput обрабатывает ввод в двух полях (имя/пароль),
// переключение фокуса между ними и действия по Enter/Esc.
func (m *model) handleCredentialsInput(
	msg tea.Msg,
	input1 *textinput.Model,
	input2 *textinput.Model,
	focusedFieldIdx *int,
	onEnterCmd func() (tea.Model, tea.Cmd),
	previousState screenState,
) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == keyEsc {
			m.state = previousState
			m.err = nil
			input1.Blur()
			input2.Blur()
			return m, tea.ClearScreen
		}

		newModel, keyCmd, handled := m.handleCredentialsKeys(keyMsg, input1, input2, focusedFieldIdx, onEnterCmd)
		if handled {
			return newModel, keyCmd
		}
	}

	activeInput := input1
	if *focusedFieldIdx == 1 {
		activeInput = input2
	}
	var cmd tea.Cmd
	*activeInput, cmd = activeInput.Update(msg)
	return m, cmd
}
