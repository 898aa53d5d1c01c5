package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/checklist/internal/model"
	"github.com/sandeepkv93/checklist/internal/style"
)

func (m Model) handleStyleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", m.Keys.Style:
		m.Mode = ModeList
		m.styleTable.Blur()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "enter":
		field := m.selectedField()
		m.Mode = ModeStyleEdit
		m.styleInput.SetValue(m.styles.Current().Get(field))
		m.styleInput.CursorEnd()
		return m, m.styleInput.Focus()
	case " ":
		field := m.selectedField()
		changed, err := m.styles.Cycle(m.ctx, field)
		if err != nil {
			return m.fail(err), nil
		}
		if changed {
			m = m.ok("%s: %s", field.Label(), m.styles.Current().Get(field))
		}
		return m, nil
	case "r":
		if err := m.styles.Reset(m.ctx); err != nil {
			return m.fail(err), nil
		}
		return m.ok("style reset to defaults"), nil
	}
	var cmd tea.Cmd
	m.styleTable, cmd = m.styleTable.Update(msg)
	return m, cmd
}

func (m Model) handleStyleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeStyle
		m.styleInput.Blur()
		return m, nil
	case "enter":
		field := m.selectedField()
		value := strings.TrimSpace(m.styleInput.Value())
		if _, err := m.styles.Set(m.ctx, field, value); err != nil {
			return m.fail(err), nil
		}
		m.Mode = ModeStyle
		m.styleInput.Blur()
		return m.ok("%s: %s", field.Label(), value), nil
	}
	var cmd tea.Cmd
	m.styleInput, cmd = m.styleInput.Update(msg)
	return m, cmd
}

func presetsFor(field model.StyleField) []string {
	return style.Presets(field)
}
