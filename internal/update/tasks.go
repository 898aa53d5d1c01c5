package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tasks := m.profiles.Active().Tasks
	switch key := msg.String(); key {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case "pgup", "pgdown":
		if m.HelpVisible {
			var cmd tea.Cmd
			m.helpViewport, cmd = m.helpViewport.Update(msg)
			return m, cmd
		}
	case m.Keys.Palette:
		m.Mode = ModePalette
		m.commandInput.SetValue("")
		return m, m.commandInput.Focus()
	case m.Keys.Add:
		m.Mode = ModeAddTask
		m.taskInput.SetValue("")
		return m, m.taskInput.Focus()
	case m.Keys.NewProfile:
		m.Mode = ModeNewProfile
		m.profileInput.SetValue("")
		return m, m.profileInput.Focus()
	case m.Keys.Edit:
		m.Mode = ModeEditProfiles
		m.ProfileCursor = m.activeIndex()
	case m.Keys.Style:
		m.Mode = ModeStyle
		m.styleTable.Focus()
	case "j", "down":
		if m.Cursor < len(tasks)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "g", "home":
		m.Cursor = 0
	case "G", "end":
		m.Cursor = len(tasks) - 1
	case " ", "x", "enter":
		if task, ok := m.selectedTask(); ok {
			if _, err := m.profiles.ToggleTask(m.ctx, task.ID); err != nil {
				return m.fail(err), nil
			}
		}
	case "d", "delete", "backspace":
		if task, ok := m.selectedTask(); ok {
			if _, err := m.profiles.DeleteTask(m.ctx, task.ID); err != nil {
				return m.fail(err), nil
			}
			m = m.ok("deleted %q", task.Text)
		}
	case "C":
		if _, err := m.profiles.ClearTasks(m.ctx); err != nil {
			return m.fail(err), nil
		}
		m.Cursor = 0
		m = m.ok("cleared all tasks")
	case "tab", "]", "l", "right":
		m = m.switchTo(m.activeIndex() + 1)
	case "shift+tab", "[", "h", "left":
		m = m.switchTo(m.activeIndex() - 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if idx := int(key[0] - '1'); idx < len(m.profiles.Profiles()) {
			m = m.switchTo(idx)
		}
	}
	return m, nil
}

func (m Model) handleTaskInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.taskInput.SetValue("")
		m.taskInput.Blur()
		return m, nil
	case "enter":
		task, added, err := m.profiles.AddTask(m.ctx, m.taskInput.Value())
		if err != nil {
			return m.fail(err), nil
		}
		if added {
			m.taskInput.SetValue("")
			m.Cursor = len(m.profiles.Active().Tasks) - 1
			m = m.ok("added %q", task.Text)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

// switchTo selects the profile at idx, wrapping around both ends.
func (m Model) switchTo(idx int) Model {
	profiles := m.profiles.Profiles()
	if len(profiles) < 2 {
		return m
	}
	idx = (idx%len(profiles) + len(profiles)) % len(profiles)
	changed, err := m.profiles.SwitchActive(m.ctx, profiles[idx].ID)
	if err != nil {
		return m.fail(err)
	}
	if changed {
		m.Cursor = 0
		m = m.ok("switched to %s", profiles[idx].Name)
	}
	return m
}

func (m Model) activeIndex() int {
	activeID := m.profiles.ActiveID()
	for i, p := range m.profiles.Profiles() {
		if p.ID == activeID {
			return i
		}
	}
	return 0
}
