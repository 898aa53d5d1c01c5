package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleProfileInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.profileInput.SetValue("")
		m.profileInput.Blur()
		return m, nil
	case "enter":
		p, created, err := m.profiles.CreateProfile(m.ctx, m.profileInput.Value())
		if err != nil {
			return m.fail(err), nil
		}
		if created {
			m.Mode = ModeList
			m.Cursor = 0
			m.profileInput.SetValue("")
			m.profileInput.Blur()
			m = m.ok("created profile %s", p.Name)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.profileInput, cmd = m.profileInput.Update(msg)
	return m, cmd
}

// handleEditKey runs edit mode: a cursor over the tabs that can delete
// profiles. Deleting the last remaining profile does nothing.
func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	profiles := m.profiles.Profiles()
	switch msg.String() {
	case "esc", m.Keys.Edit:
		m.Mode = ModeList
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case "h", "left", "shift+tab":
		if m.ProfileCursor > 0 {
			m.ProfileCursor--
		}
	case "l", "right", "tab":
		if m.ProfileCursor < len(profiles)-1 {
			m.ProfileCursor++
		}
	case "enter":
		if m.ProfileCursor < len(profiles) {
			m = m.switchTo(m.ProfileCursor)
		}
	case "d", "x", "delete", "backspace":
		if m.ProfileCursor >= len(profiles) {
			return m
		}
		target := profiles[m.ProfileCursor]
		deleted, err := m.profiles.DeleteProfile(m.ctx, target.ID)
		if err != nil {
			return m.fail(err)
		}
		if !deleted {
			return m
		}
		m.Cursor = 0
		m = m.ok("deleted profile %s", target.Name)
	}
	return m
}
