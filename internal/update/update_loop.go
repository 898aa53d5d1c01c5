package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/checklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForChangeCmd(m.watcher.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.helpModel.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModePalette:
			return m.handlePaletteKey(typed)
		case ModeAddTask:
			return m.handleTaskInputKey(typed)
		case ModeNewProfile:
			return m.handleProfileInputKey(typed)
		case ModeEditProfiles:
			return m.handleEditKey(typed), nil
		case ModeStyle:
			return m.handleStyleKey(typed)
		case ModeStyleEdit:
			return m.handleStyleEditKey(typed)
		default:
			return m.handleListKey(typed)
		}
	case ExternalChangeMsg:
		m = m.applyExternal(typed.Change)
		if m.watcher != nil {
			return m, waitForChangeCmd(m.watcher.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m = m.fail(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	theme := *m.theme
	active := m.profiles.Active()

	newProfile := ""
	if m.Mode == ModeNewProfile {
		newProfile = m.profileInput.View()
	}
	tabs := views.RenderTabs(m.tabData(), m.Mode == ModeEditProfiles, newProfile)

	var body string
	if m.Mode == ModeStyle || m.Mode == ModeStyleEdit {
		field := m.selectedField()
		body = views.RenderStyleEditor(views.StyleEditorData{
			TableView: m.styleTable.View(),
			Editing:   m.Mode == ModeStyleEdit,
			InputView: m.styleInput.View(),
			Field:     field.Label(),
			Presets:   presetsFor(field),
		})
	} else {
		rows := make([]views.TaskRow, 0, len(active.Tasks))
		for i, t := range active.Tasks {
			rows = append(rows, views.TaskRow{Text: t.Text, Completed: t.Completed, Selected: i == m.Cursor && m.Mode == ModeList})
		}
		ratio := 0.0
		if len(active.Tasks) > 0 {
			ratio = float64(active.CompletedCount()) / float64(len(active.Tasks))
		}
		body = views.RenderChecklist(theme, views.ChecklistData{
			Title:     fmt.Sprintf("%s (%d/%d done)", active.Name, active.CompletedCount(), len(active.Tasks)),
			Progress:  m.doneProgress.ViewAs(ratio),
			InputView: m.taskInput.View(),
			Adding:    m.Mode == ModeAddTask,
			Tasks:     rows,
		})
	}

	side := strings.TrimSpace(views.RenderCommandPalette(m.Mode == ModePalette, m.commandInput.View()) + "\n" + m.renderHelpIfVisible())

	return views.RenderApp(theme, views.AppData{
		Header:     fmt.Sprintf("checklist | %s | mode: %s", active.Name, m.Mode),
		Tabs:       tabs,
		Body:       body,
		Side:       side,
		StatusLine: m.Status.Text,
		StatusErr:  m.Status.IsError,
		Footer:     m.helpModel.ShortHelpView(m.helpBindings()),
		Width:      m.Width,
	})
}

func (m Model) tabData() []views.TabData {
	profiles := m.profiles.Profiles()
	activeID := m.profiles.ActiveID()
	out := make([]views.TabData, 0, len(profiles))
	for i, p := range profiles {
		out = append(out, views.TabData{
			Name:      p.Name,
			Total:     len(p.Tasks),
			Completed: p.CompletedCount(),
			Active:    p.ID == activeID,
			Marked:    i == m.ProfileCursor,
		})
	}
	return out
}

func (m Model) fail(err error) Model {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Error("operation failed", "err", err)
	return m
}

func (m Model) ok(format string, args ...any) Model {
	m.Status = StatusBar{Text: fmt.Sprintf(format, args...)}
	return m
}
