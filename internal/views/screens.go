package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TabData struct {
	Name      string
	Total     int
	Completed int
	Active    bool
	Marked    bool
}

type TaskRow struct {
	Text      string
	Completed bool
	Selected  bool
}

type ChecklistData struct {
	Title     string
	Progress  string
	InputView string
	Adding    bool
	Tasks     []TaskRow
}

type StyleEditorData struct {
	TableView string
	Editing   bool
	InputView string
	Field     string
	Presets   []string
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("7"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27"))
	markedTabStyle = lipgloss.NewStyle().Padding(0, 1).Underline(true).Foreground(lipgloss.Color("9"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderTabs draws one tab per profile. In edit mode the marked tab shows
// a delete affordance unless it is the only one.
func RenderTabs(tabs []TabData, editing bool, newProfileView string) string {
	parts := make([]string, 0, len(tabs)+2)
	if editing {
		parts = append(parts, hintStyle.Render("[editing]"))
	}
	for _, tab := range tabs {
		label := fmt.Sprintf("%s %d/%d", tab.Name, tab.Completed, tab.Total)
		if editing && len(tabs) > 1 {
			label += " ×"
		}
		switch {
		case editing && tab.Marked:
			parts = append(parts, markedTabStyle.Render(label))
		case tab.Active:
			parts = append(parts, activeTabStyle.Render(label))
		default:
			parts = append(parts, tabStyle.Render(label))
		}
	}
	if newProfileView != "" {
		parts = append(parts, newProfileView)
	} else if !editing {
		parts = append(parts, hintStyle.Render("+ new (n)"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func RenderChecklist(theme Theme, data ChecklistData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	if data.Progress != "" {
		b.WriteString(data.Progress + "\n")
	}
	if data.Adding {
		b.WriteString(theme.Input.Render(data.InputView) + "\n")
	} else {
		b.WriteString(hintStyle.Render("[a]dd  [space]toggle  [d]elete  [C]lear all") + "\n")
	}
	b.WriteString(hintStyle.Render("font: "+theme.ListFont) + "\n\n")
	if len(data.Tasks) == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	for _, task := range data.Tasks {
		box := "[ ]"
		style := theme.Item
		if task.Completed {
			box = "[x]"
			style = theme.Done
		}
		cursor := " "
		if task.Selected {
			cursor = ">"
			style = theme.Selected
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, style.Render(task.Text)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderStyleEditor(data StyleEditorData) string {
	var b strings.Builder
	b.WriteString("style editor:\n")
	b.WriteString(data.TableView + "\n")
	if data.Editing {
		b.WriteString(fmt.Sprintf("\n%s:\n%s\n", data.Field, data.InputView))
		b.WriteString(hintStyle.Render("[enter] save  [esc] cancel"))
		return b.String()
	}
	if len(data.Presets) > 0 {
		b.WriteString(hintStyle.Render("presets: "+strings.Join(data.Presets, " | ")) + "\n")
	}
	b.WriteString(hintStyle.Render("[enter] edit  [space] next preset  [r] reset  [esc] close"))
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderHelpPanel(markdown string, shortHelp string) string {
	return strings.TrimSpace(markdown + "\n\n" + shortHelp)
}
