package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/checklist/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return views.RenderHelpPanel(
		m.helpViewport.View(),
		m.helpModel.FullHelpView([][]key.Binding{m.helpBindings()}),
	)
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Help\n\n")
	fmt.Fprintf(&b, "## %s\n\n", m.Mode)
	for _, kb := range m.modeBindings() {
		fmt.Fprintf(&b, "- `%s` %s\n", kb.Key, kb.Action)
	}
	b.WriteString("\n## Commands\n\n")
	for _, line := range []string{
		"add <text>",
		"clear",
		"profile new|switch|delete|rename ...",
		"style <field> <value>",
		"style reset",
		"export <file>",
		"import <file>",
	} {
		fmt.Fprintf(&b, "- `/%s`\n", line)
	}
	return b.String()
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeAddTask, ModeNewProfile, ModeStyleEdit, ModePalette:
		return []KeyBinding{
			{Key: "enter", Action: "submit"},
			{Key: "esc", Action: "cancel"},
		}
	case ModeEditProfiles:
		return []KeyBinding{
			{Key: "h/l", Action: "move between profiles"},
			{Key: "d", Action: "delete profile"},
			{Key: "enter", Action: "switch to profile"},
			{Key: "e/esc", Action: "done editing"},
		}
	case ModeStyle:
		return []KeyBinding{
			{Key: "j/k", Action: "move between fields"},
			{Key: "enter", Action: "edit value"},
			{Key: "space", Action: "next font preset"},
			{Key: "r", Action: "reset to defaults"},
			{Key: "esc", Action: "close editor"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "space", Action: "toggle task"},
			{Key: m.Keys.Add, Action: "add task"},
			{Key: "d", Action: "delete task"},
			{Key: "C", Action: "clear all tasks"},
			{Key: "tab", Action: "next profile"},
			{Key: m.Keys.NewProfile, Action: "new profile"},
			{Key: m.Keys.Edit, Action: "edit profiles"},
			{Key: m.Keys.Style, Action: "style editor"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	all := append(m.modeBindings(), m.globalBindings()...)
	out := make([]key.Binding, 0, len(all))
	for _, kb := range all {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
