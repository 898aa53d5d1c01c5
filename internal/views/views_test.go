package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/checklist/internal/model"
)

func TestColor(t *testing.T) {
	cases := map[string]lipgloss.TerminalColor{
		"#AbCdEf":  lipgloss.Color("#abcdef"),
		"#fff":     lipgloss.Color("#ffffff"),
		"red":      lipgloss.NoColor{},
		"#12345":   lipgloss.NoColor{},
		"#zzzzzz":  lipgloss.NoColor{},
		"#1234567": lipgloss.NoColor{},
		" #0aF ":   lipgloss.Color("#00aaff"),
	}
	for in, want := range cases {
		if got := Color(in); got != want {
			t.Fatalf("Color(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestThemeFontLabels(t *testing.T) {
	theme := NewTheme(model.DefaultStyleSettings(), true)
	if theme.ListFont != "system-ui 16px" || theme.InputFont != "system-ui 16px" {
		t.Fatalf("unexpected font labels: %q %q", theme.ListFont, theme.InputFont)
	}
	if !theme.Dark {
		t.Fatal("expected dark theme")
	}
}

func TestRenderChecklist(t *testing.T) {
	theme := NewTheme(model.DefaultStyleSettings(), false)
	out := RenderChecklist(theme, ChecklistData{
		Title: "Default List",
		Tasks: []TaskRow{
			{Text: "buy milk", Completed: true, Selected: true},
			{Text: "walk dog"},
		},
	})
	if !strings.Contains(out, "> [x]") || !strings.Contains(out, "[ ]") {
		t.Fatalf("missing checkbox markers:\n%s", out)
	}
	if !strings.Contains(out, "walk dog") {
		t.Fatalf("missing task text:\n%s", out)
	}

	empty := RenderChecklist(theme, ChecklistData{Title: "Work"})
	if !strings.Contains(empty, "(no tasks)") {
		t.Fatalf("expected empty marker:\n%s", empty)
	}
}

func TestRenderTabsEditMode(t *testing.T) {
	tabs := []TabData{{Name: "Default List", Active: true}, {Name: "Work", Total: 2, Completed: 1, Marked: true}}
	out := RenderTabs(tabs, true, "")
	if !strings.Contains(out, "[editing]") || !strings.Contains(out, "Work 1/2 ×") {
		t.Fatalf("unexpected tabs:\n%s", out)
	}
	single := RenderTabs(tabs[:1], true, "")
	if strings.Contains(single, "×") {
		t.Fatalf("single profile must not offer delete:\n%s", single)
	}
}
