package update

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/checklist/internal/kv"
	"github.com/sandeepkv93/checklist/internal/model"
	"github.com/sandeepkv93/checklist/internal/profile"
	"github.com/sandeepkv93/checklist/internal/style"
)

func newTestModel(t *testing.T) (Model, *kv.MemoryStore) {
	t.Helper()
	ctx := t.Context()
	mem := kv.NewMemoryStore()
	adapter := kv.NewAdapter(mem, nil)
	m := NewModel(Options{
		Context:  ctx,
		Store:    mem,
		Profiles: profile.Open(ctx, adapter, profile.Options{}),
		Styles:   style.NewManager(ctx, adapter, nil),
	})
	return m, mem
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Mode != ModeList {
		t.Fatalf("expected list mode, got %q", m.Mode)
	}
	if m.Keys.Quit != "q" || m.Keys.Palette != "/" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if m.profiles.ActiveID() != model.DefaultProfileID {
		t.Fatalf("expected default profile active")
	}
}

func TestAddToggleDeleteFlow(t *testing.T) {
	m, mem := newTestModel(t)
	m = send(m, runes("a"), runes("buy milk"), enter, runes("   "), enter, esc)
	if m.Mode != ModeList {
		t.Fatalf("expected list mode after esc, got %q", m.Mode)
	}
	tasks := m.profiles.Active().Tasks
	if len(tasks) != 1 || tasks[0].Text != "buy milk" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	m = send(m, space)
	reopened := profile.Open(t.Context(), kv.NewAdapter(mem, nil), profile.Options{})
	if reopened.Active().CompletedCount() != 1 {
		t.Fatalf("toggle was not persisted: %+v", reopened.Active())
	}

	m = send(m, runes("d"))
	if n := len(m.profiles.Active().Tasks); n != 0 {
		t.Fatalf("expected task deleted, %d left", n)
	}
}

func TestCursorStaysInRange(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("a"), runes("one"), enter, runes("two"), enter, esc)
	if m.Cursor != 1 {
		t.Fatalf("cursor should follow the added task, got %d", m.Cursor)
	}
	m = send(m, runes("j"), runes("j"))
	if m.Cursor != 1 {
		t.Fatalf("cursor moved past the end: %d", m.Cursor)
	}
	m = send(m, runes("C"))
	if m.Cursor != 0 || len(m.profiles.Active().Tasks) != 0 {
		t.Fatalf("clear failed: cursor=%d tasks=%d", m.Cursor, len(m.profiles.Active().Tasks))
	}
}

func TestCreateProfileThenDeleteDefault(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("n"), runes("Work"), enter)
	if m.Mode != ModeList || m.profiles.Active().Name != "Work" {
		t.Fatalf("expected Work active in list mode, mode=%q active=%+v", m.Mode, m.profiles.Active())
	}

	m = send(m, runes("e"))
	if m.Mode != ModeEditProfiles || m.ProfileCursor != 1 {
		t.Fatalf("edit mode should start on the active tab: mode=%q cursor=%d", m.Mode, m.ProfileCursor)
	}
	m = send(m, runes("h"), runes("d"), esc)
	if got := m.profiles.Profiles(); len(got) != 1 || got[0].Name != "Work" {
		t.Fatalf("unexpected profiles: %+v", got)
	}
	if m.profiles.Active().Name != "Work" {
		t.Fatalf("expected Work to stay active")
	}
}

func TestDeleteLastProfileRefused(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("e"), runes("d"))
	if len(m.profiles.Profiles()) != 1 {
		t.Fatalf("last profile was deleted")
	}
	if m.Status.IsError || m.Status.Text != "" {
		t.Fatalf("refusal should be silent, got %+v", m.Status)
	}
}

func TestTabSwitchesProfiles(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("n"), runes("Work"), enter, tea.KeyMsg{Type: tea.KeyTab})
	if m.profiles.ActiveID() != model.DefaultProfileID {
		t.Fatalf("tab should wrap to the first profile, got %q", m.profiles.ActiveID())
	}
	m = send(m, runes("2"))
	if m.profiles.Active().Name != "Work" {
		t.Fatalf("digit should select the second profile")
	}
	m = send(m, runes("9"))
	if m.profiles.Active().Name != "Work" {
		t.Fatalf("out of range digit should be ignored")
	}
}

func TestPaletteCommands(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("/"), runes("profile new Errands"), enter)
	if m.Mode != ModeList || m.profiles.Active().Name != "Errands" {
		t.Fatalf("profile new failed: mode=%q active=%+v status=%+v", m.Mode, m.profiles.Active(), m.Status)
	}

	m = send(m, runes("/"), runes("add call mom"), enter)
	if tasks := m.profiles.Active().Tasks; len(tasks) != 1 || tasks[0].Text != "call mom" {
		t.Fatalf("add via palette failed: %+v", tasks)
	}

	m = send(m, runes("/"), runes("style mainBgColor #222222"), enter)
	if m.styles.Current().MainBgColor != "#222222" {
		t.Fatalf("style via palette failed: %+v", m.styles.Current())
	}
	if m.Theme().Settings.MainBgColor != "#222222" {
		t.Fatalf("theme observer did not run")
	}

	m = send(m, runes("/"), runes("profile switch default list"), enter)
	if m.profiles.ActiveID() != model.DefaultProfileID {
		t.Fatalf("switch by name failed: %+v", m.Status)
	}
}

func TestPaletteErrors(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("/"), runes("frobnicate"), enter)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command status, got %+v", m.Status)
	}
	m = send(m, runes("/"), runes("profile delete default"), enter)
	if m.Status.IsError || !strings.Contains(m.Status.Text, "last profile") {
		t.Fatalf("expected plain refusal notice, got %+v", m.Status)
	}
	if len(m.profiles.Profiles()) != 1 || m.LastError != nil {
		t.Fatalf("unexpected state after refused delete: %v", m.LastError)
	}
}

func TestPaletteExportImport(t *testing.T) {
	m, _ := newTestModel(t)
	path := filepath.Join(t.TempDir(), "backup.json")
	m = send(m, runes("a"), runes("keep me"), enter, esc)
	m = send(m, runes("/"), runes("export "+path), enter)
	if m.Status.IsError {
		t.Fatalf("export failed: %+v", m.Status)
	}

	other, _ := newTestModel(t)
	other = send(other, runes("/"), runes("import "+path), enter)
	if other.Status.IsError {
		t.Fatalf("import failed: %+v", other.Status)
	}
	if tasks := other.profiles.Active().Tasks; len(tasks) != 1 || tasks[0].Text != "keep me" {
		t.Fatalf("import did not reload profiles: %+v", tasks)
	}
}

func TestStyleEditorCycleAndEdit(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("s"), runes("j"), runes("j"), space)
	if got := m.styles.Current().InputFontFamily; got != "Arial, sans-serif" {
		t.Fatalf("expected first preset after system font, got %q", got)
	}

	m = send(m, runes("k"), enter)
	if m.Mode != ModeStyleEdit {
		t.Fatalf("expected style edit mode, got %q", m.Mode)
	}
	m.styleInput.SetValue("#abcdef")
	m = send(m, enter, esc)
	if got := m.styles.Current().InputBgColor; got != "#abcdef" {
		t.Fatalf("expected edited input bg, got %q", got)
	}
	if m.Mode != ModeList {
		t.Fatalf("expected list mode, got %q", m.Mode)
	}
}

func TestExternalChangesApply(t *testing.T) {
	ctx := t.Context()
	m, mem := newTestModel(t)

	foreign := mem.Attach()
	theirs := profile.Open(ctx, kv.NewAdapter(foreign, nil), profile.Options{})
	if _, _, err := theirs.CreateProfile(ctx, "Remote"); err != nil {
		t.Fatalf("create: %v", err)
	}
	settings, _ := style.Update(model.DefaultStyleSettings(), model.FieldListBgColor, "#101010")
	if err := kv.NewAdapter(foreign, nil).WriteJSON(ctx, style.Key, settings); err != nil {
		t.Fatalf("write style: %v", err)
	}

	changes, err := mem.Changes(ctx, 0)
	if err != nil {
		t.Fatalf("changes: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("expected 3 foreign changes, got %d", len(changes))
	}
	for _, change := range changes {
		m = send(m, ExternalChangeMsg{Change: change})
	}
	if m.profiles.Active().Name != "Remote" {
		t.Fatalf("profiles not reloaded: %+v", m.profiles.Profiles())
	}
	if m.Theme().Settings.ListBgColor != "#101010" {
		t.Fatalf("style not applied: %+v", m.Theme().Settings)
	}
}

func TestStorageErrorSurfaces(t *testing.T) {
	m, mem := newTestModel(t)
	if err := mem.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	m = send(m, runes("a"), runes("lost"), enter)
	if !errors.Is(m.LastError, kv.ErrClosed) || !m.Status.IsError {
		t.Fatalf("expected closed store error, got %v status=%+v", m.LastError, m.Status)
	}
}

func TestUpdateStatusMessages(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	m = send(m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || m.Status.Text != "boom" || !m.Status.IsError {
		t.Fatalf("unexpected error state: %+v %v", m.Status, m.LastError)
	}
	m = send(m, ClearStatusMsg{})
	if m.Status.Text != "" {
		t.Fatalf("expected cleared status")
	}
}

func TestViewAndQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, runes("a"), runes("buy milk"), enter, esc, runes("?"))
	out := m.View()
	for _, want := range []string{"Default List", "buy milk", "toggle help"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}

	updated, cmd := m.Update(runes("q"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatalf("expected quit")
	}
}
