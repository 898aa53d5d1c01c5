package update

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/checklist/internal/kv"
	"github.com/sandeepkv93/checklist/internal/model"
	"github.com/sandeepkv93/checklist/internal/profile"
	"github.com/sandeepkv93/checklist/internal/style"
	"github.com/sandeepkv93/checklist/internal/views"
)

type Mode string

const (
	ModeList         Mode = "list"
	ModeAddTask      Mode = "add-task"
	ModeNewProfile   Mode = "new-profile"
	ModeEditProfiles Mode = "edit-profiles"
	ModeStyle        Mode = "style"
	ModeStyleEdit    Mode = "style-edit"
	ModePalette      Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add        string
	NewProfile string
	Edit       string
	Style      string
	Palette    string
	Help       string
	Quit       string
}

// Options carries the collaborators the model drives. Profiles and Styles
// are required; the rest may be zero.
type Options struct {
	Context  context.Context
	Store    kv.Store
	Profiles *profile.Store
	Styles   *style.Manager
	Watcher  *kv.Watcher
	Logger   *log.Logger
	Dark     bool
}

// Model is the Bubble Tea model. Store calls happen only inside Update, so
// the stores are never touched from two goroutines.
type Model struct {
	Mode          Mode
	Cursor        int
	ProfileCursor int
	HelpVisible   bool
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error
	Width         int

	ctx      context.Context
	store    kv.Store
	profiles *profile.Store
	styles   *style.Manager
	watcher  *kv.Watcher
	logger   *log.Logger

	// theme is shared by every copy of the model and rebuilt by the style
	// observer.
	theme *views.Theme

	taskInput    textinput.Model
	profileInput textinput.Model
	styleInput   textinput.Model
	commandInput textinput.Model
	styleTable   table.Model
	helpModel    help.Model
	helpViewport viewport.Model
	doneProgress progress.Model
	// helpFor is the mode the help viewport content was rendered for.
	helpFor      Mode
}

// ExternalChangeMsg carries a write made by another process.
type ExternalChangeMsg struct {
	Change kv.Change
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := Model{
		Mode: ModeList,
		Keys: GlobalKeyMap{
			Add:        "a",
			NewProfile: "n",
			Edit:       "e",
			Style:      "s",
			Palette:    "/",
			Help:       "?",
			Quit:       "q",
		},
		ctx:      ctx,
		store:    opts.Store,
		profiles: opts.Profiles,
		styles:   opts.Styles,
		watcher:  opts.Watcher,
		logger:   logger,
	}
	theme := views.NewTheme(m.styles.Current(), opts.Dark)
	shared := &theme
	m.theme = shared
	m.styles.Subscribe(func(s model.StyleSettings) {
		*shared = views.NewTheme(s, shared.Dark)
	})
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "add> "
	m.taskInput.Placeholder = "Add a new task..."
	m.taskInput.CharLimit = 512
	m.taskInput.Width = 48

	m.profileInput = textinput.New()
	m.profileInput.Prompt = "name> "
	m.profileInput.Placeholder = "Profile name"
	m.profileInput.CharLimit = 64
	m.profileInput.Width = 24

	m.styleInput = textinput.New()
	m.styleInput.Prompt = "> "
	m.styleInput.CharLimit = 128
	m.styleInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	cols := []table.Column{
		{Title: "Field", Width: 18},
		{Title: "Value", Width: 26},
	}
	m.styleTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(len(model.StyleFields)+1))

	m.helpModel = help.New()
	m.helpViewport = viewport.New(44, 14)
	m.doneProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))
}

// syncBubbleData copies store state into the bubble components and keeps
// the cursors in range.
func (m *Model) syncBubbleData() {
	tasks := m.profiles.Active().Tasks
	if m.Cursor >= len(tasks) {
		m.Cursor = len(tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if n := len(m.profiles.Profiles()); m.ProfileCursor >= n {
		m.ProfileCursor = n - 1
	}
	if m.ProfileCursor < 0 {
		m.ProfileCursor = 0
	}

	current := m.styles.Current()
	rows := make([]table.Row, 0, len(model.StyleFields))
	for _, f := range model.StyleFields {
		rows = append(rows, table.Row{f.Label(), current.Get(f)})
	}
	m.styleTable.SetRows(rows)

	if m.HelpVisible && m.helpFor != m.Mode {
		m.helpViewport.SetContent(views.RenderMarkdown(m.helpMarkdown(), m.theme.Dark))
		m.helpViewport.GotoTop()
		m.helpFor = m.Mode
	}
}

func (m Model) selectedField() model.StyleField {
	idx := m.styleTable.Cursor()
	if idx < 0 || idx >= len(model.StyleFields) {
		return model.StyleFields[0]
	}
	return model.StyleFields[idx]
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.profiles.Active().Tasks
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}

// Theme returns the current rendering theme.
func (m Model) Theme() views.Theme {
	return *m.theme
}
