package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/checklist/internal/commands"
	"github.com/sandeepkv93/checklist/internal/snapshot"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		return m.executePaletteCommand(), nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) closePalette() Model {
	m.Mode = ModeList
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.commandInput.Value())
	m = m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		var ce *commands.CommandError
		if errors.As(err, &ce) {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		return m.fail(err)
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

// paletteHandlers binds commands to the stores. The handlers write through
// the shared store pointers, so the model copy they close over is never
// read back.
func (m Model) paletteHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, added, err := m.profiles.AddTask(m.ctx, a.Text)
			if err != nil {
				return commands.Result{}, err
			}
			if !added {
				return commands.Result{}, invalidArg("task text is empty")
			}
			return commands.Result{Message: fmt.Sprintf("added %q", task.Text)}, nil
		},
		Clear: func() (commands.Result, error) {
			if _, err := m.profiles.ClearTasks(m.ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "cleared all tasks"}, nil
		},
		Profile: m.runProfileCommand,
		Style: func(s commands.StyleArgs) (commands.Result, error) {
			if s.Reset {
				if err := m.styles.Reset(m.ctx); err != nil {
					return commands.Result{}, err
				}
				return commands.Result{Message: "style reset to defaults"}, nil
			}
			if _, err := m.styles.Set(m.ctx, s.Field, s.Value); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s: %s", s.Field.Label(), s.Value)}, nil
		},
		Export: func(p commands.PathArgs) (commands.Result, error) {
			if m.store == nil {
				return commands.Result{}, invalidArg("no store configured")
			}
			snap, err := snapshot.Export(m.ctx, m.store)
			if err != nil {
				return commands.Result{}, err
			}
			if err := snap.Write(p.Path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported %d keys to %s", len(snap.Entries), p.Path)}, nil
		},
		Import: func(p commands.PathArgs) (commands.Result, error) {
			if m.store == nil {
				return commands.Result{}, invalidArg("no store configured")
			}
			res, err := snapshot.Import(m.ctx, m.store, p.Path)
			if err != nil {
				return commands.Result{}, err
			}
			m.profiles.Reload(m.ctx)
			m.styles.Reload(m.ctx)
			msg := fmt.Sprintf("imported %d keys", len(res.Imported))
			if len(res.Skipped) > 0 {
				msg += fmt.Sprintf(", skipped %d", len(res.Skipped))
			}
			return commands.Result{Message: msg}, nil
		},
	}
}

func (m Model) runProfileCommand(p commands.ProfileArgs) (commands.Result, error) {
	if p.Action == commands.ProfileNew {
		created, ok, err := m.profiles.CreateProfile(m.ctx, p.Name)
		if err != nil {
			return commands.Result{}, err
		}
		if !ok {
			return commands.Result{}, invalidArg("profile name is empty")
		}
		return commands.Result{Message: "created profile " + created.Name}, nil
	}

	target, found := m.profiles.Resolve(p.Ref)
	if !found {
		return commands.Result{}, invalidArg(fmt.Sprintf("no profile %q", p.Ref))
	}
	var (
		changed bool
		err     error
		msg     string
	)
	switch p.Action {
	case commands.ProfileSwitch:
		changed, err = m.profiles.SwitchActive(m.ctx, target.ID)
		msg = "switched to " + target.Name
		if err == nil && !changed {
			msg = target.Name + " is already active"
		}
		return commands.Result{Message: msg}, err
	case commands.ProfileDelete:
		changed, err = m.profiles.DeleteProfile(m.ctx, target.ID)
		msg = "deleted profile " + target.Name
		if err == nil && !changed {
			msg = "kept " + target.Name + ", the last profile"
		}
		return commands.Result{Message: msg}, err
	case commands.ProfileRename:
		if _, err = m.profiles.RenameProfile(m.ctx, target.ID, p.Name); err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: fmt.Sprintf("renamed %s to %s", target.Name, strings.TrimSpace(p.Name))}, nil
	}
	return commands.Result{}, invalidArg(fmt.Sprintf("unknown profile action: %s", p.Action))
}

func invalidArg(msg string) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: msg}
}
