package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/checklist/internal/kv"
	"github.com/sandeepkv93/checklist/internal/profile"
	"github.com/sandeepkv93/checklist/internal/style"
)

func waitForChangeCmd(ch <-chan kv.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return ExternalChangeMsg{Change: change}
	}
}

// applyExternal folds a foreign write into the in-memory state. The whole
// record is replaced; concurrent local edits lose.
func (m Model) applyExternal(change kv.Change) Model {
	switch change.Key {
	case style.Key:
		m.styles.ApplyExternal(change.Value)
		m.logger.Debug("applied external style change", "revision", change.Revision, "origin", change.Origin)
	case profile.ProfilesKey, profile.ActiveKey:
		m.profiles.Reload(m.ctx)
		m.logger.Debug("reloaded profiles after external change", "key", change.Key, "revision", change.Revision)
		m.Status = StatusBar{Text: "profiles updated by another session"}
	default:
		m.logger.Debug("ignored external change", "key", change.Key)
	}
	return m
}
