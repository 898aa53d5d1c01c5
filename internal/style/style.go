// Package style loads, edits and persists the StyleSettings record and
// tells subscribers whenever it changes.
package style

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/checklist/internal/kv"
	"github.com/sandeepkv93/checklist/internal/model"
)

const Key = "styleSettings"

// Load reads the persisted record. Missing fields, a missing key or a
// malformed value all fall back to the defaults.
func Load(ctx context.Context, adapter *kv.Adapter) model.StyleSettings {
	settings := model.DefaultStyleSettings()
	adapter.ReadJSON(ctx, Key, &settings)
	return settings
}

// Update returns settings with exactly field replaced.
func Update(settings model.StyleSettings, field model.StyleField, value string) (model.StyleSettings, bool) {
	return settings.With(field, value)
}

// Decode parses a raw stored value the same way Load does.
func Decode(adapter *kv.Adapter, raw string) model.StyleSettings {
	settings := model.DefaultStyleSettings()
	adapter.DecodeJSON(Key, raw, &settings)
	return settings
}

type Observer func(model.StyleSettings)

// Manager owns the current settings for one running app.
type Manager struct {
	adapter   *kv.Adapter
	logger    *log.Logger
	current   model.StyleSettings
	mu        sync.Mutex
	observers map[int]Observer
	nextObs   int
}

func NewManager(ctx context.Context, adapter *kv.Adapter, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		adapter:   adapter,
		logger:    logger,
		current:   Load(ctx, adapter),
		observers: make(map[int]Observer),
	}
}

func (m *Manager) Current() model.StyleSettings {
	return m.current
}

// Subscribe registers fn and returns a function that removes it.
func (m *Manager) Subscribe(fn Observer) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// Save persists settings as one unit and notifies subscribers. The
// in-memory record is replaced only when the write succeeds.
func (m *Manager) Save(ctx context.Context, settings model.StyleSettings) error {
	if err := m.adapter.WriteJSON(ctx, Key, settings); err != nil {
		return err
	}
	m.current = settings
	m.notify()
	return nil
}

// Set edits one field of the current record and saves it. Unknown fields
// are ignored.
func (m *Manager) Set(ctx context.Context, field model.StyleField, value string) (bool, error) {
	next, ok := Update(m.current, field, value)
	if !ok {
		m.logger.Debug("ignored unknown style field", "field", field)
		return false, nil
	}
	return true, m.Save(ctx, next)
}

// Cycle advances a font field to its next preset and saves.
func (m *Manager) Cycle(ctx context.Context, field model.StyleField) (bool, error) {
	value, ok := NextPreset(field, m.current.Get(field))
	if !ok {
		return false, nil
	}
	return m.Set(ctx, field, value)
}

func (m *Manager) Reset(ctx context.Context) error {
	return m.Save(ctx, model.DefaultStyleSettings())
}

// ApplyExternal replaces the record with a value another process wrote.
// Nothing is written back.
func (m *Manager) ApplyExternal(raw string) {
	m.current = Decode(m.adapter, raw)
	m.logger.Debug("style settings replaced by external write")
	m.notify()
}

// Reload re-reads the stored record, used after a snapshot import.
func (m *Manager) Reload(ctx context.Context) {
	m.current = Load(ctx, m.adapter)
	m.notify()
}

func (m *Manager) notify() {
	m.mu.Lock()
	observers := make([]Observer, 0, len(m.observers))
	for i := 0; i < m.nextObs; i++ {
		if fn, ok := m.observers[i]; ok {
			observers = append(observers, fn)
		}
	}
	m.mu.Unlock()
	for _, fn := range observers {
		fn(m.current)
	}
}
