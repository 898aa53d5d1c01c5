package kv

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryEntry struct {
	value    string
	origin   string
	revision int64
}

type memoryData struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	revision int64
	closed   bool
}

// MemoryStore keeps entries in a map. Handles returned by Attach share the
// same entries under a different origin, which is how tests stand in for a
// second process on the same database.
type MemoryStore struct {
	data   *memoryData
	origin string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   &memoryData{entries: make(map[string]memoryEntry)},
		origin: uuid.NewString(),
	}
}

func (m *MemoryStore) Attach() *MemoryStore {
	return &MemoryStore{data: m.data, origin: uuid.NewString()}
}

func (m *MemoryStore) Origin() string {
	return m.origin
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if m.data.closed {
		return "", false, ErrClosed
	}
	e, ok := m.data.entries[key]
	return e.value, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if m.data.closed {
		return ErrClosed
	}
	m.data.revision++
	m.data.entries[key] = memoryEntry{value: value, origin: m.origin, revision: m.data.revision}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if m.data.closed {
		return ErrClosed
	}
	delete(m.data.entries, key)
	return nil
}

func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if m.data.closed {
		return nil, ErrClosed
	}
	out := make([]string, 0, len(m.data.entries))
	for k := range m.data.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) Changes(_ context.Context, since int64) ([]Change, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if m.data.closed {
		return nil, ErrClosed
	}
	out := make([]Change, 0)
	for k, e := range m.data.entries {
		if e.revision <= since || e.origin == m.origin {
			continue
		}
		out = append(out, Change{Key: k, Value: e.value, Origin: e.origin, Revision: e.revision})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revision < out[j].Revision })
	return out, nil
}

func (m *MemoryStore) Revision(_ context.Context) (int64, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if m.data.closed {
		return 0, ErrClosed
	}
	return m.data.revision, nil
}

// Close marks the shared entries closed for every attached handle.
func (m *MemoryStore) Close() error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	m.data.closed = true
	return nil
}
