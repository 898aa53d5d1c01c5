// Package snapshot exports every persisted checklist key to a JSON file and
// imports such files back. Import accepts comments and trailing commas so a
// hand-edited export loads as is.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/sandeepkv93/checklist/internal/kv"
	"github.com/sandeepkv93/checklist/internal/model"
	"github.com/sandeepkv93/checklist/internal/profile"
	"github.com/sandeepkv93/checklist/internal/style"
)

var (
	ErrUnknownKey   = errors.New("snapshot: unknown key")
	ErrInvalidValue = errors.New("snapshot: invalid value")
)

// Keys lists what a snapshot carries, in export order.
var Keys = []string{style.Key, profile.ProfilesKey, profile.ActiveKey, profile.LegacyTasksKey}

type Snapshot struct {
	ExportedAt time.Time                  `json:"exportedAt"`
	Entries    map[string]json.RawMessage `json:"entries"`
}

// Result reports an import. Skipped entries were left out of the store.
type Result struct {
	Imported []string
	Skipped  map[string]error
}

// Export reads the known keys. Keys that were never written are omitted.
func Export(ctx context.Context, store kv.Store) (Snapshot, error) {
	snap := Snapshot{ExportedAt: time.Now().UTC(), Entries: make(map[string]json.RawMessage, len(Keys))}
	for _, key := range Keys {
		raw, ok, err := store.Get(ctx, key)
		if err != nil {
			return Snapshot{}, fmt.Errorf("snapshot: read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if key == profile.ActiveKey {
			quoted, _ := json.Marshal(profile.DecodeActive(raw))
			raw = string(quoted)
		} else if !json.Valid([]byte(raw)) {
			// Stored garbage is exported as a string so the file stays valid.
			quoted, _ := json.Marshal(raw)
			raw = string(quoted)
		}
		snap.Entries[key] = json.RawMessage(raw)
	}
	return snap, nil
}

func (s Snapshot) Write(path string) error {
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o600); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// Parse strips comments and trailing commas from data before decoding.
func Parse(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(jsonc.ToJSON(data), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: parse: %w", err)
	}
	return snap, nil
}

func Read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	snap, err := Parse(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Import reads path and writes every entry that decodes into its shape.
func Import(ctx context.Context, store kv.Store, path string) (Result, error) {
	snap, err := Read(path)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, store, snap)
}

// Apply writes the valid entries of snap in export order. Storage errors
// stop the import; invalid entries are only reported.
func Apply(ctx context.Context, store kv.Store, snap Snapshot) (Result, error) {
	res := Result{Skipped: map[string]error{}}
	names := make([]string, 0, len(snap.Entries))
	for key := range snap.Entries {
		names = append(names, key)
	}
	sort.Slice(names, func(i, j int) bool { return rank(names[i]) < rank(names[j]) })

	for _, key := range names {
		compact, err := validate(key, snap.Entries[key])
		if err != nil {
			res.Skipped[key] = err
			continue
		}
		if err := store.Set(ctx, key, compact); err != nil {
			return res, fmt.Errorf("snapshot: write %s: %w", key, err)
		}
		res.Imported = append(res.Imported, key)
	}
	return res, nil
}

// validate checks raw against the shape of key and returns the value to
// store.
func validate(key string, raw json.RawMessage) (string, error) {
	if key == profile.ActiveKey {
		return validateActive(raw)
	}
	var target any
	switch key {
	case style.Key:
		target = &model.StyleSettings{}
	case profile.ProfilesKey:
		target = &[]model.Profile{}
	case profile.LegacyTasksKey:
		target = &[]model.Task{}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	if profiles, ok := target.(*[]model.Profile); ok {
		if len(*profiles) == 0 {
			return "", fmt.Errorf("%w: %s: no profiles", ErrInvalidValue, key)
		}
		for _, p := range *profiles {
			if err := p.Validate(); err != nil {
				return "", fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
			}
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	return buf.String(), nil
}

// validateActive accepts a quoted id or a bare number, as hand-edited files
// carry numeric ids, and returns the bare id the store keeps.
func validateActive(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidValue, profile.ActiveKey, err)
	}
	var id string
	switch t := v.(type) {
	case string:
		id = strings.TrimSpace(t)
	case json.Number:
		id = t.String()
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s: not a profile id", ErrInvalidValue, profile.ActiveKey)
	}
	return id, nil
}

func rank(key string) int {
	for i, k := range Keys {
		if k == key {
			return i
		}
	}
	return len(Keys)
}
