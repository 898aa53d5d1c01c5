package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/charmbracelet/log"
)

// Adapter reads and writes JSON values. Reads fail soft: a missing key, a
// read error or a decode error all leave the destination untouched so the
// caller's default stands.
type Adapter struct {
	store  Store
	logger *log.Logger
}

func NewAdapter(store Store, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{store: store, logger: logger}
}

func (a *Adapter) Store() Store {
	return a.store
}

// ReadJSON decodes key into dst and reports whether it did.
func (a *Adapter) ReadJSON(ctx context.Context, key string, dst any) bool {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.Warn("read key", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	return a.DecodeJSON(key, raw, dst)
}

// DecodeJSON decodes a raw value already read for key. dst is only
// modified when the whole value decodes.
func (a *Adapter) DecodeJSON(key, raw string, dst any) bool {
	if err := decodeInto(raw, dst); err != nil {
		a.logger.Warn("malformed value, using default", "key", key, "err", err)
		return false
	}
	return true
}

func (a *Adapter) WriteJSON(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %s: %w", key, err)
	}
	return a.store.Set(ctx, key, string(payload))
}

// decodeInto unmarshals into a copy of *dst and stores it back only on
// success. Struct fields absent from raw keep the value dst had; slices and
// maps start empty.
func decodeInto(raw string, dst any) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return fmt.Errorf("kv: decode target must be a non-nil pointer, got %T", dst)
	}
	target := ptr.Elem()
	scratch := reflect.New(target.Type())
	switch target.Kind() {
	case reflect.Slice, reflect.Map:
	default:
		scratch.Elem().Set(target)
	}
	if err := json.Unmarshal([]byte(raw), scratch.Interface()); err != nil {
		return err
	}
	target.Set(scratch.Elem())
	return nil
}
