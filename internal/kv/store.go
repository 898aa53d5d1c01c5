package kv

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("kv: store closed")

// Store is a synchronous string-keyed store. Values are opaque strings;
// callers that need structure go through Adapter.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Change is a write to a key made by a different origin.
type Change struct {
	Key      string
	Value    string
	Origin   string
	Revision int64
}

// ChangeSource reports foreign writes newer than a revision.
type ChangeSource interface {
	Changes(ctx context.Context, since int64) ([]Change, error)
	Revision(ctx context.Context) (int64, error)
}
