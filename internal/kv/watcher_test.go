package kv

import (
	"context"
	"testing"
	"time"
)

func TestWatcherReportsForeignWritesOnly(t *testing.T) {
	ctx := context.Background()
	mine := NewMemoryStore()
	other := mine.Attach()
	_ = other.Set(ctx, "styleSettings", `{"old":true}`)

	w := NewWatcher(mine, 10*time.Millisecond, 8, nil)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	if err := mine.Set(ctx, "profiles", `[]`); err != nil {
		t.Fatalf("own set: %v", err)
	}
	if err := other.Set(ctx, "styleSettings", `{"mainBgColor":"#222222"}`); err != nil {
		t.Fatalf("foreign set: %v", err)
	}

	c := waitChange(t, w.C(), time.Second)
	if c.Key != "styleSettings" || c.Value != `{"mainBgColor":"#222222"}` {
		t.Fatalf("unexpected change: %#v", c)
	}

	select {
	case extra := <-w.C():
		t.Fatalf("unexpected extra change: %#v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcherDropsWhenConsumerIsSlow(t *testing.T) {
	ctx := context.Background()
	mine := NewMemoryStore()
	other := mine.Attach()

	w := NewWatcher(mine, 10*time.Millisecond, 1, nil)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	for _, key := range []string{"a", "b", "c", "d"} {
		_ = other.Set(ctx, key, "v")
	}
	time.Sleep(80 * time.Millisecond)
	if w.Dropped() == 0 {
		t.Fatalf("expected dropped changes > 0, got %d", w.Dropped())
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := NewWatcher(NewMemoryStore(), time.Millisecond, 1, nil)
	w.Stop()
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	w.Stop()
	w.Stop()
	if _, ok := <-w.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func waitChange(t *testing.T, ch <-chan Change, timeout time.Duration) Change {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for change")
		return Change{}
	}
}
