package kv

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

const DefaultWatchInterval = 500 * time.Millisecond

// Watcher polls a ChangeSource and forwards foreign writes on C. Delivery
// never blocks the poll loop: when the buffer is full the change is
// dropped and counted.
type Watcher struct {
	mu       sync.Mutex
	source   ChangeSource
	interval time.Duration
	logger   *log.Logger
	out      chan Change
	stopCh   chan struct{}
	doneCh   chan struct{}
	since    int64
	started  bool
	stopped  bool
	dropped  uint64
}

func NewWatcher(source ChangeSource, interval time.Duration, bufferSize int, logger *log.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Watcher{
		source:   source,
		interval: interval,
		logger:   logger,
		out:      make(chan Change, bufferSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (w *Watcher) C() <-chan Change {
	return w.out
}

// Start records the current revision as the baseline, so only writes made
// after Start are reported, and launches the poll loop.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	rev, err := w.source.Revision(ctx)
	if err != nil {
		return err
	}
	w.since = rev
	w.started = true
	go w.loop()
	return nil
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()
	<-w.doneCh
}

func (w *Watcher) Dropped() uint64 {
	return atomic.LoadUint64(&w.dropped)
}

func (w *Watcher) loop() {
	defer close(w.doneCh)
	defer close(w.out)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	changes, err := w.source.Changes(ctx, w.since)
	if err != nil {
		w.logger.Warn("poll changes", "err", err)
		return
	}
	for _, c := range changes {
		if c.Revision > w.since {
			w.since = c.Revision
		}
		select {
		case w.out <- c:
		default:
			atomic.AddUint64(&w.dropped, 1)
		}
	}
}
