package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/sandeepkv93/checklist/internal/config"
	"github.com/sandeepkv93/checklist/internal/kv"
	"github.com/sandeepkv93/checklist/internal/logging"
	"github.com/sandeepkv93/checklist/internal/profile"
	"github.com/sandeepkv93/checklist/internal/snapshot"
	"github.com/sandeepkv93/checklist/internal/style"
	"github.com/sandeepkv93/checklist/internal/update"
)

// backend is what both storage implementations provide.
type backend interface {
	kv.Store
	kv.ChangeSource
	Close() error
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "checklist failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("checklist", pflag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	exportPath := fs.String("export", "", "write a snapshot of all lists and styles to this file and exit")
	importPath := fs.String("import", "", "load a snapshot file (comments allowed) and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(logging.Options{
		Path:            cfg.LogFile,
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		Prefix:          "checklist",
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("store opened", "backend", cfg.Backend, "path", cfg.DBPath, "config", cfg.ConfigFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case *exportPath != "":
		return exportSnapshot(ctx, store, *exportPath)
	case *importPath != "":
		return importSnapshot(ctx, store, *importPath, logger)
	}

	adapter := kv.NewAdapter(store, logger)
	watcher := kv.NewWatcher(store, cfg.WatchInterval, cfg.WatchBuffer, logger)
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() {
		watcher.Stop()
		if dropped := watcher.Dropped(); dropped > 0 {
			logger.Warn("external changes dropped", "count", dropped)
		}
	}()

	m := update.NewModel(update.Options{
		Context:  ctx,
		Store:    store,
		Profiles: profile.Open(ctx, adapter, profile.Options{Logger: logger}),
		Styles:   style.NewManager(ctx, adapter, logger),
		Watcher:  watcher,
		Logger:   logger,
		Dark:     darkBackground(cfg.Theme),
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func openBackend(cfg config.Config) (backend, error) {
	if cfg.Backend == config.BackendMemory {
		return kv.NewMemoryStore(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := kv.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func darkBackground(theme string) bool {
	switch theme {
	case config.ThemeDark:
		return true
	case config.ThemeLight:
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}

func exportSnapshot(ctx context.Context, store kv.Store, path string) error {
	snap, err := snapshot.Export(ctx, store)
	if err != nil {
		return err
	}
	if err := snap.Write(path); err != nil {
		return err
	}
	fmt.Printf("exported %d keys to %s\n", len(snap.Entries), path)
	return nil
}

func importSnapshot(ctx context.Context, store kv.Store, path string, logger *log.Logger) error {
	res, err := snapshot.Import(ctx, store, path)
	if err != nil {
		return err
	}
	for key, reason := range res.Skipped {
		logger.Warn("snapshot entry skipped", "key", key, "err", reason)
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", key, reason)
	}
	fmt.Printf("imported %d keys from %s\n", len(res.Imported), path)
	return nil
}
