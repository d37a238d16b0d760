package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the quiet period before a changed file is reloaded.
const DefaultWatchDebounce = 200 * time.Millisecond

// Watcher reloads a configuration file into a Holder when it changes.
// The parent directory is watched so that editors which replace the file
// by rename are still observed.
type Watcher struct {
	path     string
	holder   *Holder
	logger   *slog.Logger
	debounce time.Duration
	fsw      *fsnotify.Watcher

	// OnReload, if set, is called with each successfully loaded configuration.
	OnReload func(*Config)

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the configuration file at path.
func NewWatcher(path string, holder *Holder, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		holder:   holder,
		logger:   logger.With("component", "config.watcher"),
		debounce: DefaultWatchDebounce,
		fsw:      fsw,
	}, nil
}

// SetDebounce changes the quiet period. It must be called before Watch.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Watch blocks until ctx is cancelled, reloading the file on every change.
// A reload that fails to parse or validate is logged and the previous
// configuration stays active.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.fsw.Close()

	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(w.path), err)
	}

	w.logger.Info("config watcher started", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			w.logger.Info("config watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("config file event", "op", event.Op.String())
			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.Reload)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}

// Reload loads the file now and swaps it into the holder.
func (w *Watcher) Reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Error("config reload failed, keeping previous configuration", "error", err)
		return
	}

	previous := w.holder.Get()
	w.holder.Set(cfg)

	if previous != nil && previous.Server.ListenAddress != cfg.Server.ListenAddress {
		w.logger.Warn("listen address change requires a restart",
			"active", previous.Server.ListenAddress,
			"configured", cfg.Server.ListenAddress,
		)
	}
	w.logger.Info("configuration reloaded", "path", w.path)

	if w.OnReload != nil {
		w.OnReload(cfg)
	}
}
