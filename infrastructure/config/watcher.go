package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounceDelay = 500 * time.Millisecond

// ConfigWatcher re-reads the configuration file when it changes and passes
// the new configuration to every registered callback, in registration order.
// Only the file and environment layers are re-read.
type ConfigWatcher struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)

	logger   *zap.Logger
	debounce time.Duration
}

// NewConfigWatcher watches the file the initial configuration came from
func NewConfigWatcher(initial *Config, logger *zap.Logger) (*ConfigWatcher, error) {
	if initial.ConfigFile == "" {
		return nil, fmt.Errorf("configuration was not loaded from a file")
	}
	return &ConfigWatcher{
		config:   initial,
		logger:   logger.Named("config"),
		debounce: defaultDebounceDelay,
	}, nil
}

// OnChange registers a callback for configuration changes
func (w *ConfigWatcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// GetConfig returns the current configuration
func (w *ConfigWatcher) GetConfig() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// Run watches the configuration file until ctx is cancelled. A burst of
// events within the debounce delay causes a single reload.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsWatcher.Close()

	// Editors often replace the file, so watch its directory
	path := filepath.Clean(w.GetConfig().ConfigFile)
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}
	w.logger.Info("Watching configuration file", zap.String("file", path))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping configuration watcher")
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == path && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", zap.Error(err))

		case <-timer.C:
			w.reloadConfig()
		}
	}
}

// reloadConfig swaps in the file's current configuration when it is valid
// and differs from the active one
func (w *ConfigWatcher) reloadConfig() {
	current := w.GetConfig()

	updated, err := LoadConfigFile(current.ConfigFile)
	if err != nil {
		w.logger.Error("Ignoring invalid configuration", zap.Error(err))
		return
	}

	changes := diffConfigs(current, updated)
	if len(changes) == 0 {
		return
	}

	w.mu.Lock()
	w.config = updated
	callbacks := append([]func(*Config){}, w.callbacks...)
	w.mu.Unlock()

	w.logger.Info("Configuration reloaded", zap.Strings("changes", changes))
	for _, callback := range callbacks {
		w.notify(callback, updated)
	}
}

func (w *ConfigWatcher) notify(callback func(*Config), updated *Config) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Configuration callback panicked", zap.Any("panic", r))
		}
	}()
	callback(updated)
}

// diffConfigs describes the reloadable settings that differ
func diffConfigs(old, updated *Config) []string {
	var changes []string
	add := func(name string, before, after interface{}) {
		if before != after {
			changes = append(changes, fmt.Sprintf("%s: %v -> %v", name, before, after))
		}
	}
	add("log_level", old.LogLevel, updated.LogLevel)
	add("cache_ttl", old.CacheTTL, updated.CacheTTL)
	add("enable_metrics", old.EnableMetrics, updated.EnableMetrics)
	add("enable_tracing", old.EnableTracing, updated.EnableTracing)
	return changes
}
