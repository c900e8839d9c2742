package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stepwise/stepwise/pkg/logger"
	"github.com/stepwise/stepwise/pkg/types"
)

// ReloadManager watches a configuration file and reloads it on change
type ReloadManager struct {
	configPath     string
	manager        *Manager
	logger         logger.Logger
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	lastModTime    time.Time
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	mu             sync.RWMutex
	ctx            context.Context
	cancel         context.CancelFunc
	isWatching     bool
}

// ReloadCallback receives the reloaded configuration, or the error that
// prevented loading it
type ReloadCallback func(*types.Config, error)

// ReloadEventType represents the type of reload event
type ReloadEventType string

const (
	ReloadEventTypeModified ReloadEventType = "modified"
	ReloadEventTypeCreated  ReloadEventType = "created"
	ReloadEventTypeRemoved  ReloadEventType = "removed"
	ReloadEventTypeError    ReloadEventType = "error"
)

// NewReloadManager creates a reload manager for configPath
func NewReloadManager(configPath string, log logger.Logger) *ReloadManager {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ReloadManager{
		configPath:     configPath,
		manager:        NewManager(),
		logger:         log.WithComponent("config"),
		debouncePeriod: 500 * time.Millisecond,
	}
}

// AddCallback adds a reload callback
func (rm *ReloadManager) AddCallback(callback ReloadCallback) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.callbacks = append(rm.callbacks, callback)
}

// SetDebouncePeriod sets how long to wait for events to settle
func (rm *ReloadManager) SetDebouncePeriod(period time.Duration) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.debouncePeriod = period
}

// StartWatching begins watching the configuration file's directory.
// Watching stops when ctx is cancelled or StopWatching is called.
func (rm *ReloadManager) StartWatching(ctx context.Context) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.isWatching {
		return fmt.Errorf("already watching configuration file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(rm.configPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	if stat, err := os.Stat(rm.configPath); err == nil {
		rm.lastModTime = stat.ModTime()
	}

	rm.watcher = watcher
	rm.ctx, rm.cancel = context.WithCancel(ctx)
	rm.isWatching = true

	go rm.watchLoop(rm.ctx, watcher)

	rm.logger.Debug("Started watching configuration file",
		logger.WithField("path", rm.configPath))
	return nil
}

// StopWatching stops watching the configuration file
func (rm *ReloadManager) StopWatching() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if !rm.isWatching {
		return nil
	}

	rm.cancel()

	if rm.debounceTimer != nil {
		rm.debounceTimer.Stop()
		rm.debounceTimer = nil
	}

	var err error
	if rm.watcher != nil {
		err = rm.watcher.Close()
		rm.watcher = nil
	}

	rm.isWatching = false
	rm.logger.Debug("Stopped watching configuration file")
	return err
}

// IsWatching returns whether the manager is currently watching
func (rm *ReloadManager) IsWatching() bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.isWatching
}

// TriggerReload reloads the configuration immediately, regardless of
// modification time
func (rm *ReloadManager) TriggerReload() {
	rm.mu.Lock()
	rm.lastModTime = time.Time{}
	rm.mu.Unlock()

	rm.handleConfigChange(ReloadEventTypeModified)
}

func (rm *ReloadManager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() {
		if r := recover(); r != nil {
			rm.logger.Error("Configuration watcher panic recovered",
				logger.WithField("panic", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !rm.isConfigFileEvent(event.Name) {
				continue
			}

			rm.logger.Debug("Configuration file event received",
				logger.WithField("event", event.String()))
			rm.debounceReload(mapFsnotifyEvent(event.Op))

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			rm.handleWatcherError(err)
		}
	}
}

func (rm *ReloadManager) handleWatcherError(err error) {
	rm.logger.Error("Configuration file watcher error",
		logger.WithField("eventType", ReloadEventTypeError),
		logger.WithField("error", err))
	rm.notifyCallbacks(nil, fmt.Errorf("configuration watcher %s: %w", ReloadEventTypeError, err))
}

func (rm *ReloadManager) isConfigFileEvent(eventPath string) bool {
	configFileName := filepath.Base(rm.configPath)
	eventFileName := filepath.Base(eventPath)

	if eventFileName == configFileName {
		return true
	}

	// Editors often save through a temporary sibling file
	return strings.HasPrefix(eventFileName, configFileName) ||
		(strings.HasSuffix(eventFileName, ".tmp") && strings.Contains(eventFileName, configFileName))
}

func mapFsnotifyEvent(op fsnotify.Op) ReloadEventType {
	switch {
	case op&fsnotify.Write == fsnotify.Write:
		return ReloadEventTypeModified
	case op&fsnotify.Create == fsnotify.Create:
		return ReloadEventTypeCreated
	case op&fsnotify.Remove == fsnotify.Remove:
		return ReloadEventTypeRemoved
	default:
		return ReloadEventTypeModified
	}
}

func (rm *ReloadManager) debounceReload(eventType ReloadEventType) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.debounceTimer != nil {
		rm.debounceTimer.Stop()
	}
	rm.debounceTimer = time.AfterFunc(rm.debouncePeriod, func() {
		rm.handleConfigChange(eventType)
	})
}

func (rm *ReloadManager) handleConfigChange(eventType ReloadEventType) {
	rm.logger.Debug("Processing configuration change",
		logger.WithField("eventType", eventType))

	if eventType == ReloadEventTypeRemoved {
		if _, err := os.Stat(rm.configPath); os.IsNotExist(err) {
			rm.notifyCallbacks(nil, fmt.Errorf("configuration file was removed: %s", rm.configPath))
			return
		}
	}

	stat, err := os.Stat(rm.configPath)
	if err != nil {
		rm.logger.Error("Failed to stat configuration file", logger.WithField("error", err))
		rm.notifyCallbacks(nil, err)
		return
	}

	rm.mu.Lock()
	if !stat.ModTime().After(rm.lastModTime) {
		rm.mu.Unlock()
		rm.logger.Debug("Configuration file not modified, skipping reload")
		return
	}
	rm.lastModTime = stat.ModTime()
	rm.mu.Unlock()

	cfg, err := rm.manager.LoadConfig(rm.configPath)
	if err != nil {
		rm.logger.Error("Failed to reload configuration", logger.WithField("error", err))
		rm.notifyCallbacks(nil, err)
		return
	}

	rm.logger.Info("Configuration reloaded",
		logger.WithField("recipes", len(cfg.Recipes)),
		logger.WithField("orders", len(cfg.Orders)))
	rm.notifyCallbacks(cfg, nil)
}

func (rm *ReloadManager) notifyCallbacks(cfg *types.Config, err error) {
	rm.mu.RLock()
	callbacks := make([]ReloadCallback, len(rm.callbacks))
	copy(callbacks, rm.callbacks)
	rm.mu.RUnlock()

	for _, callback := range callbacks {
		go func(cb ReloadCallback) {
			defer func() {
				if r := recover(); r != nil {
					rm.logger.Error("Reload callback panic recovered",
						logger.WithField("panic", r))
				}
			}()
			cb(cfg, err)
		}(callback)
	}
}
