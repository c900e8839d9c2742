package config

// HandleWatcherError exposes watcher error handling to tests
func (rm *ReloadManager) HandleWatcherError(err error) {
	rm.handleWatcherError(err)
}
