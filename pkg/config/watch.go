package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay Watch waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watch reloads the configuration file at path whenever it changes, and
// sends each successfully loaded configuration on the returned channel. A
// burst of changes within debounce results in one reload. A configuration
// that fails to load is logged and skipped.
//
// The channel is closed when ctx is done. Receivers are expected to apply
// configurations on the goroutine that owns the channel being configured.
func Watch(ctx context.Context, path string, debounce time.Duration, dotenv ...string) (<-chan *Config, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file rather than write it, so the directory
	// is watched instead of the file.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	configs := make(chan *Config, 1)
	go func() {
		defer close(configs)
		defer watcher.Close()

		timer := time.NewTimer(debounce)
		timer.Stop()
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path ||
					event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				timer.Reset(debounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Println("watch error:", err)
			case <-timer.C:
				cfg, err := Load(path, dotenv...)
				if err != nil {
					logger.Println("reload failed:", err)
					continue
				}
				logger.Println("reloaded", path)
				select {
				case configs <- cfg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return configs, nil
}
