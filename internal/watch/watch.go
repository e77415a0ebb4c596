// Package watch regenerates the declaration file when schema files
// change on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounce coalesces the bursts of events editors produce on save.
const debounce = 200 * time.Millisecond

// Watch watches the given schema directories and invokes `regenerate`
// after changes settle. Directories are watched whole because editors
// doing atomic saves replace files instead of writing them in place.
// Blocks until the watcher is closed or fails.
func Watch(dirs []string, logger zerolog.Logger, regenerate func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf(`failed to create file watcher: %w`, err)
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range dirs {
		if dir == "" {
			continue
		}

		if err := watcher.Add(dir); err != nil {
			logger.Warn().Str("dir", dir).Err(err).Msg("cannot watch schema directory")
			continue
		}
		watched++
	}

	if watched == 0 {
		return fmt.Errorf(`no schema directories could be watched`)
	}

	logger.Info().Int("dirs", watched).Msg("watching schema directories")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSchemaFile(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("schema file changed")
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("file watcher error")
		case <-timer.C:
			regenerate()
		}
	}
}

func isSchemaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
