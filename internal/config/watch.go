// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/corptranslate/internal/logging"
)

// DefaultDebounce collapses the burst of events an editor produces on save.
const DefaultDebounce = 250 * time.Millisecond

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher reloads the configuration when a config file in the config
// directory changes. The directory is watched rather than the file because
// editors usually save by rename.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	load     func() (*Config, error)

	changes chan *Config
	errs    chan error

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Watch starts watching the default config directory, creating it if needed.
func Watch() (*Watcher, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewWatcher(dir, DefaultDebounce, Load)
}

// NewWatcher watches dir and calls load after each debounced change.
func NewWatcher(dir string, debounce time.Duration, load func() (*Config, error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:  fw,
		dir:      dir,
		debounce: debounce,
		load:     load,
		changes:  make(chan *Config, 1),
		errs:     make(chan error, 1),
		ctx:      ctx,
		cancel:   cancel,
	}

	w.wg.Add(1)
	go w.processEvents()
	return w, nil
}

// Changes delivers each successfully reloaded configuration. Only the
// latest unread value is kept.
func (w *Watcher) Changes() <-chan *Config { return w.changes }

// Errors delivers reload and watch errors. Only the latest unread error is
// kept.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops watching. Both channels are closed once the loop exits.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	defer close(w.changes)
	defer close(w.errs)

	log := logging.For("config")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isConfigFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("config file event")
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			publish(w.errs, err)

		case <-timer.C:
			cfg, err := w.load()
			if err != nil {
				log.Warn().Err(err).Msg("config reload failed")
				publish(w.errs, err)
				continue
			}
			log.Info().Msg("config reloaded")
			publish(w.changes, cfg)
		}
	}
}

func isConfigFile(path string) bool {
	switch filepath.Base(path) {
	case "config.toml", "config.json":
		return true
	}
	return false
}

// publish replaces any unread value with v.
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
