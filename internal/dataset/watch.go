// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package dataset

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the dataset whenever the source file changes, until ctx is
// done. The parent directory is watched because editors and exporters often
// replace the file instead of writing it in place.
func (m *Manager) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return rdferr.Wrap(err, rdferr.CodeDatasetWatchFailure, "creating watcher")
	}
	defer func() { _ = fsw.Close() }()

	target, err := filepath.Abs(m.cfg.Path)
	if err != nil {
		return rdferr.Wrap(err, rdferr.CodeDatasetWatchFailure, "resolving source path", rdferr.FieldPath(m.cfg.Path))
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return rdferr.Wrap(err, rdferr.CodeDatasetWatchFailure, "watching source directory", rdferr.FieldPath(target))
	}
	m.logger.Info("watching source for changes", "path", target, "debounce", debounce)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target) {
				continue
			}
			m.logger.Debug("source change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			m.logger.Error("watcher error", "error", err)

		case <-timer.C:
			if err := m.Load(ctx); err != nil {
				m.logger.Error("reload failed; keeping previous snapshot", "path", target, "error", err)
				continue
			}
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
