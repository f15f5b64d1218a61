// Package watch observes the master-sources root for modifications made
// by other processes. Region documents are shared between concurrently
// running tools; the watcher gives an operator visibility into external
// writes without polling.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/j-boom/source-manager/internal/core/domain"
	"github.com/j-boom/source-manager/internal/logger"
)

// Event is one observed change to a region document.
type Event struct {
	// Region is the region owning the modified document.
	Region string

	// Path is the modified file.
	Path string

	// Op describes the change (write, create, remove, ...).
	Op string
}

// Watcher reports changes to region documents under one root.
type Watcher struct {
	fsw    *fsnotify.Watcher
	byFile map[string]string
	events chan Event
}

// NewWatcher watches the master-sources root. Only files named in the
// region table produce events; temp and lock files are ignored.
func NewWatcher(root string, regions []domain.Region) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", root, err)
	}

	byFile := make(map[string]string, len(regions))
	for _, r := range regions {
		byFile[r.SourceFile] = r.Name
	}

	return &Watcher{
		fsw:    fsw,
		byFile: byFile,
		events: make(chan Event, 16),
	}, nil
}

// Events returns the channel of observed region document changes.
// It is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run forwards filesystem events until the context is cancelled or the
// underlying watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			region, tracked := w.byFile[name]
			if !tracked {
				continue
			}
			out := Event{
				Region: region,
				Path:   ev.Name,
				Op:     strings.ToLower(ev.Op.String()),
			}
			select {
			case w.events <- out:
			case <-ctx.Done():
				return ctx.Err()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
