// Package filewatcher provides file system monitoring adapters.
// Adapter implementing ports.FileWatcher for content hot reload.
package filewatcher

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aimcourse/ragdemo/internal/domain/ports"
)

// DefaultDebounce coalesces bursts of writes from editors saving a file.
const DefaultDebounce = 100 * time.Millisecond

// FSNotifyWatcher implements ports.FileWatcher using fsnotify.
type FSNotifyWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
	debounce   time.Duration
}

// NewFSNotifyWatcher creates a watcher for content files.
// With no extensions it watches .yaml and .yml.
func NewFSNotifyWatcher(extensions []string, debounce time.Duration) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = []string{".yaml", ".yml"}
	}
	if debounce < 0 {
		debounce = 0
	}
	return &FSNotifyWatcher{
		watcher:    w,
		extensions: extensions,
		debounce:   debounce,
	}, nil
}

// Watch starts monitoring dir. Events for one path arriving within the
// debounce window are merged; the last operation wins.
func (w *FSNotifyWatcher) Watch(ctx context.Context, dir string) (<-chan ports.FileEvent, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	events := make(chan ports.FileEvent, 16)
	var (
		mu      sync.Mutex
		pending = map[string]ports.FileOperation{}
		timers  = map[string]*time.Timer{}
		wg      sync.WaitGroup
		done    = make(chan struct{})
	)
	emit := func(path string) {
		defer wg.Done()
		mu.Lock()
		op, ok := pending[path]
		delete(pending, path)
		delete(timers, path)
		mu.Unlock()
		if !ok {
			return
		}
		select {
		case events <- ports.FileEvent{Path: path, Operation: op}:
		case <-ctx.Done():
		case <-done:
		}
	}

	go func() {
		defer func() {
			close(done)
			mu.Lock()
			for path, t := range timers {
				if t.Stop() {
					wg.Done()
				}
				delete(timers, path)
			}
			mu.Unlock()
			wg.Wait()
			close(events)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isWatchedExtension(event.Name) {
					continue
				}
				op, ok := translate(event.Op)
				if !ok {
					continue
				}

				mu.Lock()
				pending[event.Name] = op
				if _, scheduled := timers[event.Name]; !scheduled {
					wg.Add(1)
					path := event.Name
					timers[path] = time.AfterFunc(w.debounce, func() { emit(path) })
				}
				mu.Unlock()
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] File watcher error: %v", err)
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

// translate maps fsnotify operations onto port operations.
// A rename removes the old name; the new name arrives as a create.
func translate(op fsnotify.Op) (ports.FileOperation, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ports.FileCreated, true
	case op.Has(fsnotify.Write):
		return ports.FileModified, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ports.FileDeleted, true
	default:
		return 0, false
	}
}

// isWatchedExtension checks if the file has a watched extension.
func (w *FSNotifyWatcher) isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
