// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions; adapters and front-ends implement them.
package ports

import (
	"context"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

// QueryResolver turns a query into a result.
// Implementations: a local canned resolver and a remote HTTP resolver.
type QueryResolver interface {
	// Resolve answers a trimmed, non-empty query. It may block.
	Resolve(ctx context.Context, query string) (*entities.QueryResult, error)
}

// PanelView is the display region owned by the query panel.
type PanelView interface {
	// SetLoading shows or hides the loading indicator.
	SetLoading(visible bool)

	// SetResultsVisible shows or hides the results region without clearing it.
	SetResultsVisible(visible bool)

	// Render replaces the answer and citation list.
	Render(view entities.ResultView)
}

// Notifier surfaces blocking alerts to the user.
type Notifier interface {
	Alert(alert entities.Alert)
}

// SlideView paints the slideshow after every transition.
type SlideView interface {
	ShowSlide(frame entities.SlideFrame)
}

// ContentLoader reads a content catalog from a file.
type ContentLoader interface {
	// Load reads and validates the content file at path.
	Load(ctx context.Context, path string) (*entities.Catalog, error)
}

// CatalogStore holds the active content catalog.
type CatalogStore interface {
	// Snapshot returns a copy of the active catalog.
	Snapshot() *entities.Catalog

	// Replace swaps in a new catalog.
	Replace(catalog *entities.Catalog)
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
