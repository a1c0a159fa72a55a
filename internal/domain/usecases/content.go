package usecases

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/aimcourse/ragdemo/internal/domain/ports"
)

// ContentUseCase loads the content file into the catalog store and keeps it fresh.
type ContentUseCase struct {
	loader ports.ContentLoader
	store  ports.CatalogStore
}

// NewContentUseCase creates a ContentUseCase with injected dependencies.
func NewContentUseCase(loader ports.ContentLoader, store ports.CatalogStore) *ContentUseCase {
	return &ContentUseCase{loader: loader, store: store}
}

// Load reads path and replaces the active catalog.
// On error the active catalog is left as it was.
func (uc *ContentUseCase) Load(ctx context.Context, path string) error {
	catalog, err := uc.loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("loading content %s: %w", path, err)
	}
	uc.store.Replace(catalog)
	log.Printf("[INFO] Content loaded from %s (%d rules, %d slides)", path, len(catalog.Rules), len(catalog.Slides))
	return nil
}

// Watch reloads path whenever the watcher reports it was created or modified.
// It blocks until ctx is done or the event channel closes.
func (uc *ContentUseCase) Watch(ctx context.Context, watcher ports.FileWatcher, path string) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving content path: %w", err)
	}
	events, err := watcher.Watch(ctx, filepath.Dir(target))
	if err != nil {
		return fmt.Errorf("watching content dir: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !samePath(event.Path, target) || event.Operation == ports.FileDeleted {
				continue
			}
			if err := uc.Load(ctx, target); err != nil {
				log.Printf("[WARN] Keeping previous content: %v", err)
			}
		}
	}
}

func samePath(a, b string) bool {
	abs, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	return filepath.Clean(abs) == filepath.Clean(b)
}
