package catalog

import (
	"sync"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

// Store implements ports.CatalogStore; safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	catalog *entities.Catalog
}

// NewStore creates a store holding initial, or the defaults when nil.
func NewStore(initial *entities.Catalog) *Store {
	if initial == nil {
		initial = Default()
	}
	return &Store{catalog: initial.Clone()}
}

// Snapshot returns a copy of the active catalog.
func (s *Store) Snapshot() *entities.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Clone()
}

// Replace swaps in a new catalog. Nil is ignored.
func (s *Store) Replace(c *entities.Catalog) {
	if c == nil {
		return
	}
	clone := c.Clone()
	s.mu.Lock()
	s.catalog = clone
	s.mu.Unlock()
}
