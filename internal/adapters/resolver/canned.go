// Package resolver provides QueryResolver adapters.
// LocalCannedResolver answers from the content catalog; RemoteHTTPResolver calls the RAG endpoint.
package resolver

import (
	"context"
	"log"
	"time"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
	"github.com/aimcourse/ragdemo/internal/domain/ports"
)

// DefaultDelay is the artificial latency of the local resolver.
const DefaultDelay = 1500 * time.Millisecond

// LocalCannedResolver implements ports.QueryResolver with keyword-matched canned answers.
type LocalCannedResolver struct {
	store ports.CatalogStore
	delay time.Duration
}

// NewLocalCannedResolver creates a resolver reading rules from store.
// A negative delay is treated as none.
func NewLocalCannedResolver(store ports.CatalogStore, delay time.Duration) *LocalCannedResolver {
	if delay < 0 {
		delay = 0
	}
	return &LocalCannedResolver{store: store, delay: delay}
}

// Resolve waits for the artificial delay, then returns the first matching canned answer.
func (r *LocalCannedResolver) Resolve(ctx context.Context, query string) (*entities.QueryResult, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	answer := r.store.Snapshot().Answer(query)
	log.Printf("[DEBUG] Canned answer for %q with %d sources", query, len(answer.Sources))
	return &entities.QueryResult{
		Query:      query,
		AnswerText: answer.Answer,
		Sources:    answer.Sources,
	}, nil
}
