// Package usecases - query.go drives the query panel: validate, resolve, render.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
	"github.com/aimcourse/ragdemo/internal/domain/ports"
)

// User-facing alert texts.
const (
	MsgEmptyQuery      = "Please enter a question!"
	MsgResolutionError = "Error processing query. Please try again."
)

var (
	// ErrEmptyQuery is returned when the trimmed input is empty.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrUnknownSample is returned for a sample index out of range.
	ErrUnknownSample = errors.New("unknown sample query")

	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("query already in progress")

	errNoSources = errors.New("result has no sources")
)

// ResolutionError wraps any failure of the resolver.
type ResolutionError struct {
	Query string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %q: %v", e.Query, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// QueryPanel owns the query input and the result region.
type QueryPanel struct {
	resolver ports.QueryResolver
	view     ports.PanelView
	notifier ports.Notifier
	samples  []string

	mu      sync.Mutex
	input   string
	pending bool
	result  *entities.QueryResult
}

// NewQueryPanel creates a QueryPanel with injected dependencies.
func NewQueryPanel(
	resolver ports.QueryResolver,
	view ports.PanelView,
	notifier ports.Notifier,
	samples []string,
) *QueryPanel {
	return &QueryPanel{
		resolver: resolver,
		view:     view,
		notifier: notifier,
		samples:  append([]string(nil), samples...),
	}
}

// SetInput replaces the current input text.
func (p *QueryPanel) SetInput(raw string) {
	p.mu.Lock()
	p.input = raw
	p.mu.Unlock()
}

// Input returns the current input text.
func (p *QueryPanel) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// Samples returns the sample query shortcuts.
func (p *QueryPanel) Samples() []string {
	return append([]string(nil), p.samples...)
}

// Result returns the last rendered result, or nil.
func (p *QueryPanel) Result() *entities.QueryResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Pending reports whether a submission is in flight.
func (p *QueryPanel) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// HandleKey maps a key press in the input to an action.
// Only "enter" does anything: it submits.
func (p *QueryPanel) HandleKey(ctx context.Context, key string) error {
	if key != "enter" {
		return nil
	}
	return p.SubmitQuery(ctx)
}

// SelectSample sets sample i as the input and submits it.
func (p *QueryPanel) SelectSample(ctx context.Context, i int) error {
	if i < 0 || i >= len(p.samples) {
		return fmt.Errorf("%w: %d", ErrUnknownSample, i)
	}
	p.SetInput(p.samples[i])
	return p.SubmitQuery(ctx)
}

// SubmitQuery validates the current input, resolves it and renders the result.
// The loading indicator is cleared on every exit path.
func (p *QueryPanel) SubmitQuery(ctx context.Context) error {
	query := strings.TrimSpace(p.Input())
	if query == "" {
		p.notifier.Alert(entities.Alert{Kind: entities.AlertValidation, Message: MsgEmptyQuery})
		return ErrEmptyQuery
	}

	p.mu.Lock()
	if p.pending {
		p.mu.Unlock()
		return ErrBusy
	}
	p.pending = true
	p.mu.Unlock()

	p.view.SetLoading(true)
	p.view.SetResultsVisible(false)
	defer func() {
		p.view.SetLoading(false)
		p.mu.Lock()
		p.pending = false
		p.mu.Unlock()
	}()

	result, err := p.resolve(ctx, query)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		p.notifier.Alert(entities.Alert{Kind: entities.AlertResolution, Message: MsgResolutionError})
		return err
	}

	p.view.Render(BuildResultView(result))
	p.view.SetResultsVisible(true)

	p.mu.Lock()
	p.result = result
	p.mu.Unlock()
	return nil
}

// resolve calls the resolver and converts failures, panics included, into a ResolutionError.
func (p *QueryPanel) resolve(ctx context.Context, query string) (result *entities.QueryResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ResolutionError{Query: query, Err: fmt.Errorf("resolver panic: %v", r)}
		}
	}()

	result, err = p.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, &ResolutionError{Query: query, Err: err}
	}
	if result == nil || len(result.Sources) == 0 {
		return nil, &ResolutionError{Query: query, Err: errNoSources}
	}
	if result.Query == "" {
		result.Query = query
	}
	return result, nil
}
