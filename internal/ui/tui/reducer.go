package tui

import (
	"errors"
	"log"

	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

// Reduce applies an event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventLoading:
		state.Loading = event.Visible
		if event.Visible {
			state.Alert = nil
		}
	case EventResultsVisible:
		state.ResultsVisible = event.Visible
	case EventRender:
		result := event.Result
		state.Result = &result
	case EventAlert:
		alert := event.Alert
		state.Alert = &alert
	case EventSlide:
		state.Frame = event.Frame
	case EventSubmitDone:
		state.Submitting = false
		state.Loading = false
		if event.Err != nil && !errors.Is(event.Err, usecases.ErrEmptyQuery) {
			log.Printf("[DEBUG] Submission ended: %v", event.Err)
		}
	}
	return state
}
