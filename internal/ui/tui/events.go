package tui

import "github.com/aimcourse/ragdemo/internal/domain/entities"

// EventKind identifies the type of terminal UI event.
type EventKind int

const (
	// EventLoading toggles the loading indicator.
	EventLoading EventKind = iota
	// EventResultsVisible shows or hides the results region.
	EventResultsVisible
	// EventRender replaces the displayed result.
	EventRender
	// EventAlert raises a notification.
	EventAlert
	// EventSlide paints a slide transition.
	EventSlide
	// EventSubmitDone marks the end of a submission.
	EventSubmitDone
)

// Event carries a UI update payload.
type Event struct {
	Kind    EventKind
	Visible bool
	Result  entities.ResultView
	Alert   entities.Alert
	Frame   entities.SlideFrame
	Err     error
}
