package tui

import "github.com/aimcourse/ragdemo/internal/domain/entities"

// Bridge forwards panel and slideshow output to the Bubble Tea model.
// It implements ports.PanelView, ports.Notifier and ports.SlideView.
type Bridge struct {
	events chan Event
}

// NewBridge creates a bridge with a buffered event channel.
func NewBridge(buffer int) *Bridge {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bridge{events: make(chan Event, buffer)}
}

// Events is consumed by the model.
func (b *Bridge) Events() <-chan Event {
	return b.events
}

// SetLoading emits an EventLoading.
func (b *Bridge) SetLoading(visible bool) {
	b.events <- Event{Kind: EventLoading, Visible: visible}
}

// SetResultsVisible emits an EventResultsVisible.
func (b *Bridge) SetResultsVisible(visible bool) {
	b.events <- Event{Kind: EventResultsVisible, Visible: visible}
}

// Render emits the formatted result.
func (b *Bridge) Render(view entities.ResultView) {
	b.events <- Event{Kind: EventRender, Result: view}
}

// Alert emits an EventAlert.
func (b *Bridge) Alert(alert entities.Alert) {
	b.events <- Event{Kind: EventAlert, Alert: alert}
}

// ShowSlide emits the active slide frame.
func (b *Bridge) ShowSlide(frame entities.SlideFrame) {
	b.events <- Event{Kind: EventSlide, Frame: frame}
}

// Done reports that a submission returned. It follows every event the submission produced.
func (b *Bridge) Done(err error) {
	b.events <- Event{Kind: EventSubmitDone, Err: err}
}
