package http

import (
	"sync"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

// pageView records what the panel and slideshow painted so the next page
// render can show it. It implements ports.PanelView, ports.Notifier and ports.SlideView.
type pageView struct {
	mu      sync.Mutex
	loading bool
	visible bool
	result  *entities.ResultView
	alerts  []entities.Alert
	frame   entities.SlideFrame
}

// SetLoading records the loading indicator state.
func (v *pageView) SetLoading(visible bool) {
	v.mu.Lock()
	v.loading = visible
	v.mu.Unlock()
}

// SetResultsVisible records whether the result region is shown.
func (v *pageView) SetResultsVisible(visible bool) {
	v.mu.Lock()
	v.visible = visible
	v.mu.Unlock()
}

// Render stores the formatted result for the next page.
func (v *pageView) Render(view entities.ResultView) {
	v.mu.Lock()
	v.result = &view
	v.mu.Unlock()
}

// Alert queues an alert for the next page render.
func (v *pageView) Alert(alert entities.Alert) {
	v.mu.Lock()
	v.alerts = append(v.alerts, alert)
	v.mu.Unlock()
}

// ShowSlide records the active slide frame.
func (v *pageView) ShowSlide(frame entities.SlideFrame) {
	v.mu.Lock()
	v.frame = frame
	v.mu.Unlock()
}

// panelState is a copy of the painted panel. Pending alerts are consumed.
type panelState struct {
	Loading bool
	Visible bool
	Result  *entities.ResultView
	Alerts  []entities.Alert
}

func (v *pageView) take() panelState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := panelState{
		Loading: v.loading,
		Visible: v.visible && v.result != nil,
		Result:  v.result,
		Alerts:  v.alerts,
	}
	v.alerts = nil
	return state
}

func (v *pageView) slideFrame() entities.SlideFrame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

// captureView collects a single API resolution.
type captureView struct {
	alerts []entities.Alert
}

func (captureView) SetLoading(bool)            {}
func (captureView) SetResultsVisible(bool)     {}
func (captureView) Render(entities.ResultView) {}

// Alert collects the alert for the JSON response.
func (v *captureView) Alert(alert entities.Alert) { v.alerts = append(v.alerts, alert) }
