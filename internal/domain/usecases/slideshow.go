package usecases

import (
	"errors"
	"fmt"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
	"github.com/aimcourse/ragdemo/internal/domain/ports"
)

// ErrNoSlides is returned when a slideshow is created with no slides.
var ErrNoSlides = errors.New("slideshow needs at least one slide")

// Slideshow is a wrapping cursor over a fixed number of slides.
// Exactly one slide is active once NewSlideshow returns.
type Slideshow struct {
	state entities.SlideshowState
	view  ports.SlideView
}

// NewSlideshow creates the slideshow and shows the initial slide.
// An initial of 0 means the first slide.
func NewSlideshow(total, initial int, view ports.SlideView) (*Slideshow, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: total %d", ErrNoSlides, total)
	}
	if initial == 0 {
		initial = 1
	}
	s := &Slideshow{
		state: entities.SlideshowState{TotalSlides: total},
		view:  view,
	}
	s.GoTo(initial)
	return s, nil
}

// GoTo shows slide n, wrapping past either bound to the opposite one.
func (s *Slideshow) GoTo(n int) {
	switch {
	case n > s.state.TotalSlides:
		s.state.CurrentSlide = 1
	case n < 1:
		s.state.CurrentSlide = s.state.TotalSlides
	default:
		s.state.CurrentSlide = n
	}
	if s.view != nil {
		s.view.ShowSlide(s.Frame())
	}
}

// Next advances one slide.
func (s *Slideshow) Next() {
	s.GoTo(s.state.CurrentSlide + 1)
}

// Previous goes back one slide.
func (s *Slideshow) Previous() {
	s.GoTo(s.state.CurrentSlide - 1)
}

// Current returns the 1-based active slide.
func (s *Slideshow) Current() int { return s.state.CurrentSlide }

// Total returns the fixed slide count.
func (s *Slideshow) Total() int { return s.state.TotalSlides }

// Indicator returns "<current> / <total>".
func (s *Slideshow) Indicator() string {
	return fmt.Sprintf("%d / %d", s.state.CurrentSlide, s.state.TotalSlides)
}

// Frame is the snapshot painted by the view.
func (s *Slideshow) Frame() entities.SlideFrame {
	return entities.SlideFrame{
		Active:    s.state.CurrentSlide,
		Total:     s.state.TotalSlides,
		Indicator: s.Indicator(),
	}
}
