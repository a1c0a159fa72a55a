package tui

import "github.com/aimcourse/ragdemo/internal/domain/entities"

// State is everything the view paints.
type State struct {
	Submitting     bool
	Loading        bool
	ResultsVisible bool
	Result         *entities.ResultView
	Alert          *entities.Alert
	Frame          entities.SlideFrame
}
