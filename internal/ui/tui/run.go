package tui

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aimcourse/ragdemo/internal/domain/ports"
	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

// Run builds a panel and slideshow over the active catalog and runs the program until the user quits.
func Run(ctx context.Context, resolver ports.QueryResolver, store ports.CatalogStore, initialSlide int, out io.Writer, opts Options) error {
	catalog := store.Snapshot()
	bridge := NewBridge(0)
	slides, err := usecases.NewSlideshow(len(catalog.Slides), initialSlide, bridge)
	if err != nil {
		return err
	}
	panel := usecases.NewQueryPanel(resolver, bridge, bridge, catalog.SampleQueries)

	// Log lines would corrupt the screen.
	prev := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(prev)

	program := tea.NewProgram(
		NewModel(ctx, panel, slides, catalog, bridge, opts),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
