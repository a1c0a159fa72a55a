// Package tui hosts the query panel and slideshow in a Bubble Tea terminal program.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

// Options configures the terminal model.
type Options struct {
	NoColor bool
}

// Model renders the demo using Bubble Tea.
type Model struct {
	ctx     context.Context
	state   State
	input   textinput.Model
	spinner spinner.Model
	panel   *usecases.QueryPanel
	slides  *usecases.Slideshow
	catalog *entities.Catalog
	bridge  *Bridge
	width   int
	noColor bool
}

// NewModel wires a panel and slideshow that paint through bridge.
// The initial frame is read directly so the first render shows a slide.
func NewModel(ctx context.Context, panel *usecases.QueryPanel, slides *usecases.Slideshow, catalog *entities.Catalog, bridge *Bridge, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question about RAG..."
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	if !opts.NoColor {
		spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	}

	return Model{
		ctx:     ctx,
		state:   State{Frame: slides.Frame()},
		input:   input,
		spinner: spin,
		panel:   panel,
		slides:  slides,
		catalog: catalog,
		bridge:  bridge,
		noColor: opts.NoColor,
	}
}

// Init starts the cursor blink and waits for the first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.bridge.Events()))
}

// Update consumes key presses, bridge events and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.input.Width = max(typed.Width-4, 10)
		return m, nil
	case EventMsg:
		wasLoading := m.state.Loading
		m.state = Reduce(m.state, typed.Event)
		cmds := []tea.Cmd{waitForEvent(m.bridge.Events())}
		if m.state.Loading && !wasLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)
	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := key.String()
	switch name {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+n", "pgdown":
		m.slides.Next()
		return m, nil
	case "ctrl+p", "pgup":
		m.slides.Previous()
		return m, nil
	case "enter":
		if m.state.Submitting {
			return m, nil
		}
		m.panel.SetInput(m.input.Value())
		m.state.Submitting = true
		return m, m.submit(func(ctx context.Context) error { return m.panel.HandleKey(ctx, name) })
	}

	if i, ok := sampleKey(name); ok && i < len(m.panel.Samples()) {
		if m.state.Submitting {
			return m, nil
		}
		m.input.SetValue(m.panel.Samples()[i])
		m.state.Submitting = true
		return m, m.submit(func(ctx context.Context) error { return m.panel.SelectSample(ctx, i) })
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// submit runs fn off the UI loop. Its outcome arrives on the bridge after the panel's own events.
func (m Model) submit(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	bridge := m.bridge
	return func() tea.Msg {
		bridge.Done(fn(ctx))
		return nil
	}
}

// sampleKey maps f1..f9 to a 0-based sample index.
func sampleKey(name string) (int, bool) {
	if len(name) != 2 || !strings.HasPrefix(name, "f") {
		return 0, false
	}
	d := name[1]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}

// View renders the terminal UI.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.noColor),
		m.input.View(),
		renderSamples(m.panel.Samples(), m.noColor),
		renderStatus(m.state, m.spinner.View(), m.noColor),
		renderResult(m.state, m.noColor),
		renderChart(m.catalog.Chart, m.noColor),
		renderSlide(m.catalog.Slides, m.state.Frame, m.noColor),
		renderFooter(m.noColor),
	)
}

// EventMsg wraps a UI event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// waitForEvent blocks until a UI event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}
