package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aimcourse/ragdemo/internal/adapters/metrics"
	"github.com/aimcourse/ragdemo/internal/domain/entities"
	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

const chartBarWidth = 30

func renderHeader(noColor bool) string {
	return stylize("Embeddings and RAG", noColor, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")))
}

func renderSamples(samples []string, noColor bool) string {
	if len(samples) == 0 {
		return ""
	}
	lines := make([]string, 0, len(samples))
	for i, q := range samples {
		if i >= 9 {
			break
		}
		lines = append(lines, fmt.Sprintf("F%d  %s", i+1, q))
	}
	return stylize(strings.Join(lines, "\n"), noColor, lipgloss.NewStyle().Foreground(lipgloss.Color("242")))
}

func renderStatus(state State, spin string, noColor bool) string {
	switch {
	case state.Loading:
		return spin + " Searching documents..."
	case state.Alert != nil:
		color := lipgloss.Color("196")
		if state.Alert.Kind == entities.AlertValidation {
			color = lipgloss.Color("214")
		}
		return stylize(state.Alert.Message, noColor, lipgloss.NewStyle().Foreground(color))
	}
	return ""
}

func renderResult(state State, noColor bool) string {
	if !state.ResultsVisible || state.Result == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(stylize("Answer", noColor, lipgloss.NewStyle().Bold(true)))
	b.WriteString("\n")
	b.WriteString(state.Result.Answer)
	b.WriteString("\n\n")
	b.WriteString(stylize("Sources", noColor, lipgloss.NewStyle().Bold(true)))
	for _, row := range state.Result.Citations {
		b.WriteString("\n")
		b.WriteString(stylize(usecases.FormatCitationLine(row), noColor, lipgloss.NewStyle().Foreground(lipgloss.Color("244"))))
	}
	return b.String()
}

func renderChart(ds entities.ChartDataset, noColor bool) string {
	bars := metrics.Bars(ds)
	if len(bars) == 0 {
		return ""
	}
	labelWidth := 0
	for _, bar := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
	}
	lines := []string{stylize(ds.Title, noColor, lipgloss.NewStyle().Bold(true))}
	for _, bar := range bars {
		filled := int(bar.Ratio*chartBarWidth + 0.5)
		block := strings.Repeat("█", filled) + strings.Repeat("░", chartBarWidth-filled)
		if !noColor {
			block = lipgloss.NewStyle().Foreground(lipgloss.Color(barColor(bar.Color))).Render(block)
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %.2f", labelWidth, bar.Label, block, bar.Value))
	}
	return strings.Join(lines, "\n")
}

// barColor maps a CSS rgba() color to a hex value lipgloss understands.
func barColor(css string) string {
	var r, g, b int
	var a float64
	if _, err := fmt.Sscanf(css, "rgba(%d, %d, %d, %f)", &r, &g, &b, &a); err != nil {
		return "33"
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func renderSlide(slides []entities.Slide, frame entities.SlideFrame, noColor bool) string {
	if frame.Active < 1 || frame.Active > len(slides) {
		return ""
	}
	slide := slides[frame.Active-1]
	body := stylize(slide.Title, noColor, lipgloss.NewStyle().Bold(true)) + "\n" + strings.Join(slide.Body, "\n")
	box := lipgloss.NewStyle().Padding(0, 1)
	if !noColor {
		box = box.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))
	}
	return box.Render(body) + "\n" + frame.Indicator
}

func renderFooter(noColor bool) string {
	return stylize("enter ask · F1-F9 samples · ctrl+n/ctrl+p slides · esc quit", noColor, lipgloss.NewStyle().Foreground(lipgloss.Color("240")))
}

// stylize applies optional styling.
func stylize(text string, noColor bool, style lipgloss.Style) string {
	if noColor {
		return text
	}
	return style.Render(text)
}

// RenderPlain writes the chart and every slide without terminal control codes.
// Used when stdout is not a terminal.
func RenderPlain(w io.Writer, catalog *entities.Catalog) error {
	var b strings.Builder
	b.WriteString(renderChart(catalog.Chart, true))
	b.WriteString("\n")
	for i, slide := range catalog.Slides {
		fmt.Fprintf(&b, "\n[%d / %d] %s\n", i+1, len(catalog.Slides), slide.Title)
		for _, line := range slide.Body {
			b.WriteString("  " + line + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
