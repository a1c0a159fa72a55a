package metrics

import "github.com/aimcourse/ragdemo/internal/domain/entities"

// DefaultChart is the metric comparison shown next to the query panel.
func DefaultChart() entities.ChartDataset {
	return entities.ChartDataset{
		Title:  "Distance Metric Comparison on Same Query",
		Label:  "Similarity Score",
		Labels: []string{"Cosine", "Euclidean", "Manhattan", "Dot Product", "Correlation"},
		Values: []float64{0.94, 0.89, 0.85, 0.93, 0.91},
		Colors: []string{
			"rgba(37, 99, 235, 0.8)",
			"rgba(124, 58, 237, 0.8)",
			"rgba(16, 185, 129, 0.8)",
			"rgba(245, 158, 11, 0.8)",
			"rgba(239, 68, 68, 0.8)",
		},
		Max: 1,
	}
}

// Bar is one chart bar with its height as a fraction of the y axis.
type Bar struct {
	Label string
	Value float64
	Color string
	Ratio float64 // clamped to [0, 1]
}

// DefaultBarColor is used when the dataset has fewer colors than values.
const DefaultBarColor = "rgba(37, 99, 235, 0.8)"

// Bars lays the dataset out for rendering.
func Bars(ds entities.ChartDataset) []Bar {
	max := ds.Max
	if max <= 0 {
		max = 1
	}
	bars := make([]Bar, 0, len(ds.Values))
	for i, v := range ds.Values {
		bar := Bar{Value: v, Color: DefaultBarColor, Ratio: clamp(v/max, 0, 1)}
		if i < len(ds.Labels) {
			bar.Label = ds.Labels[i]
		}
		if i < len(ds.Colors) {
			bar.Color = ds.Colors[i]
		}
		bars = append(bars, bar)
	}
	return bars
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
