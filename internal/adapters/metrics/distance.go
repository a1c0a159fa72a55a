// Package metrics implements the vector similarity measures compared on the demo chart.
// Every metric returns a score where higher means more similar; distances are negated.
package metrics

import (
	"fmt"
	"math"
	"strings"
)

// Func scores two equal-length vectors.
type Func func(a, b []float64) float64

// Metric is a named similarity measure.
type Metric struct {
	Name string
	Fn   Func
}

// MinkowskiP is the order used by the minkowski metric.
const MinkowskiP = 3

// JaccardThreshold binarizes vectors for the jaccard metric.
const JaccardThreshold = 0.5

var registry = []Metric{
	{"cosine", Cosine},
	{"euclidean", Euclidean},
	{"manhattan", Manhattan},
	{"dot_product", DotProduct},
	{"minkowski", func(a, b []float64) float64 { return Minkowski(a, b, MinkowskiP) }},
	{"chebyshev", Chebyshev},
	{"correlation", Correlation},
	{"jaccard", func(a, b []float64) float64 { return Jaccard(a, b, JaccardThreshold) }},
}

// Names returns the metric names in display order.
func Names() []string {
	names := make([]string, len(registry))
	for i, m := range registry {
		names[i] = m.Name
	}
	return names
}

// Lookup returns the metric registered under name.
func Lookup(name string) (Metric, error) {
	for _, m := range registry {
		if m.Name == name {
			return m, nil
		}
	}
	return Metric{}, fmt.Errorf("unknown distance metric: %s. Available metrics: %s", name, strings.Join(Names(), ", "))
}

// Score is one metric result.
type Score struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// Score applies the metric after checking the vectors line up.
func (m Metric) Score(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}
	return m.Fn(a, b), nil
}

// Compare scores a and b with every metric, in display order.
func Compare(a, b []float64) ([]Score, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}
	scores := make([]Score, len(registry))
	for i, m := range registry {
		scores[i] = Score{Metric: m.Name, Value: m.Fn(a, b)}
	}
	return scores, nil
}

// Cosine is the cosine of the angle between a and b. Zero-norm vectors score 0.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Euclidean is the negated L2 distance.
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return -math.Sqrt(sum)
}

// Manhattan is the negated L1 distance.
func Manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return -sum
}

// DotProduct is the raw inner product; it grows with magnitude.
func DotProduct(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// Minkowski is the negated Lp distance of order p.
func Minkowski(a, b []float64, p float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), p)
	}
	return -math.Pow(sum, 1/p)
}

// Chebyshev is the negated largest component difference.
func Chebyshev(a, b []float64) float64 {
	var maxDiff float64
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return -maxDiff
}

// Correlation is the Pearson coefficient: cosine of the mean-centred vectors.
func Correlation(a, b []float64) float64 {
	return Cosine(center(a), center(b))
}

// Jaccard binarizes both vectors at threshold and compares the resulting sets.
// An empty union scores 0.
func Jaccard(a, b []float64, threshold float64) float64 {
	var inter, union int
	for i := range a {
		inA, inB := a[i] > threshold, b[i] > threshold
		if inA && inB {
			inter++
		}
		if inA || inB {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func center(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	var mean float64
	for _, x := range v {
		mean += x
	}
	mean /= float64(len(v))
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x - mean
	}
	return out
}
