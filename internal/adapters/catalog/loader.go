package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

// YAMLLoader implements ports.ContentLoader for .yaml/.yml content files.
// Sections missing from the file keep the built-in defaults.
type YAMLLoader struct{}

// NewYAMLLoader creates a new content file loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load reads, merges and validates a content file.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*entities.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// SupportedExtensions returns file extensions this loader handles.
func (l *YAMLLoader) SupportedExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Supports reports whether path has a content file extension.
func (l *YAMLLoader) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range l.SupportedExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}

// Parse decodes YAML content over the defaults and validates the result.
func Parse(data []byte) (*entities.Catalog, error) {
	var file entities.Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	merged := merge(Default(), &file)
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// merge overlays non-empty sections of override onto base.
func merge(base, override *entities.Catalog) *entities.Catalog {
	if len(override.SampleQueries) > 0 {
		base.SampleQueries = override.SampleQueries
	}
	if len(override.Rules) > 0 {
		base.Rules = override.Rules
	}
	if override.Fallback.Answer != "" || len(override.Fallback.Sources) > 0 {
		base.Fallback = override.Fallback
	}
	if len(override.Slides) > 0 {
		base.Slides = override.Slides
	}
	if len(override.Chart.Values) > 0 {
		chart := override.Chart
		if chart.Max == 0 {
			chart.Max = 1
		}
		base.Chart = chart
	}
	return base
}

// Validate checks that the catalog can back the query panel and slideshow.
func Validate(c *entities.Catalog) error {
	var issues []string
	add := func(field, msg string) {
		issues = append(issues, field+": "+msg)
	}

	for i, rule := range c.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		if len(rule.Keywords) == 0 {
			add(field+".keywords", "is required")
		}
		validateAnswer(field, rule.CannedAnswer, add)
	}
	validateAnswer("fallback", c.Fallback, add)
	if len(c.Slides) == 0 {
		add("slides", "at least one slide is required")
	}
	if len(c.Chart.Labels) != len(c.Chart.Values) {
		add("chart", fmt.Sprintf("%d labels for %d values", len(c.Chart.Labels), len(c.Chart.Values)))
	}

	if len(issues) == 0 {
		return nil
	}
	return errors.New("invalid content: " + strings.Join(issues, "; "))
}

func validateAnswer(field string, answer entities.CannedAnswer, add func(field, msg string)) {
	if strings.TrimSpace(answer.Answer) == "" {
		add(field+".answer", "is required")
	}
	if len(answer.Sources) == 0 {
		add(field+".sources", "at least one source is required")
	}
	for i, src := range answer.Sources {
		if !src.ScoreInRange() {
			add(fmt.Sprintf("%s.sources[%d].score", field, i), fmt.Sprintf("%v is outside [0, 1]", src.Score))
		}
	}
}
