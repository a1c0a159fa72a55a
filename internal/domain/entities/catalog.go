package entities

import "strings"

// Catalog is the demo content: sample questions, canned answers, slides and chart.
type Catalog struct {
	SampleQueries []string      `yaml:"sample_queries"`
	Rules         []KeywordRule `yaml:"rules"`
	Fallback      CannedAnswer  `yaml:"fallback"`
	Slides        []Slide       `yaml:"slides"`
	Chart         ChartDataset  `yaml:"chart"`
}

// CannedAnswer is a fixed answer with its citations.
type CannedAnswer struct {
	Answer  string           `yaml:"answer"`
	Sources []SourceCitation `yaml:"sources"`
}

// KeywordRule selects a canned answer when every keyword occurs in the query.
// Matching is a case-insensitive substring test.
type KeywordRule struct {
	Name         string   `yaml:"name"`
	Keywords     []string `yaml:"keywords"`
	CannedAnswer `yaml:",inline"`
}

// Matches reports whether all keywords occur in query.
func (r KeywordRule) Matches(query string) bool {
	if len(r.Keywords) == 0 {
		return false
	}
	lower := strings.ToLower(query)
	for _, kw := range r.Keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}

// Answer picks the first matching rule in order, or the fallback.
func (c *Catalog) Answer(query string) CannedAnswer {
	for _, rule := range c.Rules {
		if rule.Matches(query) {
			return rule.CannedAnswer
		}
	}
	return c.Fallback
}

// Clone returns a deep copy so callers never share slices with a store.
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}
	out := &Catalog{
		SampleQueries: append([]string(nil), c.SampleQueries...),
		Fallback:      c.Fallback.clone(),
		Chart:         c.Chart,
	}
	out.Chart.Labels = append([]string(nil), c.Chart.Labels...)
	out.Chart.Values = append([]float64(nil), c.Chart.Values...)
	out.Chart.Colors = append([]string(nil), c.Chart.Colors...)
	for _, r := range c.Rules {
		out.Rules = append(out.Rules, KeywordRule{
			Name:         r.Name,
			Keywords:     append([]string(nil), r.Keywords...),
			CannedAnswer: r.CannedAnswer.clone(),
		})
	}
	for _, s := range c.Slides {
		s.Body = append([]string(nil), s.Body...)
		out.Slides = append(out.Slides, s)
	}
	return out
}

func (a CannedAnswer) clone() CannedAnswer {
	sources := make([]SourceCitation, len(a.Sources))
	for i, s := range a.Sources {
		if s.Metadata.Page != nil {
			s.Metadata.Page = PageOf(*s.Metadata.Page)
		}
		sources[i] = s
	}
	return CannedAnswer{Answer: a.Answer, Sources: sources}
}
