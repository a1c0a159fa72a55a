// Package entities contains core business entities.
// These are plain domain objects with no knowledge of transport or rendering.
package entities

// QueryResult is the answer to one submitted query.
// Order of Sources is significant: it defines the displayed citation index.
type QueryResult struct {
	Query      string           `json:"query"`
	AnswerText string           `json:"response"`
	Sources    []SourceCitation `json:"sources"`
}

// SourceCitation is a retrieved passage shown to support an answer.
type SourceCitation struct {
	Text     string           `json:"text"`
	Score    float64          `json:"score"` // Similarity in [0, 1]
	Metadata CitationMetadata `json:"metadata"`
}

// ScoreInRange reports whether the similarity score lies in [0, 1].
func (s SourceCitation) ScoreInRange() bool {
	return s.Score >= 0 && s.Score <= 1
}

// CitationMetadata carries provenance for a citation.
type CitationMetadata struct {
	Source  string `json:"source" yaml:"source"`
	Author  string `json:"author" yaml:"author"`
	Page    *int   `json:"page,omitempty" yaml:"page,omitempty"` // nil when the source has no pages
	ChunkID int    `json:"chunk_id" yaml:"chunk_id"`
}

// HasPage reports whether the citation carries a page number.
func (m CitationMetadata) HasPage() bool {
	return m.Page != nil
}

// PageOf returns a pointer suitable for CitationMetadata.Page.
func PageOf(n int) *int {
	return &n
}

// ResultView is the render model for a QueryResult.
// It is built by a pure transform and handed to a view for painting.
type ResultView struct {
	Query     string
	Answer    string
	Citations []CitationRow
}

// CitationRow is one line of the citation list.
type CitationRow struct {
	Index   int // 1-based
	Text    string
	Source  string
	Author  string
	Page    string // empty when HasPage is false
	HasPage bool
	ChunkID int
	Score   string // e.g. "94.0%"
}

// SlideshowState is the cursor over a fixed slide sequence.
type SlideshowState struct {
	CurrentSlide int
	TotalSlides  int
}

// Slide is one page of the slideshow.
type Slide struct {
	Title string   `json:"title" yaml:"title"`
	Body  []string `json:"body" yaml:"body"`
	Image string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// SlideFrame is what a slide view paints after each transition.
type SlideFrame struct {
	Active    int    // 1-based position of the single active slide
	Total     int
	Indicator string // "<current> / <total>"
}

// ChartDataset is the metric comparison bar chart.
type ChartDataset struct {
	Title  string    `json:"title" yaml:"title"`
	Label  string    `json:"label" yaml:"label"`
	Labels []string  `json:"labels" yaml:"labels"`
	Values []float64 `json:"values" yaml:"values"`
	Colors []string  `json:"colors" yaml:"colors"`
	Max    float64   `json:"max" yaml:"max"`
}

// AlertKind classifies a user-visible notification.
type AlertKind int

const (
	AlertValidation AlertKind = iota
	AlertResolution
)

// String names the alert kind.
func (k AlertKind) String() string {
	switch k {
	case AlertValidation:
		return "validation"
	case AlertResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// Alert is a blocking notification shown to the user.
type Alert struct {
	Kind    AlertKind
	Message string
}
