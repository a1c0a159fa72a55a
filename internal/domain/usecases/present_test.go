package usecases

import (
	"testing"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

func TestFormatScore(t *testing.T) {
	cases := map[float64]string{
		0.94:  "94.0%",
		0.875: "87.5%",
		1:     "100.0%",
		0:     "0.0%",
		0.72:  "72.0%",
	}
	for score, want := range cases {
		if got := FormatScore(score); got != want {
			t.Errorf("FormatScore(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestBuildResultView_RowsFollowSourceOrder(t *testing.T) {
	result := &entities.QueryResult{
		Query:      "q",
		AnswerText: "a [1][2]",
		Sources: []entities.SourceCitation{
			{Text: "one", Score: 0.94, Metadata: entities.CitationMetadata{Source: "PMarcaBlogs.txt", Author: "Marc Andreessen", ChunkID: 45}},
			{Text: "two", Score: 0.88, Metadata: entities.CitationMetadata{Source: "rag_survey_paper.pdf", Author: "Gao et al.", Page: entities.PageOf(7), ChunkID: 18}},
		},
	}

	view := BuildResultView(result)

	if view.Answer != "a [1][2]" || view.Query != "q" {
		t.Errorf("unexpected header: %+v", view)
	}
	if len(view.Citations) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(view.Citations))
	}
	first, second := view.Citations[0], view.Citations[1]
	if first.Index != 1 || first.Text != "one" || first.Score != "94.0%" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.HasPage || first.Page != "" {
		t.Error("first row should have no page")
	}
	if second.Index != 2 || !second.HasPage || second.Page != "7" || second.ChunkID != 18 {
		t.Errorf("unexpected second row: %+v", second)
	}
}

func TestFormatCitationLine_OmitsAbsentPage(t *testing.T) {
	row := entities.CitationRow{Index: 1, Text: "t", Source: "s", Author: "a", ChunkID: 4, Score: "94.0%"}
	want := "[1] t | Source: s | Author: a | Chunk: 4 | 94.0%"
	if got := FormatCitationLine(row); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	row.HasPage, row.Page = true, "3"
	want = "[1] t | Source: s | Author: a | Page: 3 | Chunk: 4 | 94.0%"
	if got := FormatCitationLine(row); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
