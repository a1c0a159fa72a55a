package usecases

import (
	"fmt"
	"strconv"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

// BuildResultView turns a result into its render model.
// Pure: no view or I/O involved.
func BuildResultView(result *entities.QueryResult) entities.ResultView {
	rows := make([]entities.CitationRow, len(result.Sources))
	for i, src := range result.Sources {
		row := entities.CitationRow{
			Index:   i + 1,
			Text:    src.Text,
			Source:  src.Metadata.Source,
			Author:  src.Metadata.Author,
			ChunkID: src.Metadata.ChunkID,
			Score:   FormatScore(src.Score),
		}
		if src.Metadata.HasPage() {
			row.HasPage = true
			row.Page = strconv.Itoa(*src.Metadata.Page)
		}
		rows[i] = row
	}
	return entities.ResultView{
		Query:     result.Query,
		Answer:    result.AnswerText,
		Citations: rows,
	}
}

// FormatScore renders a [0, 1] score as a percentage with one decimal, e.g. 0.94 -> "94.0%".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// FormatCitationLine renders a row as a single plain-text line.
func FormatCitationLine(row entities.CitationRow) string {
	line := fmt.Sprintf("[%d] %s | Source: %s | Author: %s", row.Index, row.Text, row.Source, row.Author)
	if row.HasPage {
		line += " | Page: " + row.Page
	}
	return line + fmt.Sprintf(" | Chunk: %d | %s", row.ChunkID, row.Score)
}
