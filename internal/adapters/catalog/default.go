// Package catalog provides the content catalog: built-in defaults, a YAML loader and a store.
package catalog

import (
	"github.com/aimcourse/ragdemo/internal/adapters/metrics"
	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

const (
	pmarcaSource = "PMarcaBlogs.txt"
	pmarcaAuthor = "Marc Andreessen"
	surveySource = "rag_survey_paper.pdf"
	surveyAuthor = "Gao et al."
)

// Default returns the built-in demo content.
func Default() *entities.Catalog {
	return &entities.Catalog{
		SampleQueries: []string{
			"What is the Michael Eisner Memorial Weak Executive Problem?",
			"What are the main components of a RAG system?",
			"What advice does Marc Andreessen give about hiring executives?",
			"How do RAG systems combine retrieval and generation?",
			"What are the different distance metrics for vector similarity?",
		},
		Rules: []entities.KeywordRule{
			{
				Name:     "eisner",
				Keywords: []string{"michael eisner"},
				CannedAnswer: entities.CannedAnswer{
					Answer: "The Michael Eisner Memorial Weak Executive Problem refers to a tendency where CEOs or startup founders hire weak executives in their own area of expertise to maintain control [1]. This phenomenon is named after Michael Eisner, former CEO of Disney, who struggled to effectively manage ABC after acquiring it despite his TV network expertise [1]. The problem occurs when leaders have difficulty letting go of the function that brought them success, resulting in hiring someone less capable so they can continue to be 'the man' in that area [1].",
					Sources: []entities.SourceCitation{
						cite("CEOs hiring weak executives in their area of expertise to maintain control", 0.94, pmarcaSource, pmarcaAuthor, 0, 45),
						cite("Michael Eisner's struggle with ABC management despite TV expertise", 0.87, pmarcaSource, pmarcaAuthor, 0, 46),
						cite("Leaders difficulty letting go of their original function", 0.82, pmarcaSource, pmarcaAuthor, 0, 47),
					},
				},
			},
			{
				Name:     "rag-components",
				Keywords: []string{"rag", "component"},
				CannedAnswer: entities.CannedAnswer{
					Answer: "A RAG (Retrieval-Augmented Generation) system consists of several key components [1][2]: First, the retrieval component that searches for relevant information from external databases [1]. Second, the generation component that processes and creates responses based on retrieved information [2]. Third, the augmentation techniques that enhance retrieval and generation capabilities [2]. These components work together through indexing, embedding, vector storage, semantic search, and response generation with language models [3].",
					Sources: []entities.SourceCitation{
						cite("RAG components: retrieval, generation, and augmentation mechanisms", 0.92, surveySource, surveyAuthor, 5, 12),
						cite("Indexing, embedding, and vector storage for document processing", 0.88, surveySource, surveyAuthor, 7, 18),
						cite("Semantic search and LLM integration for response generation", 0.85, surveySource, surveyAuthor, 9, 24),
					},
				},
			},
		},
		Fallback: entities.CannedAnswer{
			Answer: "Based on the documents in our system, here's what I found relevant to your query: RAG systems are designed to enhance language model capabilities by retrieving relevant information from external sources [1]. This approach combines the strengths of retrieval-based and generation-based methods [2]. The key advantage is providing accurate, up-to-date information while maintaining the fluency of language models [3].",
			Sources: []entities.SourceCitation{
				cite("RAG enhances LLMs by retrieving relevant external information", 0.78, surveySource, surveyAuthor, 1, 1),
				cite("Combination of retrieval and generation methods", 0.75, surveySource, surveyAuthor, 2, 3),
				cite("Providing accurate, up-to-date information with fluent generation", 0.72, surveySource, surveyAuthor, 3, 5),
			},
		},
		Slides: []entities.Slide{
			{Title: "What is RAG?", Body: []string{
				"Retrieval-Augmented Generation pairs a search step with a generation step.",
				"The model answers from retrieved passages instead of memory alone.",
			}},
			{Title: "Embeddings", Body: []string{
				"Documents are split into chunks and each chunk is embedded as a vector.",
				"Similar meaning lands close together in vector space.",
			}},
			{Title: "Distance Metrics", Body: []string{
				"Cosine, Euclidean, Manhattan, dot product and correlation rank chunks differently.",
				"The chart compares their scores on the same query.",
			}},
			{Title: "Metadata and Citations", Body: []string{
				"Every chunk keeps its source, author, page and chunk id.",
				"Answers cite the chunks they were built from.",
			}},
		},
		Chart: metrics.DefaultChart(),
	}
}

// cite builds a citation; page 0 means the source has no pages.
func cite(text string, score float64, source, author string, page, chunkID int) entities.SourceCitation {
	meta := entities.CitationMetadata{Source: source, Author: author, ChunkID: chunkID}
	if page > 0 {
		meta.Page = entities.PageOf(page)
	}
	return entities.SourceCitation{Text: text, Score: score, Metadata: meta}
}
