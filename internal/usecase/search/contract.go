package search

import (
	"context"

	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
)

// CandidateReader defines the candidate store contract for search.
type CandidateReader interface {
	// Context fetches lightweight records for prompt context (no embeddings).
	Context(ctx context.Context, limit int) ([]domain.Candidate, error)

	// WithEmbeddings fetches records carrying an embedding, pre-filtered
	// server-side. Zero rows means the corpus is unprepared for similarity.
	WithEmbeddings(ctx context.Context) ([]domain.Candidate, error)

	// ScanAttributes is the last-resort substring OR-match over attributes.
	ScanAttributes(ctx context.Context, q string, limit int) ([]domain.Candidate, error)
}

// Matcher defines the store's native remote ranking contract.
type Matcher interface {
	Semantic(ctx context.Context, q string, threshold float64, limit int) ([]result.Result, error)
	Text(ctx context.Context, q string, limit int) ([]domain.Candidate, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Completer produces text from a prompt pair; the service owns parsing.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
