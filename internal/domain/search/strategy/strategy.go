// Package strategy defines the diagnostic tags for the retrieval strategies.
package strategy

// Strategy identifies which retrieval strategy produced a search outcome.
// The tag is diagnostic only and never affects ranking.
type Strategy string

const (
	// DirectCompletion asks the completion model to rank a bounded context directly.
	DirectCompletion Strategy = "direct_completion"
	// EmbeddingSimilarity scores stored embeddings against the embedded query.
	EmbeddingSimilarity Strategy = "embedding_similarity"
	// ServerSemantic delegates ranking to the store's native semantic match.
	ServerSemantic Strategy = "server_semantic"
	// TextMatch delegates to the store's native text match.
	TextMatch Strategy = "text_match"
	// AttributeScan is the last-resort substring scan over stored attributes.
	AttributeScan Strategy = "attribute_scan"
)
