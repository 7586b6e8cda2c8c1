// Package match invokes the store's native remote ranking functions.
package match

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arcadia-cloud/placedex/internal/db"
	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
)

// Default remote function names.
const (
	DefaultSemanticFn = "match_places_semantic"
	DefaultTextFn     = "match_places_text"
)

// Repo calls the store-side matching functions.
type Repo struct {
	caller     db.Caller
	semanticFn string
	textFn     string
}

// New creates a match repository with the default function names.
func New(caller db.Caller) *Repo {
	return &Repo{caller: caller, semanticFn: DefaultSemanticFn, textFn: DefaultTextFn}
}

// WithFunctions overrides the remote function names.
func (r *Repo) WithFunctions(semanticFn, textFn string) *Repo {
	if semanticFn != "" {
		r.semanticFn = semanticFn
	}
	if textFn != "" {
		r.textFn = textFn
	}
	return r
}

// Semantic runs the store's native semantic match. Rows arrive pre-ranked
// with a similarity per row; scores are clamped to [0, 1].
func (r *Repo) Semantic(ctx context.Context, q string, threshold float64, limit int) ([]result.Result, error) {
	body, err := r.caller.Call(ctx, r.semanticFn, map[string]any{
		"query_text":     q,
		"min_similarity": threshold,
		"match_count":    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("semantic match: %w: %w", domain.ErrStoreUnavailable, err)
	}

	rows, err := parseRows(body)
	if err != nil {
		return nil, fmt.Errorf("semantic match: %w", err)
	}

	out := make([]result.Result, len(rows))
	for i, row := range rows {
		out[i] = result.New(row.toCandidate(), domain.ClampScore(row.Similarity))
	}
	return out, nil
}

// Text runs the store's native text match and returns unscored candidates.
func (r *Repo) Text(ctx context.Context, q string, limit int) ([]domain.Candidate, error) {
	body, err := r.caller.Call(ctx, r.textFn, map[string]any{
		"query_text":  q,
		"match_count": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("text match: %w: %w", domain.ErrStoreUnavailable, err)
	}

	rows, err := parseRows(body)
	if err != nil {
		return nil, fmt.Errorf("text match: %w", err)
	}

	out := make([]domain.Candidate, len(rows))
	for i, row := range rows {
		out[i] = row.toCandidate()
	}
	return out, nil
}

func parseRows(body []byte) ([]row, error) {
	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return rows, nil
}
