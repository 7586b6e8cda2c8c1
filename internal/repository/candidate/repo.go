// Package candidate reads place records from the external store.
package candidate

import (
	"context"
	"fmt"
	"strings"

	"github.com/arcadia-cloud/placedex/internal/db"
	"github.com/arcadia-cloud/placedex/internal/domain"
)

// contextColumns are the lightweight display attributes, no embeddings.
var contextColumns = []string{
	"id", "name", "address", "city", "state",
	"phone", "website", "latitude", "longitude",
}

// scanColumns are the attribute fields matched by ScanAttributes.
var scanColumns = []string{"name", "city", "address", "state"}

// Repo fetches candidate records. Every row crosses a validated parse
// boundary; no raw payload reaches the ranking logic.
type Repo struct {
	store      db.Selector
	table      string
	dimensions int
}

// New creates a candidate repository reading from the given table.
func New(store db.Selector, table string, dimensions int) *Repo {
	if dimensions <= 0 {
		dimensions = domain.DefaultVectorConfig().Dimensions
	}
	return &Repo{store: store, table: table, dimensions: dimensions}
}

// Context fetches up to limit lightweight records for prompt context.
func (r *Repo) Context(ctx context.Context, limit int) ([]domain.Candidate, error) {
	rows, err := r.store.Select(ctx, &db.SelectQuery{
		Table:   r.table,
		Columns: contextColumns,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("select context: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return parseRows(rows, r.dimensions)
}

// WithEmbeddings fetches all records carrying an embedding. The null-embedding
// filter is applied server-side; zero returned rows therefore means the corpus
// is unprepared for similarity search, which callers treat as a distinct
// condition from "query matched nothing".
func (r *Repo) WithEmbeddings(ctx context.Context) ([]domain.Candidate, error) {
	rows, err := r.store.Select(ctx, &db.SelectQuery{
		Table:   r.table,
		Columns: append(append([]string{}, contextColumns...), "embedding"),
		Where:   []db.Condition{{Column: "embedding", Op: "not.is", Value: "null"}},
	})
	if err != nil {
		return nil, fmt.Errorf("select with embeddings: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return parseRows(rows, r.dimensions)
}

// ScanAttributes fetches records whose name, city, address, or state contains
// the query, case-insensitively. Deepest fallback: no AI dependency.
func (r *Repo) ScanAttributes(ctx context.Context, q string, limit int) ([]domain.Candidate, error) {
	term := "*" + sanitizeTerm(q) + "*"
	anyOf := make([]db.Condition, len(scanColumns))
	for i, col := range scanColumns {
		anyOf[i] = db.Condition{Column: col, Op: "ilike", Value: term}
	}

	rows, err := r.store.Select(ctx, &db.SelectQuery{
		Table:   r.table,
		Columns: contextColumns,
		AnyOf:   anyOf,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("scan attributes: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return parseRows(rows, r.dimensions)
}

// sanitizeTerm strips characters that delimit the or=(...) filter syntax.
func sanitizeTerm(q string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '(', ')':
			return ' '
		default:
			return r
		}
	}, q)
}
