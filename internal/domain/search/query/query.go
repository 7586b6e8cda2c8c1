// Package query defines the validated search input.
package query

import (
	"fmt"
	"strings"

	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/domain/search/mode"
)

// MaxLength is the maximum allowed query length.
const MaxLength = 4096

// Query is a validated, immutable search input.
// Construction is the precondition gate: a Query that exists is non-empty
// and trimmed, so no gateway is ever invoked for blank input.
type Query struct {
	text       string
	searchMode mode.Mode
}

// New validates and normalizes the search input.
// Text is trimmed; empty text is rejected. An empty mode defaults to semantic.
func New(text string, m mode.Mode) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	if len(text) > MaxLength {
		return Query{}, fmt.Errorf("query too long (max %d chars)", MaxLength)
	}
	if m == "" {
		m = mode.Semantic
	}
	if !m.IsValid() {
		return Query{}, fmt.Errorf("invalid search mode: %q", m)
	}
	return Query{text: text, searchMode: m}, nil
}

// Text returns the trimmed query text.
func (q *Query) Text() string { return q.text }

// Mode returns the search intent.
func (q *Query) Mode() mode.Mode { return q.searchMode }
