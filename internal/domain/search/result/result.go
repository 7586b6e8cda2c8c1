// Package result defines scored search hits and the final search outcome.
package result

import (
	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/domain/search/strategy"
)

// Result is a single scored search hit.
// The score is always defined, on the canonical [0, 1] scale.
type Result struct {
	candidate domain.Candidate
	score     float64
}

// New creates a scored result.
func New(candidate domain.Candidate, score float64) Result {
	return Result{candidate: candidate, score: score}
}

// Candidate returns the underlying place record.
func (r *Result) Candidate() domain.Candidate { return r.candidate }

// Score returns the relevance score in [0, 1].
func (r *Result) Score() float64 { return r.score }

// Outcome is the result of running the full fallback chain: the ranked,
// bounded hit list plus diagnostics about which strategy produced it.
type Outcome struct {
	searchID string
	strat    strategy.Strategy
	results  []Result
}

// NewOutcome creates a search outcome.
func NewOutcome(searchID string, strat strategy.Strategy, results []Result) Outcome {
	return Outcome{searchID: searchID, strat: strat, results: results}
}

// SearchID returns the per-search diagnostic identifier.
func (o *Outcome) SearchID() string { return o.searchID }

// Strategy returns the strategy that produced the results.
func (o *Outcome) Strategy() strategy.Strategy { return o.strat }

// Results returns the ordered, capped hit list.
func (o *Outcome) Results() []Result { return o.results }
