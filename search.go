package placedex

import (
	"context"
	"fmt"

	"github.com/arcadia-cloud/placedex/internal/domain/search/mode"
	"github.com/arcadia-cloud/placedex/internal/domain/search/query"
	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
)

// SearchMode selects the strategy chain.
type SearchMode string

const (
	// ModeSemantic runs the full AI-assisted chain. This is the default.
	ModeSemantic SearchMode = "semantic"
	// ModeLiteral runs only the literal tiers, never touching the AI provider.
	ModeLiteral SearchMode = "literal"
)

// SearchOptions configures a search query.
type SearchOptions struct {
	Mode SearchMode
}

// Place is one venue record.
type Place struct {
	ID        string
	Name      string
	Address   string
	City      string
	State     string
	Phone     string
	Website   string
	Latitude  float64
	Longitude float64
}

// SearchResult is one ranked place.
type SearchResult struct {
	Place Place
	Score float64
}

// SearchOutcome carries the ranked results and which strategy produced them.
type SearchOutcome struct {
	SearchID string
	Strategy string
	Results  []SearchResult
}

// HealthReport aggregates component health.
type HealthReport struct {
	Status string
	Checks map[string]string
}

// Search runs the strategy chain for one query.
func (c *Client) Search(ctx context.Context, text string, opts *SearchOptions) (*SearchOutcome, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	q, err := query.New(text, mode.Mode(opts.Mode))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromOutcome(out), nil
}

// Health runs component health checks.
func (c *Client) Health(ctx context.Context) HealthReport {
	report := c.healthSvc.Check(ctx)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthReport{Status: string(report.Status), Checks: checks}
}

func fromOutcome(out result.Outcome) *SearchOutcome {
	results := out.Results()
	items := make([]SearchResult, len(results))
	for i := range results {
		c := results[i].Candidate()
		attrs := c.Attrs()
		items[i] = SearchResult{
			Place: Place{
				ID:        c.ID(),
				Name:      attrs.Name,
				Address:   attrs.Address,
				City:      attrs.City,
				State:     attrs.State,
				Phone:     attrs.Phone,
				Website:   attrs.Website,
				Latitude:  attrs.Latitude,
				Longitude: attrs.Longitude,
			},
			Score: results[i].Score(),
		}
	}
	return &SearchOutcome{
		SearchID: out.SearchID(),
		Strategy: string(out.Strategy()),
		Results:  items,
	}
}
