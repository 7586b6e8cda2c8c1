package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arcadia-cloud/placedex/internal/domain"
)

// rankSystemPrompt instructs the completion model to act as a ranker and to
// reply with machine-parseable JSON only.
const rankSystemPrompt = `You rank places against a user query. ` +
	`You receive a numbered list of places and a query. ` +
	`Reply with a JSON array only, no prose, no markdown fences. ` +
	`Each element: {"id": "<place id>", "name": "<name>", "city": "<city>", ` +
	`"relevance_score": <number between 0 and 1>}. ` +
	`Include only relevant places, most relevant first.`

// buildRankPrompt renders the query and the candidate context for the model.
func buildRankPrompt(queryText string, records []domain.Candidate, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n", queryText)
	fmt.Fprintf(&b, "Return at most %d places.\n\nPlaces:\n", limit)
	for _, c := range records {
		attrs := c.Attrs()
		fmt.Fprintf(&b, "id=%s | name=%s | address=%s | city=%s | state=%s\n",
			c.ID(), attrs.Name, attrs.Address, attrs.City, attrs.State)
	}
	return b.String()
}

// flexID accepts either a JSON string or number identifier.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// rankedItem is one element of the model's structured reply.
type rankedItem struct {
	ID        flexID  `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Relevance float64 `json:"relevance_score"`
}

// parseRankedItems parses the model reply into typed items.
// Models wrap JSON in fences or prose despite instructions, so the outermost
// array is extracted first. Any parse failure surfaces as ErrMalformedResponse
// so callers can match it.
func parseRankedItems(raw string) ([]rankedItem, error) {
	body, err := extractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	var items []rankedItem
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return items, nil
}

// extractJSONArray returns the outermost [...] span of s.
func extractJSONArray(s string) (string, error) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON array in response")
	}
	return s[start : end+1], nil
}
