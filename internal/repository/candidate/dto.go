package candidate

import (
	"encoding/json"
	"fmt"

	"github.com/arcadia-cloud/placedex/internal/domain"
)

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

// row mirrors one store record. All attributes are nullable.
type row struct {
	ID        flexID          `json:"id"`
	Name      *string         `json:"name"`
	Address   *string         `json:"address"`
	City      *string         `json:"city"`
	State     *string         `json:"state"`
	Phone     *string         `json:"phone"`
	Website   *string         `json:"website"`
	Latitude  *float64        `json:"latitude"`
	Longitude *float64        `json:"longitude"`
	Embedding json.RawMessage `json:"embedding"`
}

// parseRows converts raw store rows into validated candidates.
// A row that is not a JSON object at all is a store anomaly and fails the
// whole fetch; a malformed embedding inside a valid row degrades to nil.
func parseRows(rows []json.RawMessage, dimensions int) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0, len(rows))
	for i, raw := range rows {
		var r row
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("parse row %d: %w: %w", i, domain.ErrStoreUnavailable, err)
		}
		out = append(out, r.toCandidate(dimensions))
	}
	return out, nil
}

func (r *row) toCandidate(dimensions int) domain.Candidate {
	attrs := domain.CandidateAttrs{
		Name:    deref(r.Name),
		Address: deref(r.Address),
		City:    deref(r.City),
		State:   deref(r.State),
		Phone:   deref(r.Phone),
		Website: deref(r.Website),
	}
	if r.Latitude != nil {
		attrs.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		attrs.Longitude = *r.Longitude
	}
	return domain.NewCandidate(string(r.ID), attrs, parseEmbedding(r.Embedding, dimensions))
}

// parseEmbedding validates a stored embedding field. The column is never
// trusted: it may hold a JSON array, a stringified array, garbage, or the
// wrong dimensionality. Anything invalid yields nil, never an error; the
// record stays in play and scores 0.
func parseEmbedding(raw json.RawMessage, dimensions int) []float32 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var vec []float32
	if err := json.Unmarshal(raw, &vec); err == nil {
		if len(vec) != dimensions {
			return nil
		}
		return vec
	}

	// pgvector columns frequently surface as a stringified array: "[0.1,...]".
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(s), &vec); err == nil {
		if len(vec) != dimensions {
			return nil
		}
		return vec
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
