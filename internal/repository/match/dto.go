package match

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

// row mirrors one remote function result row.
type row struct {
	ID         flexID   `json:"id"`
	Name       *string  `json:"name"`
	Address    *string  `json:"address"`
	City       *string  `json:"city"`
	State      *string  `json:"state"`
	Phone      *string  `json:"phone"`
	Website    *string  `json:"website"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Similarity float64  `json:"similarity"`
}

func (r *row) toCandidate() domain.Candidate {
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
	return domain.NewCandidate(string(r.ID), attrs, nil)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
