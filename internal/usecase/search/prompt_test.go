package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/arcadia-cloud/placedex/internal/domain"
)

func TestBuildRankPrompt(t *testing.T) {
	records := []domain.Candidate{
		domain.NewCandidate("p-1", domain.CandidateAttrs{Name: "Butt Karahi", City: "Lahore"}, nil),
	}

	prompt := buildRankPrompt("spicy food", records, 20)
	if !strings.Contains(prompt, "Query: spicy food") {
		t.Errorf("prompt missing query: %q", prompt)
	}
	if !strings.Contains(prompt, "id=p-1") || !strings.Contains(prompt, "name=Butt Karahi") {
		t.Errorf("prompt missing record line: %q", prompt)
	}
}

func TestParseRankedItems_PlainArray(t *testing.T) {
	items, err := parseRankedItems(`[{"id":"a","name":"X","relevance_score":0.9},{"id":7,"relevance_score":0.4}]`)
	if err != nil {
		t.Fatalf("parseRankedItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].ID != "a" || items[0].Relevance != 0.9 {
		t.Errorf("item[0] = %+v", items[0])
	}
	if items[1].ID != "7" {
		t.Errorf("numeric id = %q", items[1].ID)
	}
}

func TestParseRankedItems_FencedArray(t *testing.T) {
	raw := "Here are the results:\n```json\n[{\"id\":\"a\",\"relevance_score\":1}]\n```\n"
	items, err := parseRankedItems(raw)
	if err != nil {
		t.Fatalf("parseRankedItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Errorf("items = %+v", items)
	}
}

func TestParseRankedItems_Malformed(t *testing.T) {
	for _, raw := range []string{
		"I could not find any places, sorry!",
		`{"id":"a"}`,
		"[{broken json]",
	} {
		if _, err := parseRankedItems(raw); !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("parseRankedItems(%q) error = %v, want ErrMalformedResponse", raw, err)
		}
	}
}

func TestParseRankedItems_EmptyArrayIsValid(t *testing.T) {
	items, err := parseRankedItems("[]")
	if err != nil {
		t.Fatalf("parseRankedItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %+v, want empty", items)
	}
}
