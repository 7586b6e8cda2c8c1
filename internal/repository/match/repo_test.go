package match

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/arcadia-cloud/placedex/internal/domain"
)

// --- Mocks ---

type mockCaller struct {
	body     []byte
	err      error
	lastFn   string
	lastArgs map[string]any
}

func (m *mockCaller) Call(_ context.Context, fn string, args map[string]any) ([]byte, error) {
	m.lastFn = fn
	m.lastArgs = args
	return m.body, m.err
}

// --- Tests ---

func TestSemantic_ParsesAndClamps(t *testing.T) {
	caller := &mockCaller{body: []byte(
		`[{"id":"a","name":"Haveli","similarity":0.92},
		  {"id":7,"name":"Monal","similarity":1.4},
		  {"id":"c","similarity":-0.2}]`,
	)}
	repo := New(caller)

	results, err := repo.Semantic(context.Background(), "rooftop dinner", 0.5, 20)
	if err != nil {
		t.Fatalf("Semantic: %v", err)
	}
	if caller.lastFn != DefaultSemanticFn {
		t.Errorf("fn = %q", caller.lastFn)
	}
	if caller.lastArgs["min_similarity"] != 0.5 || caller.lastArgs["match_count"] != 20 {
		t.Errorf("args = %v", caller.lastArgs)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Score() != 0.92 {
		t.Errorf("score[0] = %f", results[0].Score())
	}
	if results[1].Score() != 1 {
		t.Errorf("score[1] = %f, want clamped to 1", results[1].Score())
	}
	c := results[1].Candidate()
	if c.ID() != "7" {
		t.Errorf("numeric id = %q", c.ID())
	}
	if results[2].Score() != 0 {
		t.Errorf("score[2] = %f, want clamped to 0", results[2].Score())
	}
}

func TestText_ReturnsCandidates(t *testing.T) {
	caller := &mockCaller{body: []byte(`[{"id":"a","name":"Bundu Khan","city":"Lahore"}]`)}
	repo := New(caller).WithFunctions("", "find_places_text")

	cands, err := repo.Text(context.Background(), "Lahore", 20)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if caller.lastFn != "find_places_text" {
		t.Errorf("fn = %q", caller.lastFn)
	}
	if len(cands) != 1 || cands[0].City() != "Lahore" {
		t.Errorf("candidates = %v", cands)
	}
}

func TestRepo_CallErrorIsUnavailable(t *testing.T) {
	repo := New(&mockCaller{err: fmt.Errorf("boom")})

	if _, err := repo.Semantic(context.Background(), "q", 0.5, 10); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("Semantic error = %v, want ErrStoreUnavailable", err)
	}
	if _, err := repo.Text(context.Background(), "q", 10); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("Text error = %v, want ErrStoreUnavailable", err)
	}
}

func TestRepo_BadPayloadIsUnavailable(t *testing.T) {
	repo := New(&mockCaller{body: []byte(`{"unexpected":"object"}`)})

	if _, err := repo.Semantic(context.Background(), "q", 0.5, 10); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}
