package search

import (
	"testing"

	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
	"github.com/arcadia-cloud/placedex/internal/domain/search/strategy"
)

func scoredResult(id string, score float64) result.Result {
	return result.New(domain.NewCandidate(id, domain.CandidateAttrs{}, nil), score)
}

func ids(results []result.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		c := r.Candidate()
		out[i] = c.ID()
	}
	return out
}

func TestRank_DedupeKeepsMaxScore(t *testing.T) {
	in := []result.Result{
		scoredResult("a", 0.3),
		scoredResult("b", 0.9),
		scoredResult("a", 0.8),
	}

	out := rank(in, strategy.ServerSemantic, 0.5, 20)
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	if got := ids(out); got[0] != "b" || got[1] != "a" {
		t.Errorf("order = %v, want [b a]", got)
	}
	if out[1].Score() != 0.8 {
		t.Errorf("deduped score = %f, want 0.8", out[1].Score())
	}
}

func TestRank_ThresholdOnlyForEmbeddingSimilarity(t *testing.T) {
	in := []result.Result{
		scoredResult("high", 0.9),
		scoredResult("low", 0.2),
	}

	out := rank(in, strategy.EmbeddingSimilarity, 0.5, 20)
	if len(out) != 1 || ids(out)[0] != "high" {
		t.Errorf("embedding similarity output = %v, want only high", ids(out))
	}

	out = rank(in, strategy.ServerSemantic, 0.5, 20)
	if len(out) != 2 {
		t.Errorf("server semantic output = %v, threshold must not apply", ids(out))
	}
}

func TestRank_StableSortKeepsFetchOrderOnTies(t *testing.T) {
	in := []result.Result{
		scoredResult("first", 1.0),
		scoredResult("second", 1.0),
		scoredResult("third", 1.0),
	}

	out := rank(in, strategy.TextMatch, 0.5, 20)
	if got := ids(out); got[0] != "first" || got[1] != "second" || got[2] != "third" {
		t.Errorf("order = %v, stable sort must preserve fetch order", got)
	}
}

func TestRank_TruncatesToLimit(t *testing.T) {
	in := make([]result.Result, 35)
	for i := range in {
		in[i] = scoredResult(string(rune('a'+i)), float64(35-i)/35)
	}

	out := rank(in, strategy.ServerSemantic, 0.5, 20)
	if len(out) != 20 {
		t.Errorf("got %d results, want 20", len(out))
	}
}

func TestRank_CapShortInput(t *testing.T) {
	// A short corpus returns a short list: no padding up to the cap.
	in := []result.Result{scoredResult("only", 0.7)}

	out := rank(in, strategy.ServerSemantic, 0.5, 20)
	if len(out) != 1 {
		t.Errorf("got %d results, want 1", len(out))
	}
}

func TestRank_ZeroScoreMalformedFilteredByThreshold(t *testing.T) {
	// A malformed embedding scores 0, occupies a slot, and is then removed
	// by the 0.5 threshold when the two rules compose.
	in := []result.Result{
		scoredResult("valid", 0.95),
		scoredResult("malformed", 0),
	}

	out := rank(in, strategy.EmbeddingSimilarity, 0.5, 20)
	if len(out) != 1 || ids(out)[0] != "valid" {
		t.Errorf("output = %v, want only valid", ids(out))
	}
}
