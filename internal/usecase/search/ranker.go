package search

import (
	"sort"

	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
	"github.com/arcadia-cloud/placedex/internal/domain/search/strategy"
)

// rank turns a strategy's raw output into the final presented list:
// dedupe by id keeping the max score, threshold-filter (embedding similarity
// only), stable sort descending by score, truncate to the cap.
// A short corpus yields a short list; the cap is an upper bound, never a
// target to pad to.
func rank(in []result.Result, tag strategy.Strategy, minScore float64, limit int) []result.Result {
	// Dedupe by id, keep the highest-scored instance at the position of the
	// first occurrence so the later stable sort preserves fetch order on ties.
	index := make(map[string]int, len(in))
	out := make([]result.Result, 0, len(in))
	for _, r := range in {
		c := r.Candidate()
		if i, ok := index[c.ID()]; ok {
			if r.Score() > out[i].Score() {
				out[i] = r
			}
			continue
		}
		index[c.ID()] = len(out)
		out = append(out, r)
	}

	// The threshold suppresses low-similarity noise from the brute-force
	// comparison; other strategies' own queries already constrain relevance.
	if tag == strategy.EmbeddingSimilarity {
		filtered := out[:0]
		for _, r := range out {
			if r.Score() >= minScore {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
