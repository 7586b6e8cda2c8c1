package search

import (
	"context"
	"fmt"

	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/domain/search/query"
	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
)

// directCompletion asks the completion model to rank a bounded context
// directly. The model's relevance scores are trusted after a defensive clamp;
// items referencing ids outside the supplied context are discarded.
func (s *Service) directCompletion(ctx context.Context, q query.Query) ([]result.Result, error) {
	records, err := s.candidates.Context(ctx, s.cfg.ContextLimit)
	if err != nil {
		return nil, err
	}

	raw, err := s.complete.Complete(ctx, rankSystemPrompt, buildRankPrompt(q.Text(), records, s.cfg.Limit))
	if err != nil {
		return nil, err
	}

	items, err := parseRankedItems(raw)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Candidate, len(records))
	for _, c := range records {
		byID[c.ID()] = c
	}

	out := make([]result.Result, 0, len(items))
	for _, item := range items {
		c, ok := byID[string(item.ID)]
		if !ok {
			// Hallucinated id: not a record we supplied, never fabricate one.
			continue
		}
		out = append(out, result.New(c, domain.ClampScore(item.Relevance)))
	}
	return out, nil
}

// embeddingSimilarity embeds the query and scores every embedding-bearing
// candidate by cosine similarity. A candidate whose stored embedding failed
// validation scores 0 but still occupies a ranked slot.
func (s *Service) embeddingSimilarity(ctx context.Context, q query.Query) ([]result.Result, error) {
	emb, err := s.embed.Embed(ctx, q.Text())
	if err != nil {
		return nil, err
	}

	cands, err := s.candidates.WithEmbeddings(ctx)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		// The corpus is unprepared for this method, not a zero-match query.
		return nil, fmt.Errorf("embedding similarity: %w", domain.ErrNoEmbeddings)
	}

	out := make([]result.Result, len(cands))
	for i, c := range cands {
		score := domain.ClampScore(domain.CosineSimilarity(emb.Embedding, c.Vector()))
		out[i] = result.New(c, score)
	}
	return out, nil
}

// serverSemantic delegates ranking to the store's native semantic match.
func (s *Service) serverSemantic(ctx context.Context, q query.Query) ([]result.Result, error) {
	return s.match.Semantic(ctx, q.Text(), s.cfg.MinSimilarity, s.cfg.Limit)
}

// textMatch delegates to the store's native text match.
func (s *Service) textMatch(ctx context.Context, q query.Query) ([]result.Result, error) {
	cands, err := s.match.Text(ctx, q.Text(), s.cfg.Limit)
	if err != nil {
		return nil, err
	}
	return uniform(cands), nil
}

// attributeScan is the last resort: a direct substring OR-match over
// attribute fields with no scoring semantics.
func (s *Service) attributeScan(ctx context.Context, q query.Query) ([]result.Result, error) {
	cands, err := s.candidates.ScanAttributes(ctx, q.Text(), s.cfg.CandidateLimit)
	if err != nil {
		return nil, err
	}
	return uniform(cands), nil
}

// uniform assigns the nominal score to every candidate, preserving fetch order.
func uniform(cands []domain.Candidate) []result.Result {
	out := make([]result.Result, len(cands))
	for i, c := range cands {
		out[i] = result.New(c, nominalScore)
	}
	return out
}
