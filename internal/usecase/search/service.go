// Package search implements the retrieval strategy selection and ranking core.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcadia-cloud/placedex/internal/domain/search/mode"
	"github.com/arcadia-cloud/placedex/internal/domain/search/query"
	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
	"github.com/arcadia-cloud/placedex/internal/domain/search/strategy"
	"github.com/arcadia-cloud/placedex/internal/metrics"
)

// Config defaults.
const (
	DefaultLimit         = 20
	DefaultMinSimilarity = 0.5
	DefaultContextLimit  = 50
	// MaxContextLimit bounds the completion prompt context.
	MaxContextLimit         = 50
	DefaultCandidateLimit   = 100
	DefaultStrategyTimeout  = 15 * time.Second
	defaultVectorDimensions = 1536
)

// nominalScore is assigned uniformly by the literal strategies, whose own
// query already constrains relevance.
const nominalScore = 1.0

// Config tunes the search chain.
type Config struct {
	// Limit caps the final result list.
	Limit int
	// MinSimilarity filters embedding-similarity output and parameterizes
	// the store's native semantic match.
	MinSimilarity float64
	// ContextLimit bounds the completion prompt context (≤ MaxContextLimit).
	ContextLimit int
	// CandidateLimit bounds the attribute-scan fetch.
	CandidateLimit int
	// Dimensions is the expected embedding dimensionality.
	Dimensions int
	// StrategyTimeout bounds each strategy attempt. A timeout counts as that
	// strategy's standard failure and feeds the same fallback transition.
	StrategyTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.MinSimilarity <= 0 {
		c.MinSimilarity = DefaultMinSimilarity
	}
	if c.ContextLimit <= 0 || c.ContextLimit > MaxContextLimit {
		c.ContextLimit = DefaultContextLimit
	}
	if c.CandidateLimit <= 0 {
		c.CandidateLimit = DefaultCandidateLimit
	}
	if c.Dimensions <= 0 {
		c.Dimensions = defaultVectorDimensions
	}
	if c.StrategyTimeout <= 0 {
		c.StrategyTimeout = DefaultStrategyTimeout
	}
	return c
}

// step is one tier of the fallback chain.
type step struct {
	tag strategy.Strategy
	run func(ctx context.Context, q query.Query) ([]result.Result, error)
}

// Service runs the fallback chain and ranks its output.
// Fully sequential: one strategy at a time, one gateway call outstanding,
// first success is terminal.
type Service struct {
	candidates CandidateReader
	match      Matcher
	embed      Embedder
	complete   Completer
	cfg        Config
	logger     *zap.Logger
}

// New creates a search service.
func New(
	candidates CandidateReader,
	match Matcher,
	embed Embedder,
	complete Completer,
	cfg Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		candidates: candidates,
		match:      match,
		embed:      embed,
		complete:   complete,
		cfg:        cfg.withDefaults(),
		logger:     logger,
	}
}

// chain returns the ordered strategy tiers for the given mode.
// Adding or removing a tier is a one-line change here.
func (s *Service) chain(m mode.Mode) []step {
	literal := []step{
		{strategy.TextMatch, s.textMatch},
		{strategy.AttributeScan, s.attributeScan},
	}
	if m == mode.Literal {
		return literal
	}
	return append([]step{
		{strategy.DirectCompletion, s.directCompletion},
		{strategy.EmbeddingSimilarity, s.embeddingSimilarity},
		{strategy.ServerSemantic, s.serverSemantic},
	}, literal...)
}

// Search runs the fallback chain for one query. Strategy errors are absorbed
// and drive the next transition; only exhaustion of the whole chain
// propagates, carrying the last tier's error.
func (s *Service) Search(ctx context.Context, q query.Query) (result.Outcome, error) {
	searchID := uuid.NewString()
	log := s.logger.With(
		zap.String("search_id", searchID),
		zap.String("query", q.Text()),
		zap.String("mode", string(q.Mode())),
	)

	start := time.Now()
	var lastErr error

	for _, st := range s.chain(q.Mode()) {
		stepCtx, cancel := context.WithTimeout(ctx, s.cfg.StrategyTimeout)
		raw, err := st.run(stepCtx, q)
		cancel()

		if err != nil {
			metrics.SearchFallbacksTotal.WithLabelValues(string(st.tag)).Inc()
			log.Warn("search strategy failed, falling back",
				zap.String("strategy", string(st.tag)),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		ranked := rank(raw, st.tag, s.cfg.MinSimilarity, s.cfg.Limit)

		metrics.SearchRequestsTotal.WithLabelValues(string(q.Mode()), string(st.tag), "success").Inc()
		metrics.SearchDuration.WithLabelValues(string(q.Mode()), string(st.tag)).Observe(time.Since(start).Seconds())
		log.Info("search completed",
			zap.String("strategy", string(st.tag)),
			zap.Int("results", len(ranked)),
			zap.Duration("latency", time.Since(start)),
		)

		return result.NewOutcome(searchID, st.tag, ranked), nil
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(q.Mode()), "none", "error").Inc()
	log.Error("search exhausted all strategies", zap.Error(lastErr))

	return result.Outcome{}, fmt.Errorf("all search strategies failed: %w", lastErr)
}
