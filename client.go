// Package placedex is the embedded SDK for the placedex search core.
// It wires the candidate store, the AI provider clients, and the strategy
// chain into a single in-process client, without the HTTP server.
package placedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arcadia-cloud/placedex/internal/db"
	"github.com/arcadia-cloud/placedex/internal/db/postgrest"
	dbRedis "github.com/arcadia-cloud/placedex/internal/db/redis"
	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/metrics"
	candidaterepo "github.com/arcadia-cloud/placedex/internal/repository/candidate"
	"github.com/arcadia-cloud/placedex/internal/repository/embcache"
	matchrepo "github.com/arcadia-cloud/placedex/internal/repository/match"
	openaiProvider "github.com/arcadia-cloud/placedex/internal/transport/openai"
	healthuc "github.com/arcadia-cloud/placedex/internal/usecase/health"
	searchuc "github.com/arcadia-cloud/placedex/internal/usecase/search"

	"github.com/arcadia-cloud/placedex/internal/domain/search/query"
	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
)

const defaultCacheReadiness = 10 * time.Second

// searchUseCase is substituted in tests.
type searchUseCase interface {
	Search(ctx context.Context, q query.Query) (result.Outcome, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the placedex SDK entry point.
type Client struct {
	store     db.Store
	cache     *dbRedis.Store
	searchSvc searchUseCase
	healthSvc healthUseCase
}

// New creates a placedex Client connected to the candidate store.
// The provided context is used for the cache readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		table:           "places",
		embeddingModel:  domain.DefaultVectorConfig().Model,
		dimensions:      domain.DefaultVectorConfig().Dimensions,
		completionModel: "gpt-4o-mini",
		cacheTTL:        24 * time.Hour,
		logger:          zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.storeURL == "" {
		return nil, errors.New("placedex: store url required (use WithStore)")
	}

	store, err := postgrest.New(postgrest.Config{
		BaseURL:   cfg.storeURL,
		APIKey:    cfg.storeKey,
		PingTable: cfg.table,
		Timeout:   cfg.storeTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("placedex: create store client: %w", err)
	}

	var cache *dbRedis.Store
	if len(cfg.cacheAddrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("placedex: create cache store: %w", err)
		}
		if err := cache.WaitForReady(ctx, defaultCacheReadiness); err != nil {
			cache.Close()
			return nil, fmt.Errorf("placedex: cache not ready: %w", err)
		}
	}

	return wireClient(store, cache, cfg), nil
}

func wireClient(store db.Store, cache *dbRedis.Store, cfg *clientConfig) *Client {
	base := openaiProvider.NewEmbedder(&openaiProvider.Config{
		APIKey:     cfg.providerKey,
		BaseURL:    cfg.providerURL,
		Model:      cfg.embeddingModel,
		Dimensions: cfg.dimensions,
		Provider:   "openai",
		Logger:     cfg.logger,
	})
	var embedder domain.Embedder = base
	if cache != nil {
		embedder = embcache.New(base, cache, cfg.cacheTTL, metrics.EmbeddingCacheTotal, cfg.logger)
	}

	completer := openaiProvider.NewCompleter(&openaiProvider.CompleterConfig{
		APIKey:   cfg.providerKey,
		BaseURL:  cfg.providerURL,
		Model:    cfg.completionModel,
		Provider: "openai",
		Logger:   cfg.logger,
	})

	candRepo := candidaterepo.New(store, cfg.table, cfg.dimensions)
	matchRepo := matchrepo.New(store)

	searchSvc := searchuc.New(candRepo, matchRepo, embedder, completer, searchuc.Config{
		Limit:         cfg.limit,
		MinSimilarity: cfg.minSimilarity,
		Dimensions:    cfg.dimensions,
	}, cfg.logger)

	return &Client{
		store:     store,
		cache:     cache,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(store, base),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks candidate store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
