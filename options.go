package placedex

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	storeURL     string
	storeKey     string
	table        string
	storeTimeout time.Duration

	providerKey     string
	providerURL     string
	embeddingModel  string
	dimensions      int
	completionModel string

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	limit         int
	minSimilarity float64

	logger *zap.Logger
}

// WithStore sets the hosted candidate store endpoint and key.
func WithStore(baseURL, apiKey string) Option {
	return func(c *clientConfig) {
		c.storeURL = baseURL
		c.storeKey = apiKey
	}
}

// WithTable overrides the candidate table name (default "places").
func WithTable(table string) Option {
	return func(c *clientConfig) {
		c.table = table
	}
}

// WithStoreTimeout sets the per-request store timeout.
func WithStoreTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.storeTimeout = d
	}
}

// WithProvider sets the AI provider API key.
func WithProvider(apiKey string) Option {
	return func(c *clientConfig) {
		c.providerKey = apiKey
	}
}

// WithProviderBaseURL points the provider clients at an OpenAI-compatible endpoint.
func WithProviderBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.providerURL = baseURL
	}
}

// WithEmbeddingModel overrides the embedding model and dimensions.
func WithEmbeddingModel(model string, dimensions int) Option {
	return func(c *clientConfig) {
		c.embeddingModel = model
		c.dimensions = dimensions
	}
}

// WithCompletionModel overrides the completion model.
func WithCompletionModel(model string) Option {
	return func(c *clientConfig) {
		c.completionModel = model
	}
}

// WithCache enables the Redis embedding cache.
func WithCache(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
	}
}

// WithCacheTTL sets the embedding cache TTL (default 24h).
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = ttl
	}
}

// WithResultLimit caps the ranked result list.
func WithResultLimit(limit int) Option {
	return func(c *clientConfig) {
		c.limit = limit
	}
}

// WithMinSimilarity sets the similarity threshold for embedding ranking.
func WithMinSimilarity(threshold float64) Option {
	return func(c *clientConfig) {
		c.minSimilarity = threshold
	}
}

// WithLogger sets the logger (default no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
