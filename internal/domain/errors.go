package domain

import "errors"

var (
	// ErrStoreUnavailable signals a transport or auth failure talking to the place store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrProvider signals a transport, auth, or quota failure talking to the AI provider.
	ErrProvider = errors.New("provider error")
	// ErrMalformedResponse signals a provider reply that does not parse into the expected shape.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrNoEmbeddings signals that no fetched candidate carries an embedding,
	// i.e. the corpus is unprepared for similarity search.
	ErrNoEmbeddings = errors.New("no candidates carry embeddings")
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = errors.New("query is empty")
)
