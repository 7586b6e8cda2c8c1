// Package db defines the storage contracts the repositories consume.
package db

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the read facade over the hosted place database.
// Consumers depend on the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	Selector
	Caller
	Close()
}

// Pinger checks store connectivity with a lightweight read.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Condition is one column predicate in PostgREST operator form,
// e.g. {Column: "city", Op: "ilike", Value: "*lahore*"}.
type Condition struct {
	Column string
	Op     string
	Value  string
}

// SelectQuery describes a parameterized read over one table:
// selected columns, optional AND/OR predicates, optional row limit.
type SelectQuery struct {
	Table   string
	Columns []string
	Where   []Condition // AND-combined
	AnyOf   []Condition // OR-combined group
	Limit   int
}

// Selector reads rows. Each row is returned as its raw JSON object;
// parsing into typed records happens at the repository boundary.
type Selector interface {
	Select(ctx context.Context, q *SelectQuery) ([]json.RawMessage, error)
}

// Caller invokes a named remote function with JSON arguments.
type Caller interface {
	Call(ctx context.Context, fn string, args map[string]any) ([]byte, error)
}

// KVStore provides simple key-value operations (embedding cache).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
