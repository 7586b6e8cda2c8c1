package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrUnavailable = errors.New("db: store unavailable")
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants name the failed operation for error context.
const (
	OpSelect = "SELECT"
	OpCall   = "RPC"
	OpPing   = "PING"
	OpGet    = "GET"
	OpSet    = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
