// Package mode defines the search intent flag.
package mode

// Mode selects the search intent.
type Mode string

const (
	// Semantic enables the AI-assisted strategies before the literal fallbacks.
	Semantic Mode = "semantic"
	// Literal restricts the search to text matching against stored attributes.
	Literal Mode = "literal"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m == Semantic || m == Literal
}
