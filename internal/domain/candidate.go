package domain

// CandidateAttrs holds the optional display attributes of a place.
// Empty strings mean the attribute is absent in the store.
type CandidateAttrs struct {
	Name      string
	Address   string
	City      string
	State     string
	Phone     string
	Website   string
	Latitude  float64
	Longitude float64
}

// Candidate is one searchable place fetched from the external store.
// The embedding vector is optional and already validated at the repository
// boundary: it is either nil or exactly the expected dimensionality.
type Candidate struct {
	id     string
	attrs  CandidateAttrs
	vector []float32
}

// NewCandidate creates a candidate record.
func NewCandidate(id string, attrs CandidateAttrs, vector []float32) Candidate {
	return Candidate{id: id, attrs: attrs, vector: vector}
}

// ID returns the stable unique identifier.
func (c *Candidate) ID() string { return c.id }

// Attrs returns the display attributes.
func (c *Candidate) Attrs() CandidateAttrs { return c.attrs }

// Name returns the place name.
func (c *Candidate) Name() string { return c.attrs.Name }

// City returns the place city.
func (c *Candidate) City() string { return c.attrs.City }

// Vector returns the stored embedding, or nil when absent or invalid.
func (c *Candidate) Vector() []float32 { return c.vector }
