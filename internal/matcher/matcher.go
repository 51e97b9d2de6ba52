// Package matcher implements the generic vector match engine. One engine is
// created per vector kind (face descriptor, image embedding); they share the
// algorithm and differ only in confidence function and threshold.
package matcher

// ConfidenceFunc maps a query vector and a candidate vector to a confidence
// in [0, 1].
type ConfidenceFunc func(query, candidate []float32) float64

// Candidate is one (attendee id, vector) pair from the store catalog.
type Candidate struct {
	AttendeeID string
	Vector     []float32
}

// Result describes the outcome of a match run.
type Result struct {
	IsMatch    bool    `json:"isMatch"`
	Confidence float64 `json:"confidence"`
	AttendeeID string  `json:"attendeeId,omitempty"`
}

// Engine finds the best candidate above a threshold. The scan is a plain
// linear pass in catalog order: deterministic, and ties keep the first
// candidate seen.
type Engine struct {
	kind       string
	threshold  float64
	confidence ConfidenceFunc
}

// NewEngine creates a match engine for one vector kind.
func NewEngine(kind string, threshold float64, confidence ConfidenceFunc) *Engine {
	return &Engine{
		kind:       kind,
		threshold:  threshold,
		confidence: confidence,
	}
}

// Kind returns the vector kind this engine matches.
func (e *Engine) Kind() string {
	return e.kind
}

// Threshold returns the configured match threshold.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Match scans the catalog and returns the best candidate. A candidate only
// matches when its confidence is strictly greater than the threshold;
// equality is not a match. Candidates without a vector are skipped. An empty
// catalog or a missing query yields a zero-confidence non-match.
func (e *Engine) Match(query []float32, catalog []Candidate) Result {
	if len(query) == 0 || len(catalog) == 0 {
		return Result{}
	}

	best := Result{}
	for _, c := range catalog {
		if len(c.Vector) == 0 {
			continue
		}
		conf := e.confidence(query, c.Vector)
		if conf > best.Confidence {
			best.Confidence = conf
			best.AttendeeID = c.AttendeeID
		}
	}

	best.IsMatch = best.Confidence > e.threshold
	if !best.IsMatch {
		best.AttendeeID = ""
	}
	return best
}
