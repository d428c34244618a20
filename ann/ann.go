// Package ann holds the span and hit types shared by every stage of the
// annotation pipeline, from the text segmenter through the overlap
// resolver. Keeping them in one dependency-free package is what lets
// detect, compose, and overlap stay decoupled from each other.
package ann

// Span is a half-open codepoint range [Start, End) into the analyzed text.
type Span struct {
	Start int
	End   int
}

// Hit is a detected marker occurrence, produced by the atomic detector or
// the composer and consumed by the promotion engine and overlap resolver.
// It also serves as the wire-facing Annotation once overlap resolution has
// trimmed the set down to a non-overlapping stream.
type Hit struct {
	Start    int     `json:"start"`
	End      int     `json:"end"`
	MarkerID string  `json:"marker_id"`
	Family   string  `json:"family"`
	Score    float64 `json:"score"`
	Label    string  `json:"label"`

	// TotalChildren carries the composer's window child-count forward to
	// the promotion engine's guard environment. It has no wire
	// representation: an atomic hit never populates it.
	TotalChildren int `json:"-"`
}
