// Package bundle implements the resource loader (§4.1): it reads the
// on-disk marker bundle described in §6 and indexes it into the
// canonical, immutable structures the rest of the core operates over.
package bundle

import "strings"

// Kind distinguishes atomic markers (detected directly by regex) from
// composed markers (detected by aggregating child hits).
type Kind string

const (
	KindAtomic   Kind = "atomic"
	KindComposed Kind = "composed"
)

// PatternSpec is a single detect or demote regex plus its flag string.
type PatternSpec struct {
	Regex string
	Flags string
}

// Child is one entry of a composed marker's composed_of list.
type Child struct {
	MarkerID string
	Weight   float64
}

// SpanPolicy is the tagged variant of §3's span-policy cases.
type SpanPolicy interface {
	spanPolicy()
}

// AnchorWindow expands symmetrically around the anchor match by a token
// count. WindowTokens is [before, after], default [-8, 8].
type AnchorWindow struct {
	WindowTokens [2]int
}

func (AnchorWindow) spanPolicy() {}

// SentenceUnion unions the sentences containing every contributing child
// hit, rejecting (or falling back) if that union exceeds MaxSentenceSpan.
type SentenceUnion struct {
	MaxSentenceSpan int
	Fallback        string // "none" or "anchor_window"
}

func (SentenceUnion) spanPolicy() {}

// ClauseUnion expands to the nearest comma or semicolon on each side of
// the anchor match.
type ClauseUnion struct{}

func (ClauseUnion) spanPolicy() {}

// Marker is the canonical, fully-resolved form of a marker record: all
// weights-derived defaults have already been applied, so downstream
// packages never need to consult Weights themselves.
type Marker struct {
	ID     string
	Kind   Kind
	Family string
	Label  string

	// Atomic-only fields.
	Detects        []PatternSpec
	DemoteIf       []PatternSpec
	LiteralSignals []string
	DeclaredScore  float64

	// Composed-only fields.
	ComposedOf []Child
	Activation string
	SpanPolicy SpanPolicy
	MinScore   float64
	MinChildren int
}

// PromotionRule is keyed by composed marker id in Bundle.Promotions.
type PromotionRule struct {
	MarkerID  string
	Guard     string
	MinScore  float64
	PromoteTo string
}

// Weights carries the two defaults the core reads from weights.ld35.json.
type Weights struct {
	ComposedMinChildren int
	ComposedMinScore    float64
}

func defaultWeights() Weights {
	return Weights{ComposedMinChildren: 1, ComposedMinScore: 0.6}
}

// Bundle is the immutable, load-once marker bundle (§3 "Lifecycles").
// It is safe to share across concurrent Analyze calls.
type Bundle struct {
	Atomics    []*Marker
	Composeds  []*Marker
	ByID       map[string]*Marker
	Promotions map[string]*PromotionRule
	Weights    Weights

	// Warnings collects non-fatal load-time diagnostics (dropped
	// id-less marker or promotion entries, markers of unrecognized
	// kind), surfaced for
	// callers rather than only logged, per SPEC_FULL's bundle
	// validation diagnostics supplement.
	Warnings []string
}

// validFamilies lists the five recognized family prefixes; any other
// prefix maps to SEM (§3).
var validFamilies = map[string]bool{
	"ATO":   true,
	"SEM":   true,
	"CLU":   true,
	"MEMA":  true,
	"DEESC": true,
}

// FamilyOf derives a marker's family from its id prefix.
func FamilyOf(id string) string {
	prefix := id
	if i := strings.IndexByte(id, '_'); i >= 0 {
		prefix = id[:i]
	}
	if validFamilies[prefix] {
		return prefix
	}
	return "SEM"
}
