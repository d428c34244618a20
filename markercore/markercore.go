// Package markercore wires the segmenter, pattern compiler, atomic
// detector, composer, promotion engine and overlap resolver into the
// single analyze(text, bundle) entry point (§4.9). It is the only
// package most callers need to import directly.
package markercore

import (
	"github.com/sansecio/markerscan/ann"
	"github.com/sansecio/markerscan/bundle"
	"github.com/sansecio/markerscan/compose"
	"github.com/sansecio/markerscan/detect"
	"github.com/sansecio/markerscan/logging"
	"github.com/sansecio/markerscan/overlap"
	"github.com/sansecio/markerscan/pattern"
	"github.com/sansecio/markerscan/textseg"
)

// Logger receives observability warnings (§7). It is the same contract
// every compiled stage uses; Analyzer just threads it through.
type Logger = logging.Logger

// Annotation is one entry of an AnnotationResult, matching §6's wire
// shape exactly.
type Annotation = ann.Hit

// Metadata carries the three counts §6 publishes alongside annotations.
type Metadata struct {
	AtomicCount   int `json:"atomic_count"`
	ComposedCount int `json:"composed_count"`
	FinalCount    int `json:"final_count"`
}

// AnnotationResult is analyze's return value, the contract of §6.
type AnnotationResult struct {
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations"`
	Metadata    Metadata     `json:"metadata"`
}

// Options configures an Analyzer: a plain options struct rather than
// functional options, since the core has exactly one optional knob
// today.
type Options struct {
	// Logger receives non-fatal warnings from every pipeline stage. A
	// nil Logger is replaced with a no-op sink.
	Logger Logger
}

// Analyzer holds one bundle's compiled pattern index, reusable across
// any number of Analyze calls against that bundle (§4.9: "compile
// (cached per bundle)"). An Analyzer is safe for concurrent use: it
// carries no mutable state after construction (§5).
type Analyzer struct {
	bundle *bundle.Bundle
	index  *pattern.Index
	logger Logger
}

// NewAnalyzer compiles b's atomic markers and returns a reusable
// Analyzer. Compilation failures on individual patterns are logged and
// skipped (§4.3); NewAnalyzer itself never fails.
func NewAnalyzer(b *bundle.Bundle) *Analyzer {
	return NewAnalyzerWithOptions(b, Options{})
}

// NewAnalyzerWithOptions is NewAnalyzer with explicit Options.
func NewAnalyzerWithOptions(b *bundle.Bundle, opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Analyzer{
		bundle: b,
		index:  pattern.Compile(b, logger),
		logger: logger,
	}
}

// Stats reports the compiled pattern index's pattern counts, useful for
// logging/metrics at startup.
func (a *Analyzer) Stats() (acPatterns, regexPatterns int) {
	return a.index.Stats()
}

// Analyze runs the full pipeline over text and returns the final,
// non-overlapping annotation stream (§4.9). It is a pure function of
// (text, the Analyzer's bundle): no internal state is mutated, so
// concurrent calls against the same Analyzer are safe (§5).
func (a *Analyzer) Analyze(text string) AnnotationResult {
	sentences := textseg.Sentences(text)
	tokens := textseg.Tokens(text)
	table := textseg.BuildByteToRune(text)

	atomics := detect.Detect(text, a.index, a.bundle, table, a.logger)
	composed := compose.Compose(text, atomics, sentences, tokens, a.bundle, a.logger)
	composed = compose.Promote(composed, a.bundle, a.logger)

	all := make([]ann.Hit, 0, len(atomics)+len(composed))
	all = append(all, atomics...)
	all = append(all, composed...)
	final := overlap.Resolve(all)

	return AnnotationResult{
		Text:        text,
		Annotations: final,
		Metadata: Metadata{
			AtomicCount:   len(atomics),
			ComposedCount: len(composed),
			FinalCount:    len(final),
		},
	}
}

// Analyze is a convenience wrapper for one-shot callers that don't need
// to reuse a compiled bundle across calls. Prefer NewAnalyzer directly
// when analyzing more than one document against the same bundle, since
// this recompiles the pattern index on every call.
func Analyze(text string, b *bundle.Bundle) AnnotationResult {
	return NewAnalyzer(b).Analyze(text)
}
