// Package compose implements the composer (§4.6) and the promotion
// engine (§4.7): it aggregates atomic hits into composed hits over
// sliding sentence windows, and re-labels a composed hit's family when
// its promotion rule's guard passes.
package compose

import (
	"sort"

	"github.com/sansecio/markerscan/activation"
	"github.com/sansecio/markerscan/ann"
	"github.com/sansecio/markerscan/ast"
	"github.com/sansecio/markerscan/bundle"
	"github.com/sansecio/markerscan/logging"
)

// Compose aggregates atomics into composed hits for every composed
// marker in b, per §4.6.
func Compose(text string, atomics []ann.Hit, sentences, tokens []ann.Span, b *bundle.Bundle, logger logging.Logger) []ann.Hit {
	if logger == nil {
		logger = logging.Nop{}
	}
	if len(sentences) == 0 {
		return nil
	}

	buckets := bucketBySentence(sentences, atomics)
	runes := []rune(text)

	var out []ann.Hit
	for _, m := range b.Composeds {
		guard, err := activation.Parse(m.Activation)
		if err != nil {
			logger.Warn("activation parse failed, composed marker suppressed", "marker_id", m.ID, "error", err)
			continue
		}

		maxSpan := 1
		if su, ok := m.SpanPolicy.(bundle.SentenceUnion); ok && su.MaxSentenceSpan > 0 {
			maxSpan = su.MaxSentenceSpan
		}

		for i0 := range sentences {
			hit, ok := composeWindow(m, guard, i0, maxSpan, sentences, tokens, runes, buckets)
			if ok {
				out = append(out, hit)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		return out[i].MarkerID < out[j].MarkerID
	})
	return out
}

// composeWindow walks window sizes 1..maxSpan starting at i0 and
// returns the first one that passes min_children, min_score,
// activation and the span policy — at most one composed hit per
// (marker, i0), per §4.6 step 9. A step that fails a gate tries the
// next window size for the same i0 rather than abandoning it.
func composeWindow(m *bundle.Marker, guard ast.Expr, i0, maxSpan int, sentences, tokens []ann.Span, runes []rune, buckets map[int][]ann.Hit) (ann.Hit, bool) {
	for span := 1; span <= maxSpan && i0+span-1 < len(sentences); span++ {
		window := sentences[i0 : i0+span]

		counts := map[string]int{}
		var weightSum, numerator float64
		var children []ann.Hit
		totalChildren := 0

		for _, child := range m.ComposedOf {
			weightSum += child.Weight
			n := 0
			for s := i0; s < i0+span; s++ {
				for _, h := range buckets[s] {
					if h.MarkerID == child.MarkerID {
						n++
						children = append(children, h)
					}
				}
			}
			if n > 0 {
				counts[child.MarkerID] = n
				numerator += child.Weight
			}
			totalChildren += n
		}

		if totalChildren < m.MinChildren {
			continue
		}

		denom := weightSum
		if denom == 0 {
			denom = 1
		}
		score := numerator / denom
		if score < m.MinScore {
			continue
		}

		env := activation.Env{}
		for cid, n := range counts {
			env[cid] = float64(n)
		}
		env["total_children"] = float64(totalChildren)
		env["score"] = score
		if !activation.Eval(guard, env) {
			continue
		}

		spanResult, ok := resolveSpan(m.SpanPolicy, window, children, tokens, runes)
		if !ok {
			continue
		}

		return ann.Hit{
			Start:         spanResult.Start,
			End:           spanResult.End,
			MarkerID:      m.ID,
			Family:        m.Family,
			Score:         score,
			Label:         m.Label,
			TotalChildren: totalChildren,
		}, true
	}
	return ann.Hit{}, false
}
