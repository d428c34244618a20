package compose

import (
	"sort"

	"github.com/sansecio/markerscan/ann"
	"github.com/sansecio/markerscan/bundle"
)

// resolveSpan computes a composed hit's span per §3's span-policy
// variants, given the sentence window the composer matched on and the
// contributing child hits within it. ok is false when the policy
// rejects the window outright (§4.6 step 8).
func resolveSpan(policy bundle.SpanPolicy, window []ann.Span, children []ann.Hit, tokens []ann.Span, runes []rune) (ann.Span, bool) {
	switch p := policy.(type) {
	case bundle.SentenceUnion:
		if len(children) == 0 {
			return ann.Span{Start: window[0].Start, End: window[len(window)-1].End}, true
		}
		lo, hi := len(window)-1, 0
		for _, h := range children {
			idx := sentenceIndexFor(window, (h.Start+h.End)/2)
			lo, hi = min(lo, idx), max(hi, idx)
		}
		return ann.Span{Start: window[lo].Start, End: window[hi].End}, true
	case bundle.AnchorWindow:
		if len(children) == 0 {
			return ann.Span{}, false
		}
		anchor := findAnchor(children)
		return anchorWindowSpan(anchor, p, tokens), true
	case bundle.ClauseUnion:
		if len(children) == 0 {
			return ann.Span{}, false
		}
		anchor := findAnchor(children)
		return clauseSpan(runes, anchor), true
	default:
		return ann.Span{}, false
	}
}

// findAnchor picks the earliest-starting contributing hit (ties broken
// by lowest End), the atomic hit whose position drives an
// anchor-window or clause-union span.
func findAnchor(children []ann.Hit) ann.Span {
	best := children[0]
	for _, h := range children[1:] {
		if h.Start < best.Start || (h.Start == best.Start && h.End < best.End) {
			best = h
		}
	}
	return ann.Span{Start: best.Start, End: best.End}
}

func anchorWindowSpan(anchor ann.Span, p bundle.AnchorWindow, tokens []ann.Span) ann.Span {
	if len(tokens) == 0 {
		return anchor
	}
	base := tokenIndexContaining(tokens, anchor.Start)
	lo := base + p.WindowTokens[0]
	hi := base + p.WindowTokens[1]
	if lo < 0 {
		lo = 0
	}
	if hi > len(tokens)-1 {
		hi = len(tokens) - 1
	}
	if hi < lo {
		return anchor
	}
	start := tokens[lo].Start
	end := tokens[hi].End
	if start > anchor.Start {
		start = anchor.Start
	}
	if end < anchor.End {
		end = anchor.End
	}
	return ann.Span{Start: start, End: end}
}

// tokenIndexContaining returns the index of the token containing pos,
// or the nearest token by distance if pos falls between tokens (e.g.
// on punctuation or whitespace).
func tokenIndexContaining(tokens []ann.Span, pos int) int {
	for i, t := range tokens {
		if pos >= t.Start && pos < t.End {
			return i
		}
	}
	return nearestTokenIndex(tokens, pos)
}

func nearestTokenIndex(tokens []ann.Span, pos int) int {
	idx := sort.Search(len(tokens), func(i int) bool { return tokens[i].Start > pos })
	switch {
	case idx == 0:
		return 0
	case idx >= len(tokens):
		return len(tokens) - 1
	default:
		left, right := idx-1, idx
		distLeft := pos - tokens[left].End
		if distLeft < 0 {
			distLeft = 0
		}
		distRight := tokens[right].Start - pos
		if distRight < distLeft {
			return right
		}
		return left
	}
}

// clauseSpan expands from the anchor to the nearest comma or semicolon
// on each side, per §3's clause_union policy, falling back to the text
// boundaries when none is found.
func clauseSpan(runes []rune, anchor ann.Span) ann.Span {
	start := anchor.Start
	for start > 0 && runes[start-1] != ',' && runes[start-1] != ';' {
		start--
	}
	end := anchor.End
	for end < len(runes) && runes[end] != ',' && runes[end] != ';' {
		end++
	}
	if start > anchor.Start {
		start = anchor.Start
	}
	if end < anchor.End {
		end = anchor.End
	}
	return ann.Span{Start: start, End: end}
}
