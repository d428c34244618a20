package detect

import (
	"testing"

	"github.com/sansecio/markerscan/bundle"
	"github.com/sansecio/markerscan/pattern"
	"github.com/sansecio/markerscan/textseg"
)

func buildIndex(t *testing.T, markers ...*bundle.Marker) (*bundle.Bundle, *pattern.Index) {
	t.Helper()
	b := &bundle.Bundle{ByID: map[string]*bundle.Marker{}}
	for _, m := range markers {
		b.Atomics = append(b.Atomics, m)
		b.ByID[m.ID] = m
	}
	return b, pattern.Compile(b, nil)
}

func TestDetect_EmitsScoredHit(t *testing.T) {
	b, idx := buildIndex(t, &bundle.Marker{
		ID:            "ATO_eval",
		Kind:          bundle.KindAtomic,
		Family:        "ATO",
		Label:         "eval call",
		Detects:       []bundle.PatternSpec{{Regex: `eval\(`}},
		DeclaredScore: 0.7,
	})
	text := "x = eval(payload)"
	table := textseg.BuildByteToRune(text)

	hits := Detect(text, idx, b, table, nil)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d: %+v", len(hits), hits)
	}
	if hits[0].MarkerID != "ATO_eval" || hits[0].Score != 0.7 {
		t.Errorf("unexpected hit: %+v", hits[0])
	}
}

func TestDetect_DemoteFullmatchesHitSubstring(t *testing.T) {
	b, idx := buildIndex(t, &bundle.Marker{
		ID:            "ATO_eval",
		Kind:          bundle.KindAtomic,
		Family:        "ATO",
		Detects:       []bundle.PatternSpec{{Regex: `eval\([a-z]*\)`}},
		DemoteIf:      []bundle.PatternSpec{{Regex: `eval\(config\)`}},
		DeclaredScore: 0.7,
	})
	text := "x = eval(config)"
	table := textseg.BuildByteToRune(text)

	hits := Detect(text, idx, b, table, nil)
	if len(hits) != 0 {
		t.Fatalf("expected demote to suppress the hit, got %+v", hits)
	}
}

// TestDetect_DemoteAnchorsToSubstringNotDocument guards against testing
// a demote pattern against the whole document instead of the detected
// hit's own substring: ^Hello$ never matches anywhere in the full text
// below, since "Hello" isn't at the document's start or end, but it
// does fullmatch the isolated substring "Hello" the detect pattern found.
func TestDetect_DemoteAnchorsToSubstringNotDocument(t *testing.T) {
	b, idx := buildIndex(t, &bundle.Marker{
		ID:            "ATO_hello",
		Kind:          bundle.KindAtomic,
		Family:        "ATO",
		Detects:       []bundle.PatternSpec{{Regex: `Hello`}},
		DemoteIf:      []bundle.PatternSpec{{Regex: `^Hello$`}},
		DeclaredScore: 0.7,
	})
	text := "say Hello there"
	table := textseg.BuildByteToRune(text)

	hits := Detect(text, idx, b, table, nil)
	if len(hits) != 0 {
		t.Fatalf("expected anchored demote to suppress the hit, got %+v", hits)
	}
}

func TestDetect_DemotePartialMatchDoesNotSuppress(t *testing.T) {
	b, idx := buildIndex(t, &bundle.Marker{
		ID:            "ATO_eval",
		Kind:          bundle.KindAtomic,
		Family:        "ATO",
		Detects:       []bundle.PatternSpec{{Regex: `eval\(x\)`}},
		DemoteIf:      []bundle.PatternSpec{{Regex: `eval`}},
		DeclaredScore: 0.7,
	})
	text := "x = eval(x)"
	table := textseg.BuildByteToRune(text)

	// The demote pattern only matches a prefix of the hit's substring
	// ("eval" within "eval(x)"), not the whole thing, so it must not
	// suppress the hit.
	hits := Detect(text, idx, b, table, nil)
	if len(hits) != 1 {
		t.Fatalf("expected partial demote match to leave hit intact, got %+v", hits)
	}
}

func TestDetect_ZeroWidthMatchesDiscarded(t *testing.T) {
	b, idx := buildIndex(t, &bundle.Marker{
		ID:      "ATO_lookahead",
		Kind:    bundle.KindAtomic,
		Family:  "ATO",
		Detects: []bundle.PatternSpec{{Regex: `x*`}},
	})
	text := "abc"
	table := textseg.BuildByteToRune(text)
	hits := Detect(text, idx, b, table, nil)
	if len(hits) != 0 {
		t.Fatalf("expected all-zero-width matches discarded, got %+v", hits)
	}
}

func TestDetect_LiteralFallbackAppliesWordBoundaryAndPenalty(t *testing.T) {
	b, idx := buildIndex(t, &bundle.Marker{
		ID:             "ATO_base64",
		Kind:           bundle.KindAtomic,
		Family:         "ATO",
		LiteralSignals: []string{"base64_decode"},
		DeclaredScore:  0.7,
	})
	text := "y = base64_decode(z); xbase64_decodex"
	table := textseg.BuildByteToRune(text)

	hits := Detect(text, idx, b, table, nil)
	if len(hits) != 1 {
		t.Fatalf("expected exactly 1 word-boundary-anchored hit, got %d: %+v", len(hits), hits)
	}
	if hits[0].Score != 0.6 {
		t.Errorf("expected literal-fallback score 0.6 (0.7-0.1), got %v", hits[0].Score)
	}
}

func TestDetect_DedupesAndSortsStartAscEndDesc(t *testing.T) {
	b, idx := buildIndex(t,
		&bundle.Marker{ID: "ATO_a", Kind: bundle.KindAtomic, Family: "ATO", Detects: []bundle.PatternSpec{{Regex: `ab`}, {Regex: `ab`}}},
		&bundle.Marker{ID: "ATO_b", Kind: bundle.KindAtomic, Family: "ATO", Detects: []bundle.PatternSpec{{Regex: `abc`}}},
	)
	text := "abc"
	table := textseg.BuildByteToRune(text)

	hits := Detect(text, idx, b, table, nil)
	if len(hits) != 2 {
		t.Fatalf("expected dedup to 2 hits, got %d: %+v", len(hits), hits)
	}
	if hits[0].MarkerID != "ATO_b" || hits[0].End != 3 {
		t.Errorf("expected longer match first at same start, got %+v", hits[0])
	}
}
