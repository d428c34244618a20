package markercore

import (
	"testing"

	"github.com/sansecio/markerscan/bundle"
)

func atomicMarker(id, family, regex string, score float64) *bundle.Marker {
	return &bundle.Marker{
		ID:            id,
		Kind:          bundle.KindAtomic,
		Family:        family,
		Label:         id,
		Detects:       []bundle.PatternSpec{{Regex: regex}},
		DeclaredScore: score,
	}
}

func testBundle(markers ...*bundle.Marker) *bundle.Bundle {
	b := &bundle.Bundle{ByID: map[string]*bundle.Marker{}, Promotions: map[string]*bundle.PromotionRule{}}
	for _, m := range markers {
		b.ByID[m.ID] = m
		switch m.Kind {
		case bundle.KindAtomic:
			b.Atomics = append(b.Atomics, m)
		case bundle.KindComposed:
			b.Composeds = append(b.Composeds, m)
		}
	}
	return b
}

func TestAnalyze_SingleAtomicNoComposed(t *testing.T) {
	b := testBundle(atomicMarker("ATO_eval", "ATO", `eval\(`, 0.7))
	result := Analyze("x = eval(y)", b)

	if result.Metadata.AtomicCount != 1 || result.Metadata.ComposedCount != 0 || result.Metadata.FinalCount != 1 {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}
	if result.Annotations[0].MarkerID != "ATO_eval" {
		t.Errorf("unexpected annotation: %+v", result.Annotations[0])
	}
}

func TestAnalyze_DemotionKillsMatch(t *testing.T) {
	m := atomicMarker("ATO_eval", "ATO", `eval\([a-z_]*\)`, 0.7)
	m.DemoteIf = []bundle.PatternSpec{{Regex: `eval\(test_value\)`}}
	b := testBundle(m)

	// The demote pattern fullmatches the detected call's own substring
	// ("eval(test_value)"), which is what suppresses it.
	result := Analyze("call eval(test_value)", b)
	if result.Metadata.FinalCount != 0 {
		t.Fatalf("expected demotion to suppress the match, got %+v", result.Annotations)
	}
}

func TestAnalyze_DemotionAnchorsToSubstringNotDocument(t *testing.T) {
	m := atomicMarker("ATO_hello", "ATO", `Hello`, 0.7)
	m.DemoteIf = []bundle.PatternSpec{{Regex: `^Hello$`}}
	b := testBundle(m)

	// ^Hello$ does not match anywhere in the whole document "say Hello
	// there", but it does fullmatch the detected substring "Hello" in
	// isolation, which is the demote contract this exercises.
	result := Analyze("say Hello there", b)
	if result.Metadata.FinalCount != 0 {
		t.Fatalf("expected anchored demote to suppress the match, got %+v", result.Annotations)
	}
}

func TestAnalyze_CompositionFiresWithOverlapSuppressedAtomics(t *testing.T) {
	evalM := atomicMarker("ATO_eval", "ATO", `eval`, 0.7)
	b64M := atomicMarker("ATO_b64", "ATO", `base64`, 0.7)
	composed := &bundle.Marker{
		ID:     "SEM_obf",
		Kind:   bundle.KindComposed,
		Family: "SEM",
		Label:  "obfuscation",
		ComposedOf: []bundle.Child{
			{MarkerID: "ATO_eval", Weight: 1},
			{MarkerID: "ATO_b64", Weight: 1},
		},
		Activation:  "total_children >= 2",
		SpanPolicy:  bundle.SentenceUnion{MaxSentenceSpan: 1},
		MinChildren: 1,
		MinScore:    0,
	}
	b := testBundle(evalM, b64M, composed)

	result := Analyze("Uses eval and base64 together in one place.", b)
	if result.Metadata.ComposedCount != 1 {
		t.Fatalf("expected composer to fire, metadata: %+v, annotations: %+v", result.Metadata, result.Annotations)
	}
	// The composed SEM hit spans the whole sentence and outranks the
	// shorter ATO atomics it was built from, so only it survives §4.8.
	if result.Metadata.FinalCount != 1 || result.Annotations[0].Family != "SEM" {
		t.Fatalf("expected overlap resolution to keep only the composed hit, got %+v", result.Annotations)
	}
}

func TestAnalyze_CompositionFailsMinChildren(t *testing.T) {
	evalM := atomicMarker("ATO_eval", "ATO", `eval`, 0.7)
	composed := &bundle.Marker{
		ID:          "SEM_obf",
		Kind:        bundle.KindComposed,
		Family:      "SEM",
		ComposedOf:  []bundle.Child{{MarkerID: "ATO_eval", Weight: 1}, {MarkerID: "ATO_b64", Weight: 1}},
		Activation:  "total_children >= 2",
		SpanPolicy:  bundle.SentenceUnion{MaxSentenceSpan: 1},
		MinChildren: 2,
	}
	b := testBundle(evalM, composed)

	result := Analyze("Only eval shows up here.", b)
	if result.Metadata.ComposedCount != 0 {
		t.Fatalf("expected no composed hit below min_children, got %+v", result.Annotations)
	}
}

func TestAnalyze_PromotionRelabelsFamily(t *testing.T) {
	evalM := atomicMarker("ATO_eval", "ATO", `eval`, 0.9)
	evalM.DeclaredScore = 0.9
	composed := &bundle.Marker{
		ID:          "CLU_risky",
		Kind:        bundle.KindComposed,
		Family:      "CLU",
		ComposedOf:  []bundle.Child{{MarkerID: "ATO_eval", Weight: 1}},
		Activation:  "",
		SpanPolicy:  bundle.AnchorWindow{WindowTokens: [2]int{0, 0}},
		MinChildren: 1,
		MinScore:    0,
	}
	b := testBundle(evalM, composed)
	b.Promotions["CLU_risky"] = &bundle.PromotionRule{
		MarkerID:  "CLU_risky",
		Guard:     "score >= 0.5",
		MinScore:  0.5,
		PromoteTo: "SEM",
	}

	// PromoteTo "SEM" outranks the atomic ATO hit it overlaps (§4.8's
	// family order), so the promoted composed hit survives overlap
	// resolution and is observable in the final annotation stream.
	result := Analyze("eval appears once.", b)
	var promoted bool
	for _, a := range result.Annotations {
		if a.MarkerID == "CLU_risky" && a.Family == "SEM" {
			promoted = true
		}
	}
	if !promoted {
		t.Fatalf("expected CLU_risky to be promoted to SEM, got %+v", result.Annotations)
	}
}

func TestAnalyze_DeterministicAcrossRuns(t *testing.T) {
	b := testBundle(atomicMarker("ATO_eval", "ATO", `eval\(`, 0.7))
	text := "a(); eval(b); eval(c);"

	first := Analyze(text, b)
	second := Analyze(text, b)
	if len(first.Annotations) != len(second.Annotations) {
		t.Fatalf("expected deterministic annotation count, got %d vs %d", len(first.Annotations), len(second.Annotations))
	}
	for i := range first.Annotations {
		if first.Annotations[i] != second.Annotations[i] {
			t.Errorf("annotation %d differs between runs: %+v vs %+v", i, first.Annotations[i], second.Annotations[i])
		}
	}
}

func TestAnalyze_BoundsAndNonOverlapInvariants(t *testing.T) {
	b := testBundle(atomicMarker("ATO_a", "ATO", `a+`, 0.5))
	text := "aaa bbb aaa"
	result := Analyze(text, b)

	for _, a := range result.Annotations {
		if a.Start < 0 || a.Start >= a.End || a.End > len([]rune(text)) {
			t.Errorf("bounds invariant violated: %+v", a)
		}
	}
	for i := 1; i < len(result.Annotations); i++ {
		prev, cur := result.Annotations[i-1], result.Annotations[i]
		if prev.End > cur.Start {
			t.Errorf("non-overlap invariant violated between %+v and %+v", prev, cur)
		}
		if prev.Start > cur.Start {
			t.Errorf("sorted invariant violated between %+v and %+v", prev, cur)
		}
	}
}
