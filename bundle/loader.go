package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	markersFileName    = "markers_canonical.ld35.json"
	promotionsFileName = "promotion_mapping.ld35.json"
	weightsFileName    = "weights.ld35.json"
)

// Load reads the bundle directory and builds an immutable Bundle. A
// missing file yields an empty structure, not an error (§4.1); a
// present-but-unparseable file surfaces as *Error.
func Load(dir string) (*Bundle, error) {
	weights, err := loadWeights(filepath.Join(dir, weightsFileName))
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		ByID:       map[string]*Marker{},
		Promotions: map[string]*PromotionRule{},
		Weights:    weights,
	}

	rawMarkers, err := loadRawMarkers(filepath.Join(dir, markersFileName))
	if err != nil {
		return nil, err
	}
	for _, rm := range rawMarkers {
		if rm.ID == "" {
			b.Warnings = append(b.Warnings, "dropped marker record with empty id")
			continue
		}
		if _, exists := b.ByID[rm.ID]; exists {
			continue // first occurrence wins
		}
		m, warning := convertMarker(rm, weights)
		if warning != "" {
			b.Warnings = append(b.Warnings, warning)
		}
		if m == nil {
			continue
		}
		b.ByID[m.ID] = m
		switch m.Kind {
		case KindAtomic:
			b.Atomics = append(b.Atomics, m)
		case KindComposed:
			b.Composeds = append(b.Composeds, m)
		}
	}

	rawPromotions, err := loadRawPromotions(filepath.Join(dir, promotionsFileName))
	if err != nil {
		return nil, err
	}
	for _, rp := range rawPromotions {
		if rp.MarkerID == "" {
			b.Warnings = append(b.Warnings, "dropped promotion record with empty marker_id")
			continue
		}
		b.Promotions[rp.MarkerID] = &PromotionRule{
			MarkerID:  rp.MarkerID,
			Guard:     rp.ActivateWhen,
			MinScore:  rp.MinScore,
			PromoteTo: rp.PromoteTo,
		}
	}

	return b, nil
}

func readIfExists(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func loadWeights(path string) (Weights, error) {
	w := defaultWeights()
	data, ok, err := readIfExists(path)
	if err != nil {
		return Weights{}, &Error{Path: path, Cause: err}
	}
	if !ok {
		return w, nil
	}
	var raw rawWeights
	if err := json.Unmarshal(data, &raw); err != nil {
		return Weights{}, &Error{Path: path, Cause: err}
	}
	if raw.Composed.MinChildren != nil {
		w.ComposedMinChildren = *raw.Composed.MinChildren
	}
	if raw.Composed.MinScore != nil {
		w.ComposedMinScore = *raw.Composed.MinScore
	}
	return w, nil
}

func loadRawMarkers(path string) ([]rawMarker, error) {
	data, ok, err := readIfExists(path)
	if err != nil {
		return nil, &Error{Path: path, Cause: err}
	}
	if !ok {
		return nil, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var arr []rawMarker
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, &Error{Path: path, Cause: err}
		}
		return arr, nil
	}

	var obj rawMarkersFile
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &Error{Path: path, Cause: err}
	}
	return obj.Markers, nil
}

func loadRawPromotions(path string) ([]rawPromotion, error) {
	data, ok, err := readIfExists(path)
	if err != nil {
		return nil, &Error{Path: path, Cause: err}
	}
	if !ok {
		return nil, nil
	}
	var obj rawPromotionsFile
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &Error{Path: path, Cause: err}
	}
	return obj.Promotions, nil
}

func convertMarker(rm rawMarker, weights Weights) (*Marker, string) {
	kind := Kind(rm.Kind)
	if kind != KindAtomic && kind != KindComposed {
		return nil, fmt.Sprintf("marker %q: unrecognized kind %q, dropped", rm.ID, rm.Kind)
	}

	m := &Marker{
		ID:     rm.ID,
		Kind:   kind,
		Family: FamilyOf(rm.ID),
		Label:  resolveLabel(rm),
	}

	if kind == KindAtomic {
		for _, d := range rm.Detects {
			m.Detects = append(m.Detects, PatternSpec{Regex: d.Regex, Flags: d.Flags})
		}
		for _, d := range rm.DemoteIf {
			m.DemoteIf = append(m.DemoteIf, PatternSpec{Regex: d.Regex, Flags: d.Flags})
		}
		if rm.Frame != nil {
			m.LiteralSignals = append(m.LiteralSignals, rm.Frame.Signal...)
		}
		m.LiteralSignals = append(m.LiteralSignals, rm.Examples...)
		m.DeclaredScore = 0.7
		if rm.Scoring != nil && rm.Scoring.Weight != nil {
			m.DeclaredScore = *rm.Scoring.Weight
		}
		return m, ""
	}

	for _, c := range rm.ComposedOf {
		m.ComposedOf = append(m.ComposedOf, Child{MarkerID: c.MarkerID, Weight: c.Weight})
	}
	m.Activation = rm.Activation
	m.SpanPolicy = convertSpanPolicy(rm.SpanPolicy)
	m.MinScore = weights.ComposedMinScore
	if rm.MinScore != nil {
		m.MinScore = *rm.MinScore
	}
	m.MinChildren = weights.ComposedMinChildren
	if rm.MinChildren != nil {
		m.MinChildren = *rm.MinChildren
	}
	return m, ""
}

func resolveLabel(rm rawMarker) string {
	if rm.Frame != nil && rm.Frame.Concept != "" {
		return rm.Frame.Concept
	}
	if rm.Description != "" {
		return rm.Description
	}
	return rm.ID
}

// convertSpanPolicy resolves §3's span-policy variant, defaulting to an
// anchor_window with the documented [-8, +8] default when a composed
// marker omits span_policy entirely; see DESIGN.md for the rationale.
func convertSpanPolicy(raw *rawSpanPolicy) SpanPolicy {
	if raw == nil {
		return AnchorWindow{WindowTokens: [2]int{-8, 8}}
	}
	switch raw.Mode {
	case "sentence_union":
		maxSpan := 1
		if raw.MaxSentenceSpan != nil {
			maxSpan = *raw.MaxSentenceSpan
		}
		return SentenceUnion{MaxSentenceSpan: maxSpan, Fallback: raw.Fallback}
	case "clause_union":
		return ClauseUnion{}
	default:
		window := [2]int{-8, 8}
		if len(raw.WindowTokens) == 2 {
			window = [2]int{raw.WindowTokens[0], raw.WindowTokens[1]}
		}
		return AnchorWindow{WindowTokens: window}
	}
}
