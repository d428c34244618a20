package bundle

// Raw JSON shapes for the three bundle files described in §6. These are
// unmarshalled and then converted into the resolved Marker/PromotionRule
// types in loader.go; nothing outside this package sees the raw shapes.

type rawPatternSpec struct {
	Regex string `json:"regex"`
	Flags string `json:"flags"`
}

type rawChild struct {
	MarkerID string  `json:"marker_id"`
	Weight   float64 `json:"weight"`
}

type rawSpanPolicy struct {
	Mode            string `json:"mode"`
	WindowTokens    []int  `json:"window_tokens"`
	MaxSentenceSpan *int   `json:"max_sentence_span"`
	Fallback        string `json:"fallback"`
}

type rawFrame struct {
	Concept string   `json:"concept"`
	Signal  []string `json:"signal"`
}

type rawScoring struct {
	Weight *float64 `json:"weight"`
}

type rawMarker struct {
	ID          string           `json:"id"`
	Kind        string           `json:"kind"`
	Detects     []rawPatternSpec `json:"detects"`
	DemoteIf    []rawPatternSpec `json:"demote_if"`
	ComposedOf  []rawChild       `json:"composed_of"`
	Activation  string           `json:"activation"`
	SpanPolicy  *rawSpanPolicy   `json:"span_policy"`
	MinScore    *float64         `json:"min_score"`
	MinChildren *int             `json:"min_children"`
	Frame       *rawFrame        `json:"frame"`
	Scoring     *rawScoring      `json:"scoring"`
	Examples    []string         `json:"examples"`
	Description string           `json:"description"`
}

type rawMarkersFile struct {
	Markers []rawMarker `json:"markers"`
}

type rawPromotion struct {
	MarkerID     string  `json:"marker_id"`
	ActivateWhen string  `json:"activate_when"`
	MinScore     float64 `json:"min_score"`
	PromoteTo    string  `json:"promote_to"`
}

type rawPromotionsFile struct {
	Promotions []rawPromotion `json:"promotions"`
}

type rawWeights struct {
	Composed struct {
		MinChildren *int     `json:"min_children"`
		MinScore    *float64 `json:"min_score"`
	} `json:"composed"`
}
