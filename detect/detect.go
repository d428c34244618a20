// Package detect implements the atomic detector (§4.4): it runs a
// compiled pattern index against text and emits the atomic hit stream
// the composer and overlap resolver build on.
package detect

import (
	"sort"
	"unicode"
	"unicode/utf8"

	regexp "github.com/wasilibs/go-re2"

	"github.com/sansecio/markerscan/ann"
	"github.com/sansecio/markerscan/bundle"
	"github.com/sansecio/markerscan/logging"
	"github.com/sansecio/markerscan/pattern"
	"github.com/sansecio/markerscan/textseg"
)

// literalScore applies §4.3's literal-fallback penalty: max(0.4, base-0.1).
func literalScore(base float64) float64 {
	s := base - 0.1
	if s < 0.4 {
		return 0.4
	}
	return s
}

// Detect scans text against idx and returns the atomic hit list,
// de-duplicated on (start, end, marker_id) and sorted by
// (start asc, end desc), in codepoint offsets.
func Detect(text string, idx *pattern.Index, b *bundle.Bundle, table textseg.ByteToRune, logger logging.Logger) []ann.Hit {
	if logger == nil {
		logger = logging.Nop{}
	}

	type rawHit struct {
		s, e  int // byte offsets
		score float64
	}
	byMarker := map[string][]rawHit{}

	for _, id := range idx.AtomicOrder {
		m := b.ByID[id]
		c := idx.ByMarker[id]
		if m == nil || c == nil {
			continue
		}
		for _, span := range detectMarker(text, m, c, logger) {
			byMarker[id] = append(byMarker[id], rawHit{s: span[0], e: span[1], score: m.DeclaredScore})
		}
	}

	if ac, refs := idx.LiteralAutomaton(); ac != nil {
		lower := []byte(toLowerASCII(text))
		iter := ac.IterOverlappingByte(lower)
		for {
			match := iter.Next()
			if match == nil {
				break
			}
			s, e := match.Start(), match.End()
			if s < 0 || e > len(text) || s >= e {
				logger.Warn("literal match outside text bounds, skipped", "marker_id", refs[match.Pattern()], "start", s, "end", e)
				continue
			}
			if !checkWordBoundary(text, s, e) {
				continue
			}
			id := refs[match.Pattern()]
			m := b.ByID[id]
			if m == nil {
				continue
			}
			byMarker[id] = append(byMarker[id], rawHit{s: s, e: e, score: literalScore(m.DeclaredScore)})
		}
	}

	type key struct {
		s, e int
		id   string
	}
	dedup := map[key]bool{}
	var out []ann.Hit

	for id, hits := range byMarker {
		m := b.ByID[id]
		for _, h := range hits {
			rs, re := table.At(h.s), table.At(h.e)
			if rs == re {
				continue
			}
			k := key{rs, re, id}
			if dedup[k] {
				continue
			}
			dedup[k] = true
			out = append(out, ann.Hit{
				Start:    rs,
				End:      re,
				MarkerID: id,
				Family:   m.Family,
				Score:    h.score,
				Label:    m.Label,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End > out[j].End
		}
		return out[i].MarkerID < out[j].MarkerID
	})
	return out
}

// detectMarker runs one atomic marker's detect patterns and returns its
// surviving byte-offset match spans, after discarding zero-width
// matches and anything killed by a demote rule (§4.4 steps 1-3).
func detectMarker(text string, m *bundle.Marker, c *pattern.Compiled, logger logging.Logger) [][2]int {
	var survivors [][2]int
	for _, re := range c.Detects {
		for _, span := range safeFindAll(re, text, m.ID, logger) {
			s, e := span[0], span[1]
			if s == e {
				continue
			}
			if demoted(text, s, e, c.Demotes, m.ID, logger) {
				continue
			}
			survivors = append(survivors, [2]int{s, e})
		}
	}
	return survivors
}

// demoted reports whether any demote pattern fullmatches the carved-out
// substring text[s:e] in isolation (§4.4 step 3): the demote regex runs
// against that substring alone, not the whole document, so an anchored
// pattern like ^Hello$ anchors to the substring's own boundaries rather
// than to the document's.
func demoted(text string, s, e int, demotes []*regexp.Regexp, markerID string, logger logging.Logger) bool {
	sub := text[s:e]
	for _, d := range demotes {
		if safeFullmatch(d, sub, markerID, logger) {
			return true
		}
	}
	return false
}

// safeFullmatch reports whether re matches all of sub, turning a
// panicking demote pattern into "no match" plus a warning (§4.4
// failure mode).
func safeFullmatch(re *regexp.Regexp, sub string, markerID string, logger logging.Logger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("demote pattern panicked, treating as no match", "marker_id", markerID, "panic", r)
			ok = false
		}
	}()
	loc := re.FindStringIndex(sub)
	return loc != nil && loc[0] == 0 && loc[1] == len(sub)
}

// safeFindAll runs FindAllOverlapping and turns a panicking detector
// into zero hits plus a warning (§4.4 failure mode).
func safeFindAll(re *regexp.Regexp, text string, markerID string, logger logging.Logger) (result [][2]int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("detector panicked, treating as zero hits", "marker_id", markerID, "panic", r)
			result = nil
		}
	}()
	return pattern.FindAllOverlapping(re, text)
}

// checkWordBoundary reports whether [s,e) in text is word-boundary
// anchored. Unlike RE2's \b, which only recognizes ASCII word
// characters, this is Unicode-aware, matching the letter/number/
// underscore class the text segmenter's token pattern uses (§4.2).
func checkWordBoundary(text string, s, e int) bool {
	if s > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:s])
		if isWordRune(r) {
			return false
		}
	}
	if e < len(text) {
		r, _ := utf8.DecodeRuneInString(text[e:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// toLowerASCII lowercases only ASCII bytes, which is safe to do
// byte-by-byte without touching UTF-8 continuation bytes (always
// >= 0x80, outside the 'A'-'Z' range), keeping the result's byte
// offsets identical to the original text for automaton matches.
func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
