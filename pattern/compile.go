// Package pattern implements the pattern compiler (§4.3): it turns each
// atomic marker's detect/demote pattern specs into executable regexes,
// plus a literal-fallback Aho-Corasick prefilter for frame.signal and
// examples terms. Every regex in this module runs on
// github.com/wasilibs/go-re2's RE2 engine — RE2 is linear-time and
// non-backtracking, which is what lets §9 promise author-supplied
// marker bundles can't DoS the analyzer with a catastrophic pattern.
package pattern

import (
	"bytes"
	"strings"

	regexp "github.com/wasilibs/go-re2"

	"github.com/sansecio/markerscan/ahocorasick"
	"github.com/sansecio/markerscan/bundle"
	"github.com/sansecio/markerscan/logging"
)

// minLiteralLen is the shortest literal-fallback term compiled, per §4.3
// ("each literal term longer than two characters").
const minLiteralLen = 3

// Compiled holds one atomic marker's compiled detect and demote regexes.
type Compiled struct {
	Detects []*regexp.Regexp
	Demotes []*regexp.Regexp
}

// Index is the compiled form of a bundle's atomic markers, reusable
// across every Analyze call against that bundle (§4.9 "compile
// (cached per bundle)").
type Index struct {
	ByMarker    map[string]*Compiled
	AtomicOrder []string

	literalAC        *ahocorasick.AhoCorasick
	literalRefs      []string // AC pattern index -> owning marker id
	regexPatternCount int
}

// Stats reports compiled pattern counts: AC literals vs. regex-only
// patterns.
func (idx *Index) Stats() (acPatterns, regexPatterns int) {
	return len(idx.literalRefs), idx.regexPatternCount
}

// Compile compiles every atomic marker in b. Per-pattern compile
// failures are logged as PatternCompileWarning and skipped; other
// patterns for the same marker remain usable (§4.3).
func Compile(b *bundle.Bundle, logger logging.Logger) *Index {
	if logger == nil {
		logger = logging.Nop{}
	}

	idx := &Index{ByMarker: map[string]*Compiled{}}
	var literalPatterns [][]byte

	for _, m := range b.Atomics {
		idx.AtomicOrder = append(idx.AtomicOrder, m.ID)
		c := &Compiled{}

		for _, spec := range m.Detects {
			re, err := compileSpec(spec)
			if err != nil {
				logger.Warn("pattern compile failed, skipping detect pattern",
					"marker_id", m.ID, "regex", spec.Regex, "error", err)
				continue
			}
			c.Detects = append(c.Detects, re)
			idx.regexPatternCount++
		}

		for _, spec := range m.DemoteIf {
			re, err := compileSpec(spec)
			if err != nil {
				logger.Warn("pattern compile failed, skipping demote pattern",
					"marker_id", m.ID, "regex", spec.Regex, "error", err)
				continue
			}
			c.Demotes = append(c.Demotes, re)
		}

		for _, term := range m.LiteralSignals {
			trimmed := strings.TrimSpace(term)
			if len([]rune(trimmed)) < minLiteralLen {
				continue
			}
			literalPatterns = append(literalPatterns, bytes.ToLower([]byte(trimmed)))
			idx.literalRefs = append(idx.literalRefs, m.ID)
		}

		idx.ByMarker[m.ID] = c
	}

	if len(literalPatterns) > 0 {
		builder := ahocorasick.NewAhoCorasickBuilder()
		ac := builder.BuildByte(literalPatterns)
		idx.literalAC = &ac
	}

	return idx
}

// LiteralAutomaton exposes the compiled literal-fallback matcher to
// package detect. It is nil when no atomic marker declared any
// frame.signal/examples term long enough to qualify.
func (idx *Index) LiteralAutomaton() (*ahocorasick.AhoCorasick, []string) {
	return idx.literalAC, idx.literalRefs
}

func compileSpec(spec bundle.PatternSpec) (*regexp.Regexp, error) {
	return regexp.Compile(flagsPrefix(spec.Flags) + spec.Regex)
}

// flagsPrefix translates §4.3's flag characters into an RE2 inline-flag
// group: i -> case-insensitive, m -> multiline, s -> dotall.
func flagsPrefix(flags string) string {
	var set []byte
	seen := map[byte]bool{}
	for _, c := range []byte(flags) {
		switch c {
		case 'i', 'm', 's':
			if !seen[c] {
				seen[c] = true
				set = append(set, c)
			}
		}
	}
	if len(set) == 0 {
		return ""
	}
	return "(?" + string(set) + ")"
}
