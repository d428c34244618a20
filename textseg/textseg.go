// Package textseg implements the text segmenter (§4.2): sentence spans
// and token spans over Unicode text, plus the byte-to-codepoint offset
// table the rest of the core uses to publish positions in the
// codepoint unit §9 mandates while still letting the pattern/detect
// packages scan the underlying UTF-8 bytes with an RE2 engine.
package textseg

import (
	"unicode"

	regexp "github.com/wasilibs/go-re2"

	"github.com/sansecio/markerscan/ann"
)

// tokenPattern matches a Unicode-aware word-character run. \p{L}\p{N}_
// is used instead of RE2's ASCII-only \w so that Tokens is genuinely
// Unicode-aware per §4.2, while staying on the same RE2 engine every
// other regex surface in the core uses (§9's non-backtracking mandate).
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var sentenceClosers = map[rune]bool{
	'"': true, '\'': true, ')': true, ']': true,
	'”': true, '’': true, '»': true,
}

var sentenceEnders = map[rune]bool{
	'.': true, '!': true, '?': true, '…': true,
}

// Sentences splits text into contiguous sentence spans covering the
// whole input, per §4.2: consecutive spans abut, the last span ends at
// len(text), and a text with no enders yields one span.
func Sentences(text string) []ann.Span {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return []ann.Span{{Start: 0, End: 0}}
	}

	var spans []ann.Span
	start := 0
	i := 0
	for i < n {
		r := runes[i]
		switch {
		case sentenceEnders[r]:
			j := i + 1
			for j < n && sentenceClosers[runes[j]] {
				j++
			}
			if j >= n || unicode.IsSpace(runes[j]) {
				spans = append(spans, ann.Span{Start: start, End: j})
				start = j
				i = j
				continue
			}
			i++
		case r == '\n' && i+1 < n && runes[i+1] == '\n':
			j := i + 2
			blank := true
			for _, c := range runes[start:i] {
				if !unicode.IsSpace(c) {
					blank = false
					break
				}
			}
			// A blank line right after a finished sentence opens no new
			// sentence; the newlines lead into the next one instead.
			if !blank {
				spans = append(spans, ann.Span{Start: start, End: j})
				start = j
			}
			i = j
		default:
			i++
		}
	}
	if start < n {
		spans = append(spans, ann.Span{Start: start, End: n})
	}
	if len(spans) == 0 {
		return []ann.Span{{Start: 0, End: n}}
	}
	return spans
}

// Tokens returns non-overlapping word-character runs, in codepoint
// offsets. Empty input yields an empty list.
func Tokens(text string) []ann.Span {
	if text == "" {
		return nil
	}
	table := BuildByteToRune(text)
	locs := tokenPattern.FindAllStringIndex(text, -1)
	tokens := make([]ann.Span, 0, len(locs))
	for _, loc := range locs {
		tokens = append(tokens, ann.Span{Start: table.At(loc[0]), End: table.At(loc[1])})
	}
	return tokens
}

// ByteToRune maps byte offsets of a specific string to codepoint
// offsets. It is only valid at rune-boundary byte positions, which is
// all pattern/detect and this package ever query it at: regex match
// boundaries are always valid UTF-8 boundaries.
type ByteToRune []int

// At returns the codepoint index corresponding to byte offset b.
func (t ByteToRune) At(b int) int {
	if b < 0 {
		return 0
	}
	if b >= len(t) {
		return t[len(t)-1]
	}
	return t[b]
}

// BuildByteToRune builds the offset table for text once so that many
// byte-offset lookups (one per detector match) amortize to O(1) each
// after an O(len(text)) build. Byte positions strictly inside a
// multi-byte rune are left pointing at that rune's index; callers only
// ever query rune-boundary positions (regex match offsets), so this is
// never observed.
func BuildByteToRune(text string) ByteToRune {
	table := make(ByteToRune, len(text)+1)
	runeCount := 0
	prevBoundary := 0
	for i := range text {
		for b := prevBoundary; b < i; b++ {
			table[b] = runeCount - 1
		}
		table[i] = runeCount
		runeCount++
		prevBoundary = i
	}
	for b := prevBoundary; b < len(text); b++ {
		table[b] = runeCount - 1
	}
	table[len(text)] = runeCount
	return table
}
