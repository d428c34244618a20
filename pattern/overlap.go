package pattern

import (
	"unicode/utf8"

	regexp "github.com/wasilibs/go-re2"
)

// FindAllOverlapping returns every match of re in text, including matches
// that overlap each other. go-re2's FindAllStringIndex only reports
// non-overlapping matches (it resumes scanning after each match's end),
// which would silently drop legitimate overlapping detections the
// composer needs to see independently (§4.4 step 1: "overlapping matches
// from the same or different detect patterns are both kept"). This
// re-scans from one rune past each match's start instead of its end, so
// a pattern like "a.a" against "aaaa" yields both overlapping hits. The
// advance is by rune width, never by a fixed byte, so a match starting
// mid-rune can never be produced.
func FindAllOverlapping(re *regexp.Regexp, text string) [][2]int {
	var out [][2]int
	pos := 0
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		out = append(out, [2]int{start, end})

		_, width := utf8.DecodeRuneInString(text[start:])
		if width == 0 {
			width = 1
		}
		pos = start + width
	}
	return out
}
