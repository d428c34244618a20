package compose

import (
	"sort"

	"github.com/sansecio/markerscan/ann"
)

// sentenceIndexFor returns the index of the sentence containing
// codepoint offset p, per §4.6's midpoint-bucketing rule: containment
// uses half-open intervals, and a point exactly on the boundary between
// two abutting sentences is assigned to the left one.
func sentenceIndexFor(sentences []ann.Span, p int) int {
	if len(sentences) == 0 {
		return -1
	}
	// j0 = largest index with Start <= p.
	j0 := sort.Search(len(sentences), func(i int) bool { return sentences[i].Start > p }) - 1
	if j0 < 0 {
		j0 = 0
	}
	if j0 >= len(sentences) {
		j0 = len(sentences) - 1
	}
	if j0 > 0 && sentences[j0].Start == p && sentences[j0-1].End == p {
		j0--
	}
	return j0
}

// bucketBySentence groups atomic hits by the sentence index containing
// their midpoint. Hits whose midpoint falls outside every sentence
// (only possible when sentences is empty) are dropped.
func bucketBySentence(sentences []ann.Span, atomics []ann.Hit) map[int][]ann.Hit {
	buckets := map[int][]ann.Hit{}
	if len(sentences) == 0 {
		return buckets
	}
	for _, h := range atomics {
		mid := (h.Start + h.End) / 2
		idx := sentenceIndexFor(sentences, mid)
		if idx < 0 {
			continue
		}
		buckets[idx] = append(buckets[idx], h)
	}
	return buckets
}
