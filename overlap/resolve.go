// Package overlap implements the overlap resolver (§4.8): it reduces
// the union of atomic and composed hits to a deterministic,
// non-overlapping, position-sorted annotation stream.
package overlap

import (
	"sort"

	"github.com/sansecio/markerscan/ann"
)

// familyOrder is the fixed priority order of §4.8 step 4; index is the
// family's rank (lower wins). An unlisted family gets rank 9.
var familyOrder = map[string]int{
	"SEM":   0,
	"CLU":   1,
	"ATO":   2,
	"MEMA":  3,
	"DEESC": 4,
}

func familyRank(family string) int {
	if r, ok := familyOrder[family]; ok {
		return r
	}
	return 9
}

// Resolve implements §4.8's design-level algorithm: sort by (start asc,
// length desc), then fold candidates into a kept set one at a time. A
// candidate is compared only with the first kept item it overlaps, and
// replaces that item when it outranks it.
func Resolve(hits []ann.Hit) []ann.Hit {
	if len(hits) == 0 {
		return nil
	}

	sorted := make([]ann.Hit, len(hits))
	copy(sorted, hits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		li, lj := sorted[i].End-sorted[i].Start, sorted[j].End-sorted[j].Start
		if li != lj {
			return li > lj
		}
		return sorted[i].MarkerID < sorted[j].MarkerID
	})

	var kept []ann.Hit
	for _, c := range sorted {
		overlapIdx := -1
		for i, k := range kept {
			if overlaps(c, k) {
				overlapIdx = i
				break
			}
		}
		if overlapIdx < 0 {
			kept = append(kept, c)
			continue
		}
		if higherPriority(c, kept[overlapIdx]) {
			kept[overlapIdx] = c
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

func overlaps(a, b ann.Hit) bool {
	return maxInt(a.Start, b.Start) < minInt(a.End, b.End)
}

// higherPriority reports whether a outranks b under the
// (family_rank, score, length, marker_id) priority tuple — lower
// family_rank wins, then higher score, then longer length, then
// lexicographically smaller marker_id, guaranteeing a total order so
// the resolver is stable under input permutation.
func higherPriority(a, b ann.Hit) bool {
	ra, rb := familyRank(a.Family), familyRank(b.Family)
	if ra != rb {
		return ra < rb
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	la, lb := a.End-a.Start, b.End-b.Start
	if la != lb {
		return la > lb
	}
	return a.MarkerID < b.MarkerID
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
