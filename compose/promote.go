package compose

import (
	"github.com/sansecio/markerscan/activation"
	"github.com/sansecio/markerscan/ann"
	"github.com/sansecio/markerscan/bundle"
	"github.com/sansecio/markerscan/logging"
)

// Promote applies §4.7's promotion rules to composed hits in place,
// returning the same slice: a composed hit whose guard fails is never
// dropped, only left unlabeled.
func Promote(hits []ann.Hit, b *bundle.Bundle, logger logging.Logger) []ann.Hit {
	if logger == nil {
		logger = logging.Nop{}
	}
	for i, h := range hits {
		rule, ok := b.Promotions[h.MarkerID]
		if !ok {
			continue
		}
		guard, err := activation.Parse(rule.Guard)
		if err != nil {
			logger.Warn("promotion guard parse failed, relabel skipped", "marker_id", h.MarkerID, "error", err)
			continue
		}
		env := activation.Env{
			"score":          h.Score,
			"total_children": float64(h.TotalChildren),
		}
		if activation.Eval(guard, env) && h.Score >= rule.MinScore {
			hits[i].Family = rule.PromoteTo
		}
	}
	return hits
}
