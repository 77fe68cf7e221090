package scan

import "github.com/RoaringBitmap/roaring/v2"

type span struct{ start, end int }

// OverlapSet holds the reference spans accepted so far in one scan. Spans are only
// ever appended. OverlapInclusive reads them as closed [start, end]; OverlapExclusive
// treats end as exclusive, so [0, 10] and [10, 20] can coexist.
type OverlapSet struct {
	rule    OverlapRule
	spans   []span
	covered *roaring.Bitmap // positions of every span, for the inclusive rule
}

// NewOverlapSet returns an empty set using rule.
func NewOverlapSet(rule OverlapRule) *OverlapSet {
	return &OverlapSet{rule: rule, covered: roaring.New()}
}

// Overlaps reports whether [start, end] conflicts with any accepted span.
func (o *OverlapSet) Overlaps(start, end int) bool {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end < 0 {
		return false
	}
	switch o.rule {
	case OverlapExclusive:
		for _, s := range o.spans {
			if (start < s.end && s.start < end) || (start == s.start && end == s.end) {
				return true
			}
		}
		return false
	default:
		// Either endpoint inside an accepted span, or an accepted span inside
		// [start, end]: both mean some covered position lies in [start, end].
		n := o.covered.Rank(uint32(end))
		if start > 0 {
			n -= o.covered.Rank(uint32(start - 1))
		}
		return n > 0
	}
}

// TryAdd appends [start, end] when it overlaps nothing and reports whether it did.
func (o *OverlapSet) TryAdd(start, end int) bool {
	if o.Overlaps(start, end) {
		return false
	}
	if start > end {
		start, end = end, start
	}
	o.spans = append(o.spans, span{start, end})
	if end >= 0 {
		lo := start
		if lo < 0 {
			lo = 0
		}
		o.covered.AddRange(uint64(lo), uint64(end)+1)
	}
	return true
}

// Len returns the number of accepted spans.
func (o *OverlapSet) Len() int { return len(o.spans) }
