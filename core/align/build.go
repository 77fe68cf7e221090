// core/align/build.go
package align

import "sort"

// Candidate is a suboptimal alignment endpoint. QueryEnd/RefEnd are 1-based matrix
// indices, which double as 0-based exclusive sequence ends.
type Candidate struct {
	Score    float64
	QueryEnd int
	RefEnd   int
}

// Build runs the three-state affine-gap local recurrence over a scored arena and
// returns the endpoints of every path whose maximum reaches p.MinScore, in the order a
// scan along the reference meets them.
func Build(m *Matrices, p Params) []Candidate {
	q, r := m.Dims()
	if q == 0 || r == 0 {
		return nil
	}
	best := m.plane(planeBest)
	mat := m.plane(int(Match))
	gq := m.plane(int(GapQuery))
	gr := m.plane(int(GapRef))
	n := m.rows * m.cols
	oM, oQ, oR := 0, n, 2*n

	// originOf maps a state plane offset to its origin plane offset.
	originOf := func(s State) int {
		switch s {
		case GapQuery:
			return oQ
		case GapRef:
			return oR
		default:
			return oM
		}
	}

	// Column-major fill: every dependency of (i, j) lies in column j-1 or row i-1.
	for j := 1; j <= r; j++ {
		for i := 1; i <= q; i++ {
			at := m.idx(i, j)
			diag := m.idx(i-1, j-1)
			left := m.idx(i, j-1)
			up := m.idx(i-1, j)

			// Match
			mv, mp := m.score[at], Stop
			morig := int32(at)
			if prev := m.val[best+diag]; prev > 0 {
				mv += prev
				mp = m.track[best+diag]
				morig = m.origin[originOf(mp)+diag]
			}
			if mv <= 0 {
				mv, mp, morig = 0, Stop, int32(at)
			}
			m.val[mat+at], m.track[mat+at], m.origin[oM+at] = mv, mp, morig

			// GapQuery: reference advances under a query gap
			open, ext := m.val[mat+left]+p.GapOpen, m.val[gq+left]+p.GapExtend
			if open >= ext {
				m.val[gq+at], m.track[gq+at], m.origin[oQ+at] = open, Match, m.origin[oM+left]
			} else {
				m.val[gq+at], m.track[gq+at], m.origin[oQ+at] = ext, GapQuery, m.origin[oQ+left]
			}

			// GapRef: query advances under a reference gap
			open, ext = m.val[mat+up]+p.GapOpen, m.val[gr+up]+p.GapExtend
			if open >= ext {
				m.val[gr+at], m.track[gr+at], m.origin[oR+at] = open, Match, m.origin[oM+up]
			} else {
				m.val[gr+at], m.track[gr+at], m.origin[oR+at] = ext, GapRef, m.origin[oR+up]
			}

			bv, bs := 0.0, Stop
			if mv > bv {
				bv, bs = mv, Match
			}
			if v := m.val[gq+at]; v > bv {
				bv, bs = v, GapQuery
			}
			if v := m.val[gr+at]; v > bv {
				bv, bs = v, GapRef
			}
			m.val[best+at], m.track[best+at] = bv, bs
		}
	}
	return endpoints(m, p)
}

// endpoints keeps, per path origin, the highest Match-state cell (first one on ties).
func endpoints(m *Matrices, p Params) []Candidate {
	q, r := m.Dims()
	best := m.plane(planeBest)
	top := make(map[int32]Candidate)
	for j := 1; j <= r; j++ {
		for i := 1; i <= q; i++ {
			at := m.idx(i, j)
			if m.track[best+at] != Match {
				continue
			}
			v := m.val[best+at]
			if v <= 0 {
				continue
			}
			o := m.origin[at]
			if c, ok := top[o]; ok && c.Score >= v {
				continue
			}
			top[o] = Candidate{Score: v, QueryEnd: i, RefEnd: j}
		}
	}

	out := make([]Candidate, 0, len(top))
	for _, c := range top {
		if c.Score >= p.MinScore {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].RefEnd != out[b].RefEnd {
			return out[a].RefEnd < out[b].RefEnd
		}
		return out[a].QueryEnd < out[b].QueryEnd
	})
	limit := p.MaxCandidates
	if limit == 0 {
		limit = q * r
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
