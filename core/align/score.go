// core/align/score.go
package align

import "mirscan-core/seq"

// ScoreTable fills the pair score and pair-kind planes of m. query must already be
// in alignment orientation (3'→5'); both strings must match the arena dimensions.
func ScoreTable(m *Matrices, query, ref string, p Params) {
	q, r := m.Dims()
	split := p.SplitPoint(q)
	for i := 1; i <= q; i++ {
		w := 1.0
		if i > split {
			w = p.Scale
		}
		for j := 1; j <= r; j++ {
			k := seq.Pairs(query[i-1], ref[j-1])
			var s float64
			switch k {
			case seq.WatsonCrick:
				s = p.Match
			case seq.Wobble:
				s = p.Wobble
			default:
				s = p.Mismatch
			}
			at := m.idx(i, j)
			m.score[at] = s * w
			m.kind[at] = k
		}
	}
}
