package scan

import (
	"mirscan-core/align"
	"mirscan-core/seq"
)

// Hit is one reconstructed binding site. Core lines are uppercase; the 5' flank holds
// the unaligned query bases left of the core, the 3' flank those right of it, paired
// with the reference bases at the same offsets (lowercase, '-' past either end).
//
// QueryStart/QueryEnd index the query in alignment orientation (3'→5'), start
// inclusive and end exclusive. RefStart/RefEnd are 0-based inclusive once the flanks
// have been added.
type Hit struct {
	QueryAln, MatchAln, RefAln []byte

	Flank5Query, Flank5Ref, Flank5Match []byte
	Flank3Query, Flank3Ref, Flank3Match []byte

	QueryStart, QueryEnd int
	RefStart, RefEnd     int

	Score  float64
	Energy float64

	core span // reference span before flank correction, as tested for overlap
}

func newHit(q, r int) Hit {
	core, flank := q+r, q+10
	return Hit{
		QueryAln:    make([]byte, 0, core),
		MatchAln:    make([]byte, 0, core),
		RefAln:      make([]byte, 0, core),
		Flank5Query: make([]byte, 0, flank),
		Flank5Ref:   make([]byte, 0, flank),
		Flank5Match: make([]byte, 0, flank),
		Flank3Query: make([]byte, 0, flank),
		Flank3Ref:   make([]byte, 0, flank),
		Flank3Match: make([]byte, 0, flank),
	}
}

func (h *Hit) reset() {
	h.QueryAln, h.MatchAln, h.RefAln = h.QueryAln[:0], h.MatchAln[:0], h.RefAln[:0]
	h.Flank5Query, h.Flank5Ref, h.Flank5Match = h.Flank5Query[:0], h.Flank5Ref[:0], h.Flank5Match[:0]
	h.Flank3Query, h.Flank3Ref, h.Flank3Match = h.Flank3Query[:0], h.Flank3Ref[:0], h.Flank3Match[:0]
	h.QueryStart, h.QueryEnd, h.RefStart, h.RefEnd = 0, 0, 0, 0
	h.Score, h.Energy = 0, 0
	h.core = span{}
}

// load copies a traceback into the core lines.
func (h *Hit) load(t *align.Trace, score float64) {
	h.QueryAln = append(h.QueryAln, t.Query...)
	h.MatchAln = append(h.MatchAln, t.Match...)
	h.RefAln = append(h.RefAln, t.Ref...)
	h.QueryStart, h.QueryEnd = t.QueryStart, t.QueryEnd
	h.RefStart, h.RefEnd = t.RefStart, t.RefEnd
	h.core = span{t.RefStart, t.RefEnd}
	h.Score = score
}

// extend fills both flanks from the full sequences and uppercases the core. It
// returns how many flank positions on each side fell inside the reference.
func (h *Hit) extend(query, ref string) (utr3p, utr5p int) {
	for j := 0; j < h.QueryStart; j++ {
		h.Flank5Query = append(h.Flank5Query, seq.Lower(query[j]))
		if k := h.RefStart - (h.QueryStart - j); k >= 0 && k < len(ref) {
			h.Flank5Ref = append(h.Flank5Ref, seq.Lower(ref[k]))
			utr3p++
		} else {
			h.Flank5Ref = append(h.Flank5Ref, seq.Gap)
		}
		h.Flank5Match = append(h.Flank5Match, ' ')
	}
	for j := h.QueryEnd; j < len(query); j++ {
		h.Flank3Query = append(h.Flank3Query, seq.Lower(query[j]))
		if k := h.RefEnd + (j - h.QueryEnd); k >= 0 && k < len(ref) {
			h.Flank3Ref = append(h.Flank3Ref, seq.Lower(ref[k]))
			utr5p++
		} else {
			h.Flank3Ref = append(h.Flank3Ref, seq.Gap)
		}
		h.Flank3Match = append(h.Flank3Match, ' ')
	}
	seq.ToUpper(h.QueryAln)
	seq.ToUpper(h.RefAln)
	return utr3p, utr5p
}

// clone returns a Hit with its own storage, safe to keep after the scan buffers are reused.
func (h *Hit) clone() Hit {
	c := *h
	c.QueryAln = append([]byte(nil), h.QueryAln...)
	c.MatchAln = append([]byte(nil), h.MatchAln...)
	c.RefAln = append([]byte(nil), h.RefAln...)
	c.Flank5Query = append([]byte(nil), h.Flank5Query...)
	c.Flank5Ref = append([]byte(nil), h.Flank5Ref...)
	c.Flank5Match = append([]byte(nil), h.Flank5Match...)
	c.Flank3Query = append([]byte(nil), h.Flank3Query...)
	c.Flank3Ref = append([]byte(nil), h.Flank3Ref...)
	c.Flank3Match = append([]byte(nil), h.Flank3Match...)
	return c
}

// AlnLen is the number of aligned core columns.
func (h Hit) AlnLen() int { return len(h.QueryAln) }

// QueryLine is the full query line: 5' flank, core, 3' flank.
func (h Hit) QueryLine() string { return joinLine(h.Flank5Query, h.QueryAln, h.Flank3Query) }

// MatchLine is the match-symbol line aligned with QueryLine.
func (h Hit) MatchLine() string { return joinLine(h.Flank5Match, h.MatchAln, h.Flank3Match) }

// RefLine is the reference line aligned with QueryLine.
func (h Hit) RefLine() string { return joinLine(h.Flank5Ref, h.RefAln, h.Flank3Ref) }

func joinLine(a, b, c []byte) string {
	out := make([]byte, 0, len(a)+len(b)+len(c))
	out = append(out, a...)
	out = append(out, b...)
	return string(append(out, c...))
}

// seedMatch walks 3' flank + core + 5' flank of the query (and the parallel match
// symbols) over non-gap positions 2..8. The window must hold at least 7 paired and 7
// Watson–Crick columns and no query gap. q and m are scratch buffers.
func seedMatch(h *Hit, q, m []byte) (ok bool, qbuf, mbuf []byte) {
	q = append(append(append(q[:0], h.Flank3Query...), h.QueryAln...), h.Flank5Query...)
	m = append(append(append(m[:0], h.Flank3Match...), h.MatchAln...), h.Flank5Match...)

	pos, paired, perfect, gaps := 0, 0, 0, 0
	for j := range q {
		if q[j] != seq.Gap {
			pos++
		}
		if pos >= 2 && pos <= 8 {
			if m[j] != ' ' {
				paired++
			}
			if m[j] == '|' {
				perfect++
			}
			if q[j] == seq.Gap {
				gaps++
			}
		}
		if pos == 8 {
			break
		}
	}
	return paired >= 7 && perfect >= 7 && gaps == 0, q, m
}
