// core/align/traceback.go
package align

import "mirscan-core/seq"

// Trace is one reconstructed alignment. The three lines are in reading order and of
// equal length; coordinates are 0-based, start inclusive, end exclusive.
type Trace struct {
	Query []byte
	Match []byte
	Ref   []byte

	QueryStart, QueryEnd int
	RefStart, RefEnd     int
}

// NewTrace returns a Trace whose lines can hold n columns without growing.
func NewTrace(n int) *Trace {
	return &Trace{
		Query: make([]byte, 0, n),
		Match: make([]byte, 0, n),
		Ref:   make([]byte, 0, n),
	}
}

// Reset empties the lines, keeping their storage.
func (t *Trace) Reset() {
	t.Query = t.Query[:0]
	t.Match = t.Match[:0]
	t.Ref = t.Ref[:0]
	t.QueryStart, t.QueryEnd, t.RefStart, t.RefEnd = 0, 0, 0, 0
}

// Len is the number of alignment columns.
func (t *Trace) Len() int { return len(t.Query) }

// Traceback walks the predecessor planes from c (in the Match state) back to the cell
// whose Match predecessor is Stop and writes the alignment into dst. m is not modified.
func Traceback(m *Matrices, query, ref string, c Candidate, dst *Trace) {
	dst.Reset()
	i, j := c.QueryEnd, c.RefEnd
	st := Match
	for st != Stop && i > 0 && j > 0 {
		at := m.idx(i, j)
		switch st {
		case Match:
			dst.Query = append(dst.Query, query[i-1])
			dst.Match = append(dst.Match, m.kind[at].Symbol())
			dst.Ref = append(dst.Ref, ref[j-1])
			st = m.track[m.plane(int(Match))+at]
			i, j = i-1, j-1
		case GapQuery:
			dst.Query = append(dst.Query, seq.Gap)
			dst.Match = append(dst.Match, ' ')
			dst.Ref = append(dst.Ref, ref[j-1])
			st = m.track[m.plane(int(GapQuery))+at]
			j--
		case GapRef:
			dst.Query = append(dst.Query, query[i-1])
			dst.Match = append(dst.Match, ' ')
			dst.Ref = append(dst.Ref, seq.Gap)
			st = m.track[m.plane(int(GapRef))+at]
			i--
		}
	}
	reverse(dst.Query)
	reverse(dst.Match)
	reverse(dst.Ref)
	dst.QueryStart, dst.RefStart = i, j
	dst.QueryEnd, dst.RefEnd = c.QueryEnd, c.RefEnd
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
