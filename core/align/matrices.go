// core/align/matrices.go
package align

import "mirscan-core/seq"

// State is one of the three alignment states, or Stop.
type State uint8

const (
	Stop     State = iota
	Match          // query base against reference base
	GapQuery       // gap in the query line, reference advances
	GapRef         // gap in the reference line, query advances
)

func (s State) String() string {
	switch s {
	case Match:
		return "match"
	case GapQuery:
		return "gap-query"
	case GapRef:
		return "gap-ref"
	default:
		return "stop"
	}
}

// plane 0 of val/track is the "best" plane; planes 1..3 are indexed by State.
const (
	planeBest = 0
	numPlanes = 4
)

// BytesPerCell is the arena footprint of one (i, j) cell.
const BytesPerCell = numPlanes*8 + numPlanes + 3*4 + 8 + 1

// Matrices is the dynamic-programming arena for one query/reference pair.
// All planes are (q+1)×(r+1), row-major by query index. Row and column zero stay
// zero/Stop: a local alignment may start anywhere at no cost.
type Matrices struct {
	rows, cols int

	val    []float64      // Best, Match, GapQuery, GapRef
	track  []State        // best source, Match pred, GapQuery pred, GapRef pred
	origin []int32        // start cell of the path through each state (Match, GapQuery, GapRef)
	score  []float64      // pairwise score table
	kind   []seq.PairKind // pair class for match symbols
}

// NewMatrices allocates the arena for a query of length q and a reference of length r.
func NewMatrices(q, r int) *Matrices {
	rows, cols := q+1, r+1
	n := rows * cols
	return &Matrices{
		rows:   rows,
		cols:   cols,
		val:    make([]float64, numPlanes*n),
		track:  make([]State, numPlanes*n),
		origin: make([]int32, 3*n),
		score:  make([]float64, n),
		kind:   make([]seq.PairKind, n),
	}
}

// Dims returns the query and reference lengths the arena was built for.
func (m *Matrices) Dims() (q, r int) { return m.rows - 1, m.cols - 1 }

func (m *Matrices) idx(i, j int) int { return i*m.cols + j }

func (m *Matrices) plane(p int) int { return p * m.rows * m.cols }

// Value returns the score held by state s (or the best score for Stop) at (i, j).
func (m *Matrices) Value(s State, i, j int) float64 {
	return m.val[m.plane(int(s))+m.idx(i, j)]
}

// BestState returns the state holding the best score at (i, j); Stop when it is 0.
func (m *Matrices) BestState(i, j int) State {
	return m.track[m.plane(planeBest)+m.idx(i, j)]
}

// Pred returns the predecessor state recorded for state s at (i, j).
func (m *Matrices) Pred(s State, i, j int) State {
	return m.track[m.plane(int(s))+m.idx(i, j)]
}

// Score returns the pair score at 1-based (i, j).
func (m *Matrices) Score(i, j int) float64 { return m.score[m.idx(i, j)] }
