// core/align/params.go
package align

import (
	"errors"
	"fmt"
)

// Params holds the scoring scheme and the candidate cutoffs of the matrix builder.
type Params struct {
	Match    float64 // Watson–Crick pair
	Wobble   float64 // G·U pair
	Mismatch float64 // anything else, including N

	GapOpen   float64 // first gap column (negative)
	GapExtend float64 // each further gap column (negative)

	// Rows in the last Weight5pLen positions of the query (which is aligned 3'→5',
	// so these hold the 5' end of the RNA) have their pair score multiplied by Scale.
	Scale       float64
	Weight5pLen int

	MinScore      float64 // endpoints below this are never reported
	MaxCandidates int     // 0 = bounded only by query×reference
}

// DefaultParams returns the miRanda-style scoring scheme.
func DefaultParams() Params {
	return Params{
		Match:       5,
		Wobble:      2,
		Mismatch:    -3,
		GapOpen:     -9,
		GapExtend:   -4,
		Scale:       4.0,
		Weight5pLen: 8,
		MinScore:    140,
	}
}

// Validate checks parameter sanity.
func (p Params) Validate() error {
	if p.Scale <= 0 {
		return errors.New("align: scale must be > 0")
	}
	if p.GapOpen >= 0 || p.GapExtend >= 0 {
		return fmt.Errorf("align: gap penalties must be negative (open=%g extend=%g)", p.GapOpen, p.GapExtend)
	}
	if p.Weight5pLen < 0 {
		return errors.New("align: weight-5p length must be >= 0")
	}
	if p.MaxCandidates < 0 {
		return errors.New("align: max candidates must be >= 0")
	}
	return nil
}

// SplitPoint returns the last unweighted query row for a query of length n.
// Rows i > SplitPoint (1-based) are scaled.
func (p Params) SplitPoint(n int) int {
	s := n - p.Weight5pLen
	if s < 0 {
		return 0
	}
	if s > n {
		return n
	}
	return s
}
