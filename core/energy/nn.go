// core/energy/nn.go
// Nearest-neighbor free energy for RNA duplexes (Turner 2004 Watson–Crick stacks, 37 °C).
// Units: kcal/mol. More negative = more stable.
//
// Steps:
//  1) Split the aligned columns into helices (maximal runs of paired columns).
//  2) Each helix of two or more pairs contributes its stacks plus terminal AU/GU penalties.
//  3) Initiation is paid once; unpaired stretches between helices are bulges or internal loops.
//
// This package has no app/output deps; scan can import it cleanly.

package energy

import "mirscan-core/seq"

// Estimator scores the stability of an aligned duplex. queryAln is the query line
// (3'→5'), refAln the reference line (5'→3'); both of equal length, '-' for gaps.
// Case is ignored, so lowercase flank columns count like core columns.
type Estimator interface {
	Estimate(queryAln, refAln string) float64
}

// Watson–Crick stacks, reference 5'→3' over query 3'→5'.
// Xia et al. (1998) / Turner 2004.
var stackParams = map[string]float64{
	"AA/UU": -0.93,
	"AU/UA": -1.10,
	"UA/AU": -1.33,
	"CU/GA": -2.08,
	"CA/GU": -2.11,
	"GU/CA": -2.24,
	"GA/CU": -2.35,
	"CG/GC": -2.36,
	"GG/CC": -3.26,
	"GC/CG": -3.42,
}

// Params are the non-stack terms of the model.
type Params struct {
	Initiation  float64 // once per duplex
	TerminalAU  float64 // per helix end closed by A·U or G·U
	WobbleStack float64 // any stack containing a G·U pair
	Bulge1      float64 // single unpaired base on one strand
	BulgeBase   float64 // longer bulges: BulgeBase + BulgePerNt·n
	BulgePerNt  float64
	LoopBase    float64 // internal loops: LoopBase + LoopPerNt·n (n = unpaired bases on both strands)
	LoopPerNt   float64
}

// DefaultParams returns the 37 °C parameter set.
func DefaultParams() Params {
	return Params{
		Initiation:  4.09,
		TerminalAU:  0.45,
		WobbleStack: -0.5,
		Bulge1:      3.8,
		BulgeBase:   2.8,
		BulgePerNt:  0.4,
		LoopBase:    0.5,
		LoopPerNt:   0.5,
	}
}

// NearestNeighbor is the default Estimator.
type NearestNeighbor struct {
	P Params
}

// New returns a NearestNeighbor estimator with DefaultParams.
func New() *NearestNeighbor { return &NearestNeighbor{P: DefaultParams()} }

// helix is a run of paired columns [start, end).
type helix struct{ start, end int }

// Estimate implements Estimator. Returns 0 when no two adjacent columns are paired.
func (nn *NearestNeighbor) Estimate(queryAln, refAln string) float64 {
	n := len(queryAln)
	if len(refAln) < n {
		n = len(refAln)
	}
	q := []byte(queryAln[:n])
	r := []byte(refAln[:n])
	seq.ToUpper(q)
	seq.ToUpper(r)

	paired := func(k int) bool {
		return q[k] != seq.Gap && r[k] != seq.Gap && seq.Pairs(q[k], r[k]) != seq.NoPair
	}

	var hs []helix
	for k := 0; k < n; {
		if !paired(k) {
			k++
			continue
		}
		s := k
		for k < n && paired(k) {
			k++
		}
		if k-s >= 2 {
			hs = append(hs, helix{s, k})
		}
	}
	if len(hs) == 0 {
		return 0
	}

	p := nn.P
	dg := p.Initiation
	for x, h := range hs {
		for k := h.start; k < h.end-1; k++ {
			dg += nn.stack(r[k:k+2], q[k:k+2])
		}
		if terminalAU(q[h.start], r[h.start]) {
			dg += p.TerminalAU
		}
		if terminalAU(q[h.end-1], r[h.end-1]) {
			dg += p.TerminalAU
		}
		if x > 0 {
			dg += nn.loop(q[hs[x-1].end:h.start], r[hs[x-1].end:h.start])
		}
	}
	return dg
}

func (nn *NearestNeighbor) stack(top2, bot2 []byte) float64 {
	if seq.Pairs(bot2[0], top2[0]) == seq.Wobble || seq.Pairs(bot2[1], top2[1]) == seq.Wobble {
		return nn.P.WobbleStack
	}
	key := string(top2) + "/" + string(bot2)
	if v, ok := stackParams[key]; ok {
		return v
	}
	// The same stack read from the other strand.
	if v, ok := stackParams[reverse2(bot2)+"/"+reverse2(top2)]; ok {
		return v
	}
	return 0
}

// loop prices the unpaired columns between two helices.
func (nn *NearestNeighbor) loop(q, r []byte) float64 {
	var qn, rn int
	for k := range q {
		if q[k] != seq.Gap {
			qn++
		}
		if r[k] != seq.Gap {
			rn++
		}
	}
	p := nn.P
	switch {
	case qn == 0 || rn == 0:
		b := qn + rn
		if b == 1 {
			return p.Bulge1
		}
		return p.BulgeBase + p.BulgePerNt*float64(b)
	default:
		return p.LoopBase + p.LoopPerNt*float64(qn+rn)
	}
}

func terminalAU(a, b byte) bool {
	switch seq.Pairs(a, b) {
	case seq.Wobble:
		return true
	case seq.WatsonCrick:
		return a == 'A' || a == 'U'
	}
	return false
}

func reverse2(b []byte) string { return string([]byte{b[1], b[0]}) }
