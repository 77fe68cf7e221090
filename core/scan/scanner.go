// core/scan/scanner.go
// One query/reference scan: validate, allocate one arena, score, build candidates,
// post-process them in discovery order, finalize the digest, release.
//
// Scans share no mutable state; a Scanner may be used from many goroutines.

package scan

import (
	"context"
	"fmt"
	"log/slog"

	"mirscan-core/align"
	"mirscan-core/energy"
	"mirscan-core/seq"
)

// Pair is one query (5'→3') against one reference (5'→3').
type Pair struct {
	QueryID     string
	Query       string
	ReferenceID string
	Reference   string
}

type phase uint8

const (
	phaseInit phase = iota
	phaseMatrixBuilt
	phaseScanning
	phaseFinalized
	phaseReleased
)

func (p phase) String() string {
	return [...]string{"init", "matrix-built", "scanning", "finalized", "released"}[p]
}

// Scanner runs scans with a fixed configuration.
type Scanner struct {
	cfg     Config
	est     energy.Estimator
	log     *slog.Logger
	onPhase func(phase)
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithLogger routes per-candidate and per-scan debug logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEstimator replaces the nearest-neighbor stability model.
func WithEstimator(e energy.Estimator) Option {
	return func(s *Scanner) {
		if e != nil {
			s.est = e
		}
	}
}

// New validates cfg and returns a Scanner.
func New(cfg Config, opts ...Option) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scanner{
		cfg: cfg,
		est: energy.New(),
		log: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Config returns the scanner's configuration.
func (s *Scanner) Config() Config { return s.cfg }

// arena owns every buffer of one scan.
type arena struct {
	m     *align.Matrices
	cands []align.Candidate
	pp    *postProcessor
	phase phase
	hook  func(phase)
}

func (a *arena) advance(to phase) {
	if to != a.phase+1 {
		panic(fmt.Sprintf("scan: illegal transition %s -> %s", a.phase, to))
	}
	a.phase = to
	if a.hook != nil {
		a.hook(to)
	}
}

func (a *arena) release() {
	if a.phase == phaseReleased {
		return
	}
	a.m, a.cands, a.pp = nil, nil, nil
	a.phase = phaseReleased
	if a.hook != nil {
		a.hook(phaseReleased)
	}
}

// Scan runs one pair to completion. On error the Report is the zero value.
func (s *Scanner) Scan(ctx context.Context, p Pair) (Report, error) {
	query, err := seq.Validate(p.Query)
	if err != nil {
		return Report{}, &SequenceError{Which: "query", ID: p.QueryID, Err: err}
	}
	ref, err := seq.Validate(p.Reference)
	if err != nil {
		return Report{}, &SequenceError{Which: "reference", ID: p.ReferenceID, Err: err}
	}
	q, r := len(query), len(ref)
	if cells, limit := (q+1)*(r+1), s.cfg.cellLimit(); cells > limit {
		return Report{}, &TooLargeError{QueryLen: q, ReferenceLen: r, Cells: cells, Limit: limit}
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	// Aligned 3'→5' against the reference.
	oriented := seq.Reverse(query)

	a := &arena{hook: s.onPhase}
	defer a.release()

	a.m = align.NewMatrices(q, r)
	align.ScoreTable(a.m, oriented, ref, s.cfg.Align)
	a.cands = align.Build(a.m, s.cfg.Align)
	a.advance(phaseMatrixBuilt)

	rb := NewReportBuilder(p.QueryID, p.ReferenceID, q, r)
	m := a.m
	tb := func(c align.Candidate, dst *align.Trace) { align.Traceback(m, oriented, ref, c, dst) }
	a.pp = newPostProcessor(s.cfg, s.est, s.log, tb, oriented, ref, rb)

	a.advance(phaseScanning)
	for i := range a.cands {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		a.pp.process(a.cands[i])
		a.cands[i] = align.Candidate{}
	}

	rep := rb.Build(a.pp.sum)
	a.advance(phaseFinalized)

	s.log.Debug("scan complete",
		"query", p.QueryID,
		"reference", p.ReferenceID,
		"candidates", len(a.cands),
		"hits", len(rep.Hits),
		"ok", rep.Digest.OK)
	return rep, nil
}
