package scan

import (
	"log/slog"

	"mirscan-core/align"
	"mirscan-core/energy"
)

// tracer reconstructs one candidate into dst.
type tracer func(c align.Candidate, dst *align.Trace)

// postProcessor turns candidates into accepted hits for one scan. It owns the reused
// Hit, the overlap set and the running summary.
type postProcessor struct {
	cfg   Config
	est   energy.Estimator
	log   *slog.Logger
	trace tracer

	query, ref string // query in alignment orientation

	hit      Hit
	tr       *align.Trace
	overlaps *OverlapSet
	seedQ    []byte
	seedM    []byte

	sum Summary
	rb  *ReportBuilder
}

func newPostProcessor(cfg Config, est energy.Estimator, log *slog.Logger, tb tracer, query, ref string, rb *ReportBuilder) *postProcessor {
	q, r := len(query), len(ref)
	return &postProcessor{
		cfg:      cfg,
		est:      est,
		log:      log,
		trace:    tb,
		query:    query,
		ref:      ref,
		hit:      newHit(q, r),
		tr:       align.NewTrace(q + r),
		overlaps: NewOverlapSet(cfg.Overlap),
		seedQ:    make([]byte, 0, 2*q+r),
		seedM:    make([]byte, 0, 2*q+r),
		rb:       rb,
	}
}

// process runs one candidate through every gate and records it when accepted.
func (p *postProcessor) process(c align.Candidate) {
	if c.Score < p.cfg.ScoreThreshold {
		p.drop(c, "score")
		return
	}

	h := &p.hit
	h.reset()
	p.trace(c, p.tr)
	h.load(p.tr, c.Score)

	reason := ""
	good := p.overlaps.TryAdd(h.RefStart, h.RefEnd)
	if !good {
		reason = "overlap"
	}

	utr3p, utr5p := h.extend(p.query, p.ref)
	h.RefEnd += utr5p - 1
	h.RefStart -= utr3p

	if p.cfg.Strict {
		var seeded bool
		seeded, p.seedQ, p.seedM = seedMatch(h, p.seedQ, p.seedM)
		if !seeded && good {
			good, reason = false, "strict"
		}
	}

	// Flanks included: unaligned columns can still extend a helix.
	h.Energy = p.est.Estimate(h.QueryLine(), h.RefLine())

	switch {
	case h.AlnLen() < p.cfg.MinAlignLen:
		p.drop(c, "length")
	case !good:
		p.drop(c, reason)
	case p.cfg.EnergyGate && h.Energy > p.cfg.MaxEnergy:
		p.drop(c, "energy")
	default:
		p.sum.accept(h)
		p.rb.Add(h.clone())
	}
}

func (p *postProcessor) drop(c align.Candidate, reason string) {
	p.log.Debug("candidate rejected",
		"reason", reason,
		"score", c.Score,
		"query_end", c.QueryEnd,
		"ref_end", c.RefEnd)
}
