// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"mirscan-core/fasta"
	"mirscan-core/scan"
	"mirscan-core/seq"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads  int           // concurrent scans (>=1)
	Logger   *slog.Logger  // nil discards
	Progress time.Duration // minimum gap between progress lines; 0 = 10s
}

// Stats counts what a run did.
type Stats struct {
	Pairs   int // pairs scanned to completion
	Skipped int // pairs rejected for bad input (logged, not fatal)
	Hits    int // accepted hits over all reports
}

type result struct {
	rep  scan.Report
	err  error
	pair string
}

// Run scans queries × every record of refFiles and calls visit with each report
// in input order. Pairs with an empty, invalid or oversized sequence are logged
// and skipped. The first fatal error (read failure, visit error, cancellation)
// stops the run and is returned.
func Run(
	parent context.Context,
	cfg Config,
	sc Scanner,
	queries []fasta.Record,
	refFiles []string,
	visit func(scan.Report) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	every := cfg.Progress
	if every <= 0 {
		every = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	// Slots are queued in submission order; the collector waits on each in turn.
	pending := make(chan chan result, cfg.Threads*2)

	var (
		st      Stats
		collect = make(chan error, 1)
		tick    = rate.Sometimes{Interval: every}
	)
	go func() {
		var cerr error
		for slot := range pending {
			res := <-slot
			if cerr != nil {
				continue
			}
			switch {
			case res.err == nil:
			case skippable(res.err):
				st.Skipped++
				log.Warn("pair skipped", "pair", res.pair, "err", res.err)
				continue
			default:
				cerr = res.err
				cancel()
				continue
			}
			st.Pairs++
			st.Hits += len(res.rep.Hits)
			if err := visit(res.rep); err != nil {
				cerr = err
				cancel()
				continue
			}
			tick.Do(func() {
				log.Info("scan progress", "pairs", st.Pairs, "hits", st.Hits, "skipped", st.Skipped)
			})
		}
		collect <- cerr
	}()

	// Sequences are normalized once here and shared by every pair that reads them.
	qseqs := make([]string, len(queries))
	for i, q := range queries {
		qseqs[i] = seq.Normalize(string(q.Seq))
	}

	feed := func(ref fasta.Record) error {
		rseq := seq.Normalize(string(ref.Seq))
		for i, q := range queries {
			slot := make(chan result, 1)
			p := scan.Pair{QueryID: q.ID, Query: qseqs[i], ReferenceID: ref.ID, Reference: rseq}
			select {
			case pending <- slot:
			case <-gctx.Done():
				return gctx.Err()
			}
			g.Go(func() error {
				rep, err := sc.Scan(gctx, p)
				slot <- result{rep: rep, err: err, pair: p.QueryID + "/" + p.ReferenceID}
				if err != nil && !skippable(err) {
					return err
				}
				return nil
			})
		}
		return nil
	}

	var ferr error
	for _, path := range refFiles {
		log.Info("scanning reference", "file", path, "queries", len(queries))
		if err := fasta.ReadPathCtx(gctx, path, feed); err != nil {
			ferr = fmt.Errorf("reference %s: %w", path, err)
			cancel()
			break
		}
	}

	werr := g.Wait()
	close(pending)
	cerr := <-collect

	switch {
	case parent.Err() != nil:
		return st, parent.Err()
	case cerr != nil:
		return st, cerr
	case ferr != nil && !errors.Is(ferr, context.Canceled):
		return st, ferr
	case werr != nil:
		return st, werr
	}
	return st, ferr
}

// skippable errors concern one pair's input, not the run.
func skippable(err error) bool {
	var se *scan.SequenceError
	var tl *scan.TooLargeError
	return errors.As(err, &se) || errors.As(err, &tl)
}
