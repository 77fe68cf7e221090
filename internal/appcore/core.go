// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"mirscan-core/fasta"
	"mirscan-core/scan"
	"mirscan/internal/pipeline"
	"mirscan/internal/writers"
)

// Exit codes shared by every entry point.
const (
	ExitOK       = 0
	ExitNoMatch  = 1
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

type Options struct {
	QueryFiles     []string
	ReferenceFiles []string

	Threads int

	NoMatchExitCode int
}

type WriterFactory interface {
	Start(out io.Writer, bufSize int) (chan<- scan.Report, <-chan error)
}

// Run loads every query, scans it against every reference record, streams the
// reports through wf and maps the outcome to an exit code.
func Run(
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	sc pipeline.Scanner,
	log *slog.Logger,
	wf WriterFactory,
) int {
	outw := bufio.NewWriter(stdout)

	queries, err := LoadQueries(parent, o.QueryFiles)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ExitCanceled
		}
		fmt.Fprintln(stderr, "error:", err)
		return ExitRuntime
	}
	log.Debug("queries loaded", "count", len(queries))

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	st, perr := pipeline.Run(ctx,
		pipeline.Config{Threads: thr, Logger: log},
		sc, queries, o.ReferenceFiles,
		func(r scan.Report) error {
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		fmt.Fprintln(stderr, "error:", werr)
		return ExitRuntime
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		fmt.Fprintln(stderr, "error:", e)
		return ExitRuntime
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return ExitCanceled
		}
		fmt.Fprintln(stderr, "error:", perr)
		return ExitRuntime
	}
	log.Info("done", "pairs", st.Pairs, "hits", st.Hits, "skipped", st.Skipped)
	if st.Hits == 0 {
		return o.NoMatchExitCode
	}
	return ExitOK
}

// LoadQueries reads every record of every query file, in order.
func LoadQueries(ctx context.Context, paths []string) ([]fasta.Record, error) {
	var out []fasta.Record
	for _, p := range paths {
		recs, err := fasta.ReadAll(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", p, err)
		}
		out = append(out, recs...)
	}
	return out, nil
}
