// core/fasta/records.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNoRecords is returned by ReadAll when the input holds no sequence.
var ErrNoRecords = errors.New("fasta: no records")

// ReadPathCtx opens `path` and emits every record in file order.
// Cancellation via ctx is honored between lines.
//
// emit is called for each record. Return a non-nil error to stop early.
func ReadPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return ReadCtx(ctx, rc, emit)
}

// ReadCtx parses FASTA from r. Lines before the first header form a record with an
// empty ID, so a bare sequence file is accepted as one record.
func ReadCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id, desc string
		header   bool
		seq      = make([]byte, 0, 1<<16)
	)

	flush := func() error {
		if !header && len(seq) == 0 {
			return nil
		}
		return emit(Record{ID: id, Desc: desc, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '>':
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			id, desc = parseHeader(line[1:])
			header = true
		case ';':
			// comment line
		default:
			seq = append(seq, bytes.TrimSpace(line)...)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadAll collects every record of path.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var out []Record
	err := ReadPathCtx(ctx, path, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoRecords)
	}
	return out, nil
}

func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
