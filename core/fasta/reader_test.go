package fasta

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const plain = `>seq1 first sequence
ACGU
acgu
; a comment
>seq2
NNnn
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func compressed(t *testing.T, kind string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch kind {
	case "gz":
		w = gzip.NewWriter(&buf)
	case "zst":
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatalf("zstd: %v", err)
		}
		w = zw
	case "lz4":
		w = lz4.NewWriter(&buf)
	}
	if _, err := io.WriteString(w, plain); err != nil {
		t.Fatalf("write %s: %v", kind, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close %s: %v", kind, err)
	}
	return buf.Bytes()
}

func checkPlain(t *testing.T, recs []Record) {
	t.Helper()
	if len(recs) != 2 {
		t.Fatalf("want 2 records, got %d", len(recs))
	}
	if recs[0].ID != "seq1" || recs[0].Desc != "first sequence" || string(recs[0].Seq) != "ACGUacgu" {
		t.Fatalf("record 0: %+v", recs[0])
	}
	if recs[1].ID != "seq2" || string(recs[1].Seq) != "NNnn" {
		t.Fatalf("record 1: %+v", recs[1])
	}
}

func TestReadAllPlain(t *testing.T) {
	recs, err := ReadAll(context.Background(), writeFile(t, "x.fa", []byte(plain)))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	checkPlain(t, recs)
}

func TestReadAllCompressed(t *testing.T) {
	for _, kind := range []string{"gz", "zst", "lz4"} {
		t.Run(kind, func(t *testing.T) {
			data := compressed(t, kind)
			// detected by magic number, whatever the name
			recs, err := ReadAll(context.Background(), writeFile(t, "x.fa", data))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			checkPlain(t, recs)
		})
	}
}

func TestReadBareSequence(t *testing.T) {
	recs, err := ReadAll(context.Background(), writeFile(t, "x.txt", []byte("UGAGGUAG\nUAGGUUGU\n")))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "" || string(recs[0].Seq) != "UGAGGUAGUAGGUUGU" {
		t.Fatalf("got %+v", recs)
	}
}

func TestReadAllEmpty(t *testing.T) {
	_, err := ReadAll(context.Background(), writeFile(t, "x.fa", []byte("\n\n")))
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("want ErrNoRecords, got %v", err)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	_, err := ReadAll(context.Background(), filepath.Join(t.TempDir(), "nope.fa"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want not-exist, got %v", err)
	}
}

func TestReadCtxStopsOnEmitError(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := ReadCtx(context.Background(), strings.NewReader(plain), func(Record) error {
		n++
		return stop
	})
	if !errors.Is(err, stop) || n != 1 {
		t.Fatalf("err=%v n=%d", err, n)
	}
}

func TestReadAllStdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	recs, err := ReadAll(context.Background(), "-")
	if err != nil {
		t.Fatalf("ReadAll stdin: %v", err)
	}
	checkPlain(t, recs)
}

func TestReadAllCanceled(t *testing.T) {
	fn := writeFile(t, "x.fa", []byte(">s\nACGU\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ReadAll(ctx, fn); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
