package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

type rec struct {
	N int `json:"n"`
}

func never(error) bool { return false }

func TestStartWritesOneLinePerValue(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[int](&buf, 2, func(enc *json.Encoder, n int) error {
		return enc.Encode(rec{N: n})
	}, never)
	for i := range 3 {
		in <- i
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("done: %v", err)
	}
	if got, want := buf.String(), "{\"n\":0}\n{\"n\":1}\n{\"n\":2}\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestStartDrainsAfterError(t *testing.T) {
	boom := errors.New("boom")
	in, done := Start[int](io.Discard, 1, func(*json.Encoder, int) error { return boom }, never)
	for i := range 10 {
		in <- i // must not block once the encoder has failed
	}
	close(in)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

type brokenWriter struct{}

var errPipe = errors.New("pipe")

func (brokenWriter) Write([]byte) (int, error) { return 0, errPipe }

func TestStartSuppressesBrokenPipe(t *testing.T) {
	in, done := Start[int](brokenWriter{}, 1, func(enc *json.Encoder, n int) error {
		return enc.Encode(n)
	}, func(err error) bool { return errors.Is(err, errPipe) })
	in <- 1
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe should be quiet, got %v", err)
	}
}
