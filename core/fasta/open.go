// core/fasta/open.go
package fasta

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// openReader opens path ("-" is stdin) and transparently decompresses gzip, zstd
// and lz4, detected by magic number or by .gz/.zst/.lz4 suffix.
func openReader(path string) (io.ReadCloser, error) {
	var (
		src    io.Reader
		closer io.Closer = io.NopCloser(nil)
	)
	if path == "-" {
		src = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closer = fh, fh
	}
	return decompress(src, closer, path)
}

func decompress(src io.Reader, closer io.Closer, name string) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(src, 64*1024)
	sig, _ := br.Peek(4)

	switch {
	case bytes.HasPrefix(sig, magicGzip) || strings.HasSuffix(name, ".gz"):
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
	case bytes.HasPrefix(sig, magicZstd) || strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		rc := zr.IOReadCloser()
		return &multiReadCloser{Reader: rc, closers: []io.Closer{rc, closer}}, nil
	case bytes.HasPrefix(sig, magicLZ4) || strings.HasSuffix(name, ".lz4"):
		return &multiReadCloser{Reader: lz4.NewReader(br), closers: []io.Closer{closer}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{closer}}, nil
}
