package writers

import (
	"io"

	"mirscan-core/scan"
	"mirscan/internal/output"
)

// StartJSONWriter buffers every report and writes one indented JSON array
// when the input closes.
func StartJSONWriter(out io.Writer, bufSize int) (chan<- scan.Report, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan scan.Report, bufSize)
	errCh := make(chan error, 1)

	go func() {
		buf := []scan.Report{}
		for r := range in {
			buf = append(buf, r)
		}
		err := output.WriteJSON(out, buf)
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}

// StartTextWriter renders each report as soon as it arrives.
func StartTextWriter(out io.Writer, bufSize int) (chan<- scan.Report, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan scan.Report, bufSize)
	errCh := make(chan error, 1)

	go func() {
		err := output.StreamText(out, in)
		for range in {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}
