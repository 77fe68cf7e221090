// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"mirscan-core/scan"
	"mirscan/internal/output"
)

// StartFunc starts a report writer on out.
type StartFunc func(out io.Writer, bufSize int) (chan<- scan.Report, <-chan error)

var (
	mu       sync.RWMutex
	registry = map[string]StartFunc{}
)

func init() {
	Register(output.FormatJSON, StartJSONWriter)
	Register(output.FormatJSONL, StartJSONLWriter)
	Register(output.FormatText, StartTextWriter)
}

// Register binds a format name to a writer (last wins).
func Register(format string, fn StartFunc) {
	mu.Lock()
	defer mu.Unlock()
	registry[format] = fn
}

// Registered lists the known formats, sorted.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Start dispatches to the writer registered for format. An unknown format
// still returns a live channel pair: input is drained and the error reported.
func Start(out io.Writer, format string, bufSize int) (chan<- scan.Report, <-chan error) {
	mu.RLock()
	fn, ok := registry[format]
	mu.RUnlock()
	if ok {
		return fn(out, bufSize)
	}

	in := make(chan scan.Report, max(bufSize, 1))
	errCh := make(chan error, 1)
	go func() {
		for range in {
		}
		errCh <- fmt.Errorf("unknown output format %q (no writer registered)", format)
	}()
	return in, errCh
}
