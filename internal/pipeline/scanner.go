// internal/pipeline/scanner.go
package pipeline

import (
	"context"

	"mirscan-core/scan"
)

// Scanner is the minimal capability the pipeline needs.
// *scan.Scanner and fakes in tests satisfy it.
type Scanner interface {
	Scan(ctx context.Context, p scan.Pair) (scan.Report, error)
}

var _ Scanner = (*scan.Scanner)(nil)
