package scan

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"mirscan-core/align"
	"mirscan-core/seq"
)

// ErrEmptySequence is returned when a query or reference is empty after normalization.
// It is the same value as seq.ErrEmpty.
var ErrEmptySequence = seq.ErrEmpty

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid scan config")

// SequenceError reports which input of a pair failed validation.
type SequenceError struct {
	Which string // "query" or "reference"
	ID    string
	Err   error
}

func (e *SequenceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q: %v", e.Which, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Which, e.Err)
}

func (e *SequenceError) Unwrap() error { return e.Err }

// TooLargeError is returned before allocation when the matrices of a pair would
// exceed Config.MaxCells.
type TooLargeError struct {
	QueryLen, ReferenceLen int
	Cells, Limit           int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("scan: %d×%d alignment needs %s of matrices (%s cells), limit %s",
		e.QueryLen, e.ReferenceLen,
		humanize.IBytes(uint64(e.Cells)*align.BytesPerCell),
		humanize.Comma(int64(e.Cells)),
		humanize.IBytes(uint64(e.Limit)*align.BytesPerCell))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
