package scan

import (
	"fmt"
	"math"
	"strings"

	"mirscan-core/align"
)

// OverlapRule decides whether two accepted reference spans may touch.
type OverlapRule uint8

const (
	// OverlapInclusive treats spans as closed intervals: sharing a single
	// position is an overlap.
	OverlapInclusive OverlapRule = iota
	// OverlapExclusive lets spans touch at their boundary.
	OverlapExclusive
)

func (r OverlapRule) String() string {
	if r == OverlapExclusive {
		return "exclusive"
	}
	return "inclusive"
}

// ParseOverlapRule accepts "inclusive" or "exclusive" (case-insensitive).
func ParseOverlapRule(s string) (OverlapRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inclusive":
		return OverlapInclusive, nil
	case "exclusive":
		return OverlapExclusive, nil
	default:
		return 0, fmt.Errorf("unknown overlap rule %q (want inclusive|exclusive)", s)
	}
}

// Config is the full, immutable configuration of a Scanner.
type Config struct {
	ScoreThreshold float64 // candidates below are skipped
	MinAlignLen    int     // aligned core columns, gaps included
	Strict         bool    // require a perfect 2–8 seed
	Overlap        OverlapRule

	// EnergyGate drops hits with Energy > MaxEnergy.
	EnergyGate bool
	MaxEnergy  float64

	// MaxCells bounds (q+1)×(r+1); 0 means MaxArenaCells.
	MaxCells int

	Align align.Params
}

// MaxArenaCells is the largest matrix a scan can address; alignment origins are int32
// cell indices.
const MaxArenaCells = math.MaxInt32

// DefaultConfig mirrors the classic miRanda defaults.
func DefaultConfig() Config {
	return Config{
		ScoreThreshold: 140,
		MaxEnergy:      1.0,
		MaxCells:       1 << 28,
		Align:          align.DefaultParams(),
	}
}

func (c Config) cellLimit() int {
	if c.MaxCells == 0 {
		return MaxArenaCells
	}
	return c.MaxCells
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.ScoreThreshold < 0 {
		return invalid("score threshold must be >= 0 (got %g)", c.ScoreThreshold)
	}
	if c.MinAlignLen < 0 {
		return invalid("min alignment length must be >= 0 (got %d)", c.MinAlignLen)
	}
	if c.MaxCells < 0 || c.MaxCells > MaxArenaCells {
		return invalid("max cells must be in [0, %d] (got %d)", MaxArenaCells, c.MaxCells)
	}
	if c.Overlap > OverlapExclusive {
		return invalid("unknown overlap rule %d", c.Overlap)
	}
	if err := c.Align.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
