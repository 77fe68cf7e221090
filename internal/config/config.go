// Package config holds the run settings unmarshalled from viper: built-in
// defaults, an optional config file, MIRSCAN_* environment variables and
// command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"mirscan-core/scan"
	"mirscan/internal/logging"
	"mirscan/internal/output"
)

// EnvPrefix is prepended to every environment key (score-threshold → MIRSCAN_SCORE_THRESHOLD).
const EnvPrefix = "MIRSCAN"

// ErrInvalid marks configuration the run cannot start with.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root-level settings struct. Keys match the long flag names.
type Config struct {
	// FASTA inputs; "-" reads stdin
	Query     []string `mapstructure:"query"`
	Reference []string `mapstructure:"reference"`

	Format          string `mapstructure:"format"`
	Threads         int    `mapstructure:"threads"` // 0 = all CPUs
	NoMatchExitCode int    `mapstructure:"no-match-exit-code"`

	// scan gates
	ScoreThreshold float64 `mapstructure:"score-threshold"`
	MinAlignLen    int     `mapstructure:"min-align-len"`
	Strict         bool    `mapstructure:"strict"`
	Overlap        string  `mapstructure:"overlap"`
	EnergyGate     bool    `mapstructure:"energy-gate"`
	MaxEnergy      float64 `mapstructure:"max-energy"`
	MaxCells       int     `mapstructure:"max-cells"`

	// alignment scoring
	Scale         float64 `mapstructure:"scale"`
	Weight5p      int     `mapstructure:"weight-5p"`
	Match         float64 `mapstructure:"match"`
	Wobble        float64 `mapstructure:"wobble"`
	Mismatch      float64 `mapstructure:"mismatch"`
	GapOpen       float64 `mapstructure:"gap-open"`
	GapExtend     float64 `mapstructure:"gap-extend"`
	MaxCandidates int     `mapstructure:"max-candidates"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	Quiet     bool   `mapstructure:"quiet"`
}

// Defaults mirrors scan.DefaultConfig plus the run-level settings.
func Defaults() Config {
	sc := scan.DefaultConfig()
	return Config{
		Format:          output.FormatJSON,
		NoMatchExitCode: 1,
		ScoreThreshold:  sc.ScoreThreshold,
		MinAlignLen:     sc.MinAlignLen,
		Overlap:         sc.Overlap.String(),
		MaxEnergy:       sc.MaxEnergy,
		MaxCells:        sc.MaxCells,
		Scale:           sc.Align.Scale,
		Weight5p:        sc.Align.Weight5pLen,
		Match:           sc.Align.Match,
		Wobble:          sc.Align.Wobble,
		Mismatch:        sc.Align.Mismatch,
		GapOpen:         sc.Align.GapOpen,
		GapExtend:       sc.Align.GapExtend,
		MaxCandidates:   sc.Align.MaxCandidates,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// SetDefaults registers Defaults under their keys so viper knows every key,
// which AutomaticEnv needs for Unmarshal to see environment overrides.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	for k, val := range map[string]any{
		"query":              d.Query,
		"reference":          d.Reference,
		"format":             d.Format,
		"threads":            d.Threads,
		"no-match-exit-code": d.NoMatchExitCode,
		"score-threshold":    d.ScoreThreshold,
		"min-align-len":      d.MinAlignLen,
		"strict":             d.Strict,
		"overlap":            d.Overlap,
		"energy-gate":        d.EnergyGate,
		"max-energy":         d.MaxEnergy,
		"max-cells":          d.MaxCells,
		"scale":              d.Scale,
		"weight-5p":          d.Weight5p,
		"match":              d.Match,
		"wobble":             d.Wobble,
		"mismatch":           d.Mismatch,
		"gap-open":           d.GapOpen,
		"gap-extend":         d.GapExtend,
		"max-candidates":     d.MaxCandidates,
		"log-level":          d.LogLevel,
		"log-format":         d.LogFormat,
		"quiet":              d.Quiet,
	} {
		v.SetDefault(k, val)
	}
}

// Load reads file (if non-empty) into v, layers the environment on top and
// returns the validated Config.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first problem, wrapped in ErrInvalid.
func (c Config) Validate() error {
	if len(c.Query) == 0 {
		return invalid("no query file (use --query)")
	}
	if len(c.Reference) == 0 {
		return invalid("no reference file (use --reference)")
	}
	stdin := 0
	for _, p := range append(append([]string{}, c.Query...), c.Reference...) {
		if p == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return invalid("stdin (-) can feed only one input")
	}
	if !output.ValidFormat(c.Format) {
		return invalid("unknown output format %q (want %s)", c.Format, strings.Join(output.Formats, "|"))
	}
	if c.Threads < 0 {
		return invalid("threads must be >= 0 (got %d)", c.Threads)
	}
	if _, err := c.Level(); err != nil {
		return invalid("%v", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return invalid("unknown log format %q (want text|json)", c.LogFormat)
	}
	if _, err := c.ScanConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Level is the effective log level; Quiet raises it to error.
func (c Config) Level() (slog.Level, error) {
	l, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, err
	}
	if c.Quiet && l < slog.LevelError {
		l = slog.LevelError
	}
	return l, nil
}

// ScanConfig converts the run settings to the scanner's configuration.
// The candidate floor of the matrix builder follows the score threshold.
func (c Config) ScanConfig() (scan.Config, error) {
	rule, err := scan.ParseOverlapRule(c.Overlap)
	if err != nil {
		return scan.Config{}, err
	}
	sc := scan.DefaultConfig()
	sc.ScoreThreshold = c.ScoreThreshold
	sc.MinAlignLen = c.MinAlignLen
	sc.Strict = c.Strict
	sc.Overlap = rule
	sc.EnergyGate = c.EnergyGate
	sc.MaxEnergy = c.MaxEnergy
	sc.MaxCells = c.MaxCells

	sc.Align.Scale = c.Scale
	sc.Align.Weight5pLen = c.Weight5p
	sc.Align.Match = c.Match
	sc.Align.Wobble = c.Wobble
	sc.Align.Mismatch = c.Mismatch
	sc.Align.GapOpen = c.GapOpen
	sc.Align.GapExtend = c.GapExtend
	sc.Align.MinScore = c.ScoreThreshold
	sc.Align.MaxCandidates = c.MaxCandidates

	if err := sc.Validate(); err != nil {
		return scan.Config{}, err
	}
	return sc, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
