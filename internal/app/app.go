// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mirscan-core/scan"
	"mirscan/internal/appcore"
	"mirscan/internal/config"
	"mirscan/internal/logging"
	"mirscan/internal/version"
)

// usageError marks failures that exit with appcore.ExitUsage.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// RunContext runs one mirscan invocation and returns its exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	code := appcore.ExitOK
	cmd := newRootCmd(stdout, stderr, &code)
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(parent); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, "Run 'mirscan --help' for usage.")
		}
		return appcore.ExitUsage
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// newRootCmd builds a fresh command tree per call so runs share no flag state.
func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var cfgFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "mirscan [flags] [QUERY.fa REFERENCE.fa]",
		Short: "Scan reference sequences for microRNA binding sites",
		Long: `mirscan aligns every query (a microRNA) against every reference record
(a 3' UTR) with a seed-weighted local alignment, filters the candidate sites
and reports them with a duplex free energy estimate.

Inputs may be plain, gzip, zstd or lz4 FASTA; "-" reads stdin.
Every flag can also be set in --config or as MIRSCAN_<FLAG> (dashes become underscores).`,
		Example: `  mirscan -q mirna.fa -r utr.fa
  mirscan mirna.fa utr.fa.gz --strict --format text
  MIRSCAN_SCORE_THRESHOLD=120 mirscan -q mirna.fa -r utr.fa -f jsonl`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return usageError{fmt.Errorf("want QUERY and REFERENCE files or none, got %d args", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if len(args) == 2 {
				if !cmd.Flags().Changed("query") {
					v.Set("query", []string{args[0]})
				}
				if !cmd.Flags().Changed("reference") {
					v.Set("reference", []string{args[1]})
				}
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return usageError{err}
			}
			*code = execute(cmd.Context(), cfg, stdout, stderr)
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	d := config.Defaults()
	f := cmd.Flags()
	f.SortFlags = false
	f.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	f.StringSliceP("query", "q", nil, "query FASTA file(s), e.g. microRNAs")
	f.StringSliceP("reference", "r", nil, "reference FASTA file(s), e.g. 3' UTRs")
	f.StringP("format", "f", d.Format, "output format: json|jsonl|text")
	f.IntP("threads", "t", d.Threads, "concurrent scans (0 = all CPUs)")
	f.Int("no-match-exit-code", d.NoMatchExitCode, "exit code when no hit is reported")

	f.Float64P("score-threshold", "s", d.ScoreThreshold, "minimum alignment score")
	f.IntP("min-align-len", "l", d.MinAlignLen, "minimum aligned core length")
	f.Bool("strict", d.Strict, "require a perfect seed (query positions 2-8)")
	f.String("overlap", d.Overlap, "overlap rule for accepted sites: inclusive|exclusive")
	f.Bool("energy-gate", d.EnergyGate, "drop hits with energy above --max-energy")
	f.Float64P("max-energy", "e", d.MaxEnergy, "energy cutoff in kcal/mol (with --energy-gate)")
	f.Int("max-cells", d.MaxCells, "largest (query+1)*(reference+1) matrix to allocate (0 = arena maximum, 2^31-1)")

	f.Float64("scale", d.Scale, "score multiplier for the query's 5' seed rows")
	f.Int("weight-5p", d.Weight5p, "length of the weighted 5' seed region")
	f.Float64("match", d.Match, "Watson-Crick pair score")
	f.Float64("wobble", d.Wobble, "G:U wobble pair score")
	f.Float64("mismatch", d.Mismatch, "mismatch score")
	f.Float64("gap-open", d.GapOpen, "gap open penalty (negative)")
	f.Float64("gap-extend", d.GapExtend, "gap extend penalty (negative)")
	f.Int("max-candidates", d.MaxCandidates, "cap on candidate endpoints per scan (0 = no cap)")

	f.String("log-level", d.LogLevel, "log level: debug|info|warn|error")
	f.String("log-format", d.LogFormat, "log format: text|json")
	f.Bool("quiet", d.Quiet, "only log errors")
	return cmd
}

func execute(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) int {
	level, _ := cfg.Level()
	log, err := logging.New(stderr, cfg.LogFormat, level)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return appcore.ExitUsage
	}
	sc, err := cfg.ScanConfig()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return appcore.ExitUsage
	}
	scanner, err := scan.New(sc, scan.WithLogger(log))
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return appcore.ExitUsage
	}
	log.Debug("configuration",
		"score_threshold", sc.ScoreThreshold, "strict", sc.Strict, "overlap", sc.Overlap.String(),
		"scale", sc.Align.Scale, "weight_5p", sc.Align.Weight5pLen)

	return appcore.Run(ctx, stdout, stderr,
		appcore.Options{
			QueryFiles:      cfg.Query,
			ReferenceFiles:  cfg.Reference,
			Threads:         cfg.Threads,
			NoMatchExitCode: cfg.NoMatchExitCode,
		},
		scanner, log, appcore.NewFormatWriterFactory(cfg.Format),
	)
}
