package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"hushcut/internal/config"
	"hushcut/internal/history"
	"hushcut/internal/logging"
	"hushcut/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		dirFlag        string
		outputFlag     string
		noiseFlag      float64
		minSilenceFlag float64
		paddingFlag    float64
		workersFlag    int
		failFastFlag   bool
		keepMerged     bool
		dryRun         bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Merge recordings, cut silence, and write the trimmed output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cmd, cfg, dirFlag, outputFlag, noiseFlag, minSilenceFlag, paddingFlag, workersFlag, failFastFlag); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			opts := []pipeline.Option{
				pipeline.WithDryRun(dryRun),
				pipeline.WithKeepMerged(keepMerged),
			}

			if cfg.History.Enabled && !dryRun {
				store, err := history.Open(cfg.History.Path)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer func() { _ = store.Close() }()
				opts = append(opts, pipeline.WithHistory(store))
			}

			var bar *progressbar.ProgressBar
			if !dryRun && isatty.IsTerminal(os.Stderr.Fd()) && cfg.Logging.Format == "console" {
				bar = progressbar.NewOptions(-1,
					progressbar.OptionSetDescription("encoding segments"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSpinnerType(14),
					progressbar.OptionClearOnFinish(),
				)
				opts = append(opts, pipeline.WithProgress(func(index int, err error) {
					_ = bar.Add(1)
				}))
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stats, runErr := pipeline.NewRunner(cfg, logger, opts...).Run(runCtx)
			if bar != nil {
				_ = bar.Finish()
			}
			if runErr != nil {
				return runErr
			}

			printRunSummary(cmd, stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory containing the timestamped recordings")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file name or path")
	cmd.Flags().Float64Var(&noiseFlag, "noise-db", 0, "Silence threshold in dB (negative)")
	cmd.Flags().Float64Var(&minSilenceFlag, "min-silence", 0, "Minimum silence duration in seconds")
	cmd.Flags().Float64Var(&paddingFlag, "padding", 0, "Padding kept around cuts in seconds")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent segment encodes (0 = auto)")
	cmd.Flags().BoolVar(&failFastFlag, "fail-fast", false, "Abort the run on the first segment failure")
	cmd.Flags().BoolVar(&keepMerged, "keep-merged", false, "Keep the merged intermediate file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the cut list without encoding")

	return cmd
}

func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, dir, output string, noise, minSilence, padding float64, workers int, failFast bool) error {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return err
		}
		cfg.Paths.WorkDir = expanded
	}
	if flags.Changed("output") {
		cfg.Paths.OutputFile = output
	}
	if flags.Changed("noise-db") {
		cfg.Detection.NoiseDB = noise
	}
	if flags.Changed("min-silence") {
		cfg.Detection.MinSilence = minSilence
	}
	if flags.Changed("padding") {
		cfg.Segments.Padding = padding
	}
	if flags.Changed("workers") {
		cfg.Segments.Workers = workers
	}
	if flags.Changed("fail-fast") {
		cfg.Segments.FailFast = failFast
	}
	return cfg.Validate()
}

func printRunSummary(cmd *cobra.Command, stats *pipeline.Stats) {
	out := cmd.OutOrStdout()

	if stats.NothingToCut {
		fmt.Fprintf(out, "No silence found in %s of input; nothing to cut.\n", formatSeconds(stats.OriginalSeconds))
		return
	}

	if stats.DryRun {
		rows := make([][]string, 0, len(stats.KeepIntervals))
		for i, keep := range stats.KeepIntervals {
			rows = append(rows, []string{
				strconv.Itoa(i),
				formatSeconds(keep.Start),
				formatSeconds(keep.End),
				formatSeconds(keep.Duration()),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Start", "End", "Duration"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
		))
		fmt.Fprintf(out, "Dry run: %d intervals, %s of %s kept (%.1f%% cut).\n",
			len(stats.KeepIntervals),
			formatSeconds(stats.FinalSeconds),
			formatSeconds(stats.OriginalSeconds),
			stats.ReductionPercent(),
		)
		return
	}

	fmt.Fprintf(out, "Wrote %s\n", stats.OutputPath)
	fmt.Fprintf(out, "  original: %s\n", formatSeconds(stats.OriginalSeconds))
	fmt.Fprintf(out, "  trimmed:  %s (-%.1f%%)\n", formatSeconds(stats.FinalSeconds), stats.ReductionPercent())
	fmt.Fprintf(out, "  segments: %d kept", stats.SegmentsKept)
	if stats.SegmentsFailed > 0 {
		fmt.Fprintf(out, ", %d failed and omitted", stats.SegmentsFailed)
	}
	fmt.Fprintf(out, "\n  elapsed:  %s\n", stats.Elapsed.Round(100*time.Millisecond))
}

func formatSeconds(seconds float64) string {
	duration := time.Duration(seconds * float64(time.Second))
	return duration.Round(10 * time.Millisecond).String()
}
