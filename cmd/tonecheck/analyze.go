package main

import (
	"fmt"
	"io"
	"os"

	"github.com/example/go-tonecheck/internal/analyze"
	"github.com/example/go-tonecheck/internal/audio"
	"github.com/example/go-tonecheck/internal/config"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	Expect    float64
	Tolerance float64
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Report level and dominant frequency of a captured recording",
		Long: "Decodes a WAV, MP3 or Ogg Vorbis file and reports its format, level,\n" +
			"the dominant frequency inside the configured search band and how that\n" +
			"frequency evolves over five equal time segments.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runAnalyze(os.Stdout, args[0], cfg.Analyze, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.Expect, "expect", 440, "Fail unless the dominant frequency is within --tolerance of this value (Hz, 0 disables)")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 5, "Allowed deviation from --expect in Hz")

	return cmd
}

func runAnalyze(w io.Writer, path string, acfg config.AnalyzeConfig, opts analyzeOptions) error {
	clip, err := audio.DecodeFile(path)
	if err != nil {
		return err
	}

	rep, err := analyze.Run(clip, analyze.Options{
		Band:    analyze.Band{Low: acfg.BandLow, High: acfg.BandHigh},
		FFTSize: acfg.FFTSize,
	})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(w, "=== %s ===\n", path)
	if err := rep.Print(w); err != nil {
		return err
	}

	if rep.Silent() {
		_, _ = fmt.Fprintln(w, "Signal:      silent")
	}

	if opts.Expect > 0 {
		_, _ = fmt.Fprintf(w, "Expected:    %.1f Hz\n", opts.Expect)
		_, _ = fmt.Fprintf(w, "Error:       %.1f Hz\n", rep.FrequencyError(opts.Expect))
		if !rep.Matches(opts.Expect, opts.Tolerance) {
			_, _ = fmt.Fprintf(w, "Verdict:     FAIL (expected %g Hz ± %g)\n", opts.Expect, opts.Tolerance)
			return fmt.Errorf("dominant frequency %.2f Hz is not within %g Hz of %g Hz",
				rep.Dominant.Frequency, opts.Tolerance, opts.Expect)
		}
		_, _ = fmt.Fprintf(w, "Verdict:     PASS (expected %g Hz ± %g)\n", opts.Expect, opts.Tolerance)
	}

	return nil
}
