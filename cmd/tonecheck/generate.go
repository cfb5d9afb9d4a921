package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/example/go-tonecheck/internal/audio"
	"github.com/example/go-tonecheck/internal/playback"
	"github.com/example/go-tonecheck/internal/tone"
	"github.com/spf13/cobra"
)

type fadeOptions struct {
	InMS  float64
	OutMS float64
}

// apply returns samples with the configured fades. Without fades samples is
// returned as is; otherwise the result is a new buffer.
func (f fadeOptions) apply(samples []int16, sampleRate int) []int16 {
	if f.InMS > 0 {
		samples = audio.FadeIn(samples, sampleRate, f.InMS)
	}
	if f.OutMS > 0 {
		samples = audio.FadeOut(samples, sampleRate, f.OutMS)
	}
	return samples
}

func registerFadeFlags(cmd *cobra.Command, f *fadeOptions) {
	cmd.Flags().Float64Var(&f.InMS, "fade-in-ms", 0, "Apply linear fade-in duration in milliseconds")
	cmd.Flags().Float64Var(&f.OutMS, "fade-out-ms", 0, "Apply linear fade-out duration in milliseconds")
}

func newGenerateCmd() *cobra.Command {
	var fades fadeOptions

	cmd := &cobra.Command{
		Use:   "generate [frequency] [duration]",
		Short: "Stream a sine tone straight to the output device",
		Long: "Synthesizes a sine tone and writes it to the default output device.\n" +
			"frequency is an integer in Hz, duration is in seconds; both default to the configured tone.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			spec, err := parseGenerateArgs(cfg.Tone.Spec(), args)
			if err != nil {
				return err
			}

			dev, err := newStreamDevice(cfg.Playback.DeviceBackend)
			if err != nil {
				return err
			}

			return runGenerate(cmd.Context(), os.Stdout, dev, spec, fades)
		},
	}

	registerFadeFlags(cmd, &fades)

	return cmd
}

// parseGenerateArgs applies the optional positional frequency (integer Hz)
// and duration (seconds) to base.
func parseGenerateArgs(base tone.Spec, args []string) (tone.Spec, error) {
	spec := base
	if len(args) > 0 {
		freq, err := strconv.Atoi(args[0])
		if err != nil {
			return tone.Spec{}, fmt.Errorf("invalid frequency %q: must be an integer", args[0])
		}
		spec.Frequency = float64(freq)
	}
	if len(args) > 1 {
		dur, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return tone.Spec{}, fmt.Errorf("invalid duration %q: must be a number", args[1])
		}
		spec.Duration = dur
	}
	if err := spec.Validate(); err != nil {
		return tone.Spec{}, err
	}
	return spec, nil
}

func runGenerate(ctx context.Context, w io.Writer, dev playback.Device, spec tone.Spec, fades fadeOptions) error {
	printToneBanner(w, "Tone Generator", spec)

	samples, err := tone.Synthesize(spec)
	if err != nil {
		return err
	}
	req := playback.NewRequestWithSamples(spec, fades.apply(samples, spec.SampleRate))

	_, _ = fmt.Fprintln(w, "Playing tone...")
	if err := playback.NewStreamStrategy(dev).Play(ctx, req); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "Tone finished.")

	return nil
}

func printToneBanner(w io.Writer, title string, spec tone.Spec) {
	_, _ = fmt.Fprintf(w, "=== %s ===\n", title)
	_, _ = fmt.Fprintf(w, "Frequency: %g Hz\n", spec.Frequency)
	_, _ = fmt.Fprintf(w, "Duration: %g seconds\n", spec.Duration)
	_, _ = fmt.Fprintln(w)
}

