package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/example/go-tonecheck/internal/audio"
	"github.com/example/go-tonecheck/internal/tone"
	"github.com/spf13/cobra"
)

func newWriteCmd() *cobra.Command {
	var out string
	var fades fadeOptions

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write the configured tone to a WAV file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			spec := cfg.Tone.Spec()
			if out == "" {
				out = defaultWAVName(spec)
			}

			data, err := renderWAV(spec, fades)
			if err != nil {
				return err
			}
			if err := writeWAVOutput(out, data, os.Stdout); err != nil {
				return err
			}
			if out != "-" {
				_, _ = fmt.Fprintf(os.Stderr, "wrote %s (%d bytes, %g Hz, %gs)\n", out, len(data), spec.Frequency, spec.Duration)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output WAV path ('-' for stdout; default test-tone-<freq>hz.wav)")
	registerFadeFlags(cmd, &fades)

	return cmd
}

func defaultWAVName(spec tone.Spec) string {
	return fmt.Sprintf("test-tone-%dhz.wav", int(math.Round(spec.Frequency)))
}

func renderWAV(spec tone.Spec, fades fadeOptions) ([]byte, error) {
	samples, err := tone.Synthesize(spec)
	if err != nil {
		return nil, err
	}
	return audio.EncodeWAV(fades.apply(samples, spec.SampleRate), spec.SampleRate)
}

func writeWAVOutput(outPath string, wavData []byte, stdout io.Writer) error {
	if outPath == "-" {
		if stdout == nil {
			return errors.New("stdout writer is nil")
		}
		_, err := stdout.Write(wavData)
		return err
	}
	return os.WriteFile(outPath, wavData, 0o644)
}
