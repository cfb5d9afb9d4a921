package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/example/go-tonecheck/internal/config"
	"github.com/example/go-tonecheck/internal/playback"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the configured tone, falling back across playback strategies",
		Long: "Tries each configured playback strategy in order (default: beep, then media)\n" +
			"and stops at the first that succeeds. Fails when every strategy fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runPlay(cmd.Context(), os.Stdout, cfg)
		},
	}

	return cmd
}

func runPlay(ctx context.Context, w io.Writer, cfg config.Config) error {
	spec := cfg.Tone.Spec()
	if err := spec.Validate(); err != nil {
		return err
	}

	strategies, err := buildStrategies(cfg)
	if err != nil {
		return err
	}

	printToneBanner(w, "Tone Player", spec)

	used, err := playback.NewChain(strategies...).Run(ctx, playback.NewRequest(spec))
	if err != nil {
		_, _ = fmt.Fprintln(w, "\nFailed to play audio")
		return err
	}

	_, _ = fmt.Fprintf(w, "\nTone playback completed (%s)\n", used)
	return nil
}
