package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/example/go-tonecheck/internal/config"
	"github.com/example/go-tonecheck/internal/doctor"
	"github.com/example/go-tonecheck/internal/playback"
	padev "github.com/example/go-tonecheck/internal/playback/portaudio"
	"github.com/spf13/cobra"
)

var probeOutputDevice = func(backend string) (string, error) {
	if backend == config.DeviceBackendOto {
		return "oto (device opened on first use)", nil
	}
	return padev.DefaultOutputName()
}

type doctorOptions struct {
	Beep   bool
	Stream bool
}

func newDoctorCmd() *cobra.Command {
	var opts doctorOptions

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local audio environment checks",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runDoctor(os.Stdout, os.Stderr, cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Beep, "beep", false, "Emit a short audible beep to probe the beep facility")
	cmd.Flags().BoolVar(&opts.Stream, "stream", false, "Check the output device used by generate even when play does not stream")

	return cmd
}

func runDoctor(stdout, stderr io.Writer, cfg config.Config, opts doctorOptions) error {
	_, _ = fmt.Fprintf(stdout, "device backend: %s\n", cfg.Playback.DeviceBackend)

	dcfg := doctor.Config{
		Tone:       cfg.Tone.Spec(),
		Strategies: cfg.Playback.Strategies,
		OutputDevice: func() (string, error) {
			return probeOutputDevice(cfg.Playback.DeviceBackend)
		},
		MediaPlayer: func() (string, error) {
			return describeMediaPlayer(cfg.Playback.PlayerCommand)
		},
		SkipOutputDevice: !opts.Stream && !slices.Contains(cfg.Playback.Strategies, config.StrategyStream),
		SkipMediaPlayer:  !slices.Contains(cfg.Playback.Strategies, config.StrategyMedia),
		TempDir:          cfg.Playback.TempDir,
	}
	if opts.Beep {
		dcfg.Beep = func() error { return beeper(cfg.Tone.Frequency, 200) }
	}

	result := doctor.Run(dcfg, stdout)

	if result.Failed() {
		for _, f := range result.Failures() {
			_, _ = fmt.Fprintf(stderr, "FAIL: %s\n", f)
		}

		return errors.New("doctor checks failed")
	}

	_, _ = fmt.Fprintln(stdout, "doctor checks passed")

	return nil
}

func describeMediaPlayer(command string) (string, error) {
	player, err := newMediaPlayer(command)
	if err != nil {
		return "", err
	}
	if cp, ok := player.(*playback.CommandPlayer); ok {
		return strings.Join(cp.Argv, " "), nil
	}
	return "WMPlayer.OCX", nil
}
