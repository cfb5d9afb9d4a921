package main

import (
	"io"
	"os"

	padev "github.com/example/go-tonecheck/internal/playback/portaudio"
	"github.com/spf13/cobra"
)

var listDevices = padev.ListDevices

func newDevicesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List audio output devices",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDevices(os.Stdout, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include input-only devices")

	return cmd
}

func runDevices(w io.Writer, all bool) error {
	devices, err := listDevices()
	if err != nil {
		return err
	}
	padev.PrintDevices(w, devices, all)
	return nil
}
