package main

import (
	"errors"

	"github.com/example/go-tonecheck/internal/config"
	"github.com/example/go-tonecheck/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
	cfgLoaded bool
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "tonecheck",
		Short:         "Play and verify a known test tone",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := logging.Init(logging.Config{Level: loaded.LogLevel, Format: loaded.LogFormat}); err != nil {
				return err
			}
			activeCfg, cfgLoaded = loaded, true
			logging.Debugf("config loaded: tone=%+v playback=%+v", loaded.Tone, loaded.Playback)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newPlayCmd())
	cmd.AddCommand(newWriteCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newDevicesCmd())

	return cmd
}

func requireConfig() (config.Config, error) {
	if !cfgLoaded {
		return config.Config{}, errors.New("configuration not loaded")
	}
	return activeCfg, nil
}
