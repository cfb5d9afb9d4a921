package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/go-tonecheck/internal/tone"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Tone      ToneConfig     `mapstructure:"tone"`
	Playback  PlaybackConfig `mapstructure:"playback"`
	Analyze   AnalyzeConfig  `mapstructure:"analyze"`
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
}

type ToneConfig struct {
	Frequency  float64 `mapstructure:"frequency"`
	Duration   float64 `mapstructure:"duration"`
	SampleRate int     `mapstructure:"sample_rate"`
}

type PlaybackConfig struct {
	Strategies    []string      `mapstructure:"strategies"`
	DeviceBackend string        `mapstructure:"device_backend"`
	MediaGrace    time.Duration `mapstructure:"media_grace"`
	TempDir       string        `mapstructure:"temp_dir"`
	PlayerCommand string        `mapstructure:"player_command"`
}

type AnalyzeConfig struct {
	BandLow  float64 `mapstructure:"band_low"`
	BandHigh float64 `mapstructure:"band_high"`
	FFTSize  int     `mapstructure:"fft_size"`
}

// Spec returns the tone described by the config.
func (c ToneConfig) Spec() tone.Spec {
	return tone.Spec{
		Frequency:  c.Frequency,
		Duration:   c.Duration,
		SampleRate: c.SampleRate,
	}
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Tone: ToneConfig{
			Frequency:  tone.DefaultFrequency,
			Duration:   tone.DefaultDuration,
			SampleRate: tone.DefaultSampleRate,
		},
		Playback: PlaybackConfig{
			Strategies:    []string{StrategyBeep, StrategyMedia},
			DeviceBackend: DeviceBackendPortAudio,
			MediaGrace:    time.Second,
			TempDir:       "",
			PlayerCommand: "",
		},
		Analyze: AnalyzeConfig{
			BandLow:  400,
			BandHigh: 480,
			FFTSize:  8192,
		},
		LogLevel:  "info",
		LogFormat: "console",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Float64("tone-frequency", defaults.Tone.Frequency, "Tone frequency in Hz")
	fs.Float64("tone-duration", defaults.Tone.Duration, "Tone duration in seconds")
	fs.Int("tone-sample-rate", defaults.Tone.SampleRate, "PCM sample rate in Hz")
	fs.StringSlice("playback-strategies", defaults.Playback.Strategies, "Ordered playback strategies for play (beep|media|stream)")
	fs.String("playback-device-backend", defaults.Playback.DeviceBackend, "Output device backend for streamed playback (portaudio|oto)")
	fs.Duration("playback-media-grace", defaults.Playback.MediaGrace, "Extra wait after the tone for media player startup")
	fs.String("playback-temp-dir", defaults.Playback.TempDir, "Directory for temporary WAV files (default: OS temp dir)")
	fs.String("playback-player-command", defaults.Playback.PlayerCommand, "External WAV player command on non-Windows systems")
	fs.Float64("analyze-band-low", defaults.Analyze.BandLow, "Lower bound of the frequency search band in Hz")
	fs.Float64("analyze-band-high", defaults.Analyze.BandHigh, "Upper bound of the frequency search band in Hz")
	fs.Int("analyze-fft-size", defaults.Analyze.FFTSize, "DFT window size in samples")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("log-format", defaults.LogFormat, "Log format (console|json)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("TONECHECK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tonecheck")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	backend, err := NormalizeDeviceBackend(cfg.Playback.DeviceBackend)
	if err != nil {
		return Config{}, err
	}
	cfg.Playback.DeviceBackend = backend

	strategies, err := NormalizeStrategies(cfg.Playback.Strategies)
	if err != nil {
		return Config{}, err
	}
	cfg.Playback.Strategies = strategies

	return cfg, nil
}

// flagKeys maps config keys to the flag names registered by RegisterFlags.
var flagKeys = map[string]string{
	"tone.frequency":          "tone-frequency",
	"tone.duration":           "tone-duration",
	"tone.sample_rate":        "tone-sample-rate",
	"playback.strategies":     "playback-strategies",
	"playback.device_backend": "playback-device-backend",
	"playback.media_grace":    "playback-media-grace",
	"playback.temp_dir":       "playback-temp-dir",
	"playback.player_command": "playback-player-command",
	"analyze.band_low":        "analyze-band-low",
	"analyze.band_high":       "analyze-band-high",
	"analyze.fft_size":        "analyze-fft-size",
	"log_level":               "log-level",
	"log_format":              "log-format",
}

// bindFlags binds each nested key to its flag so that config files, env and
// flags all resolve through the same key. Flags missing from fs are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("tone.frequency", c.Tone.Frequency)
	v.SetDefault("tone.duration", c.Tone.Duration)
	v.SetDefault("tone.sample_rate", c.Tone.SampleRate)
	v.SetDefault("playback.strategies", c.Playback.Strategies)
	v.SetDefault("playback.device_backend", c.Playback.DeviceBackend)
	v.SetDefault("playback.media_grace", c.Playback.MediaGrace)
	v.SetDefault("playback.temp_dir", c.Playback.TempDir)
	v.SetDefault("playback.player_command", c.Playback.PlayerCommand)
	v.SetDefault("analyze.band_low", c.Analyze.BandLow)
	v.SetDefault("analyze.band_high", c.Analyze.BandHigh)
	v.SetDefault("analyze.fft_size", c.Analyze.FFTSize)
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("log_format", c.LogFormat)
}
