package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/example/go-tonecheck/internal/config"
	"github.com/example/go-tonecheck/internal/playback"
	otodev "github.com/example/go-tonecheck/internal/playback/oto"
	padev "github.com/example/go-tonecheck/internal/playback/portaudio"
)

// Platform seams, replaced in tests.
var (
	newStreamDevice = defaultStreamDevice
	newMediaPlayer  = playback.NewMediaPlayer
	beeper          = playback.NewBeepStrategy().Beep
)

func defaultStreamDevice(backend string) (playback.Device, error) {
	switch backend {
	case config.DeviceBackendPortAudio:
		return padev.New(), nil
	case config.DeviceBackendOto:
		return otodev.New(), nil
	default:
		return nil, fmt.Errorf("unsupported device backend %q", backend)
	}
}

// buildStrategies turns the configured strategy names into playback
// strategies. Backends that cannot be created still yield a strategy so the
// failure is reported in order when the chain reaches it.
func buildStrategies(cfg config.Config) ([]playback.Strategy, error) {
	strategies := make([]playback.Strategy, 0, len(cfg.Playback.Strategies))
	for _, name := range cfg.Playback.Strategies {
		switch name {
		case config.StrategyBeep:
			beep := playback.NewBeepStrategy()
			beep.Beep = beeper
			strategies = append(strategies, beep)
		case config.StrategyMedia:
			player, err := newMediaPlayer(cfg.Playback.PlayerCommand)
			if err != nil {
				strategies = append(strategies, unavailable{name: name, err: err})
				continue
			}
			strategies = append(strategies, playback.NewMediaStrategy(player, cfg.Playback.TempDir, cfg.Playback.MediaGrace))
		case config.StrategyStream:
			dev, err := newStreamDevice(cfg.Playback.DeviceBackend)
			if err != nil {
				strategies = append(strategies, unavailable{name: name, err: err})
				continue
			}
			strategies = append(strategies, playback.NewStreamStrategy(dev))
		default:
			return nil, fmt.Errorf("unknown playback strategy %q", name)
		}
	}
	return strategies, nil
}

// unavailable is a strategy whose backend could not be set up.
type unavailable struct {
	name string
	err  error
}

func (u unavailable) Name() string { return u.name }

func (u unavailable) Play(context.Context, *playback.Request) error { return u.err }

func installHint() string {
	switch runtime.GOOS {
	case "windows":
		return "Install hint: enable Windows Media Player (Optional Features) or select --playback-device-backend=oto"
	case "darwin":
		return "Install hint: brew install portaudio, or select --playback-device-backend=oto"
	default:
		return "Install hint: apt install libportaudio2 pulseaudio-utils alsa-utils, or select --playback-device-backend=oto"
	}
}
