package config

import (
	"fmt"
	"strings"
)

const (
	DeviceBackendPortAudio = "portaudio"
	DeviceBackendOto       = "oto"
)

const (
	StrategyBeep   = "beep"
	StrategyMedia  = "media"
	StrategyStream = "stream"
)

func NormalizeDeviceBackend(raw string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(raw))
	if backend == "" {
		backend = DeviceBackendPortAudio
	}
	switch backend {
	case DeviceBackendPortAudio, DeviceBackendOto:
		return backend, nil
	case "pa":
		return DeviceBackendPortAudio, nil
	default:
		return "", fmt.Errorf(
			"invalid device backend %q (expected %s|%s)",
			raw,
			DeviceBackendPortAudio,
			DeviceBackendOto,
		)
	}
}

// NormalizeStrategies lower-cases and validates an ordered strategy list.
// Entries may themselves be comma separated. Duplicates are dropped, keeping
// the first occurrence. An empty list yields the default beep,media order.
func NormalizeStrategies(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				continue
			}
			switch name {
			case StrategyBeep, StrategyMedia, StrategyStream:
			default:
				return nil, fmt.Errorf(
					"invalid playback strategy %q (expected %s|%s|%s)",
					part,
					StrategyBeep,
					StrategyMedia,
					StrategyStream,
				)
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return []string{StrategyBeep, StrategyMedia}, nil
	}
	return out, nil
}
