package portaudio

import (
	"fmt"
	"io"

	"github.com/gordonklaus/portaudio"

	"github.com/example/go-tonecheck/internal/playback"
)

// DeviceInfo describes one PortAudio device.
type DeviceInfo struct {
	Index             int
	Name              string
	HostAPI           string
	MaxOutputChannels int
	DefaultSampleRate float64
	DefaultOutput     bool
}

// CanPlay reports whether the device has at least one output channel.
func (d DeviceInfo) CanPlay() bool { return d.MaxOutputChannels > 0 }

// ListDevices enumerates all PortAudio devices.
func ListDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initialize portaudio: %v", playback.ErrMissingDependency, err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	var defaultName string
	if out, err := portaudio.DefaultOutputDevice(); err == nil && out != nil {
		defaultName = out.Name
	}

	infos := make([]DeviceInfo, 0, len(devices))
	for i, dev := range devices {
		info := DeviceInfo{
			Index:             i,
			Name:              dev.Name,
			MaxOutputChannels: dev.MaxOutputChannels,
			DefaultSampleRate: dev.DefaultSampleRate,
			DefaultOutput:     dev.Name == defaultName && dev.MaxOutputChannels > 0,
		}
		if dev.HostApi != nil {
			info.HostAPI = dev.HostApi.Name
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// DefaultOutputName returns the name of the default output device.
func DefaultOutputName() (string, error) {
	if err := portaudio.Initialize(); err != nil {
		return "", fmt.Errorf("%w: initialize portaudio: %v", playback.ErrMissingDependency, err)
	}
	defer portaudio.Terminate()

	out, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return "", fmt.Errorf("%w: no default output device: %v", playback.ErrMissingDependency, err)
	}
	return out.Name, nil
}

// PrintDevices writes a device table. Input-only devices are skipped unless
// all is set.
func PrintDevices(w io.Writer, devices []DeviceInfo, all bool) {
	shown := 0
	for _, d := range devices {
		if !all && !d.CanPlay() {
			continue
		}
		shown++
		marker := ""
		if d.DefaultOutput {
			marker = " [DEFAULT OUTPUT]"
		}
		fmt.Fprintf(w, "[%d] %s%s\n", d.Index, d.Name, marker)
		if d.HostAPI != "" {
			fmt.Fprintf(w, "    Host API:            %s\n", d.HostAPI)
		}
		fmt.Fprintf(w, "    Max Output Channels: %d\n", d.MaxOutputChannels)
		fmt.Fprintf(w, "    Default Sample Rate: %.0f Hz\n", d.DefaultSampleRate)
	}
	if shown == 0 {
		fmt.Fprintln(w, "no output devices found")
	}
}
