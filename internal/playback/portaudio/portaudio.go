// Package portaudio drives the default PortAudio output device.
package portaudio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/example/go-tonecheck/internal/playback"
)

// DefaultFramesPerBuffer is the blocking write size in frames.
const DefaultFramesPerBuffer = 1024

// Device opens blocking int16 output streams on the default output device.
type Device struct {
	FramesPerBuffer int
}

func New() *Device {
	return &Device{FramesPerBuffer: DefaultFramesPerBuffer}
}

// Open initializes PortAudio for the lifetime of the returned stream.
func (d *Device) Open(sampleRate, channels int) (playback.Stream, error) {
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	frames := d.FramesPerBuffer
	if frames <= 0 {
		frames = DefaultFramesPerBuffer
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initialize portaudio: %v", playback.ErrMissingDependency, err)
	}
	if _, err := portaudio.DefaultOutputDevice(); err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: no default output device: %v", playback.ErrMissingDependency, err)
	}

	s := &stream{buf: make([]int16, frames*channels)}
	pa, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), frames, &s.buf)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("open default stream: %w", err)
	}
	if err := pa.Start(); err != nil {
		_ = pa.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("start stream: %w", err)
	}
	s.pa = pa
	return s, nil
}

type stream struct {
	pa  *portaudio.Stream
	buf []int16
}

// Write copies samples through the stream buffer. The final partial buffer
// is padded with silence.
func (s *stream) Write(samples []int16) error {
	for off := 0; off < len(samples); off += len(s.buf) {
		n := copy(s.buf, samples[off:])
		clear(s.buf[n:])
		if err := s.pa.Write(); err != nil {
			return err
		}
	}
	return nil
}

func (s *stream) Close() error {
	stopErr := s.pa.Stop()
	closeErr := s.pa.Close()
	termErr := portaudio.Terminate()
	switch {
	case stopErr != nil:
		return stopErr
	case closeErr != nil:
		return closeErr
	default:
		return termErr
	}
}
