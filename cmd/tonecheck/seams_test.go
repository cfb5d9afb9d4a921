package main

import (
	"errors"
	"os"
	"testing"

	"github.com/example/go-tonecheck/internal/playback"
)

type fakeStream struct {
	written []int16
	closed  bool
}

func (s *fakeStream) Write(samples []int16) error {
	s.written = append(s.written, samples...)
	return nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeDevice struct {
	stream     *fakeStream
	err        error
	sampleRate int
}

func (d *fakeDevice) Open(sampleRate, _ int) (playback.Stream, error) {
	d.sampleRate = sampleRate
	if d.err != nil {
		return nil, d.err
	}
	return d.stream, nil
}

type fakeSession struct{}

func (fakeSession) Play() error  { return nil }
func (fakeSession) Close() error { return nil }

type fakePlayer struct {
	err   error
	opens int
	paths []string
}

func (p *fakePlayer) Open(path string) (playback.MediaSession, error) {
	p.opens++
	p.paths = append(p.paths, path)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return fakeSession{}, nil
}

// stubSeams replaces the platform seams for the duration of the test.
func stubSeams(t *testing.T, dev playback.Device, player playback.MediaPlayer, beep playback.Beeper) {
	t.Helper()

	origDevice, origPlayer, origBeeper := newStreamDevice, newMediaPlayer, beeper
	t.Cleanup(func() {
		newStreamDevice, newMediaPlayer, beeper = origDevice, origPlayer, origBeeper
	})

	newStreamDevice = func(string) (playback.Device, error) {
		if dev == nil {
			return nil, errors.New("no device stubbed")
		}
		return dev, nil
	}
	newMediaPlayer = func(string) (playback.MediaPlayer, error) {
		if player == nil {
			return nil, playback.ErrMissingDependency
		}
		return player, nil
	}
	beeper = beep
}
