// Package oto plays PCM through an ebitengine/oto context.
package oto

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/example/go-tonecheck/internal/playback"
	"github.com/example/go-tonecheck/internal/tone"
)

const pollInterval = 10 * time.Millisecond

// oto allows a single context per process; it is created on first Open and
// reused afterwards as long as the format matches.
var (
	ctxMu    sync.Mutex
	shared   *oto.Context
	ctxRate  int
	ctxChans int
)

// Device opens streams on the shared oto context.
type Device struct {
	BufferSize time.Duration
}

func New() *Device {
	return &Device{BufferSize: 100 * time.Millisecond}
}

func (d *Device) Open(sampleRate, channels int) (playback.Stream, error) {
	c, err := d.context(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &stream{ctx: c}, nil
}

func (d *Device) context(sampleRate, channels int) (*oto.Context, error) {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if shared != nil {
		if ctxRate != sampleRate || ctxChans != channels {
			return nil, fmt.Errorf("oto context already running at %d Hz x%d, cannot reopen at %d Hz x%d",
				ctxRate, ctxChans, sampleRate, channels)
		}
		return shared, nil
	}

	c, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   d.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: oto context: %v", playback.ErrMissingDependency, err)
	}
	<-ready

	shared, ctxRate, ctxChans = c, sampleRate, channels
	return c, nil
}

type stream struct {
	ctx *oto.Context
}

// Write plays samples and blocks until the player drained them.
func (s *stream) Write(samples []int16) error {
	p := s.ctx.NewPlayer(bytes.NewReader(tone.PCMBytes(samples)))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(pollInterval)
	}
	if err := p.Err(); err != nil {
		_ = p.Close()
		return err
	}
	return p.Close()
}

func (*stream) Close() error { return nil }
