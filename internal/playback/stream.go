package playback

import (
	"context"
	"errors"
	"fmt"
)

// Device opens mono or multi-channel 16-bit output streams.
type Device interface {
	Open(sampleRate, channels int) (Stream, error)
}

// Stream is an open output stream. Write blocks until the device accepted
// all samples.
type Stream interface {
	Write(samples []int16) error
	Close() error
}

// StreamStrategy writes synthesized PCM straight to an output device.
type StreamStrategy struct {
	Device Device
}

func NewStreamStrategy(dev Device) *StreamStrategy {
	return &StreamStrategy{Device: dev}
}

func (*StreamStrategy) Name() string { return "stream" }

func (s *StreamStrategy) Play(ctx context.Context, req *Request) (err error) {
	if s.Device == nil {
		return fmt.Errorf("%w: no output device backend configured", ErrMissingDependency)
	}

	samples, err := req.Samples()
	if err != nil {
		return err
	}

	stream, err := s.Device.Open(req.Spec.SampleRate, 1)
	if err != nil {
		return fmt.Errorf("open output stream: %w", err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close output stream: %w", cerr))
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := stream.Write(samples); err != nil {
		return fmt.Errorf("write output stream: %w", err)
	}
	return nil
}
