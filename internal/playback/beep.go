package playback

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrBeepUnsupported is returned for tones the beep primitive would alter
// instead of playing as requested.
var ErrBeepUnsupported = errors.New("tone not playable by beep")

// ErrBeepIncomplete is returned when the beep primitive returns long before
// the tone could have finished.
var ErrBeepIncomplete = errors.New("beep returned before the tone finished")

// Beeper emits a tone of freq Hz for ms milliseconds and blocks until done.
type Beeper func(freq float64, ms int) error

// BeepStrategy asks the platform beep primitive for the tone directly. It
// never synthesizes PCM.
type BeepStrategy struct {
	Beep Beeper

	// Frequency range Beep reproduces faithfully. Zero leaves that side open.
	MinFrequency float64
	MaxFrequency float64
}

// NewBeepStrategy returns a strategy driving the PC speaker with the limits
// of the current platform.
func NewBeepStrategy() *BeepStrategy {
	return &BeepStrategy{
		Beep:         speakerBeep,
		MinFrequency: beepMinFrequency,
		MaxFrequency: beepMaxFrequency,
	}
}

func (*BeepStrategy) Name() string { return "beep" }

func (b *BeepStrategy) Play(ctx context.Context, req *Request) error {
	spec := req.Spec
	if err := spec.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ms := spec.DurationMillis()
	if ms < 1 {
		return fmt.Errorf("%w: %v s is shorter than one millisecond", ErrBeepUnsupported, spec.Duration)
	}

	beep, lo, hi := b.Beep, b.MinFrequency, b.MaxFrequency
	if beep == nil {
		beep, lo, hi = speakerBeep, beepMinFrequency, beepMaxFrequency
	}
	if (lo > 0 && spec.Frequency < lo) || (hi > 0 && spec.Frequency > hi) {
		return fmt.Errorf("%w: %v Hz outside %v-%v Hz", ErrBeepUnsupported, spec.Frequency, lo, hi)
	}

	want := time.Duration(ms) * time.Millisecond
	start := time.Now()
	if err := beep(spec.Frequency, ms); err != nil {
		return err
	}
	// Fallback bells return at once without the requested tone.
	if elapsed := time.Since(start); elapsed < want/2 {
		return fmt.Errorf("%w: returned after %v of %v", ErrBeepIncomplete, elapsed, want)
	}
	return nil
}
