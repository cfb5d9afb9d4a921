// Package tone synthesizes sine test tones as signed 16-bit mono PCM.
package tone

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Defaults used when no frequency, duration or sample rate is configured.
const (
	DefaultFrequency  = 440.0
	DefaultDuration   = 3.0
	DefaultSampleRate = 44100

	// MaxAmplitude is the symmetric peak of a synthesized sample. int16 can
	// hold -32768 but the tone never goes there.
	MaxAmplitude = 32767
)

var (
	// ErrInvalidSpec is returned for non-positive frequency, duration or sample rate.
	ErrInvalidSpec = errors.New("invalid tone spec")
	// ErrAboveNyquist is returned when the frequency is not below sample_rate/2.
	ErrAboveNyquist = errors.New("frequency at or above Nyquist limit")
)

// Spec describes a sine tone.
type Spec struct {
	Frequency  float64 // Hz
	Duration   float64 // seconds
	SampleRate int     // Hz
}

// DefaultSpec returns the 440 Hz, 3 s, 44.1 kHz tone.
func DefaultSpec() Spec {
	return Spec{
		Frequency:  DefaultFrequency,
		Duration:   DefaultDuration,
		SampleRate: DefaultSampleRate,
	}
}

// Validate reports whether s can be synthesized without aliasing.
func (s Spec) Validate() error {
	if math.IsNaN(s.Frequency) || s.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be > 0, got %v", ErrInvalidSpec, s.Frequency)
	}
	if math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) || s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be > 0, got %v", ErrInvalidSpec, s.Duration)
	}
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidSpec, s.SampleRate)
	}
	if nyquist := float64(s.SampleRate) / 2; s.Frequency >= nyquist {
		return fmt.Errorf("%w: %v Hz >= %v Hz", ErrAboveNyquist, s.Frequency, nyquist)
	}
	return nil
}

// NumSamples is round(sample_rate * duration).
func (s Spec) NumSamples() int {
	return int(math.Round(float64(s.SampleRate) * s.Duration))
}

// Period is the length of one cycle in samples.
func (s Spec) Period() float64 {
	return float64(s.SampleRate) / s.Frequency
}

// DurationMillis is the duration rounded to whole milliseconds.
func (s Spec) DurationMillis() int {
	return int(math.Round(s.Duration * 1000))
}

// Synthesize returns sample i = round(32767 * sin(2*pi*f*i/sr)) for every
// i in [0, NumSamples).
func Synthesize(s Spec) ([]int16, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	n := s.NumSamples()
	out := make([]int16, n)
	step := 2 * math.Pi * s.Frequency / float64(s.SampleRate)
	for i := range out {
		v := math.Round(MaxAmplitude * math.Sin(step*float64(i)))
		out[i] = int16(math.Max(-MaxAmplitude, math.Min(MaxAmplitude, v)))
	}

	return out, nil
}

// PCMBytes encodes samples as little-endian 16-bit bytes.
func PCMBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return buf
}
