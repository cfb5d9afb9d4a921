// Package analyze checks captured recordings for the expected test tone.
package analyze

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/cwbudde/algo-dsp/dsp/spectrum"
	dsptime "github.com/cwbudde/algo-dsp/stats/time"
	"github.com/example/go-tonecheck/internal/audio"
)

// Defaults for the frequency search.
const (
	DefaultBandLow  = 400.0
	DefaultBandHigh = 480.0
	DefaultFFTSize  = 8192

	MinFFTSize = 2
	MaxFFTSize = 1 << 16

	// Segments is the number of equal slices the clip is split into for
	// the per-segment frequency track.
	Segments = 5
)

var (
	// ErrInvalidBand is returned for an empty or negative search band.
	ErrInvalidBand = errors.New("invalid frequency band")
	// ErrInvalidFFTSize is returned for a window outside MinFFTSize..MaxFFTSize.
	ErrInvalidFFTSize = errors.New("invalid fft size")
)

// Band is an inclusive frequency range in Hz.
type Band struct {
	Low  float64
	High float64
}

// Peak is the strongest DFT bin inside a band.
type Peak struct {
	Frequency  float64
	Magnitude  float64
	Resolution float64 // Hz per bin
	Window     int     // samples analysed
}

// DominantFrequency scans the DFT bins covering band over the first fftSize
// samples and returns the strongest one. fftSize 0 selects DefaultFFTSize.
// All-zero input yields a Peak at 0 Hz.
func DominantFrequency(samples []float32, sampleRate int, band Band, fftSize int) (Peak, error) {
	if band.Low < 0 || band.High <= band.Low {
		return Peak{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidBand, band.Low, band.High)
	}
	if sampleRate < 1 {
		return Peak{}, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if fftSize == 0 {
		fftSize = DefaultFFTSize
	}
	if fftSize < MinFFTSize || fftSize > MaxFFTSize {
		return Peak{}, fmt.Errorf("%w: %d not in %d..%d", ErrInvalidFFTSize, fftSize, MinFFTSize, MaxFFTSize)
	}
	if len(samples) == 0 {
		return Peak{}, errors.New("no samples to analyse")
	}

	resolution := float64(sampleRate) / float64(fftSize)
	startBin := int(math.Floor(band.Low / resolution))
	endBin := int(math.Ceil(band.High / resolution))
	window := min(len(samples), fftSize)

	bins := endBin - startBin + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		k := float64(startBin + i)
		for n := range window {
			angle := -2 * math.Pi * k * float64(n) / float64(fftSize)
			s := float64(samples[n])
			re[i] += s * math.Cos(angle)
			im[i] += s * math.Sin(angle)
		}
	}
	mags := make([]float64, bins)
	spectrum.MagnitudeFromParts(mags, re, im)

	best := Peak{Resolution: resolution, Window: window}
	for i, mag := range mags {
		if mag > best.Magnitude {
			best.Magnitude = mag
			best.Frequency = float64(startBin+i) * resolution
		}
	}

	return best, nil
}

// SegmentPeak is the dominant frequency of one time slice.
type SegmentPeak struct {
	Offset    time.Duration
	Frequency float64
}

// SegmentTrack splits samples into n equal slices and returns the dominant
// frequency of each. Clips shorter than n samples yield no segments.
func SegmentTrack(samples []float32, sampleRate int, band Band, fftSize, n int) ([]SegmentPeak, error) {
	if n < 1 || sampleRate < 1 {
		return nil, nil
	}
	size := len(samples) / n
	if size == 0 {
		return nil, nil
	}

	out := make([]SegmentPeak, 0, n)
	for i := range n {
		start := i * size
		p, err := DominantFrequency(samples[start:start+size], sampleRate, band, fftSize)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out = append(out, SegmentPeak{
			Offset:    time.Duration(start) * time.Second / time.Duration(sampleRate),
			Frequency: p.Frequency,
		})
	}
	return out, nil
}

// Options configures Run.
type Options struct {
	Band    Band
	FFTSize int
}

// DefaultOptions searches 400-480 Hz with an 8192-point window.
func DefaultOptions() Options {
	return Options{
		Band:    Band{Low: DefaultBandLow, High: DefaultBandHigh},
		FFTSize: DefaultFFTSize,
	}
}

// Report summarises a decoded clip.
type Report struct {
	Format     string
	SampleRate int
	Channels   int
	Duration   time.Duration
	Peak       float64
	PeakDB     float64
	RMS        float64
	RMSDB      float64
	Dominant   Peak
	Segments   []SegmentPeak
	Band       Band
}

// Silent reports whether the clip carries no signal at all.
func (r Report) Silent() bool { return r.Peak == 0 }

// FrequencyError is the absolute distance of the dominant frequency from target.
func (r Report) FrequencyError(target float64) float64 {
	return math.Abs(r.Dominant.Frequency - target)
}

// Matches reports whether the dominant frequency is within tolerance Hz of target.
func (r Report) Matches(target, tolerance float64) bool {
	if r.Silent() {
		return false
	}
	return r.FrequencyError(target) <= tolerance
}

// Run analyses clip, mixed down to mono.
func Run(clip audio.Clip, opts Options) (Report, error) {
	mono := clip.Mono()

	signal := make([]float64, len(mono))
	for i, s := range mono {
		signal[i] = float64(s)
	}
	level := dsptime.Calculate(signal)

	rep := Report{
		Format:     clip.Format,
		SampleRate: clip.SampleRate,
		Channels:   clip.Channels,
		Duration:   clip.Duration(),
		Peak:       level.Peak,
		PeakDB:     level.Peak_dB,
		RMS:        level.RMS,
		RMSDB:      level.RMS_dB,
		Band:       opts.Band,
	}

	dom, err := DominantFrequency(mono, clip.SampleRate, opts.Band, opts.FFTSize)
	if err != nil {
		return rep, err
	}
	rep.Dominant = dom

	segments, err := SegmentTrack(mono, clip.SampleRate, opts.Band, opts.FFTSize, Segments)
	if err != nil {
		return rep, err
	}
	rep.Segments = segments

	return rep, nil
}

// Print writes a human readable report.
func (r Report) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Format:      %s\n"+
			"Channels:    %d\n"+
			"Sample Rate: %d Hz\n"+
			"Duration:    %s\n"+
			"Peak:        %.4f (%.1f dBFS)\n"+
			"RMS:         %.4f (%.1f dBFS)\n"+
			"Band:        %.0f-%.0f Hz (%.2f Hz/bin over %d samples)\n",
		r.Format,
		r.Channels,
		r.SampleRate,
		r.Duration.Round(time.Millisecond),
		r.Peak, r.PeakDB,
		r.RMS, r.RMSDB,
		r.Band.Low, r.Band.High, r.Dominant.Resolution, r.Dominant.Window,
	)
	if err != nil {
		return err
	}

	if len(r.Segments) > 0 {
		if _, err := fmt.Fprintln(w, "Segments:"); err != nil {
			return err
		}
		for _, s := range r.Segments {
			if _, err := fmt.Fprintf(w, "  %6dms: %.1f Hz\n", s.Offset.Milliseconds(), s.Frequency); err != nil {
				return err
			}
		}
	}

	_, err = fmt.Fprintf(w, "Dominant:    %.2f Hz\n", r.Dominant.Frequency)
	return err
}
