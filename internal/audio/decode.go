package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

var (
	// ErrFormatMismatch is returned when a decoded file has an unusable layout.
	ErrFormatMismatch = errors.New("audio format mismatch")
	// ErrUnsupportedFormat is returned by DecodeFile for unknown extensions.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Clip is decoded audio as interleaved float32 samples in [-1, 1].
type Clip struct {
	Format     string
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames is the number of sample frames (samples per channel).
func (c Clip) Frames() int {
	if c.Channels < 1 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration is the playing time of the clip.
func (c Clip) Duration() time.Duration {
	if c.SampleRate < 1 {
		return 0
	}
	return time.Duration(float64(c.Frames()) / float64(c.SampleRate) * float64(time.Second))
}

// Mono averages all channels into a single channel.
func (c Clip) Mono() []float32 {
	if c.Channels <= 1 {
		return c.Samples
	}
	out := make([]float32, c.Frames())
	for i := range out {
		var sum float32
		for ch := range c.Channels {
			sum += c.Samples[i*c.Channels+ch]
		}
		out[i] = sum / float32(c.Channels)
	}
	return out
}

// DecodeFunc decodes a whole file already read into memory.
type DecodeFunc func(data []byte) (Clip, error)

var decoders = map[string]DecodeFunc{
	".wav":  DecodeWAV,
	".wave": DecodeWAV,
	".mp3":  DecodeMP3,
	".ogg":  DecodeVorbis,
	".oga":  DecodeVorbis,
}

// SupportedExtensions lists the file extensions DecodeFile understands.
func SupportedExtensions() []string {
	return []string{".wav", ".wave", ".mp3", ".ogg", ".oga"}
}

// DecodeFile reads path and decodes it according to its extension.
func DecodeFile(path string) (Clip, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return Clip{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Clip{}, fmt.Errorf("read %s: %w", path, err)
	}
	return dec(data)
}

// DecodeWAV decodes PCM or IEEE-float WAV bytes of any rate and channel count.
func DecodeWAV(data []byte) (Clip, error) {
	if len(data) == 0 {
		return Clip{}, errors.New("empty WAV input")
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return Clip{}, errors.New("invalid WAV file")
	}
	if dec.NumChans == 0 {
		return Clip{}, fmt.Errorf("%w: zero channels", ErrFormatMismatch)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("reading PCM data: %w", err)
	}

	return clipFromBuffer("wav", buf, int(dec.SampleRate), int(dec.NumChans)), nil
}

func clipFromBuffer(format string, buf *goaudio.Float32Buffer, sampleRate, channels int) Clip {
	if buf.Format != nil {
		if buf.Format.SampleRate > 0 {
			sampleRate = buf.Format.SampleRate
		}
		if buf.Format.NumChannels > 0 {
			channels = buf.Format.NumChannels
		}
	}
	return Clip{
		Format:     format,
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    buf.Data,
	}
}

// DecodeMP3 decodes MPEG-1/2 layer III audio. go-mp3 always yields
// interleaved 16-bit stereo.
func DecodeMP3(data []byte) (Clip, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return Clip{}, fmt.Errorf("open MP3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return Clip{}, fmt.Errorf("decode MP3: %w", err)
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(v) / 32768.0
	}

	return Clip{
		Format:     "mp3",
		SampleRate: dec.SampleRate(),
		Channels:   2,
		Samples:    samples,
	}, nil
}

// DecodeVorbis decodes an Ogg Vorbis stream.
func DecodeVorbis(data []byte) (Clip, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return Clip{}, fmt.Errorf("decode Ogg Vorbis: %w", err)
	}
	if format.Channels < 1 {
		return Clip{}, fmt.Errorf("%w: zero channels", ErrFormatMismatch)
	}

	return Clip{
		Format:     "ogg",
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		Samples:    samples,
	}, nil
}
