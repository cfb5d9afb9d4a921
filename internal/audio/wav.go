package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Layout of the WAV container produced for test tones.
const (
	ToneChannels = 1
	ToneBitDepth = 16
	HeaderSize   = 44

	formatPCM    = 1
	fmtChunkSize = 16
)

// EncodeWAV wraps 16-bit mono PCM samples in a canonical 44-byte header.
func EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(samples)*2))
	if err := WriteWAV(buf, samples, sampleRate); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteWAV writes the same bytes as EncodeWAV to w.
func WriteWAV(w io.Writer, samples []int16, sampleRate int) error {
	if sampleRate < 1 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	dataSize := len(samples) * 2
	if uint64(dataSize) > 0xFFFFFFFF-(HeaderSize-8) {
		return fmt.Errorf("PCM data too large for WAV: %d bytes", dataSize)
	}

	hdr := header(uint32(sampleRate), uint32(dataSize))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing WAV header: %w", err)
	}
	if _, err := WritePCM16Samples(w, samples); err != nil {
		return fmt.Errorf("writing PCM data: %w", err)
	}

	return nil
}

// WritePCM16Samples writes samples as little-endian signed 16-bit integers.
func WritePCM16Samples(w io.Writer, samples []int16) (int, error) {
	const chunk = 8192

	buf := make([]byte, min(len(samples), chunk)*2)
	written := 0
	for i := 0; i < len(samples); i += chunk {
		end := min(i+chunk, len(samples))
		out := buf[:(end-i)*2]
		for j, s := range samples[i:end] {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}
		n, err := w.Write(out)
		written += n
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

func header(sampleRate, dataSize uint32) [HeaderSize]byte {
	const blockAlign = ToneChannels * ToneBitDepth / 8

	var hdr [HeaderSize]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], HeaderSize-8+dataSize)
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(hdr[20:22], formatPCM)
	binary.LittleEndian.PutUint16(hdr[22:24], ToneChannels)
	binary.LittleEndian.PutUint32(hdr[24:28], sampleRate)
	binary.LittleEndian.PutUint32(hdr[28:32], sampleRate*blockAlign)
	binary.LittleEndian.PutUint16(hdr[32:34], blockAlign)
	binary.LittleEndian.PutUint16(hdr[34:36], ToneBitDepth)
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataSize)

	return hdr
}
