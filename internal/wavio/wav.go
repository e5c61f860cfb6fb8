// Package wavio decodes WAV files into split buffers and writes slices back.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-slice/split"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// WAV format tags.
const (
	FormatPCM        = 1
	FormatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// 8-bit PCM maps bytes to floats around this center with the same scale,
// matching the decoder and encoder.
const pcm8Scale = 127.5

var (
	ErrInvalidFile       = errors.New("invalid wav file")
	ErrUnsupportedFormat = errors.New("unsupported wav sample format")
)

// Read decodes path into a buffer of the matching sample representation:
// 8-bit PCM as uint8, 16-bit as int16, 24/32-bit as int32 scaled to the
// full int32 range, and IEEE float as float32.
func Read(path string) (split.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return split.Buffer{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return split.Buffer{}, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return split.Buffer{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return split.Buffer{}, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}

	h := split.Header{
		SampleRate:  buf.Format.SampleRate,
		NumChannels: buf.Format.NumChannels,
		BitDepth:    int(dec.BitDepth),
		AudioFormat: int(dec.WavAudioFormat),
	}
	if h.SampleRate <= 0 {
		return split.Buffer{}, fmt.Errorf("%w: sample-rate %d in %s", ErrInvalidFile, h.SampleRate, path)
	}
	if h.AudioFormat == formatExtensible {
		h.AudioFormat = FormatPCM
	}

	data, err := fromFloat(h, buf.Data)
	if err != nil {
		return split.Buffer{}, fmt.Errorf("%s: %w", path, err)
	}
	return split.Buffer{Header: h, Data: data}, nil
}

func fromFloat(h split.Header, in []float32) (split.Data, error) {
	switch {
	case h.AudioFormat == FormatIEEEFloat:
		out := make(split.Samples[float32], len(in))
		copy(out, in)
		return out, nil
	case h.AudioFormat != FormatPCM:
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, h.AudioFormat)
	}

	switch h.BitDepth {
	case 8:
		out := make(split.Samples[uint8], len(in))
		for i, v := range in {
			out[i] = uint8(clamp(math.Round(float64(v)*pcm8Scale+pcm8Scale), 0, math.MaxUint8))
		}
		return out, nil
	case 16:
		out := make(split.Samples[int16], len(in))
		for i, v := range in {
			out[i] = int16(clamp(math.Round(float64(v)*math.MaxInt16), math.MinInt16, math.MaxInt16))
		}
		return out, nil
	case 24, 32:
		out := make(split.Samples[int32], len(in))
		for i, v := range in {
			out[i] = int32(clamp(math.Round(float64(v)*math.MaxInt32), math.MinInt32, math.MaxInt32))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, h.BitDepth)
	}
}

func toFloat(d split.Data) []float32 {
	switch s := d.(type) {
	case split.Samples[uint8]:
		out := make([]float32, len(s))
		for i, v := range s {
			out[i] = float32((float64(v) - pcm8Scale) / pcm8Scale)
		}
		return out
	case split.Samples[int16]:
		out := make([]float32, len(s))
		for i, v := range s {
			out[i] = float32(float64(v) / math.MaxInt16)
		}
		return out
	case split.Samples[int32]:
		out := make([]float32, len(s))
		for i, v := range s {
			out[i] = float32(float64(v) / math.MaxInt32)
		}
		return out
	case split.Samples[float32]:
		out := make([]float32, len(s))
		copy(out, s)
		return out
	}
	return nil
}

// Write encodes buf to path using the bit depth and format tag of its header.
func Write(path string, buf split.Buffer) error {
	h := buf.Header
	if h.SampleRate <= 0 || h.NumChannels < 1 {
		return fmt.Errorf("%w: header %+v", ErrInvalidFile, h)
	}
	bitDepth, format := h.BitDepth, h.AudioFormat
	if bitDepth == 0 {
		bitDepth = 16
	}
	if format != FormatIEEEFloat {
		format = FormatPCM
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, h.SampleRate, bitDepth, h.NumChannels, format)
	out := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  h.SampleRate,
			NumChannels: h.NumChannels,
		},
		Data:           toFloat(buf.Data),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(out); err != nil {
		enc.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
