package split

import (
	"slices"

	"github.com/cwbudde/algo-slice/threshold"
)

// Header describes the stream layout shared by an input and all its slices.
type Header struct {
	SampleRate  int
	NumChannels int
	BitDepth    int
	// AudioFormat is the WAV format tag (1 = PCM, 3 = IEEE float).
	AudioFormat int
}

// channels returns the interleave width, treating unset as mono.
func (h Header) channels() int {
	return max(h.NumChannels, 1)
}

// Data is the sample payload of a Buffer. It is implemented only by Samples;
// a nil Data marks a buffer without decoded samples.
type Data interface {
	Len() int
	clone() Data
}

// Samples is an interleaved run of samples of one representation.
type Samples[T threshold.Sample] []T

// Len returns the number of samples, counting every channel.
func (s Samples[T]) Len() int { return len(s) }

func (s Samples[T]) clone() Data {
	if s == nil {
		return Samples[T]{}
	}
	return Samples[T](slices.Clone([]T(s)))
}

// Buffer is a decoded block of audio.
type Buffer struct {
	Header Header
	Data   Data
}

// Len returns the number of samples in b.
func (b Buffer) Len() int {
	if b.Data == nil {
		return 0
	}
	return b.Data.Len()
}

// Frames returns the number of whole frames in b.
func (b Buffer) Frames() int {
	return b.Len() / b.Header.channels()
}

// Empty reports whether b carries no samples.
func (b Buffer) Empty() bool { return b.Len() == 0 }
