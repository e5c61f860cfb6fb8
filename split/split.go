// Package split slices a decoded buffer by tempo grid, beat count or silence.
//
// Split inspects the sample representation once and runs a single generic
// implementation against it. While slicing, segments are index ranges over
// the input; they are copied only when the output buffers are built, so no
// output aliases the input or another output.
package split

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-slice/segment"
	"github.com/cwbudde/algo-slice/sliceutil"
	"github.com/cwbudde/algo-slice/threshold"
)

// Split slices buf according to mode and returns the slices in playback
// order. Every output carries buf.Header and the representation of buf.Data.
//
// Tempo and Beats lengths are computed in frames and multiplied by the
// channel count, so with interleaved multi-channel data every slice holds
// whole frames. Silence ranges are widened to frame boundaries.
//
// A buffer without samples yields exactly one empty output. Mode parameters
// are assumed valid (see Validate).
func Split(buf Buffer, mode Mode) []Buffer {
	if buf.Empty() {
		return []Buffer{placeholder(buf)}
	}

	switch d := buf.Data.(type) {
	case Samples[uint8]:
		return slicesOf(buf.Header, d, mode)
	case Samples[int16]:
		return slicesOf(buf.Header, d, mode)
	case Samples[int32]:
		return slicesOf(buf.Header, d, mode)
	case Samples[float32]:
		return slicesOf(buf.Header, d, mode)
	default:
		panic(fmt.Sprintf("split: unsupported sample data %T", buf.Data))
	}
}

func placeholder(buf Buffer) Buffer {
	out := Buffer{Header: buf.Header}
	if buf.Data != nil {
		out.Data = buf.Data.clone()
	}
	return out
}

func slicesOf[T threshold.Sample](h Header, s Samples[T], mode Mode) []Buffer {
	ranges := Ranges(h, []T(s), mode)
	out := make([]Buffer, len(ranges))
	for i, r := range ranges {
		out[i] = Buffer{
			Header: h,
			Data:   Samples[T](slices.Clone(s[r.Start:r.End])),
		}
	}
	return out
}

// Ranges computes the slice boundaries of s without copying any samples.
// Ranges are sorted, disjoint, and aligned to whole frames.
func Ranges[T threshold.Sample](h Header, s []T, mode Mode) []segment.Range {
	switch m := mode.(type) {
	case Tempo:
		return tempoRanges(h, s, m)
	case Beats:
		return beatRanges(h, len(s), m)
	case Silence:
		return silenceRanges(h, s, m)
	default:
		panic(fmt.Sprintf("split: unsupported mode %T", mode))
	}
}

// TempoSegmentFrames returns the grid length in frames for one note value at
// the given tempo, rounded down and never below one frame.
func TempoSegmentFrames(sampleRate int, m Tempo) int {
	return max(sampleRate*240/(m.BPM*m.NoteValue), 1)
}

func tempoRanges[T threshold.Sample](h Header, s []T, m Tempo) []segment.Range {
	ch := h.channels()
	size := TempoSegmentFrames(h.SampleRate, m) * ch

	leading, trailing := sliceutil.Never[T], sliceutil.Never[T]
	silent := threshold.For[T]().Silent(m.Threshold)
	if m.TrimLeading {
		leading = silent
	}
	if m.TrimTrailing {
		trailing = silent
	}

	kept := sliceutil.SkipWhile(s, leading)
	begin := alignDown(len(s)-len(kept), ch)
	kept = sliceutil.SkipFromRightWhile(s[begin:], trailing)
	end := min(alignUp(begin+len(kept), ch), len(s))

	var out []segment.Range
	for start := begin; start < end; start += size {
		out = append(out, segment.Range{Start: start, End: min(start+size, end)})
	}
	return out
}

func beatRanges(h Header, n int, m Beats) []segment.Range {
	ch := h.channels()
	size := (n / ch) / m.Count * ch

	out := make([]segment.Range, m.Count)
	for i := range m.Count {
		out[i] = segment.Range{Start: i * size, End: (i + 1) * size}
	}
	out[m.Count-1].End = n
	return out
}

func silenceRanges[T threshold.Sample](h Header, s []T, m Silence) []segment.Range {
	ch := h.channels()
	hold := m.Hold
	if hold <= 0 {
		hold = segment.DefaultHold
	}
	p := segment.Params{
		Predelay: MsToSamples(h.SampleRate, m.AttackMs) * ch,
		Hold:     hold,
		Delay:    MsToSamples(h.SampleRate, m.ReleaseMs) * ch,
	}
	ranges := segment.Find(s, threshold.For[T]().Silent(m.Threshold), p)
	if ch == 1 {
		return ranges
	}
	return alignRanges(ranges, ch, len(s))
}

// MsToSamples converts a duration in milliseconds to a per-channel sample count.
func MsToSamples(sampleRate, ms int) int {
	return sampleRate * ms / 1000
}

// alignRanges widens ranges to whole frames and merges ranges that touch
// after widening.
func alignRanges(rs []segment.Range, ch, n int) []segment.Range {
	out := make([]segment.Range, 0, len(rs))
	for _, r := range rs {
		r.Start = alignDown(r.Start, ch)
		r.End = min(alignUp(r.End, ch), n)
		if k := len(out); k > 0 && r.Start < out[k-1].End {
			out[k-1].End = max(out[k-1].End, r.End)
			continue
		}
		out = append(out, r)
	}
	return out
}

func alignDown(i, ch int) int { return i / ch * ch }

func alignUp(i, ch int) int { return (i + ch - 1) / ch * ch }
