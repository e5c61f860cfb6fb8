package split

import (
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-slice/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mono(rate int) Header {
	return Header{SampleRate: rate, NumChannels: 1, BitDepth: 16, AudioFormat: 1}
}

func ramp(n int) Samples[int16] {
	s := make(Samples[int16], n)
	for i := range s {
		s[i] = int16(i + 1)
	}
	return s
}

func lengths(bufs []Buffer) []int {
	out := make([]int, len(bufs))
	for i, b := range bufs {
		out[i] = b.Len()
	}
	return out
}

// pattern builds a float buffer from alternating runs of silence and sound.
func pattern(runs ...int) Samples[float32] {
	var s Samples[float32]
	loud := false
	for _, n := range runs {
		for range n {
			if loud {
				s = append(s, 0.5)
			} else {
				s = append(s, 0)
			}
		}
		loud = !loud
	}
	return s
}

func TestBeatsLastSegmentAbsorbsRemainder(t *testing.T) {
	buf := Buffer{Header: mono(44100), Data: ramp(10)}

	out := Split(buf, Beats{Count: 3})

	require.Len(t, out, 3)
	assert.Equal(t, []int{3, 3, 4}, lengths(out))
	assert.Equal(t, Samples[int16]{1, 2, 3}, out[0].Data)
	assert.Equal(t, Samples[int16]{4, 5, 6}, out[1].Data)
	assert.Equal(t, Samples[int16]{7, 8, 9, 10}, out[2].Data)

	ranges := Ranges(mono(44100), []int16(ramp(10)), Beats{Count: 3})
	assert.Equal(t, []segment.Range{{Start: 0, End: 3}, {Start: 3, End: 6}, {Start: 6, End: 10}}, ranges)
}

func TestBeatsPartitionCoversInput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 100 {
		n := 1 + rng.Intn(500)
		count := 1 + rng.Intn(n)
		out := Split(Buffer{Header: mono(8000), Data: ramp(n)}, Beats{Count: count})

		require.Len(t, out, count)
		total := 0
		for _, l := range lengths(out) {
			total += l
		}
		assert.Equal(t, n, total, "n=%d count=%d", n, count)
	}
}

func TestTempoGridLength(t *testing.T) {
	assert.Equal(t, 24000, TempoSegmentFrames(48000, Tempo{BPM: 120, NoteValue: 4}))
	assert.Equal(t, 11025, TempoSegmentFrames(44100, Tempo{BPM: 120, NoteValue: 8}))
	assert.Equal(t, 1, TempoSegmentFrames(10, Tempo{BPM: 1000, NoteValue: 64}))
}

func TestTempoChunksWithoutTrim(t *testing.T) {
	out := Split(Buffer{Header: mono(100), Data: ramp(250)}, Tempo{BPM: 60, NoteValue: 4})
	assert.Equal(t, []int{100, 100, 50}, lengths(out))

	rng := rand.New(rand.NewSource(11))
	for range 50 {
		n := 1 + rng.Intn(1000)
		mode := Tempo{BPM: 30 + rng.Intn(200), NoteValue: 1 << rng.Intn(4)}
		size := TempoSegmentFrames(100, mode)
		out := Split(Buffer{Header: mono(100), Data: ramp(n)}, mode)

		want := (n + size - 1) / size
		require.Len(t, out, want)
		last := n % size
		if last == 0 {
			last = size
		}
		assert.Equal(t, last, out[len(out)-1].Len())
	}
}

func TestTempoTrimsEdgeSilence(t *testing.T) {
	data := pattern(5, 30, 7)
	h := Header{SampleRate: 40, NumChannels: 1, BitDepth: 32, AudioFormat: 3}
	mode := Tempo{BPM: 60, NoteValue: 4, Threshold: -40}

	mode.TrimLeading, mode.TrimTrailing = true, true
	out := Split(Buffer{Header: h, Data: data}, mode)
	assert.Equal(t, []int{30}, lengths(out))

	mode.TrimLeading, mode.TrimTrailing = true, false
	out = Split(Buffer{Header: h, Data: data}, mode)
	assert.Equal(t, []int{37}, lengths(out))

	mode.TrimLeading, mode.TrimTrailing = false, true
	out = Split(Buffer{Header: h, Data: data}, mode)
	assert.Equal(t, []int{35}, lengths(out))

	mode.TrimLeading, mode.TrimTrailing = false, false
	out = Split(Buffer{Header: h, Data: data}, mode)
	assert.Equal(t, []int{40, 2}, lengths(out))
}

func TestTempoTrimAllSilenceYieldsNothing(t *testing.T) {
	h := Header{SampleRate: 40, NumChannels: 1, BitDepth: 32, AudioFormat: 3}
	out := Split(Buffer{Header: h, Data: pattern(12)}, Tempo{BPM: 60, NoteValue: 4, TrimLeading: true, Threshold: -40})
	assert.Empty(t, out)
}

func TestSilenceKeepsSoundRegions(t *testing.T) {
	h := Header{SampleRate: 1000, NumChannels: 1, BitDepth: 32, AudioFormat: 3}
	data := pattern(20, 30, 40, 30, 10)
	mode := Silence{Threshold: -30, AttackMs: 2, ReleaseMs: 5}

	ranges := Ranges(h, []float32(data), mode)
	assert.Equal(t, []segment.Range{{Start: 33, End: 55}, {Start: 103, End: 125}}, ranges)

	out := Split(Buffer{Header: h, Data: data}, mode)
	require.Len(t, out, 2)
	for _, b := range out {
		assert.Equal(t, h, b.Header)
		assert.IsType(t, Samples[float32]{}, b.Data)
	}
}

func TestSilenceAllQuietYieldsNothing(t *testing.T) {
	h := Header{SampleRate: 1000, NumChannels: 1}
	out := Split(Buffer{Header: h, Data: pattern(200)}, Silence{Threshold: -30, ReleaseMs: 5})
	assert.Empty(t, out)
}

func TestEmptyBufferYieldsSinglePlaceholder(t *testing.T) {
	h := mono(44100)
	modes := []Mode{Tempo{BPM: 120, NoteValue: 4}, Beats{Count: 4}, Silence{Threshold: -30}}
	for _, m := range modes {
		out := Split(Buffer{Header: h}, m)
		require.Len(t, out, 1, "%T", m)
		assert.Nil(t, out[0].Data)
		assert.Equal(t, h, out[0].Header)

		out = Split(Buffer{Header: h, Data: Samples[int32]{}}, m)
		require.Len(t, out, 1, "%T", m)
		assert.IsType(t, Samples[int32]{}, out[0].Data)
		assert.Equal(t, 0, out[0].Len())
	}
}

func TestSplitPreservesRepresentation(t *testing.T) {
	cases := []Data{
		Samples[uint8]{1, 2, 3, 4},
		Samples[int16]{1, 2, 3, 4},
		Samples[int32]{1, 2, 3, 4},
		Samples[float32]{0.1, 0.2, 0.3, 0.4},
	}
	for _, d := range cases {
		out := Split(Buffer{Header: mono(100), Data: d}, Beats{Count: 2})
		require.Len(t, out, 2)
		for _, b := range out {
			assert.IsType(t, d, b.Data)
		}
	}
}

func TestOutputsDoNotAliasInput(t *testing.T) {
	in := ramp(8)
	out := Split(Buffer{Header: mono(100), Data: in}, Beats{Count: 2})

	first := out[0].Data.(Samples[int16])
	first[0] = 99
	assert.Equal(t, int16(1), in[0])

	second := out[1].Data.(Samples[int16])
	assert.Equal(t, int16(5), second[0])
}

func TestStereoSlicesStayFrameAligned(t *testing.T) {
	h := Header{SampleRate: 1000, NumChannels: 2, BitDepth: 16, AudioFormat: 1}

	out := Split(Buffer{Header: h, Data: ramp(20)}, Beats{Count: 3})
	assert.Equal(t, []int{6, 6, 8}, lengths(out))

	// One quarter note at 60 BPM is 1000 frames, 2000 interleaved samples.
	out = Split(Buffer{Header: h, Data: ramp(5000)}, Tempo{BPM: 60, NoteValue: 4})
	assert.Equal(t, []int{2000, 2000, 1000}, lengths(out))

	data := pattern(40, 60, 40)
	ranges := Ranges(h, []float32(data), Silence{Threshold: -30})
	require.Equal(t, []segment.Range{{Start: 54, End: 100}}, ranges)
	for _, r := range ranges {
		assert.Zero(t, r.Start%2)
		assert.Zero(t, r.End%2)
	}
}

func TestMsToSamples(t *testing.T) {
	assert.Equal(t, 44, MsToSamples(44100, 1))
	assert.Equal(t, 33075, MsToSamples(44100, 750))
	assert.Equal(t, 0, MsToSamples(44100, 0))
}
