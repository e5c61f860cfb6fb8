package analysis

import (
	"math"

	"github.com/cwbudde/algo-slice/split"
	"github.com/cwbudde/algo-slice/threshold"
)

// Stats summarizes the level and length of one buffer.
type Stats struct {
	Samples  int     `json:"samples"`
	Frames   int     `json:"frames"`
	Duration float64 `json:"duration_s"`
	PeakDBFS float64 `json:"peak_dbfs"`
	RMSDBFS  float64 `json:"rms_dbfs"`
}

// Measure returns the statistics of buf. Levels of an empty buffer are -Inf.
func Measure(buf split.Buffer) Stats {
	st := Stats{
		Samples:  buf.Len(),
		Frames:   buf.Frames(),
		PeakDBFS: math.Inf(-1),
		RMSDBFS:  math.Inf(-1),
	}
	if buf.Header.SampleRate > 0 {
		st.Duration = float64(st.Frames) / float64(buf.Header.SampleRate)
	}

	switch d := buf.Data.(type) {
	case split.Samples[uint8]:
		st.PeakDBFS, st.RMSDBFS = levels(threshold.U8, d)
	case split.Samples[int16]:
		st.PeakDBFS, st.RMSDBFS = levels(threshold.I16, d)
	case split.Samples[int32]:
		st.PeakDBFS, st.RMSDBFS = levels(threshold.I32, d)
	case split.Samples[float32]:
		st.PeakDBFS, st.RMSDBFS = levels(threshold.F32, d)
	}
	return st
}

func levels[T threshold.Sample](f threshold.Format[T], s []T) (peak, rms float64) {
	peak = math.Inf(-1)
	if len(s) == 0 {
		return peak, math.Inf(-1)
	}
	full := float64(f.MaxVal())
	var sum float64
	for _, v := range s {
		if db := f.ToDBFS(v); db > peak {
			peak = db
		}
		x := float64(v) / full
		sum += x * x
	}
	return peak, 20 * math.Log10(math.Sqrt(sum/float64(len(s))))
}

// Finite replaces infinite or NaN levels with floor so they log cleanly.
func Finite(v float64, floor float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return floor
	}
	return v
}
