// Package segment turns a per-sample silence classification into sound
// regions using a two-state hysteresis (debounce) scan.
package segment

// DefaultHold is the number of consecutive non-silent samples needed to
// confirm an onset when no explicit hold is configured.
const DefaultHold = 16

// Range is a half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of samples in r.
func (r Range) Len() int { return r.End - r.Start }

// Params configures the hysteresis scan.
type Params struct {
	// Predelay is the number of samples kept before a confirmed onset.
	Predelay int
	// Hold is the number of consecutive non-silent samples that confirm an onset.
	Hold int
	// Delay is the number of consecutive silent samples, beyond the first,
	// that confirm an offset.
	Delay int
}

type state int

const (
	skipping state = iota
	taking
)

// Find scans s and returns the sound ranges in increasing order.
//
// Silent samples that confirm an offset stay inside the emitted range, and
// predelay samples are prepended on onset. Ranges never overlap. An empty
// input returns nil.
func Find[T any](s []T, silent func(T) bool, p Params) []Range {
	if len(s) == 0 {
		return nil
	}

	var out []Range
	st := taking
	if silent(s[0]) {
		st = skipping
	}
	start := 0
	miss := 0  // non-silent run while skipping
	quiet := 0 // silent run while taking

	for i, v := range s {
		isSilent := silent(v)
		switch st {
		case skipping:
			if isSilent {
				miss = 0
				continue
			}
			miss++
			if miss >= p.Hold {
				st = taking
				start = max(i-p.Predelay, 0)
				if n := len(out); n > 0 && start < out[n-1].End {
					start = out[n-1].End
				}
				quiet = 0
			}
		case taking:
			if !isSilent {
				quiet = 0
				continue
			}
			quiet++
			if quiet > p.Delay {
				out = append(out, Range{Start: start, End: i})
				st = skipping
				miss = 0
			}
		}
	}

	if st == taking {
		out = append(out, Range{Start: start, End: len(s)})
	}
	return out
}

// SkipPredicate splits s at every silent sample: the first silent sample
// ends a range and the first non-silent sample starts the next one.
func SkipPredicate[T any](s []T, silent func(T) bool) []Range {
	return Find(s, silent, Params{Predelay: 0, Hold: 1, Delay: 0})
}

// Slices returns views of s for each range.
func Slices[T any](s []T, rs []Range) [][]T {
	out := make([][]T, len(rs))
	for i, r := range rs {
		out[i] = s[r.Start:r.End]
	}
	return out
}
