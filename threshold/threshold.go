// Package threshold classifies samples against a dBFS silence threshold for
// each supported sample representation.
package threshold

import "math"

// Sample is the set of numeric representations a decoded buffer can hold.
type Sample interface {
	uint8 | int16 | int32 | float32
}

// Format holds the representation-level constants of a sample type.
type Format[T Sample] struct {
	zero T
	max  T
}

var (
	// U8 is unsigned 8-bit PCM. The center value is used as zero crossing.
	U8 = Format[uint8]{zero: 127, max: math.MaxUint8}
	// I16 is signed 16-bit PCM.
	I16 = Format[int16]{zero: 0, max: math.MaxInt16}
	// I32 is signed 32-bit PCM (24-bit files are widened into it).
	I32 = Format[int32]{zero: 0, max: math.MaxInt32}
	// F32 is IEEE float with a full scale of 1.0.
	F32 = Format[float32]{zero: 0, max: 1}
)

// For returns the format for T.
func For[T Sample]() Format[T] {
	var v T
	var f any
	switch any(v).(type) {
	case uint8:
		f = U8
	case int16:
		f = I16
	case int32:
		f = I32
	case float32:
		f = F32
	}
	return f.(Format[T])
}

// ZeroCrossing returns the silence baseline of the representation.
func (f Format[T]) ZeroCrossing() T { return f.zero }

// MaxVal returns the full-scale magnitude of the representation.
func (f Format[T]) MaxVal() T { return f.max }

// IsZero reports whether s equals the zero crossing.
func (f Format[T]) IsZero(s T) bool { return s == f.zero }

// ToDBFS converts s to decibels relative to full scale.
//
// A zero sample yields -Inf and a full-scale sample yields 0. No clamping is
// applied. The zero crossing is not subtracted first, so for U8 the result is
// measured from 0 rather than from the center value.
func (f Format[T]) ToDBFS(s T) float64 {
	return 20 * math.Log10(math.Abs(float64(s))/float64(f.max))
}

// Silent returns a predicate that reports samples at or below thresholdDB.
func (f Format[T]) Silent(thresholdDB float64) func(T) bool {
	return func(s T) bool {
		return f.ToDBFS(s) <= thresholdDB
	}
}
