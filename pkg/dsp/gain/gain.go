// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"math"

	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"

	"github.com/justyntemme/dawcore/pkg/dsp/smooth"
)

// MinDB is the floor returned by LinearToDb for non-positive input.
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels without the
// NegInfDB clamp. Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude without the
// NegInfDB clamp. Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer applies a constant gain to an entire buffer in-place.
func ApplyBuffer[T Float](buffer []T, gain T) {
	switch b := any(buffer).(type) {
	case []float32:
		f32.Scale(b, b, float32(gain))
	case []float64:
		f64.Scale(b, b, float64(gain))
	default:
		for i := range buffer {
			buffer[i] *= gain
		}
	}
}

// ApplyRamp multiplies each sample by the matching per-sample gain. Only
// min(len(buffer), len(gains)) samples are touched.
func ApplyRamp[T Float](buffer, gains []T) {
	n := min(len(buffer), len(gains))
	buffer, gains = buffer[:n], gains[:n]
	for i := range buffer {
		buffer[i] *= gains[i]
	}
}

// ApplySmoothed applies a smoothed gain block to buffer. Once the smoother
// has settled every value in the block is identical, so the constant SIMD
// path is used instead of the per-sample multiply.
func ApplySmoothed[T Float](buffer []T, out smooth.Output[T]) {
	if len(buffer) == 0 || len(out.Values) == 0 {
		return
	}
	if !out.IsSmoothing() {
		ApplyBuffer(buffer, out.Values[0])
		return
	}
	ApplyRamp(buffer, out.Values)
}

// Fade applies a linear fade between two gain values.
func Fade[T Float](buffer []T, startGain, endGain T) {
	if len(buffer) == 0 {
		return
	}

	steps := T(len(buffer) - 1)
	if steps <= 0 {
		buffer[0] *= startGain
		return
	}

	delta := (endGain - startGain) / steps
	g := startGain
	for i := range buffer {
		buffer[i] *= g
		g += delta
	}
}

// HardClipBuffer limits every sample to [-threshold, threshold].
func HardClipBuffer[T Float](buffer []T, threshold T) {
	for i, s := range buffer {
		buffer[i] = max(-threshold, min(s, threshold))
	}
}
