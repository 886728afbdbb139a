// Package mix provides dry/wet and crossfade operations driven by plain or
// smoothed amounts.
package mix

import (
	"math"

	"github.com/justyntemme/dawcore/pkg/dsp/smooth"
)

// DryWet writes dry*(1-amount) + wet*amount to dst. amount 0 is fully dry.
// The shortest of the three slices bounds the work.
func DryWet[T smooth.Float](dst, dry, wet []T, amount T) {
	n := min(len(dst), len(dry), len(wet))
	dryGain := 1 - amount
	for i := range n {
		dst[i] = dry[i]*dryGain + wet[i]*amount
	}
}

// DryWetSmoothed is DryWet with a per-frame amount. Each amount value is
// multiplied by scale first, so a 0..100 percent parameter passes 0.01.
func DryWetSmoothed[T smooth.Float](dst, dry, wet []T, amount smooth.Output[T], scale T) {
	if len(amount.Values) == 0 {
		return
	}
	if !amount.IsSmoothing() {
		DryWet(dst, dry, wet, amount.Values[0]*scale)
		return
	}
	n := min(len(dst), len(dry), len(wet), len(amount.Values))
	for i := range n {
		a := amount.Values[i] * scale
		dst[i] = dry[i]*(1-a) + wet[i]*a
	}
}

// EqualPower crossfades a into b along a quarter cosine, keeping the summed
// power constant for uncorrelated signals. position 0 is all a.
func EqualPower[T smooth.Float](dst, a, b []T, position T) {
	ga, gb := equalPowerGains(position)
	n := min(len(dst), len(a), len(b))
	for i := range n {
		dst[i] = a[i]*ga + b[i]*gb
	}
}

// EqualPowerSmoothed is EqualPower with a per-frame position.
func EqualPowerSmoothed[T smooth.Float](dst, a, b []T, position smooth.Output[T]) {
	if len(position.Values) == 0 {
		return
	}
	if !position.IsSmoothing() {
		EqualPower(dst, a, b, position.Values[0])
		return
	}
	n := min(len(dst), len(a), len(b), len(position.Values))
	for i := range n {
		ga, gb := equalPowerGains(position.Values[i])
		dst[i] = a[i]*ga + b[i]*gb
	}
}

func equalPowerGains[T smooth.Float](position T) (T, T) {
	p := min(max(float64(position), 0), 1)
	angle := p * math.Pi / 2
	return T(math.Cos(angle)), T(math.Sin(angle))
}

// Sum adds every buffer in srcs into dst, which is cleared first.
func Sum[T smooth.Float](dst []T, srcs ...[]T) {
	clear(dst)
	for _, src := range srcs {
		n := min(len(dst), len(src))
		for i := range n {
			dst[i] += src[i]
		}
	}
}
