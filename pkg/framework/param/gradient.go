package param

import (
	"fmt"
	"math"

	"github.com/justyntemme/dawcore/pkg/dsp/cell"
	"github.com/justyntemme/dawcore/pkg/dsp/gain"
)

// Float is the value type constraint for smoothed parameters.
type Float = cell.Float

// GradientKind identifies the shape of a Gradient.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientPower
	GradientExponential
)

// Gradient is the curve used to map a normalized value in [0, 1] onto a
// parameter's [min, max] range.
type Gradient struct {
	kind     GradientKind
	exponent float64
}

// Linear maps normalized values affinely.
func Linear() Gradient {
	return Gradient{kind: GradientLinear}
}

// Power raises the normalized value to exponent before mapping it. An
// exponent below 1 gives the top of the range finer resolution, which suits
// decibel controls.
func Power(exponent float64) Gradient {
	return Gradient{kind: GradientPower, exponent: exponent}
}

// Exponential interpolates in log2 space. Use it for frequencies. The
// parameter range must be strictly positive.
func Exponential() Gradient {
	return Gradient{kind: GradientExponential}
}

// DefaultDbGradient is the usual gradient for decibel parameters: one step
// near 0 dB is a small change while one step near -90 dB is a large one.
var DefaultDbGradient = Power(0.15)

// Kind returns the gradient shape.
func (g Gradient) Kind() GradientKind {
	return g.kind
}

// Exponent returns the power of a Power gradient and 0 otherwise.
func (g Gradient) Exponent() float64 {
	return g.exponent
}

func (g Gradient) String() string {
	switch g.kind {
	case GradientLinear:
		return "linear"
	case GradientPower:
		return fmt.Sprintf("power(%g)", g.exponent)
	case GradientExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// Unit describes how the value shown to a user relates to the value used in
// DSP.
type Unit int

const (
	// Generic values are used in DSP as shown.
	Generic Unit = iota
	// Decibels are shown in dB and used in DSP as raw amplitude. Levels at or
	// below -90 dB map to an amplitude of exactly 0.
	Decibels
)

func (u Unit) String() string {
	switch u {
	case Generic:
		return "generic"
	case Decibels:
		return "dB"
	default:
		return "unknown"
	}
}

// UnitToDSP converts a unit value to the raw value used in DSP.
func UnitToDSP[T Float](u Unit, v T) T {
	if u == Decibels {
		return gain.DbToCoeffClamped(v)
	}
	return v
}

// DSPToUnit converts a raw DSP value back to a unit value.
func DSPToUnit[T Float](u Unit, v T) T {
	if u == Decibels {
		return gain.CoeffToDbClamped(v)
	}
	return v
}

// NormalizedToValue maps n in [0, 1] onto [min, max] along g. n is clamped
// first, and the endpoints map to min and max exactly.
func NormalizedToValue[T Float](n, min, max T, g Gradient) T {
	n = clamp01(n)
	if n == 0 {
		return min
	}
	if n == 1 {
		return max
	}

	switch g.kind {
	case GradientPower:
		return T(math.Pow(float64(n), g.exponent))*(max-min) + min
	case GradientExponential:
		lo := math.Log2(float64(min))
		hi := math.Log2(float64(max))
		return T(math.Exp2(float64(n)*(hi-lo) + lo))
	default:
		return n*(max-min) + min
	}
}

// ValueToNormalized maps v in [min, max] onto [0, 1] along g. Values at or
// beyond either bound saturate to 0 or 1, and NaN maps to 0.
func ValueToNormalized[T Float](v, min, max T, g Gradient) T {
	if v <= min || v != v {
		return 0
	}
	if v >= max {
		return 1
	}

	switch g.kind {
	case GradientPower:
		return T(math.Pow(float64((v-min)/(max-min)), 1/g.exponent))
	case GradientExponential:
		lo := math.Log2(float64(min))
		hi := math.Log2(float64(max))
		return T((math.Log2(float64(v)) - lo) / (hi - lo))
	default:
		return (v - min) / (max - min)
	}
}

func clamp01[T Float](n T) T {
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	case n != n:
		// NaN
		return 0
	}
	return n
}

// checkRange reports why [min, max] cannot be used with g, or nil.
func checkRange[T Float](min, max T, g Gradient) error {
	if !(min < max) {
		return fmt.Errorf("min %v must be less than max %v", min, max)
	}
	switch g.kind {
	case GradientPower:
		if !(g.exponent > 0) {
			return fmt.Errorf("power gradient exponent %v must be positive", g.exponent)
		}
	case GradientExponential:
		if min <= 0 {
			return fmt.Errorf("exponential gradient needs a positive range, got min %v", min)
		}
	}
	return nil
}
