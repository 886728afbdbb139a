package gain

import (
	"math"

	"github.com/justyntemme/dawcore/pkg/dsp/cell"
)

// NegInfDB is the level at and below which a decibel value is treated as
// silence by the clamped conversions.
const NegInfDB = -90.0

// negInfCoeff is the amplitude of NegInfDB, 10^(-90/20).
const negInfCoeff = 3.1622776601683795e-05

// Float is the type constraint for gain computations.
type Float = cell.Float

// DbToCoeffClamped converts decibels to a linear amplitude coefficient.
// Any value at or below NegInfDB returns exactly 0, so an "off" control
// produces true silence rather than a tiny residual gain.
func DbToCoeffClamped[T Float](db T) T {
	if db <= NegInfDB {
		return 0
	}
	return T(math.Pow(10, 0.05*float64(db)))
}

// CoeffToDbClamped converts a linear amplitude coefficient to decibels.
// Coefficients at or below the amplitude of NegInfDB (including 0 and
// negative values) return NegInfDB.
func CoeffToDbClamped[T Float](coeff T) T {
	if float64(coeff) <= negInfCoeff {
		return NegInfDB
	}
	return T(20 * math.Log10(float64(coeff)))
}
