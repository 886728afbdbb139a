package smooth

import (
	"math"

	"github.com/justyntemme/dawcore/pkg/timebase"
)

// Curve selects the shape of a Ramp.
type Curve int

const (
	// CurveLinear moves by a fixed step each sample.
	CurveLinear Curve = iota
	// CurveExponential is a one-pole filter that decays by 60 dB over the
	// ramp length.
	CurveExponential
	// CurveLogarithmic moves by a fixed step in log space, which sounds even
	// for frequencies.
	CurveLogarithmic
)

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveExponential:
		return "exponential"
	case CurveLogarithmic:
		return "logarithmic"
	default:
		return "unknown"
	}
}

// logFloor keeps logarithmic ramps away from log(0).
const logFloor = 0.001

// Ramp is a per-sample smoother for control-rate automation such as UI
// gestures and sweeps. Unlike Smoother it produces one value per call to
// Next and has no block buffer of its own.
type Ramp struct {
	curve     Curve
	samples   float64
	coeff     float64
	threshold float64

	current float64
	target  float64
	active  bool

	step float64

	logCurrent float64
	logTarget  float64
}

// NewRamp creates a ramp that covers length at sample rate sr.
func NewRamp(curve Curve, sr timebase.SampleRate, length timebase.Seconds) *Ramp {
	r := &Ramp{
		curve:     curve,
		threshold: 1e-4,
	}
	r.SetLength(sr, length)
	return r
}

// SetLength changes the ramp length. A ramp already in flight keeps its
// current step until the next SetTarget.
func (r *Ramp) SetLength(sr timebase.SampleRate, length timebase.Seconds) {
	r.samples = float64(length) * float64(sr)
	if r.samples <= 0 {
		r.coeff = 0
		return
	}
	// -60 dB after length.
	r.coeff = math.Exp(-6.908 / r.samples)
}

// SetThreshold sets how close to the target counts as arrived.
func (r *Ramp) SetThreshold(threshold float64) {
	r.threshold = threshold
}

// SetTarget starts a ramp from the current value to target.
func (r *Ramp) SetTarget(target float64) {
	if math.Abs(target-r.target) < r.threshold && !r.active {
		return
	}
	r.target = target
	if r.samples <= 0 {
		r.Reset(target)
		return
	}
	r.active = true

	switch r.curve {
	case CurveLinear:
		r.step = (target - r.current) / r.samples
	case CurveLogarithmic:
		r.logCurrent = math.Log(max(r.current, logFloor))
		r.logTarget = math.Log(max(target, logFloor))
		r.step = (r.logTarget - r.logCurrent) / r.samples
	}
}

// Next advances one sample and returns the new value.
func (r *Ramp) Next() float64 {
	if !r.active {
		return r.current
	}

	switch r.curve {
	case CurveExponential:
		r.current = r.target + (r.current-r.target)*r.coeff
		if math.Abs(r.current-r.target) < r.threshold {
			r.finish()
		}
	case CurveLinear:
		r.current += r.step
		if (r.step >= 0 && r.current >= r.target) || (r.step < 0 && r.current <= r.target) {
			r.finish()
		}
	case CurveLogarithmic:
		r.logCurrent += r.step
		if (r.step >= 0 && r.logCurrent >= r.logTarget) || (r.step < 0 && r.logCurrent <= r.logTarget) {
			r.finish()
		} else {
			r.current = math.Exp(r.logCurrent)
		}
	}
	return r.current
}

// Fill writes successive values into dst.
func (r *Ramp) Fill(dst []float64) {
	for i := range dst {
		dst[i] = r.Next()
	}
}

// Skip advances n samples without producing output.
func (r *Ramp) Skip(n int) float64 {
	for i := 0; i < n && r.active; i++ {
		r.Next()
	}
	return r.current
}

func (r *Ramp) finish() {
	r.current = r.target
	r.active = false
}

// Reset jumps to v.
func (r *Ramp) Reset(v float64) {
	r.current = v
	r.target = v
	r.active = false
}

// Current returns the most recent value.
func (r *Ramp) Current() float64 {
	return r.current
}

// Target returns the value being ramped to.
func (r *Ramp) Target() float64 {
	return r.target
}

// Active reports whether the ramp is still moving.
func (r *Ramp) Active() bool {
	return r.active
}

// Curve returns the ramp shape.
func (r *Ramp) Curve() Curve {
	return r.curve
}
