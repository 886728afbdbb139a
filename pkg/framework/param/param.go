// Package param provides smoothed, thread-safe audio parameters.
//
// A parameter is split in two halves that share one atomic cell holding the
// normalized value. Param lives on the audio thread: it reads the cell once
// per block in Smoothed and feeds a declicking filter. Handle lives on a
// control thread (UI, automation, host bridge) and reads or writes the cell
// whenever it likes. Writes from either side are last-write-wins and become
// audible at the next Smoothed call.
package param

import (
	"github.com/justyntemme/dawcore/pkg/dsp/cell"
	"github.com/justyntemme/dawcore/pkg/dsp/smooth"
	"github.com/justyntemme/dawcore/pkg/framework/debug"
	"github.com/justyntemme/dawcore/pkg/timebase"
)

// DefaultSmoothSecs is a good smoothing period for most parameters.
const DefaultSmoothSecs timebase.Seconds = 5.0 / 1000.0

// Param is the audio-thread half of a smoothed parameter.
//
// A Param is owned by one goroutine and is not safe for concurrent use. It
// never allocates after construction.
type Param[T Float] struct {
	min, max T
	gradient Gradient
	unit     Unit

	shared     *cell.FloatCell[T]
	normalized T
	value      T
	dspValue   T

	smoothed   *smooth.Smoother[T]
	smoothSecs timebase.Seconds
	sampleRate timebase.SampleRate
}

type (
	ParamF32  = Param[float32]
	ParamF64  = Param[float64]
	HandleF32 = Handle[float32]
	HandleF64 = Handle[float64]
)

// NewFromValue creates a parameter and its first handle from a value in
// [min, max]. The smoother starts settled at that value.
//
// It panics if min >= max, if an Exponential gradient has min <= 0, if a
// Power gradient has a non-positive exponent, or if maxBlock <= 0.
func NewFromValue[T Float](value, min, max T, g Gradient, unit Unit, smoothSecs timebase.Seconds, sr timebase.SampleRate, maxBlock int) (*Param[T], *Handle[T]) {
	mustValidate(min, max, g, maxBlock)
	return newPair(ValueToNormalized(value, min, max, g), min, max, g, unit, smoothSecs, sr, maxBlock)
}

// NewFromNormalized creates a parameter and its first handle from a
// normalized value in [0, 1]. See NewFromValue.
func NewFromNormalized[T Float](normalized, min, max T, g Gradient, unit Unit, smoothSecs timebase.Seconds, sr timebase.SampleRate, maxBlock int) (*Param[T], *Handle[T]) {
	mustValidate(min, max, g, maxBlock)
	return newPair(clamp01(normalized), min, max, g, unit, smoothSecs, sr, maxBlock)
}

func mustValidate[T Float](min, max T, g Gradient, maxBlock int) {
	if err := checkRange(min, max, g); err != nil {
		debug.Fatal("param: %v", err)
	}
	if maxBlock <= 0 {
		debug.Fatal("param: max block size must be positive, got %d", maxBlock)
	}
}

func newPair[T Float](n, min, max T, g Gradient, unit Unit, smoothSecs timebase.Seconds, sr timebase.SampleRate, maxBlock int) (*Param[T], *Handle[T]) {
	p := &Param[T]{
		min:        min,
		max:        max,
		gradient:   g,
		unit:       unit,
		shared:     cell.NewFloat(n),
		normalized: n,
		smoothSecs: smoothSecs,
		sampleRate: sr,
	}
	p.updateValue()

	p.smoothed = smooth.New(p.dspValue, maxBlock)
	p.smoothed.SetSpeed(sr, smoothSecs)

	debug.Debug("param: new %v [%v, %v] %v %v, value %v", unit, min, max, g, sr, p.value)

	return p, newHandle(p.shared, n, min, max, g, unit)
}

func (p *Param[T]) updateValue() {
	p.value = NormalizedToValue(p.normalized, p.min, p.max, p.gradient)
	p.dspValue = UnitToDSP(p.unit, p.value)
}

// SetValue moves the parameter toward value, clamped to [min, max]. Setting
// the current value again does not restart the ramp.
func (p *Param[T]) SetValue(value T) {
	p.set(ValueToNormalized(value, p.min, p.max, p.gradient))
}

// SetNormalized moves the parameter toward normalized, clamped to [0, 1].
func (p *Param[T]) SetNormalized(normalized T) {
	p.set(clamp01(normalized))
}

func (p *Param[T]) set(n T) {
	if n == p.normalized && n == p.shared.Get() {
		return
	}
	p.normalized = n
	p.shared.Set(n)
	p.updateValue()
	p.smoothed.Set(p.dspValue)
}

// ResetFromValue jumps to value without smoothing. Use it for preset loads
// and transport relocation.
func (p *Param[T]) ResetFromValue(value T) {
	p.reset(ValueToNormalized(value, p.min, p.max, p.gradient))
}

// ResetFromNormalized jumps to normalized without smoothing.
func (p *Param[T]) ResetFromNormalized(normalized T) {
	p.reset(clamp01(normalized))
}

func (p *Param[T]) reset(n T) {
	p.normalized = n
	p.shared.Set(n)
	p.updateValue()
	p.smoothed.Reset(p.dspValue)
}

// Smoothed picks up the latest value written by any handle, advances the
// smoother by frames and returns the block of DSP values. Call it exactly
// once per process block.
//
// frames above the max block size panics in debug builds and is clamped
// otherwise. The returned values alias internal storage and are valid until
// the next call that moves this parameter.
func (p *Param[T]) Smoothed(frames int) smooth.Output[T] {
	n := p.shared.Get()
	if c := clamp01(n); c != n {
		// A host bridge wrote through SharedNormalized without clamping.
		p.shared.Set(c)
		n = c
	}
	if n != p.normalized {
		p.normalized = n
		p.updateValue()
		p.smoothed.Set(p.dspValue)
	}

	p.smoothed.Process(frames)
	p.smoothed.UpdateStatus()

	return p.smoothed.Output().Frames(frames)
}

// SetSampleRate updates the smoothing filter for a new host rate. The target
// and any ramp in progress are kept.
func (p *Param[T]) SetSampleRate(sr timebase.SampleRate) {
	p.sampleRate = sr
	p.smoothed.SetSpeed(sr, p.smoothSecs)
}

// SetSmoothSecs changes the smoothing period.
func (p *Param[T]) SetSmoothSecs(secs timebase.Seconds) {
	p.smoothSecs = secs
	p.smoothed.SetSpeed(p.sampleRate, secs)
}

// SmoothSecs returns the smoothing period.
func (p *Param[T]) SmoothSecs() timebase.Seconds { return p.smoothSecs }

// SampleRate returns the rate the smoother is tuned for.
func (p *Param[T]) SampleRate() timebase.SampleRate { return p.sampleRate }

// MaxBlockSize returns the largest frame count Smoothed accepts.
func (p *Param[T]) MaxBlockSize() int { return p.smoothed.MaxBlockSize() }

func (p *Param[T]) Min() T             { return p.min }
func (p *Param[T]) Max() T             { return p.max }
func (p *Param[T]) Gradient() Gradient { return p.gradient }
func (p *Param[T]) Unit() Unit         { return p.unit }

// ValueToNormalized maps value through this parameter's range and gradient.
func (p *Param[T]) ValueToNormalized(value T) T {
	return ValueToNormalized(value, p.min, p.max, p.gradient)
}

// NormalizedToValue maps normalized through this parameter's range and
// gradient.
func (p *Param[T]) NormalizedToValue(normalized T) T {
	return NormalizedToValue(normalized, p.min, p.max, p.gradient)
}

// Normalized returns the normalized value as of the last Smoothed call or
// mutation. Handle writes since then are not reflected until the next
// Smoothed call. Meant for reporting to a host, not for DSP.
func (p *Param[T]) Normalized() T { return p.normalized }

// Value returns the unit value (dB for Decibels) matching Normalized.
func (p *Param[T]) Value() T { return p.value }

// DSPValue returns the smoother's target in DSP units.
func (p *Param[T]) DSPValue() T { return p.dspValue }

// SharedNormalized returns the cell shared with every handle.
func (p *Param[T]) SharedNormalized() *cell.FloatCell[T] { return p.shared }
