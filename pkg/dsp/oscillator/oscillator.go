// Package oscillator provides naive phase-accumulator test-tone sources.
package oscillator

import (
	"math"

	"github.com/justyntemme/dawcore/pkg/dsp/smooth"
	"github.com/justyntemme/dawcore/pkg/timebase"
)

// Waveform selects the shape an Oscillator produces.
type Waveform int32

const (
	Sine Waveform = iota
	Saw
	Square
	Triangle
)

// Waveforms lists every shape in index order, for building a choice
// parameter.
var Waveforms = []string{"Sine", "Saw", "Square", "Triangle"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(Waveforms) {
		return "unknown"
	}
	return Waveforms[w]
}

// Oscillator generates a periodic waveform. Phase is kept in [0, 1).
type Oscillator struct {
	sampleRate timebase.SampleRate
	frequency  float64
	phase      float64
	phaseInc   float64
	waveform   Waveform
}

// New returns a 440 Hz sine.
func New(sr timebase.SampleRate) *Oscillator {
	o := &Oscillator{sampleRate: sr}
	o.SetFrequency(440)
	return o
}

// SetSampleRate keeps the frequency and rescales the phase increment.
func (o *Oscillator) SetSampleRate(sr timebase.SampleRate) {
	o.sampleRate = sr
	o.SetFrequency(o.frequency)
}

func (o *Oscillator) SetFrequency(hz float64) {
	o.frequency = hz
	o.phaseInc = hz * o.sampleRate.Recip()
}

func (o *Oscillator) Frequency() float64 { return o.frequency }

func (o *Oscillator) SetWaveform(w Waveform) { o.waveform = w }

func (o *Oscillator) Waveform() Waveform { return o.waveform }

// SetPhase wraps phase into [0, 1).
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = phase - math.Floor(phase)
}

func (o *Oscillator) Phase() float64 { return o.phase }

func (o *Oscillator) Reset() { o.phase = 0 }

func (o *Oscillator) sample() float64 {
	p := o.phase
	switch o.waveform {
	case Saw:
		return 2*p - 1
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		if p < 0.5 {
			return 4*p - 1
		}
		return 3 - 4*p
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

func (o *Oscillator) advance(inc float64) {
	o.phase += inc
	if o.phase >= 1 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
	}
}

// Next returns one sample and advances the phase.
func (o *Oscillator) Next() float64 {
	s := o.sample()
	o.advance(o.phaseInc)
	return s
}

// Process fills buf at the current frequency.
func Process[T smooth.Float](o *Oscillator, buf []T) {
	for i := range buf {
		buf[i] = T(o.Next())
	}
}

// ProcessModulated fills buf with the frequency in Hz taken per frame from
// freq. A settled output is treated as a constant frequency for the block.
func ProcessModulated[T smooth.Float](o *Oscillator, buf []T, freq smooth.Output[T]) {
	if len(buf) == 0 {
		return
	}
	if len(freq.Values) == 0 {
		Process(o, buf)
		return
	}
	if !freq.IsSmoothing() {
		o.SetFrequency(float64(freq.Values[0]))
		Process(o, buf)
		return
	}
	recip := o.sampleRate.Recip()
	n := min(len(buf), len(freq.Values))
	for i := range n {
		buf[i] = T(o.sample())
		o.advance(float64(freq.Values[i]) * recip)
	}
	o.frequency = float64(freq.Values[n-1])
	o.phaseInc = o.frequency * recip
	Process(o, buf[n:])
}
