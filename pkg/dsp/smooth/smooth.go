// Package smooth provides parameter smoothing filters for declicking.
//
// Smoother is a block-based one-pole low-pass filter meant to run once per
// process call on the audio thread. It owns a fixed buffer sized at
// construction and never allocates afterwards. Ramp is a per-sample smoother
// with selectable curves for control-rate automation.
package smooth

import (
	"fmt"
	"math"

	"github.com/justyntemme/dawcore/pkg/dsp/cell"
	"github.com/justyntemme/dawcore/pkg/dsp/debug"
	"github.com/justyntemme/dawcore/pkg/timebase"
)

// Float is the sample type constraint.
type Float = cell.Float

// DefaultEpsilon is the distance from the target at which UpdateStatus
// considers the filter settled.
const DefaultEpsilon = 1e-5

// Smoother is a one-pole low-pass filter that moves its output toward a
// target value, one block at a time:
//
//	y[i] = target + b*(y[i-1] - target)
//
// The step is taken on the distance to the target so the output lands on the
// target exactly. Once rounding stops the output from moving it is snapped to
// the target.
//
// A Smoother is not safe for concurrent use.
type Smoother[T Float] struct {
	output []T
	target T
	last   T
	b      T
	status Status

	// Start address of output, tracked in debug builds.
	outPtr uintptr
}

// New creates a smoother settled at initial. maxBlock is the largest frame
// count Process will accept. With no speed set the filter reaches its target
// in a single sample.
func New[T Float](initial T, maxBlock int) *Smoother[T] {
	if maxBlock <= 0 {
		panic(fmt.Sprintf("smooth: max block size must be positive, got %d", maxBlock))
	}
	s := &Smoother[T]{
		output: make([]T, maxBlock),
	}
	s.Reset(initial)
	return s
}

// SetSpeed sets the filter period. A non-positive period makes the filter
// jump to its target on the next Process call.
func (s *Smoother[T]) SetSpeed(sr timebase.SampleRate, period timebase.Seconds) {
	if period <= 0 || sr <= 0 {
		s.b = 0
		return
	}
	s.b = T(math.Exp(-1.0 / (float64(period) * float64(sr))))
}

// Set starts moving toward target.
func (s *Smoother[T]) Set(target T) {
	s.target = target
	s.status = Active
}

// Reset jumps to v without smoothing.
func (s *Smoother[T]) Reset(v T) {
	for i := range s.output {
		s.output[i] = v
	}
	s.target = v
	s.last = v
	s.status = Inactive
}

// Process computes the next frames values. frames above MaxBlockSize is a
// caller fault: it panics in debug builds and is clamped otherwise.
func (s *Smoother[T]) Process(frames int) {
	frames = debug.CheckFrames(frames, len(s.output), "smooth.Smoother.Process")
	s.outPtr = debug.VerifyBufferReuse(s.output, "smooth.Smoother.output", s.outPtr)
	if s.status != Active || frames == 0 {
		return
	}

	target := s.target
	out := s.output[:frames]
	prev := s.last
	for i := range out {
		next := target + (prev-target)*s.b
		if next == prev {
			next = target
		}
		prev = next
		out[i] = prev
	}
	s.last = prev
}

// UpdateStatus advances the settle cycle using DefaultEpsilon.
func (s *Smoother[T]) UpdateStatus() {
	s.UpdateStatusWithEpsilon(DefaultEpsilon)
}

// UpdateStatusWithEpsilon advances the settle cycle. An Active filter whose
// first output value is within eps of the target is snapped to the target
// and becomes Deactivating; a Deactivating filter becomes Inactive.
func (s *Smoother[T]) UpdateStatusWithEpsilon(eps T) {
	switch s.status {
	case Active:
		d := s.target - s.output[0]
		if d < 0 {
			d = -d
		}
		if d < eps {
			s.Reset(s.target)
			s.status = Deactivating
		}
	case Deactivating:
		s.status = Inactive
	}
}

// Output returns the full output buffer and the current status.
func (s *Smoother[T]) Output() Output[T] {
	return Output[T]{Values: s.output, Status: s.status}
}

// Dest returns the target value.
func (s *Smoother[T]) Dest() T {
	return s.target
}

// CurrentValue returns the most recently computed value and the status.
func (s *Smoother[T]) CurrentValue() (T, Status) {
	return s.last, s.status
}

// IsActive reports whether the filter is still moving.
func (s *Smoother[T]) IsActive() bool {
	return s.status == Active
}

// MaxBlockSize returns the largest block Process accepts.
func (s *Smoother[T]) MaxBlockSize() int {
	return len(s.output)
}
