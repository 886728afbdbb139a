// Package process provides the per-block processing context that drives
// parameters and tracks the transport position.
package process

import (
	dspdebug "github.com/justyntemme/dawcore/pkg/dsp/debug"
	"github.com/justyntemme/dawcore/pkg/framework/debug"
	"github.com/justyntemme/dawcore/pkg/timebase"
)

// SampleRateListener is anything tuned to the host sample rate, such as a
// param.Param.
type SampleRateListener interface {
	SetSampleRate(sr timebase.SampleRate)
}

// Context carries the state of one audio stream across process calls: the
// buffers for the current block, the sample rate, tempo and playhead, and
// pre-allocated scratch space sized to MaxBlockSize.
//
// A Context belongs to the audio thread. Call Begin before touching the
// block and End after, once per process call.
type Context struct {
	Input  [][]float32
	Output [][]float32

	SampleRate   timebase.SampleRate
	Tempo        timebase.Tempo
	Playhead     timebase.SampleTime
	MaxBlockSize int

	frames int

	// Pre-allocated work buffers
	workBuffer []float32
	tempBuffer []float32

	listeners []SampleRateListener
}

// NewContext creates a context with scratch buffers for maxBlockSize frames.
func NewContext(sr timebase.SampleRate, maxBlockSize int) *Context {
	if maxBlockSize <= 0 {
		debug.Fatal("process: max block size must be positive, got %d", maxBlockSize)
	}
	return &Context{
		SampleRate:   sr,
		Tempo:        timebase.DefaultTempo,
		MaxBlockSize: maxBlockSize,
		workBuffer:   make([]float32, maxBlockSize),
		tempBuffer:   make([]float32, maxBlockSize),
	}
}

// Attach registers listeners for sample rate changes and tunes them to the
// current rate.
func (c *Context) Attach(listeners ...SampleRateListener) {
	for _, l := range listeners {
		l.SetSampleRate(c.SampleRate)
	}
	c.listeners = append(c.listeners, listeners...)
}

// SetSampleRate switches to a new host rate. The playhead is carried over
// through super-sample time, which is exact between common rates, and every
// attached listener is retuned.
func (c *Context) SetSampleRate(sr timebase.SampleRate) {
	if sr == c.SampleRate {
		return
	}
	old := c.SampleRate
	c.Playhead = c.Playhead.ToSuperSample(old).ToSampleTime(sr)
	c.SampleRate = sr

	for _, l := range c.listeners {
		l.SetSampleRate(sr)
	}
	debug.Info("process: sample rate %v -> %v, playhead %d", old, sr, c.Playhead)
}

// Begin starts a block of frames and returns the frame count to process.
// frames above MaxBlockSize panics in debug builds and is clamped otherwise.
func (c *Context) Begin(frames int) int {
	c.frames = dspdebug.CheckFrames(frames, c.MaxBlockSize, "process.Context.Begin")
	dspdebug.CheckBuffer(c.workBuffer, "process.Context.workBuffer")
	dspdebug.CheckBuffer(c.tempBuffer, "process.Context.tempBuffer")
	return c.frames
}

// End finishes the block and advances the playhead past it.
func (c *Context) End() {
	c.Playhead = c.Playhead.AddFrames(timebase.Frames(c.frames))
	c.frames = 0
}

// Frames returns the length of the current block.
func (c *Context) Frames() int {
	return c.frames
}

// Relocate moves the playhead, as on a transport jump.
func (c *Context) Relocate(st timebase.SampleTime) {
	c.Playhead = st
}

// PlayheadSeconds returns the playhead as wall-clock time.
func (c *Context) PlayheadSeconds() timebase.Seconds {
	return c.Playhead.ToSeconds(c.SampleRate)
}

// PlayheadMusical returns the playhead in beats at the current tempo.
func (c *Context) PlayheadMusical() timebase.MusicalTime {
	return c.Playhead.ToMusical(c.Tempo, c.SampleRate)
}

// PlayheadSuper returns the playhead in super-sample ticks.
func (c *Context) PlayheadSuper() timebase.SuperSampleTime {
	return c.Playhead.ToSuperSample(c.SampleRate)
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// WorkBuffer returns the scratch buffer sized to the current block.
func (c *Context) WorkBuffer() []float32 {
	return c.workBuffer[:c.frames]
}

// TempBuffer returns a second scratch buffer sized to the current block.
func (c *Context) TempBuffer() []float32 {
	return c.tempBuffer[:c.frames]
}

// ProcessChannels calls fn for each channel pair of the current block.
func (c *Context) ProcessChannels(fn func(ch int, input, output []float32)) {
	n := min(c.NumInputChannels(), c.NumOutputChannels())
	for ch := 0; ch < n; ch++ {
		fn(ch, c.Input[ch][:c.frames], c.Output[ch][:c.frames])
	}
}

// PassThrough copies input to output for the current block.
func (c *Context) PassThrough() {
	c.ProcessChannels(func(_ int, in, out []float32) {
		copy(out, in)
	})
}

// Clear zeros the output for the current block.
func (c *Context) Clear() {
	for _, out := range c.Output {
		clear(out[:c.frames])
	}
}
