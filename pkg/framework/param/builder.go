package param

import "github.com/justyntemme/dawcore/pkg/timebase"

// DefaultMaxBlockSize is the block size a Builder uses unless told otherwise.
const DefaultMaxBlockSize = 512

// Builder provides a fluent API for creating parameters.
type Builder struct {
	id   uint32
	name string

	min, max   float64
	def        float64
	gradient   Gradient
	unit       Unit
	smoothSecs timebase.Seconds
	maxBlock   int

	format Formatter
	parse  Parser
}

// New creates a parameter builder. The defaults are a linear generic range
// of [0, 1] starting at 0, DefaultSmoothSecs and DefaultMaxBlockSize.
func New(id uint32, name string) *Builder {
	return &Builder{
		id:         id,
		name:       name,
		min:        0,
		max:        1,
		gradient:   Linear(),
		unit:       Generic,
		smoothSecs: DefaultSmoothSecs,
		maxBlock:   DefaultMaxBlockSize,
	}
}

// ID returns the parameter ID.
func (b *Builder) ID() uint32 { return b.id }

// Name returns the parameter name.
func (b *Builder) Name() string { return b.name }

// Range sets the min and max values.
func (b *Builder) Range(min, max float64) *Builder {
	b.min = min
	b.max = max
	return b
}

// Default sets the initial value, in unit space.
func (b *Builder) Default(value float64) *Builder {
	b.def = value
	return b
}

// Gradient sets the normalized mapping curve.
func (b *Builder) Gradient(g Gradient) *Builder {
	b.gradient = g
	return b
}

// Unit sets the display unit.
func (b *Builder) Unit(u Unit) *Builder {
	b.unit = u
	return b
}

// Smoothing sets the smoothing period. Zero disables smoothing.
func (b *Builder) Smoothing(secs timebase.Seconds) *Builder {
	b.smoothSecs = secs
	return b
}

// MaxBlockSize sets the largest block the parameter will be asked to smooth.
func (b *Builder) MaxBlockSize(frames int) *Builder {
	b.maxBlock = frames
	return b
}

// Formatter sets custom display formatting and parsing.
func (b *Builder) Formatter(format Formatter, parse Parser) *Builder {
	b.format = format
	b.parse = parse
	return b
}

// BuildF32 creates a float32 parameter for sample rate sr.
func (b *Builder) BuildF32(sr timebase.SampleRate) (*ParamF32, *HandleF32) {
	return build[float32](b, sr)
}

// BuildF64 creates a float64 parameter for sample rate sr.
func (b *Builder) BuildF64(sr timebase.SampleRate) (*ParamF64, *HandleF64) {
	return build[float64](b, sr)
}

func build[T Float](b *Builder, sr timebase.SampleRate) (*Param[T], *Handle[T]) {
	p, h := NewFromValue(T(b.def), T(b.min), T(b.max), b.gradient, b.unit, b.smoothSecs, sr, b.maxBlock)
	if b.format != nil || b.parse != nil {
		h.SetFormatter(b.format, b.parse)
	}
	return p, h
}

// BuildI32 creates an integer parameter. The range and default are rounded
// to the nearest integers; gradient, unit and smoothing are ignored.
func (b *Builder) BuildI32() (*ParamI32, *HandleI32) {
	p, h := NewI32FromValue(roundI32(b.def), roundI32(b.min), roundI32(b.max))
	if b.format != nil || b.parse != nil {
		h.SetFormatter(b.format, b.parse)
	}
	return p, h
}
