package param

import (
	"fmt"
	"math"
	"strconv"

	"github.com/justyntemme/dawcore/pkg/dsp/cell"
	"github.com/justyntemme/dawcore/pkg/framework/debug"
)

// ParamI32 is the audio-thread half of a discrete integer parameter such as
// a mode index or voice count. It has no smoothing and maps linearly between
// normalized values and integers in [min, max], rounding to the nearest
// integer. Normalized 0 is min.
//
// The shared cell holds the integer value itself.
type ParamI32 struct {
	min, max int32
	shared   *cell.Int32
	value    int32
}

// NewI32FromValue creates an integer parameter and its first handle. value
// is clamped to [min, max]. It panics if min >= max.
func NewI32FromValue(value, min, max int32) (*ParamI32, *HandleI32) {
	if min >= max {
		debug.Fatal("param: min %d must be less than max %d", min, max)
	}
	return newI32Pair(clampI32(value, min, max), min, max)
}

// NewI32FromNormalized creates an integer parameter from a normalized value.
func NewI32FromNormalized(normalized float64, min, max int32) (*ParamI32, *HandleI32) {
	if min >= max {
		debug.Fatal("param: min %d must be less than max %d", min, max)
	}
	return newI32Pair(i32FromNormalized(normalized, min, max), min, max)
}

func newI32Pair(v, min, max int32) (*ParamI32, *HandleI32) {
	shared := cell.NewInt32(v)
	p := &ParamI32{min: min, max: max, shared: shared, value: v}
	h := &HandleI32{min: min, max: max, shared: shared, value: v, display: &display{}}
	return p, h
}

func i32FromNormalized(n float64, min, max int32) int32 {
	n = clamp01(n)
	span := float64(int64(max) - int64(min))
	return int32(int64(min) + int64(math.Round(n*span)))
}

func i32ToNormalized(v, min, max int32) float64 {
	v = clampI32(v, min, max)
	return float64(int64(v)-int64(min)) / float64(int64(max)-int64(min))
}

func clampI32(v, min, max int32) int32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Sync picks up the latest value written by any handle. Call it once per
// process block. changed reports whether the value moved since the last
// Sync or mutation.
func (p *ParamI32) Sync() (value int32, changed bool) {
	v := clampI32(p.shared.Get(), p.min, p.max)
	if v == p.value {
		return v, false
	}
	p.value = v
	return v, true
}

// Value returns the value as of the last Sync or mutation.
func (p *ParamI32) Value() int32 { return p.value }

// Normalized returns Value in [0, 1].
func (p *ParamI32) Normalized() float64 { return i32ToNormalized(p.value, p.min, p.max) }

// SetValue sets and publishes value, clamped to [min, max].
func (p *ParamI32) SetValue(value int32) {
	p.value = clampI32(value, p.min, p.max)
	p.shared.Set(p.value)
}

// SetNormalized sets and publishes the integer nearest to normalized.
func (p *ParamI32) SetNormalized(normalized float64) {
	p.SetValue(i32FromNormalized(normalized, p.min, p.max))
}

func (p *ParamI32) Min() int32 { return p.min }
func (p *ParamI32) Max() int32 { return p.max }

// ValueToNormalized maps value into [0, 1].
func (p *ParamI32) ValueToNormalized(value int32) float64 {
	return i32ToNormalized(value, p.min, p.max)
}

// NormalizedToValue maps normalized onto the nearest integer in [min, max].
func (p *ParamI32) NormalizedToValue(normalized float64) int32 {
	return i32FromNormalized(normalized, p.min, p.max)
}

// Shared returns the cell shared with every handle.
func (p *ParamI32) Shared() *cell.Int32 { return p.shared }

// HandleI32 is the control-thread half of a ParamI32. Like Handle it caches
// the last value it saw; it is not safe for concurrent use.
type HandleI32 struct {
	min, max int32
	shared   *cell.Int32
	value    int32

	display *display
}

// Value returns the cached value.
func (h *HandleI32) Value() int32 { return h.value }

// Normalized returns the cached value in [0, 1].
func (h *HandleI32) Normalized() float64 { return i32ToNormalized(h.value, h.min, h.max) }

// Latest refreshes the cache and reports whether the value changed since
// this handle last looked.
func (h *HandleI32) Latest() (value int32, changed bool) {
	changed = h.Poll()
	return h.value, changed
}

// Poll refreshes the cache and reports whether it changed.
func (h *HandleI32) Poll() bool {
	v := clampI32(h.shared.Get(), h.min, h.max)
	if v == h.value {
		return false
	}
	h.value = v
	return true
}

// SetValue publishes value, clamped to [min, max].
func (h *HandleI32) SetValue(value int32) {
	h.value = clampI32(value, h.min, h.max)
	h.shared.Set(h.value)
}

// SetNormalized publishes the integer nearest to normalized.
func (h *HandleI32) SetNormalized(normalized float64) {
	h.SetValue(i32FromNormalized(normalized, h.min, h.max))
}

// Clone returns a new handle on the same parameter with its own cache.
func (h *HandleI32) Clone() *HandleI32 {
	c := *h
	return &c
}

// Shared returns the cell shared with the parameter.
func (h *HandleI32) Shared() *cell.Int32 { return h.shared }

func (h *HandleI32) Min() int32 { return h.min }
func (h *HandleI32) Max() int32 { return h.max }

// ValueToNormalized maps value into [0, 1].
func (h *HandleI32) ValueToNormalized(value int32) float64 {
	return i32ToNormalized(value, h.min, h.max)
}

// NormalizedToValue maps normalized onto the nearest integer in [min, max].
func (h *HandleI32) NormalizedToValue(normalized float64) int32 {
	return i32FromNormalized(normalized, h.min, h.max)
}

// SetFormatter sets the display conversion. Either function may be nil.
func (h *HandleI32) SetFormatter(format Formatter, parse Parser) {
	h.display = &display{format: format, parse: parse}
}

// Format returns the cached value as display text.
func (h *HandleI32) Format() string {
	if h.display.format != nil {
		return h.display.format(float64(h.value))
	}
	return strconv.Itoa(int(h.value))
}

func (h *HandleI32) controlNormalized() float64 {
	h.Poll()
	return h.Normalized()
}

func (h *HandleI32) setControlNormalized(n float64) {
	h.SetNormalized(n)
}

func (h *HandleI32) parseNormalized(text string) (float64, error) {
	parse := h.display.parse
	if parse == nil {
		parse = defaultParser(Generic)
	}
	v, err := parse(text)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", text, err)
	}
	return i32ToNormalized(roundI32(v), h.min, h.max), nil
}

func roundI32(v float64) int32 {
	return int32(max(math.MinInt32, min(math.Round(v), math.MaxInt32)))
}
