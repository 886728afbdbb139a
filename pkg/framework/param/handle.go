package param

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/justyntemme/dawcore/pkg/dsp/cell"
)

// Formatter turns a parameter value into display text.
type Formatter func(value float64) string

// Parser turns display text back into a parameter value.
type Parser func(text string) (float64, error)

type display struct {
	format Formatter
	parse  Parser
}

// Handle is the control-thread half of a smoothed parameter.
//
// A handle caches the last value it saw. Normalized and Value return that
// cache; LatestNormalized, LatestValue and Poll refresh it from the shared
// cell and report whether something else (the audio thread, a host or
// another handle) changed the value in the meantime. A UI can use that flag
// to animate a control under automation.
//
// A Handle is not safe for concurrent use. Give each goroutine its own
// Clone; all clones share the parameter's cell.
type Handle[T Float] struct {
	min, max T
	gradient Gradient
	unit     Unit

	shared     *cell.FloatCell[T]
	normalized T
	value      T

	display *display
}

func newHandle[T Float](shared *cell.FloatCell[T], n, min, max T, g Gradient, unit Unit) *Handle[T] {
	return &Handle[T]{
		min:        min,
		max:        max,
		gradient:   g,
		unit:       unit,
		shared:     shared,
		normalized: n,
		value:      NormalizedToValue(n, min, max, g),
		display:    &display{},
	}
}

// Normalized returns the cached normalized value. It may be stale if the
// parameter was changed elsewhere; see LatestNormalized.
func (h *Handle[T]) Normalized() T { return h.normalized }

// Value returns the cached unit value. It may be stale; see LatestValue.
func (h *Handle[T]) Value() T { return h.value }

// LatestNormalized refreshes the cache and returns the normalized value.
// changed is true when the value moved since this handle last looked.
func (h *Handle[T]) LatestNormalized() (normalized T, changed bool) {
	changed = h.Poll()
	return h.normalized, changed
}

// LatestValue refreshes the cache and returns the unit value.
func (h *Handle[T]) LatestValue() (value T, changed bool) {
	changed = h.Poll()
	return h.value, changed
}

// Poll refreshes the cache from the shared cell and reports whether it
// changed. The cell value is clamped before the comparison, so an
// out-of-range write through SharedNormalized is reported once.
func (h *Handle[T]) Poll() bool {
	n := clamp01(h.shared.Get())
	if n == h.normalized {
		return false
	}
	h.normalized = n
	h.value = NormalizedToValue(h.normalized, h.min, h.max, h.gradient)
	return true
}

// SetNormalized publishes normalized, clamped to [0, 1]. The host is not
// notified; that is up to the caller.
func (h *Handle[T]) SetNormalized(normalized T) {
	h.Poll()
	h.publish(clamp01(normalized))
}

// SetValue publishes value, clamped to [min, max].
func (h *Handle[T]) SetValue(value T) {
	h.Poll()
	h.publish(ValueToNormalized(value, h.min, h.max, h.gradient))
}

func (h *Handle[T]) publish(n T) {
	if n == h.normalized {
		return
	}
	h.normalized = n
	h.value = NormalizedToValue(n, h.min, h.max, h.gradient)
	h.shared.Set(n)
}

// Clone returns a new handle on the same parameter with its own cache.
func (h *Handle[T]) Clone() *Handle[T] {
	c := *h
	return &c
}

// SharedNormalized returns the cell shared with the parameter, for wiring
// into a host's own automation bridge.
func (h *Handle[T]) SharedNormalized() *cell.FloatCell[T] { return h.shared }

func (h *Handle[T]) Min() T             { return h.min }
func (h *Handle[T]) Max() T             { return h.max }
func (h *Handle[T]) Gradient() Gradient { return h.gradient }
func (h *Handle[T]) Unit() Unit         { return h.unit }

// ValueToNormalized maps value through this parameter's range and gradient.
func (h *Handle[T]) ValueToNormalized(value T) T {
	return ValueToNormalized(value, h.min, h.max, h.gradient)
}

// NormalizedToValue maps normalized through this parameter's range and
// gradient.
func (h *Handle[T]) NormalizedToValue(normalized T) T {
	return NormalizedToValue(normalized, h.min, h.max, h.gradient)
}

// SetFormatter sets the display conversion for this handle and every clone
// made from it afterwards. Either function may be nil.
func (h *Handle[T]) SetFormatter(format Formatter, parse Parser) {
	h.display = &display{format: format, parse: parse}
}

// Format returns the cached value as display text.
func (h *Handle[T]) Format() string {
	return h.FormatValue(h.value)
}

// FormatValue returns value as display text.
func (h *Handle[T]) FormatValue(value T) string {
	if h.display.format != nil {
		return h.display.format(float64(value))
	}
	if h.unit == Decibels {
		return DecibelFormatter(float64(value))
	}
	return strconv.FormatFloat(float64(value), 'f', 2, 64)
}

// Parse converts display text to a value. The result is not clamped.
func (h *Handle[T]) Parse(text string) (T, error) {
	parse := h.display.parse
	if parse == nil {
		parse = defaultParser(h.unit)
	}
	v, err := parse(text)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", text, err)
	}
	return T(v), nil
}

func defaultParser(u Unit) Parser {
	if u == Decibels {
		return DecibelParser
	}
	return func(text string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(text), 64)
	}
}

// Control methods used by Registry.

func (h *Handle[T]) controlNormalized() float64 {
	h.Poll()
	return float64(h.normalized)
}

func (h *Handle[T]) setControlNormalized(n float64) {
	h.SetNormalized(T(n))
}

func (h *Handle[T]) parseNormalized(text string) (float64, error) {
	v, err := h.Parse(text)
	if err != nil {
		return 0, err
	}
	return float64(h.ValueToNormalized(v)), nil
}
