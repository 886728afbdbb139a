// Package cell provides wait-free scalar cells shared between the audio thread
// and control threads.
//
// A cell is the only channel of communication between a parameter and its
// handles. Every load and store is a single atomic word access, so readers
// never observe a torn value. No other memory is ordered against a cell,
// which makes last-write-wins the complete contract.
package cell

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Float is the type constraint for floating-point cells.
type Float interface {
	~float32 | ~float64
}

// FloatCell is an atomic floating-point value.
//
// The value is stored as its IEEE-754 bit pattern. float32 cells use the low
// 32 bits of the word; the zero value holds 0.0.
type FloatCell[T Float] struct {
	bits atomic.Uint64
}

// NewFloat creates a cell holding v.
func NewFloat[T Float](v T) *FloatCell[T] {
	c := &FloatCell[T]{}
	c.Set(v)
	return c
}

// Get returns the current value.
func (c *FloatCell[T]) Get() T {
	return fromBits[T](c.bits.Load())
}

// Set stores v.
func (c *FloatCell[T]) Set(v T) {
	c.bits.Store(toBits(v))
}

// Swap stores v and returns the previous value.
func (c *FloatCell[T]) Swap(v T) T {
	return fromBits[T](c.bits.Swap(toBits(v)))
}

func toBits[T Float](v T) uint64 {
	if is32[T]() {
		return uint64(math.Float32bits(float32(v)))
	}
	return math.Float64bits(float64(v))
}

func fromBits[T Float](b uint64) T {
	if is32[T]() {
		return T(math.Float32frombits(uint32(b)))
	}
	return T(math.Float64frombits(b))
}

func is32[T Float]() bool {
	var zero T
	return unsafe.Sizeof(zero) == 4
}

// Int32 is an atomic int32 value.
type Int32 struct {
	v atomic.Int32
}

// NewInt32 creates a cell holding v.
func NewInt32(v int32) *Int32 {
	c := &Int32{}
	c.v.Store(v)
	return c
}

// Get returns the current value.
func (c *Int32) Get() int32 {
	return c.v.Load()
}

// Set stores v.
func (c *Int32) Set(v int32) {
	c.v.Store(v)
}

// Swap stores v and returns the previous value.
func (c *Int32) Swap(v int32) int32 {
	return c.v.Swap(v)
}
