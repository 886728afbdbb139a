//go:build debug

package debug

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Enabled reports whether precondition checks are compiled in.
const Enabled = true

// CheckFrames panics if frames is negative or exceeds maxFrames.
func CheckFrames(frames, maxFrames int, name string) int {
	if frames < 0 || frames > maxFrames {
		panic(fmt.Sprintf("%s: frame count %d outside [0, %d]", name, frames, maxFrames))
	}
	return frames
}

// CheckBuffer panics if buf was never allocated.
func CheckBuffer[T any](buf []T, name string) {
	if buf == nil {
		panic(fmt.Sprintf("buffer %s is nil", name))
	}
	if cap(buf) == 0 {
		panic(fmt.Sprintf("buffer %s is not pre-allocated (capacity is 0)", name))
	}
}

// VerifyBufferReuse panics if buf no longer starts at expectedPtr. It
// returns the current start address; pass 0 on the first call.
func VerifyBufferReuse[T any](buf []T, name string, expectedPtr uintptr) uintptr {
	ptr := uintptr(0)
	if len(buf) > 0 {
		ptr = uintptr(unsafe.Pointer(&buf[0]))
	}
	if expectedPtr != 0 && ptr != expectedPtr {
		panic(fmt.Sprintf("buffer %s was reallocated: expected %x, got %x", name, expectedPtr, ptr))
	}
	return ptr
}

// DetectAllocation runs fn and panics if it allocated on the heap.
func DetectAllocation(fn func()) {
	var before, after runtime.MemStats

	runtime.GC()
	runtime.ReadMemStats(&before)

	fn()

	runtime.ReadMemStats(&after)
	if n := after.Mallocs - before.Mallocs; n > 0 {
		panic(fmt.Sprintf("allocation detected: %d objects, %d bytes",
			n, after.TotalAlloc-before.TotalAlloc))
	}
}
