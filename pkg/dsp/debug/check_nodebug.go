//go:build !debug

package debug

// Enabled reports whether precondition checks are compiled in.
const Enabled = false

// CheckFrames clamps frames to [0, maxFrames].
func CheckFrames(frames, maxFrames int, name string) int {
	if frames > maxFrames {
		return maxFrames
	}
	if frames < 0 {
		return 0
	}
	return frames
}

// CheckBuffer is a no-op when not in debug mode
func CheckBuffer[T any](buf []T, name string) {}

// VerifyBufferReuse is a no-op when not in debug mode
func VerifyBufferReuse[T any](buf []T, name string, expectedPtr uintptr) uintptr {
	return 0
}

// DetectAllocation runs fn without measuring it when not in debug mode
func DetectAllocation(fn func()) {
	fn()
}
