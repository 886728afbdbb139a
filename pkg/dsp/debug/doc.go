// Package debug provides audio-path precondition checks.
//
// The checks are only active when building with the 'debug' build tag:
//
//	go test -tags debug ./...
//
// In a debug build a violated precondition (a block longer than the
// configured maximum, a buffer that was never allocated, a buffer that was
// reallocated between blocks) panics with a descriptive message. In a release
// build the same calls compile down to a clamp or a no-op so the audio thread
// trusts the caller, the way a bounds hint does:
//
//	func (p *Param[T]) Smoothed(frames int) smooth.Output[T] {
//	    frames = debug.CheckFrames(frames, p.maxBlock, "Param.Smoothed")
//	    ...
//	}
package debug
