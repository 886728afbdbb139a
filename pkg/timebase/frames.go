package timebase

import "math"

// Frames is a non-negative length in samples of a single de-interleaved
// channel.
type Frames uint64

// ToSeconds converts to a wall-clock duration at sr.
func (f Frames) ToSeconds(sr SampleRate) Seconds {
	return Seconds(float64(f) / float64(sr))
}

// ToMusical converts to MusicalTime, rounded to the nearest musical tick.
// The result must be recomputed after a sample rate or tempo change.
func (f Frames) ToMusical(bpm Tempo, sr SampleRate) MusicalTime {
	return f.ToSeconds(sr).ToMusical(bpm)
}

// ToSampleTime returns f as a signed sample offset.
func (f Frames) ToSampleTime() SampleTime {
	return SampleTime(f)
}

// ToSuperFrames converts to SuperFrames. See SuperFramesFromFrames.
func (f Frames) ToSuperFrames(sr SampleRate) SuperFrames {
	return SuperFramesFromFrames(f, sr)
}

// Min returns the smaller of f and n. Clamp a host-supplied block length to
// a fixed maximum block size before indexing pre-sized buffers with it.
func (f Frames) Min(n Frames) Frames {
	return min(f, n)
}

// Sub returns f - o, saturating at zero.
func (f Frames) Sub(o Frames) Frames {
	if o > f {
		return 0
	}
	return f - o
}

// SuperFrames is a non-negative length in units of 1/28,224,000 of a second.
type SuperFrames uint64

// SuperFramesFromFrames converts f at rate sr to super-sample ticks.
//
// For rates in CommonSampleRates this is an exact integer multiplication.
// Any other rate goes through a float64 ratio rounded to the nearest tick,
// which is lossy.
func SuperFramesFromFrames(f Frames, sr SampleRate) SuperFrames {
	if per, ok := sr.superPerSample(); ok {
		return SuperFrames(uint64(f) * uint64(per))
	}
	return SuperFrames(math.Round(float64(f) * (superRateF / float64(sr))))
}

// ToSeconds converts to a wall-clock duration.
func (f SuperFrames) ToSeconds() Seconds {
	return Seconds(float64(f) / superRateF)
}

// ToMusical converts to MusicalTime at the given tempo, rounded to the
// nearest musical tick.
func (f SuperFrames) ToMusical(bpm Tempo) MusicalTime {
	return f.ToSeconds().ToMusical(bpm)
}

// ToSuperSampleTime returns f as a signed super-sample offset.
func (f SuperFrames) ToSuperSampleTime() SuperSampleTime {
	return SuperSampleTime(f)
}

// ToFrames converts to Frames at sr, rounded to the nearest sample. Exact
// for rates in CommonSampleRates, lossy otherwise.
func (f SuperFrames) ToFrames(sr SampleRate) Frames {
	if per, ok := sr.superPerSample(); ok {
		p := uint64(per)
		q, r := uint64(f)/p, uint64(f)%p
		if 2*r >= p {
			q++
		}
		return Frames(q)
	}
	return Frames(math.Round(float64(f) * float64(sr) / superRateF))
}

// Sub returns f - o, saturating at zero.
func (f SuperFrames) Sub(o SuperFrames) SuperFrames {
	if o > f {
		return 0
	}
	return f - o
}
