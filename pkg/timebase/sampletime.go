package timebase

import "math"

// SampleTime is a signed offset in samples at some sample rate.
type SampleTime int64

// ToSeconds converts to wall-clock time at sr.
func (st SampleTime) ToSeconds(sr SampleRate) Seconds {
	return Seconds(float64(st) / float64(sr))
}

// ToMusical converts to MusicalTime, rounded to the nearest musical tick.
// The result must be recomputed after a sample rate or tempo change.
func (st SampleTime) ToMusical(bpm Tempo, sr SampleRate) MusicalTime {
	return st.ToSeconds(sr).ToMusical(bpm)
}

// ToSuperSample converts to SuperSampleTime. See SuperSampleFromSampleTime.
func (st SampleTime) ToSuperSample(sr SampleRate) SuperSampleTime {
	return SuperSampleFromSampleTime(st, sr)
}

// Frames returns st as a non-negative length. ok is false when st < 0.
func (st SampleTime) Frames() (f Frames, ok bool) {
	if st < 0 {
		return 0, false
	}
	return Frames(st), true
}

// AddFrames offsets st forward by f.
func (st SampleTime) AddFrames(f Frames) SampleTime {
	return st + SampleTime(f)
}

// SubFrames offsets st backward by f.
func (st SampleTime) SubFrames(f Frames) SampleTime {
	return st - SampleTime(f)
}

// SuperSampleTime is a signed offset in units of 1/28,224,000 of a second.
// Because that unit divides every common sample rate, moving a project
// between those rates through SuperSampleTime is lossless.
type SuperSampleTime int64

// SuperSampleFromSampleTime converts st at rate sr to super-sample ticks.
//
// For rates in CommonSampleRates this is an exact integer multiplication.
// Any other rate goes through a float64 ratio rounded to the nearest tick,
// which is lossy: converting back with ToSampleTime may not return st.
func SuperSampleFromSampleTime(st SampleTime, sr SampleRate) SuperSampleTime {
	if per, ok := sr.superPerSample(); ok {
		return SuperSampleTime(int64(st) * per)
	}
	return SuperSampleTime(math.Round(float64(st) * (superRateF / float64(sr))))
}

// ToSeconds converts to wall-clock time.
func (st SuperSampleTime) ToSeconds() Seconds {
	return Seconds(float64(st) / superRateF)
}

// ToMusical converts to MusicalTime at the given tempo, rounded to the
// nearest musical tick.
func (st SuperSampleTime) ToMusical(bpm Tempo) MusicalTime {
	return st.ToSeconds().ToMusical(bpm)
}

// ToSampleTime converts to SampleTime at sr, rounded to the nearest sample.
//
// For rates in CommonSampleRates the division is done in integers, so any
// value produced by SuperSampleFromSampleTime at the same rate converts back
// exactly. Other rates go through float64 and are lossy.
func (st SuperSampleTime) ToSampleTime(sr SampleRate) SampleTime {
	if per, ok := sr.superPerSample(); ok {
		return SampleTime(divRound(int64(st), per))
	}
	return SampleTime(math.Round(float64(st) * float64(sr) / superRateF))
}

// Frames returns st as a non-negative length. ok is false when st < 0.
func (st SuperSampleTime) Frames() (f SuperFrames, ok bool) {
	if st < 0 {
		return 0, false
	}
	return SuperFrames(st), true
}

// AddSuperFrames offsets st forward by f.
func (st SuperSampleTime) AddSuperFrames(f SuperFrames) SuperSampleTime {
	return st + SuperSampleTime(f)
}

// SubSuperFrames offsets st backward by f.
func (st SuperSampleTime) SubSuperFrames(f SuperFrames) SuperSampleTime {
	return st - SuperSampleTime(f)
}

// divRound divides a by a positive b, rounding half away from zero to
// match math.Round.
func divRound(a, b int64) int64 {
	q, r := a/b, a%b
	switch {
	case r > 0 && 2*r >= b:
		q++
	case r < 0 && -2*r >= b:
		q--
	}
	return q
}
