package timebase

// MusicalTime is a signed position in units of 1/28,224,000 of a beat.
//
// The resolution is divisible by halves through 64ths, thirds, fifths and
// sevenths of a beat, so note positions recorded in this format stay
// exact, and recorded note data is at least sample-accurate.
type MusicalTime int64

// MusicalFromBeats returns the time of a whole number of beats.
func MusicalFromBeats(beats int64) MusicalTime {
	return MusicalTime(beats * SuperRate)
}

// MusicalFromHalfBeats returns the time of a number of 1/2 beats.
func MusicalFromHalfBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 2))
}

// MusicalFromQuarterBeats returns the time of a number of 1/4 beats.
func MusicalFromQuarterBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 4))
}

// MusicalFromEighthBeats returns the time of a number of 1/8 beats.
func MusicalFromEighthBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 8))
}

// MusicalFromSixteenthBeats returns the time of a number of 1/16 beats.
func MusicalFromSixteenthBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 16))
}

// MusicalFrom32ndBeats returns the time of a number of 1/32 beats.
func MusicalFrom32ndBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 32))
}

// MusicalFrom64thBeats returns the time of a number of 1/64 beats.
func MusicalFrom64thBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 64))
}

// MusicalFromThirdBeats returns the time of a number of 1/3 beats.
func MusicalFromThirdBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 3))
}

// MusicalFromFifthBeats returns the time of a number of 1/5 beats.
func MusicalFromFifthBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 5))
}

// MusicalFromSeventhBeats returns the time of a number of 1/7 beats.
func MusicalFromSeventhBeats(n int64) MusicalTime {
	return MusicalTime(n * (SuperRate / 7))
}

// Beats returns the number of whole beats, floored toward negative infinity.
func (m MusicalTime) Beats() int64 {
	b := int64(m) / SuperRate
	if int64(m)%SuperRate < 0 {
		b--
	}
	return b
}

// FractionalBeats returns the time in beats. Useful for display.
func (m MusicalTime) FractionalBeats() float64 {
	return float64(m) / superRateF
}

// ToSeconds converts to wall-clock time at the given tempo.
func (m MusicalTime) ToSeconds(bpm Tempo) Seconds {
	return Seconds(m.FractionalBeats() * 60.0 / float64(bpm))
}

// ToSampleRound converts to SampleTime, rounded to the nearest sample.
// The result must be recomputed after a sample rate or tempo change.
func (m MusicalTime) ToSampleRound(bpm Tempo, sr SampleRate) SampleTime {
	return m.ToSeconds(bpm).ToSampleRound(sr)
}

// ToSampleFloor converts to SampleTime, floored to the previous sample.
func (m MusicalTime) ToSampleFloor(bpm Tempo, sr SampleRate) SampleTime {
	return m.ToSeconds(bpm).ToSampleFloor(sr)
}

// ToSampleCeil converts to SampleTime, rounded up to the next sample.
func (m MusicalTime) ToSampleCeil(bpm Tempo, sr SampleRate) SampleTime {
	return m.ToSeconds(bpm).ToSampleCeil(sr)
}

// ToSubSample converts to SampleTime floored to the previous sample, plus
// the fractional sub-sample remainder.
func (m MusicalTime) ToSubSample(bpm Tempo, sr SampleRate) (SampleTime, float64) {
	return m.ToSeconds(bpm).ToSubSample(sr)
}

// ToSuperSampleRound converts to SuperSampleTime, rounded to the nearest tick.
func (m MusicalTime) ToSuperSampleRound(bpm Tempo) SuperSampleTime {
	return m.ToSeconds(bpm).ToSuperSampleRound()
}

// ToSuperSampleFloor converts to SuperSampleTime, floored to the previous tick.
func (m MusicalTime) ToSuperSampleFloor(bpm Tempo) SuperSampleTime {
	return m.ToSeconds(bpm).ToSuperSampleFloor()
}

// ToSuperSampleCeil converts to SuperSampleTime, rounded up to the next tick.
func (m MusicalTime) ToSuperSampleCeil(bpm Tempo) SuperSampleTime {
	return m.ToSeconds(bpm).ToSuperSampleCeil()
}

// ToSubSuperSample converts to SuperSampleTime floored to the previous tick,
// plus the fractional remainder.
func (m MusicalTime) ToSubSuperSample(bpm Tempo) (SuperSampleTime, float64) {
	return m.ToSeconds(bpm).ToSubSuperSample()
}
