package timebase

import (
	"math"
	"time"
)

// Seconds is wall-clock time in seconds.
type Seconds float64

// SecondsFromSample returns the time of st at sample rate sr.
func SecondsFromSample(st SampleTime, sr SampleRate) Seconds {
	return st.ToSeconds(sr)
}

// SecondsFromSuperSample returns the time of st.
func SecondsFromSuperSample(st SuperSampleTime) Seconds {
	return st.ToSeconds()
}

// SecondsFromDuration converts a time.Duration.
func SecondsFromDuration(d time.Duration) Seconds {
	return Seconds(d.Seconds())
}

// Duration converts to a time.Duration, rounded to the nearest nanosecond.
func (s Seconds) Duration() time.Duration {
	return time.Duration(math.Round(float64(s) * float64(time.Second)))
}

// Float32 returns the value as a float32.
func (s Seconds) Float32() float32 {
	return float32(s)
}

func (s Seconds) samples(sr SampleRate) float64 {
	return float64(s) * float64(sr)
}

// ToSampleRound converts to SampleTime at sr, rounded to the nearest sample.
func (s Seconds) ToSampleRound(sr SampleRate) SampleTime {
	return SampleTime(math.Round(s.samples(sr)))
}

// ToSampleFloor converts to SampleTime at sr, floored to the previous sample.
func (s Seconds) ToSampleFloor(sr SampleRate) SampleTime {
	return SampleTime(math.Floor(s.samples(sr)))
}

// ToSampleCeil converts to SampleTime at sr, rounded up to the next sample.
func (s Seconds) ToSampleCeil(sr SampleRate) SampleTime {
	return SampleTime(math.Ceil(s.samples(sr)))
}

// ToSubSample converts to SampleTime at sr floored to the previous sample,
// and returns the fractional sub-sample remainder in [0, 1).
func (s Seconds) ToSubSample(sr SampleRate) (SampleTime, float64) {
	whole, frac := floorFrac(s.samples(sr))
	return SampleTime(whole), frac
}

// ToSuperSampleRound converts to SuperSampleTime, rounded to the nearest tick.
func (s Seconds) ToSuperSampleRound() SuperSampleTime {
	return SuperSampleTime(math.Round(float64(s) * superRateF))
}

// ToSuperSampleFloor converts to SuperSampleTime, floored to the previous tick.
func (s Seconds) ToSuperSampleFloor() SuperSampleTime {
	return SuperSampleTime(math.Floor(float64(s) * superRateF))
}

// ToSuperSampleCeil converts to SuperSampleTime, rounded up to the next tick.
func (s Seconds) ToSuperSampleCeil() SuperSampleTime {
	return SuperSampleTime(math.Ceil(float64(s) * superRateF))
}

// ToSubSuperSample converts to SuperSampleTime floored to the previous tick,
// and returns the fractional remainder in [0, 1).
func (s Seconds) ToSubSuperSample() (SuperSampleTime, float64) {
	whole, frac := floorFrac(float64(s) * superRateF)
	return SuperSampleTime(whole), frac
}

// ToMusical converts to MusicalTime at the given tempo, rounded to the
// nearest musical tick.
func (s Seconds) ToMusical(bpm Tempo) MusicalTime {
	return MusicalTime(math.Round(float64(s) * float64(bpm) * (superRateF / 60.0)))
}

// floorFrac splits x into floor(x) and x - floor(x). Unlike math.Modf the
// remainder of a negative x is non-negative.
func floorFrac(x float64) (float64, float64) {
	whole := math.Floor(x)
	return whole, x - whole
}
