package timebase

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// SampleRate is a sampling rate in samples per second.
type SampleRate float64

// DefaultSampleRate is used when no host rate is known yet.
const DefaultSampleRate SampleRate = 44100

// CommonSampleRates are the rates whose conversions to and from super-sample
// ticks are exact.
var CommonSampleRates = [...]SampleRate{22050, 24000, 44100, 48000, 88200, 96000, 176400, 192000}

// SampleRateFromFormat returns the rate of a go-audio buffer format, or
// DefaultSampleRate when the format is missing or carries no rate.
func SampleRateFromFormat(f *audio.Format) SampleRate {
	if f == nil || f.SampleRate <= 0 {
		return DefaultSampleRate
	}
	return SampleRate(f.SampleRate)
}

// Recip returns 1 / sr.
func (sr SampleRate) Recip() float64 {
	return 1.0 / float64(sr)
}

// Float32 returns the rate as a float32.
func (sr SampleRate) Float32() float32 {
	return float32(sr)
}

// Uint32 returns the rate rounded to the nearest integer.
func (sr SampleRate) Uint32() uint32 {
	return uint32(math.Round(float64(sr)))
}

// IsCommon reports whether sr is one of CommonSampleRates.
func (sr SampleRate) IsCommon() bool {
	_, ok := sr.superPerSample()
	return ok
}

// superPerSample returns the integer number of super-sample ticks in one
// sample when sr is a common rate.
func (sr SampleRate) superPerSample() (int64, bool) {
	switch sr {
	case 22050, 24000, 44100, 48000, 88200, 96000, 176400, 192000:
		return SuperRate / int64(sr), true
	}
	return 0, false
}

func (sr SampleRate) String() string {
	return fmt.Sprintf("%g Hz", float64(sr))
}
