package timebase

import (
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var representativeSamples = []SampleTime{0, 1, -1, 7, 441, 48000, -96000, 123456789, 1 << 40, -(1 << 40)}

func TestSuperSampleRoundTripExact(t *testing.T) {
	for _, sr := range CommonSampleRates {
		t.Run(sr.String(), func(t *testing.T) {
			require.True(t, sr.IsCommon())
			for _, n := range representativeSamples {
				got := n.ToSuperSample(sr).ToSampleTime(sr)
				assert.Equal(t, n, got, "N=%d", n)
			}
		})
	}
}

func TestSuperSampleFromSampleTimeIsIntegerMultiple(t *testing.T) {
	assert.Equal(t, SuperSampleTime(640), SuperSampleFromSampleTime(1, 44100))
	assert.Equal(t, SuperSampleTime(588), SuperSampleFromSampleTime(1, 48000))
	assert.Equal(t, SuperSampleTime(147), SuperSampleFromSampleTime(1, 192000))
	assert.Equal(t, SuperSampleTime(SuperRate), SuperSampleFromSampleTime(44100, 44100))
}

func TestSuperSampleUncommonRateRounds(t *testing.T) {
	sr := SampleRate(44100.5)
	assert.False(t, sr.IsCommon())

	// 28,224,000 / 32000 = 882 exactly, but 32 kHz is not special-cased and
	// still takes the float path.
	assert.Equal(t, SuperSampleTime(882), SuperSampleFromSampleTime(1, 32000))

	// 28,224,000 / 11025.3 is not an integer, so the tick count is rounded.
	st := SuperSampleFromSampleTime(3, 11025.3)
	assert.Equal(t, SuperSampleTime(7680), st)
}

func TestSuperSampleToSampleTimeRounds(t *testing.T) {
	// 640 ticks per sample at 44.1 kHz.
	assert.Equal(t, SampleTime(1), SuperSampleTime(320).ToSampleTime(44100))
	assert.Equal(t, SampleTime(0), SuperSampleTime(319).ToSampleTime(44100))
	assert.Equal(t, SampleTime(-1), SuperSampleTime(-320).ToSampleTime(44100))
	assert.Equal(t, SampleTime(0), SuperSampleTime(-319).ToSampleTime(44100))
}

func TestSampleRateConversionThroughSuperSample(t *testing.T) {
	// One second at 44.1 kHz is exactly one second at 96 kHz.
	st := SampleTime(44100).ToSuperSample(44100)
	assert.Equal(t, SampleTime(96000), st.ToSampleTime(96000))
}

func TestMusicalTimeArithmetic(t *testing.T) {
	assert.Equal(t, Seconds(1.0), MusicalFromBeats(2).ToSeconds(120))
	assert.Equal(t, 1.0, MusicalFromQuarterBeats(4).FractionalBeats())
	assert.Equal(t, 1.0, MusicalFromHalfBeats(2).FractionalBeats())
	assert.Equal(t, 1.0, MusicalFromEighthBeats(8).FractionalBeats())
	assert.Equal(t, 1.0, MusicalFromSixteenthBeats(16).FractionalBeats())
	assert.Equal(t, 1.0, MusicalFrom32ndBeats(32).FractionalBeats())
	assert.Equal(t, 1.0, MusicalFrom64thBeats(64).FractionalBeats())
	assert.Equal(t, MusicalFromBeats(1), MusicalFromThirdBeats(3))
	assert.Equal(t, MusicalFromBeats(1), MusicalFromFifthBeats(5))
	assert.Equal(t, MusicalFromBeats(1), MusicalFromSeventhBeats(7))

	sum := MusicalFromQuarterBeats(3) + MusicalFromQuarterBeats(1)
	assert.Equal(t, MusicalFromBeats(1), sum)
}

func TestMusicalTimeBeats(t *testing.T) {
	assert.Equal(t, int64(2), (MusicalFromBeats(2) + MusicalFromHalfBeats(1)).Beats())
	assert.Equal(t, int64(0), MusicalFromHalfBeats(1).Beats())
	assert.Equal(t, int64(-1), MusicalFromHalfBeats(-1).Beats())
	assert.Equal(t, int64(-2), MusicalFromBeats(-2).Beats())
}

func TestMusicalToSample(t *testing.T) {
	// One beat at 120 BPM is half a second.
	beat := MusicalFromBeats(1)
	assert.Equal(t, SampleTime(22050), beat.ToSampleRound(120, 44100))
	assert.Equal(t, SampleTime(24000), beat.ToSampleFloor(120, 48000))

	// A third of a beat at 120 BPM and 44.1 kHz is 7350 samples exactly.
	third := MusicalFromThirdBeats(1)
	assert.Equal(t, SampleTime(7350), third.ToSampleRound(120, 44100))

	st, frac := MusicalFromQuarterBeats(3).ToSubSample(120, 1000)
	assert.Equal(t, SampleTime(375), st)
	assert.InDelta(t, 0.0, frac, 1e-9)

	assert.Equal(t, SuperSampleTime(SuperRate/2), beat.ToSuperSampleRound(120))
	assert.Equal(t, SuperSampleTime(SuperRate/2), beat.ToSuperSampleFloor(120))
	assert.Equal(t, SuperSampleTime(SuperRate/2), beat.ToSuperSampleCeil(120))
}

func TestSecondsRoundingPolicies(t *testing.T) {
	s := Seconds(0.375) // 1.5 samples at 4 Hz

	assert.Equal(t, SampleTime(2), s.ToSampleRound(4))
	assert.Equal(t, SampleTime(1), s.ToSampleFloor(4))
	assert.Equal(t, SampleTime(2), s.ToSampleCeil(4))

	whole, frac := s.ToSubSample(4)
	assert.Equal(t, SampleTime(1), whole)
	assert.InDelta(t, 0.5, frac, 1e-9)

	neg := Seconds(-0.3125)
	assert.Equal(t, SampleTime(-2), neg.ToSampleFloor(4))
	assert.Equal(t, SampleTime(-1), neg.ToSampleCeil(4))
	whole, frac = neg.ToSubSample(4)
	assert.Equal(t, SampleTime(-2), whole)
	assert.InDelta(t, 0.75, frac, 1e-9)
}

func TestSecondsSuperSample(t *testing.T) {
	assert.Equal(t, SuperSampleTime(SuperRate), Seconds(1).ToSuperSampleRound())

	tick := Seconds(2.5 / SuperRate)
	assert.Equal(t, SuperSampleTime(2), tick.ToSuperSampleFloor())
	assert.Equal(t, SuperSampleTime(3), tick.ToSuperSampleCeil())

	whole, frac := tick.ToSubSuperSample()
	assert.Equal(t, SuperSampleTime(2), whole)
	assert.InDelta(t, 0.5, frac, 1e-6)

	assert.Equal(t, Seconds(1), SuperSampleTime(SuperRate).ToSeconds())
	assert.Equal(t, Seconds(1), SecondsFromSuperSample(SuperRate))
	assert.Equal(t, Seconds(0.5), SecondsFromSample(24000, 48000))
}

func TestSecondsToMusical(t *testing.T) {
	assert.Equal(t, MusicalFromBeats(2), Seconds(1).ToMusical(120))
	assert.Equal(t, MusicalFromBeats(1), SuperSampleTime(SuperRate/2).ToMusical(120))
	assert.Equal(t, MusicalFromBeats(1), SampleTime(22050).ToMusical(120, 44100))
}

func TestSecondsDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, Seconds(1.5).Duration())
	assert.Equal(t, Seconds(0.25), SecondsFromDuration(250*time.Millisecond))
}

func TestSampleTimeFrames(t *testing.T) {
	f, ok := SampleTime(64).Frames()
	assert.True(t, ok)
	assert.Equal(t, Frames(64), f)

	_, ok = SampleTime(-1).Frames()
	assert.False(t, ok)

	assert.Equal(t, SampleTime(164), SampleTime(100).AddFrames(64))
	assert.Equal(t, SampleTime(-28), SampleTime(100).SubFrames(128))

	sf, ok := SuperSampleTime(10).Frames()
	assert.True(t, ok)
	assert.Equal(t, SuperFrames(10), sf)
	_, ok = SuperSampleTime(-10).Frames()
	assert.False(t, ok)

	assert.Equal(t, SuperSampleTime(15), SuperSampleTime(10).AddSuperFrames(5))
	assert.Equal(t, SuperSampleTime(5), SuperSampleTime(10).SubSuperFrames(5))
}

func TestFrames(t *testing.T) {
	assert.Equal(t, Seconds(1), Frames(48000).ToSeconds(48000))
	assert.Equal(t, SampleTime(512), Frames(512).ToSampleTime())
	assert.Equal(t, MusicalFromBeats(1), Frames(24000).ToMusical(120, 48000))
	assert.Equal(t, Frames(128), Frames(4096).Min(128))
	assert.Equal(t, Frames(64), Frames(64).Min(128))
	assert.Equal(t, Frames(0), Frames(3).Sub(5))
	assert.Equal(t, Frames(2), Frames(5).Sub(3))
}

func TestSuperFramesRoundTripExact(t *testing.T) {
	for _, sr := range CommonSampleRates {
		for _, n := range []Frames{0, 1, 511, 44100, 1 << 36} {
			assert.Equal(t, n, n.ToSuperFrames(sr).ToFrames(sr), "rate=%v N=%d", sr, n)
		}
	}

	assert.Equal(t, SuperFrames(640), SuperFramesFromFrames(1, 44100))
	assert.Equal(t, Seconds(1), SuperFrames(SuperRate).ToSeconds())
	assert.Equal(t, MusicalFromBeats(2), SuperFrames(SuperRate).ToMusical(120))
	assert.Equal(t, SuperSampleTime(42), SuperFrames(42).ToSuperSampleTime())
	assert.Equal(t, SuperFrames(0), SuperFrames(1).Sub(2))
	assert.Equal(t, SuperFrames(1), SuperFrames(3).Sub(2))
}

func TestSuperFramesUncommonRate(t *testing.T) {
	sf := SuperFramesFromFrames(2, 11025.3)
	assert.Equal(t, SuperFrames(5120), sf)
	assert.Equal(t, Frames(2), sf.ToFrames(11025.3))
}

func TestSampleRate(t *testing.T) {
	assert.Equal(t, DefaultSampleRate, SampleRateFromFormat(nil))
	assert.Equal(t, DefaultSampleRate, SampleRateFromFormat(&audio.Format{NumChannels: 2}))
	assert.Equal(t, SampleRate(96000), SampleRateFromFormat(&audio.Format{NumChannels: 2, SampleRate: 96000}))

	assert.InDelta(t, 1.0/48000, SampleRate(48000).Recip(), 1e-15)
	assert.Equal(t, float32(48000), SampleRate(48000).Float32())
	assert.Equal(t, uint32(44100), SampleRate(44099.6).Uint32())
	assert.Equal(t, "44100 Hz", SampleRate(44100).String())
	assert.False(t, SampleRate(32000).IsCommon())
}

func TestTempo(t *testing.T) {
	assert.Equal(t, Seconds(0.5), DefaultTempo.SecondsPerBeat())
	assert.Equal(t, Seconds(1), Tempo(60).SecondsPerBeat())
}

func TestDivRound(t *testing.T) {
	tests := []struct{ a, b, want int64 }{
		{0, 640, 0},
		{639, 640, 1},
		{320, 640, 1},
		{319, 640, 0},
		{-320, 640, -1},
		{-319, 640, 0},
		{-960, 640, -2},
		{1280, 640, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, divRound(tt.a, tt.b), "%d/%d", tt.a, tt.b)
	}
}
