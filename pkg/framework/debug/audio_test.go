package debug

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n int, amp, freq, sr float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/sr))
	}
	return out
}

func TestAnalyze(t *testing.T) {
	t.Run("Sine", func(t *testing.T) {
		// 48 whole cycles of 480 Hz at 48 kHz.
		res := Analyze(sine(4800, 0.5, 480, 48000), DefaultThresholds)

		assert.InDelta(t, 0.5, res.Peak, 1e-3)
		assert.InDelta(t, 0.5/math.Sqrt2, res.RMS, 1e-3)
		assert.InDelta(t, 0, res.DC, 1e-3)
		assert.Greater(t, res.ZeroCrossings, 90)
		assert.False(t, res.Silent)
		assert.False(t, res.Clipping())
		assert.Equal(t, 4800, res.Samples)
	})

	t.Run("Clipping", func(t *testing.T) {
		res := Analyze([]float64{0.5, 0.99, 1.0, -0.99, -1.0, 0.5}, DefaultThresholds)
		assert.True(t, res.Clipping())
		assert.Equal(t, 4, res.ClippedSamples)
		assert.Equal(t, 1.0, res.Peak)
	})

	t.Run("DC", func(t *testing.T) {
		buf := make([]float32, 100)
		for i := range buf {
			buf[i] = 0.25
		}
		res := Analyze(buf, DefaultThresholds)
		assert.InDelta(t, 0.25, res.DC, 1e-6)
		assert.Zero(t, res.ZeroCrossings)
	})

	t.Run("Silence", func(t *testing.T) {
		res := Analyze(make([]float32, 64), DefaultThresholds)
		assert.True(t, res.Silent)
		assert.Zero(t, res.Peak)
	})

	t.Run("Empty", func(t *testing.T) {
		res := Analyze([]float32(nil), DefaultThresholds)
		assert.Zero(t, res.Samples)
		assert.True(t, res.Silent)
	})

	t.Run("NaN", func(t *testing.T) {
		nan := float32(math.NaN())
		res := Analyze([]float32{1, nan, 0.5, nan}, DefaultThresholds)
		assert.True(t, res.HasNaN())
		assert.Equal(t, 2, res.NaNCount)
		assert.InDelta(t, 0.75, res.DC, 1e-6)
	})
}

func TestCheck(t *testing.T) {
	assert.Empty(t, Check([]float32{0.1, 0.2, -0.1, -0.2}, "clean", DefaultThresholds))

	issues := Check([]float32{float32(math.NaN()), 1.5, 0.3, 0.3, 0.3}, "out", DefaultThresholds)
	require.Len(t, issues, 4)
	assert.Contains(t, issues[0], "NaN")
	assert.Contains(t, issues[1], "clipped")
	assert.Contains(t, issues[2], "DC offset")
	assert.Contains(t, issues[3], "exceeds full scale")
}

func TestWarnBuffer(t *testing.T) {
	assert.True(t, WarnBuffer([]float32{0.1, -0.1}, "clean"))
	assert.False(t, WarnBuffer([]float32{2, -2}, "loud"))
}

func TestCompare(t *testing.T) {
	t.Run("Match", func(t *testing.T) {
		d, err := Compare([]float32{1, 2, 3}, []float32{1, 2, 3.0001}, 1e-3)
		require.NoError(t, err)
		assert.True(t, d.Equal())
		assert.Equal(t, "buffers match", d.String())
	})

	t.Run("Differences", func(t *testing.T) {
		d, err := Compare([]float64{1, 2, 3, 4}, []float64{1, 2.5, 3, 3.75}, 0.1)
		require.NoError(t, err)
		assert.Equal(t, 2, d.Count)
		assert.Equal(t, 0.5, d.MaxDiff)
		assert.Equal(t, 1, d.MaxIndex)
		assert.Equal(t, 0.375, d.MeanDiff)
		assert.Contains(t, d.String(), "2 samples differ")
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := Compare([]float32{1, 2}, []float32{1, 2, 3}, 0)
		assert.ErrorContains(t, err, "length 2 vs 3")
	})
}
