package param

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dspdebug "github.com/justyntemme/dawcore/pkg/dsp/debug"
	"github.com/justyntemme/dawcore/pkg/dsp/gain"
	"github.com/justyntemme/dawcore/pkg/dsp/smooth"
)

const testBlock = 64

func newGain(t *testing.T) (*ParamF64, *HandleF64) {
	t.Helper()
	return NewFromValue(0.0, -90, 6, DefaultDbGradient, Decibels, DefaultSmoothSecs, 48000, testBlock)
}

// settle runs blocks until the smoother reports Inactive.
func settle[T Float](t *testing.T, p *Param[T]) smooth.Output[T] {
	t.Helper()
	for range 10000 {
		out := p.Smoothed(testBlock)
		if out.Status == smooth.Inactive {
			return out
		}
	}
	require.FailNow(t, "parameter never settled")
	return smooth.Output[T]{}
}

func TestNewFromValue(t *testing.T) {
	p, h := newGain(t)

	assert.InDelta(t, 0.0, p.Value(), 1e-9)
	assert.InDelta(t, 1.0, p.DSPValue(), 1e-9)
	assert.Equal(t, p.Normalized(), h.Normalized())
	assert.Equal(t, p.Value(), h.Value())
	assert.Equal(t, p.Normalized(), p.SharedNormalized().Get())
	assert.Same(t, p.SharedNormalized(), h.SharedNormalized())

	assert.Equal(t, -90.0, p.Min())
	assert.Equal(t, 6.0, p.Max())
	assert.Equal(t, DefaultDbGradient, p.Gradient())
	assert.Equal(t, Decibels, p.Unit())
	assert.Equal(t, testBlock, p.MaxBlockSize())

	// No initial ramp.
	out := p.Smoothed(testBlock)
	assert.Equal(t, smooth.Inactive, out.Status)
	require.Len(t, out.Values, testBlock)
	for _, v := range out.Values {
		assert.Equal(t, p.DSPValue(), v)
	}
}

func TestNewFromNormalized(t *testing.T) {
	p, h := NewFromNormalized[float32](0.5, 20, 20000, Exponential(), Generic, DefaultSmoothSecs, 44100, 32)

	assert.Equal(t, float32(0.5), p.Normalized())
	assert.InDelta(t, 632.4555, float64(p.Value()), 1e-3)
	assert.Equal(t, p.Value(), p.DSPValue())
	assert.Equal(t, p.Value(), h.Value())

	p, _ = NewFromNormalized[float32](3, 20, 20000, Exponential(), Generic, DefaultSmoothSecs, 44100, 32)
	assert.Equal(t, float32(1), p.Normalized())
	assert.Equal(t, float32(20000), p.Value())
}

func TestConstructionPreconditions(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"min equals max", func() { NewFromValue(0.0, 1, 1, Linear(), Generic, 0, 48000, 64) }},
		{"min above max", func() { NewFromNormalized(0.0, 2, 1, Linear(), Generic, 0, 48000, 64) }},
		{"exponential with zero min", func() { NewFromValue(1.0, 0, 10, Exponential(), Generic, 0, 48000, 64) }},
		{"exponential with negative min", func() { NewFromValue[float32](1, -1, 10, Exponential(), Generic, 0, 48000, 64) }},
		{"non-positive exponent", func() { NewFromValue(0.5, 0, 1, Power(0), Generic, 0, 48000, 64) }},
		{"zero max block", func() { NewFromValue(0.5, 0, 1, Linear(), Generic, 0, 48000, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestSetValueRamps(t *testing.T) {
	p, _ := newGain(t)

	p.SetValue(-6)
	assert.InDelta(t, -6.0, p.Value(), 1e-9)
	assert.InDelta(t, gain.DbToCoeffClamped(-6.0), p.DSPValue(), 1e-12)

	out := p.Smoothed(testBlock)
	assert.Equal(t, smooth.Active, out.Status)
	assert.Less(t, out.Values[0], 1.0)
	assert.Greater(t, out.Values[0], out.Values[testBlock-1])
	assert.Greater(t, out.Values[testBlock-1], p.DSPValue())

	out = settle(t, p)
	assert.Equal(t, p.DSPValue(), out.Values[0])
}

func TestSetValueNoopIsStable(t *testing.T) {
	p, _ := newGain(t)

	p.SetValue(-12)
	settle(t, p)

	p.SetValue(-12)
	out := p.Smoothed(1)
	assert.Equal(t, smooth.Inactive, out.Status)

	p.SetNormalized(p.Normalized())
	out = p.Smoothed(1)
	assert.Equal(t, smooth.Inactive, out.Status)
}

func TestSettleWideRanges(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		gradient Gradient
		unit     Unit
		from, to float64
	}{
		{"Frequency", 20, 20000, Exponential(), Generic, 20, 20000},
		{"FrequencyDown", 20, 20000, Exponential(), Generic, 15000, 440},
		{"Generic", 0, 1000, Linear(), Generic, 0, 1000},
		{"GenericMid", 0, 1000, Linear(), Generic, 1000, 333},
		{"Gain", -90, 6, DefaultDbGradient, Decibels, -90, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/float32", func(t *testing.T) {
			p, _ := NewFromValue(float32(tt.from), float32(tt.min), float32(tt.max), tt.gradient, tt.unit, DefaultSmoothSecs, 48000, testBlock)
			settleAndHold(t, p, float32(tt.to))
		})
		t.Run(tt.name+"/float64", func(t *testing.T) {
			p, _ := NewFromValue(tt.from, tt.min, tt.max, tt.gradient, tt.unit, DefaultSmoothSecs, 48000, testBlock)
			settleAndHold(t, p, tt.to)
		})
	}
}

func settleAndHold[T Float](t *testing.T, p *Param[T], to T) {
	t.Helper()
	p.SetValue(to)
	require.Equal(t, smooth.Active, p.Smoothed(testBlock).Status)

	out := settle(t, p)
	for _, v := range out.Values {
		require.Equal(t, p.DSPValue(), v)
	}

	p.SetValue(to)
	assert.Equal(t, smooth.Inactive, p.Smoothed(testBlock).Status)
	p.SetNormalized(p.Normalized())
	assert.Equal(t, smooth.Inactive, p.Smoothed(testBlock).Status)
}

func TestSetClamps(t *testing.T) {
	p, _ := newGain(t)

	p.SetValue(100)
	assert.Equal(t, 6.0, p.Value())
	assert.Equal(t, 1.0, p.Normalized())

	p.SetNormalized(-1)
	assert.Equal(t, -90.0, p.Value())
	assert.Equal(t, 0.0, p.DSPValue())

	// Silence at the floor is exact once settled.
	out := settle(t, p)
	for _, v := range out.Values {
		assert.Zero(t, v)
	}
}

func TestHandleWritesAreCoalesced(t *testing.T) {
	p, h := newGain(t)

	h.SetValue(-40)
	h.SetValue(-3)

	out := p.Smoothed(testBlock)
	assert.Equal(t, smooth.Active, out.Status)
	assert.InDelta(t, -3.0, p.Value(), 1e-9)
	assert.Equal(t, h.Normalized(), p.Normalized())

	out = settle(t, p)
	assert.InDelta(t, gain.DbToCoeffClamped(-3.0), out.Values[testBlock-1], 1e-12)
}

func TestResetBypassesSmoothing(t *testing.T) {
	p, h := newGain(t)

	p.SetValue(-40)
	out := p.Smoothed(8)
	require.Equal(t, smooth.Active, out.Status)

	p.ResetFromValue(-12)
	out = p.Smoothed(1)
	assert.Equal(t, smooth.Inactive, out.Status)
	assert.InDelta(t, gain.DbToCoeffClamped(-12.0), out.Values[0], 1e-12)
	assert.Equal(t, p.DSPValue(), out.Values[0])

	// The handle sees the reset.
	v, changed := h.LatestValue()
	assert.True(t, changed)
	assert.InDelta(t, -12.0, v, 1e-9)

	p.ResetFromNormalized(1)
	out = p.Smoothed(4)
	assert.Equal(t, smooth.Inactive, out.Status)
	assert.Equal(t, []float64{p.DSPValue(), p.DSPValue(), p.DSPValue(), p.DSPValue()}, out.Values)
}

func TestSmoothedFrames(t *testing.T) {
	p, _ := newGain(t)

	assert.Len(t, p.Smoothed(1).Values, 1)
	assert.Len(t, p.Smoothed(17).Values, 17)
	assert.Empty(t, p.Smoothed(0).Values)

	if dspdebug.Enabled {
		assert.Panics(t, func() { p.Smoothed(testBlock + 1) })
		return
	}
	assert.Len(t, p.Smoothed(testBlock+1).Values, testBlock)
}

func TestSmoothedAdoptsRawSharedWrites(t *testing.T) {
	p, _ := NewFromValue(0.5, 0.0, 1.0, Linear(), Generic, 0, 48000, 16)

	p.SharedNormalized().Set(2)
	p.Smoothed(16)
	assert.Equal(t, 1.0, p.Normalized())
	assert.Equal(t, 1.0, p.SharedNormalized().Get())

	// Stays settled after the clamp.
	p.Smoothed(16)
	assert.Equal(t, smooth.Inactive, p.Smoothed(16).Status)
}

func TestSetSampleRateKeepsRamp(t *testing.T) {
	p, _ := newGain(t)

	p.SetValue(-24)
	p.Smoothed(8)
	dsp := p.DSPValue()

	p.SetSampleRate(96000)
	assert.EqualValues(t, 96000, p.SampleRate())
	assert.Equal(t, dsp, p.DSPValue())

	out := p.Smoothed(8)
	assert.Equal(t, smooth.Active, out.Status)
	assert.Greater(t, out.Values[0], dsp)
}

func TestSetSmoothSecs(t *testing.T) {
	p, _ := newGain(t)
	assert.Equal(t, DefaultSmoothSecs, p.SmoothSecs())

	p.SetSmoothSecs(0)
	p.SetValue(-6)
	out := p.Smoothed(4)
	assert.Equal(t, smooth.Deactivating, out.Status)
	for _, v := range out.Values {
		assert.Equal(t, p.DSPValue(), v)
	}
}

func TestSmoothedDoesNotAllocate(t *testing.T) {
	p, h := NewFromValue[float32](0, -90, 6, DefaultDbGradient, Decibels, DefaultSmoothSecs, 48000, 256)
	n := float32(0.25)

	allocs := testing.AllocsPerRun(200, func() {
		n = 1 - n
		h.SetNormalized(n)
		out := p.Smoothed(256)
		_ = out.Values[255]
	})
	assert.Zero(t, allocs)
}

func TestConcurrentHandleWrites(t *testing.T) {
	p, h := NewFromNormalized(0.5, 0.0, 1.0, Linear(), Generic, DefaultSmoothSecs, 48000, testBlock)

	valid := map[float64]bool{0.5: true, 0.25: true, 0.75: true}

	var wg sync.WaitGroup
	done := make(chan struct{})
	for w := range 3 {
		wg.Add(1)
		go func(h *HandleF64) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-done:
					return
				default:
				}
				if (i+w)%2 == 0 {
					h.SetNormalized(0.25)
				} else {
					h.SetNormalized(0.75)
				}
			}
		}(h.Clone())
	}

	for range 2000 {
		out := p.Smoothed(testBlock)
		require.True(t, valid[p.Normalized()], "unexpected normalized %v", p.Normalized())
		for _, v := range out.Values {
			require.True(t, v >= 0.25 && v <= 0.75, "sample %v left the written range", v)
		}
	}

	close(done)
	wg.Wait()
}

func TestParamF32(t *testing.T) {
	p, h := NewFromValue[float32](0.5, 0, 1, Linear(), Generic, 0, 44100, 8)

	h.SetValue(0.25)
	out := p.Smoothed(8)
	assert.Equal(t, float32(0.25), p.Value())
	assert.Equal(t, []float32{0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25}, out.Values)
}
