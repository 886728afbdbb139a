package debug

import (
	"fmt"
	"math"

	"github.com/justyntemme/dawcore/pkg/dsp/cell"
)

// Thresholds used by Analyze and Check.
type Thresholds struct {
	Clip    float64
	DC      float64
	Silence float64
}

// DefaultThresholds flags samples at or above 0.99 as clipped, a mean beyond
// 0.01 as DC offset and an RMS below 1e-4 as silence.
var DefaultThresholds = Thresholds{Clip: 0.99, DC: 0.01, Silence: 1e-4}

// Analysis summarizes one buffer.
type Analysis struct {
	Samples        int
	Peak           float64
	RMS            float64
	DC             float64
	ClippedSamples int
	NaNCount       int
	ZeroCrossings  int
	Silent         bool
}

func (a Analysis) Clipping() bool { return a.ClippedSamples > 0 }
func (a Analysis) HasNaN() bool { return a.NaNCount > 0 }

// Analyze scans buf once. NaN samples are counted and otherwise skipped; RMS
// and DC are averaged over the finite samples.
func Analyze[T cell.Float](buf []T, th Thresholds) Analysis {
	res := Analysis{Samples: len(buf)}
	var sum, sumSq float64
	var counted int
	prevNeg, havePrev := false, false

	for _, s := range buf {
		v := float64(s)
		if math.IsNaN(v) {
			res.NaNCount++
			continue
		}
		abs := math.Abs(v)
		res.Peak = max(res.Peak, abs)
		if abs >= th.Clip {
			res.ClippedSamples++
		}
		sum += v
		sumSq += v * v
		counted++

		neg := v < 0
		if havePrev && neg != prevNeg {
			res.ZeroCrossings++
		}
		prevNeg, havePrev = neg, true
	}

	if counted > 0 {
		res.RMS = math.Sqrt(sumSq / float64(counted))
		res.DC = sum / float64(counted)
	}
	res.Silent = res.RMS < th.Silence
	return res
}

// Check returns one line per problem found in buf, or nil.
func Check[T cell.Float](buf []T, name string, th Thresholds) []string {
	res := Analyze(buf, th)
	var issues []string
	if res.HasNaN() {
		issues = append(issues, fmt.Sprintf("%s: %d NaN samples", name, res.NaNCount))
	}
	if res.Clipping() {
		issues = append(issues, fmt.Sprintf("%s: %d clipped samples", name, res.ClippedSamples))
	}
	if math.Abs(res.DC) > th.DC {
		issues = append(issues, fmt.Sprintf("%s: DC offset %.4f", name, res.DC))
	}
	if res.Peak > 1 {
		issues = append(issues, fmt.Sprintf("%s: peak %.3f exceeds full scale", name, res.Peak))
	}
	return issues
}

// WarnBuffer logs every issue Check finds through Default and reports whether
// the buffer was clean.
func WarnBuffer[T cell.Float](buf []T, name string) bool {
	issues := Check(buf, name, DefaultThresholds)
	for _, issue := range issues {
		Warn("%s", issue)
	}
	return len(issues) == 0
}

// LogStats writes a one-line summary of buf at LevelInfo.
func LogStats[T cell.Float](buf []T, name string) {
	if !std.Enabled(LevelInfo) {
		return
	}
	res := Analyze(buf, DefaultThresholds)
	std.output(2, LevelInfo, fmt.Sprintf("%s: %d samples, peak %.3f, rms %.3f, dc %.5f",
		name, res.Samples, res.Peak, res.RMS, res.DC))
}

// Diff describes where two equal-length buffers disagree.
type Diff struct {
	Count    int
	MaxDiff  float64
	MaxIndex int
	MeanDiff float64
}

// Equal reports whether no sample differed by more than the tolerance.
func (d Diff) Equal() bool { return d.Count == 0 }

// Compare measures |a[i]-b[i]| against tol. Buffers of different length are
// an error.
func Compare[T cell.Float](a, b []T, tol float64) (Diff, error) {
	if len(a) != len(b) {
		return Diff{}, fmt.Errorf("compare buffers: length %d vs %d", len(a), len(b))
	}
	var d Diff
	var total float64
	for i := range a {
		diff := math.Abs(float64(a[i]) - float64(b[i]))
		if diff <= tol {
			continue
		}
		d.Count++
		total += diff
		if diff > d.MaxDiff {
			d.MaxDiff, d.MaxIndex = diff, i
		}
	}
	if d.Count > 0 {
		d.MeanDiff = total / float64(d.Count)
	}
	return d, nil
}

func (d Diff) String() string {
	if d.Equal() {
		return "buffers match"
	}
	return fmt.Sprintf("%d samples differ, max %.6f at %d, mean %.6f",
		d.Count, d.MaxDiff, d.MaxIndex, d.MeanDiff)
}
