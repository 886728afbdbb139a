package debug

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/justyntemme/dawcore/pkg/timebase"
)

// Profiler collects wall-clock timings for named sections.
type Profiler struct {
	mu       sync.Mutex
	sections map[string]*Measurement
	enabled  atomic.Bool
	window   int
}

// Measurement is the running timing record of one section. The most recent
// window durations are kept for percentiles.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration

	recent []time.Duration
	next   int
}

// NewProfiler keeps the last window timings of every section. It starts
// enabled.
func NewProfiler(window int) *Profiler {
	if window <= 0 {
		Fatal("profiler window must be positive, got %d", window)
	}
	p := &Profiler{sections: make(map[string]*Measurement), window: window}
	p.enabled.Store(true)
	return p
}

func (p *Profiler) SetEnabled(on bool) { p.enabled.Store(on) }
func (p *Profiler) IsEnabled() bool { return p.enabled.Load() }

// Start begins timing name; call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	t0 := time.Now()
	return func() { p.Record(name, time.Since(t0)) }
}

// Time runs fn under Start/stop.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record adds one timing for name.
func (p *Profiler) Record(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.sections[name]
	if !ok {
		m = &Measurement{Name: name, Min: d, Max: d, recent: make([]time.Duration, 0, p.window)}
		p.sections[name] = m
	}
	m.Count++
	m.Total += d
	m.Last = d
	m.Min = min(m.Min, d)
	m.Max = max(m.Max, d)
	if len(m.recent) < p.window {
		m.recent = append(m.recent, d)
	} else {
		m.recent[m.next] = d
		m.next = (m.next + 1) % p.window
	}
}

// Measurement returns a snapshot of name.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.sections[name]
	if !ok {
		return Measurement{}, false
	}
	return m.snapshot(), true
}

// Measurements returns snapshots of every section, sorted by name.
func (p *Profiler) Measurements() []Measurement {
	p.mu.Lock()
	out := make([]Measurement, 0, len(p.sections))
	for _, m := range p.sections {
		out = append(out, m.snapshot())
	}
	p.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p *Profiler) Reset() {
	p.mu.Lock()
	p.sections = make(map[string]*Measurement)
	p.mu.Unlock()
}

// Report renders every section as an aligned text table.
func (p *Profiler) Report() string {
	ms := p.Measurements()
	if len(ms) == 0 {
		return "no measurements"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-20s %8s %12s %12s %12s %12s\n", "section", "count", "avg", "min", "max", "p99")
	for _, m := range ms {
		fmt.Fprintf(&sb, "%-20s %8d %12v %12v %12v %12v\n",
			m.Name, m.Count, m.Average(), m.Min, m.Max, m.Percentile(99))
	}
	return sb.String()
}

func (m *Measurement) snapshot() Measurement {
	c := *m
	c.recent = slices.Clone(m.recent)
	return c
}

func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the empirical p-th percentile (0..100) of the recent
// window.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.recent) == 0 {
		return 0
	}
	xs := make([]float64, len(m.recent))
	for i, d := range m.recent {
		xs[i] = float64(d)
	}
	slices.Sort(xs)
	return time.Duration(stat.Quantile(min(max(p, 0), 100)/100, stat.Empirical, xs, nil))
}

// BlockSection is the section name BlockProfiler records under.
const BlockSection = "process"

// BlockProfiler times audio blocks and expresses each as a share of the real
// time the block represents at the current sample rate.
type BlockProfiler struct {
	*Profiler
	sampleRate timebase.SampleRate
	maxBlock   int

	// Fixed point, hundredths of a percent.
	lastLoad atomic.Uint64
	peakLoad atomic.Uint64
	loads    []float64
	mu       sync.Mutex
}

// NewBlockProfiler keeps the last window block timings.
func NewBlockProfiler(sr timebase.SampleRate, maxBlock, window int) *BlockProfiler {
	if sr <= 0 {
		Fatal("block profiler sample rate must be positive, got %v", sr)
	}
	return &BlockProfiler{
		Profiler:   NewProfiler(window),
		sampleRate: sr,
		maxBlock:   maxBlock,
		loads:      make([]float64, 0, window),
	}
}

// SetSampleRate satisfies process.SampleRateListener.
func (b *BlockProfiler) SetSampleRate(sr timebase.SampleRate) {
	b.mu.Lock()
	b.sampleRate = sr
	b.mu.Unlock()
}

// Block starts timing a block of frames; call the returned func when the
// block is done.
func (b *BlockProfiler) Block(frames int) func() {
	if !b.IsEnabled() || frames <= 0 {
		return func() {}
	}
	t0 := time.Now()
	return func() { b.RecordBlock(frames, time.Since(t0)) }
}

// RecordBlock adds one block that took d to produce frames of audio.
func (b *BlockProfiler) RecordBlock(frames int, d time.Duration) {
	b.Record(BlockSection, d)

	b.mu.Lock()
	budget := timebase.Frames(frames).ToSeconds(b.sampleRate).Duration()
	load := 0.0
	if budget > 0 {
		load = float64(d) / float64(budget) * 100
	}
	if len(b.loads) < cap(b.loads) {
		b.loads = append(b.loads, load)
	} else {
		copy(b.loads, b.loads[1:])
		b.loads[len(b.loads)-1] = load
	}
	b.mu.Unlock()

	fixed := uint64(load * 100)
	b.lastLoad.Store(fixed)
	for {
		peak := b.peakLoad.Load()
		if fixed <= peak || b.peakLoad.CompareAndSwap(peak, fixed) {
			break
		}
	}
}

// Load returns the most recent block's load in percent.
func (b *BlockProfiler) Load() float64 { return float64(b.lastLoad.Load()) / 100 }

// PeakLoad returns the highest block load seen since the last Reset.
func (b *BlockProfiler) PeakLoad() float64 { return float64(b.peakLoad.Load()) / 100 }

// MeanLoad averages the load over the recent window.
func (b *BlockProfiler) MeanLoad() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.loads) == 0 {
		return 0
	}
	return stat.Mean(b.loads, nil)
}

func (b *BlockProfiler) Reset() {
	b.Profiler.Reset()
	b.mu.Lock()
	b.loads = b.loads[:0]
	b.mu.Unlock()
	b.lastLoad.Store(0)
	b.peakLoad.Store(0)
}

// Report appends the rate, block size and load figures to the section table.
func (b *BlockProfiler) Report() string {
	b.mu.Lock()
	sr := b.sampleRate
	b.mu.Unlock()
	var sb strings.Builder
	sb.WriteString(b.Profiler.Report())
	fmt.Fprintf(&sb, "\nsample rate: %v\n", sr)
	fmt.Fprintf(&sb, "max block:   %d frames\n", b.maxBlock)
	fmt.Fprintf(&sb, "load:        %.2f%% mean, %.2f%% peak\n", b.MeanLoad(), b.PeakLoad())
	return sb.String()
}
