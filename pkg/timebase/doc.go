// Package timebase provides drift-free units of musical and sample time.
//
// All discrete units share one super-resolution tick of 1/28,224,000 of a
// second (SuperSampleTime, SuperFrames) or of a beat (MusicalTime).
// 28,224,000 is divisible by every rate in CommonSampleRates and by the
// usual musical subdivisions (halves through 64ths, thirds, fifths,
// sevenths), so conversions among these units at these rates are exact
// integer arithmetic.
//
// Conversions at any other sample rate go through float64 and round to the
// nearest tick. Those paths are lossy and are documented as such on each
// function.
//
// Conversions that must discard precision come in named rounding variants:
// Round, Floor, Ceil, and Sub (floor plus the fractional remainder). Pick
// the one that fits the call site, for example Floor for a playhead and
// Round for display.
package timebase

// SuperRate is the number of super-sample ticks per second, and of musical
// ticks per beat.
const SuperRate = 28_224_000

const superRateF = float64(SuperRate)
