package param

import (
	"fmt"
	"strings"
)

// Builders for common parameter kinds.

// GainParameter creates a decibel gain from -90 dB (silence) to +12 dB.
func GainParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(-90, 12).
		Default(0).
		Gradient(DefaultDbGradient).
		Unit(Decibels).
		Formatter(DecibelFormatter, DecibelParser)
}

// MixParameter creates a dry/wet mix in percent.
func MixParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(0, 100).
		Default(100).
		Formatter(PercentFormatter, PercentParser)
}

// FrequencyParameter creates a frequency in Hz with an exponential gradient.
func FrequencyParameter(id uint32, name string, minHz, maxHz, defaultHz float64) *Builder {
	return New(id, name).
		Range(minHz, maxHz).
		Default(defaultHz).
		Gradient(Exponential()).
		Formatter(FrequencyFormatter, FrequencyParser)
}

// TimeParameter creates a time in milliseconds.
func TimeParameter(id uint32, name string, minMs, maxMs, defaultMs float64) *Builder {
	return New(id, name).
		Range(minMs, maxMs).
		Default(defaultMs).
		Gradient(Power(2)).
		Formatter(TimeFormatter, TimeParser)
}

// PanParameter creates a stereo position from 100L to 100R.
func PanParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(-100, 100).
		Default(0).
		Formatter(PanFormatter, PanParser)
}

// Choice creates a builder for a list parameter whose values are indexes
// into options. Build it with BuildI32.
func Choice(id uint32, name string, options ...string) *Builder {
	names := append([]string(nil), options...)

	format := func(v float64) string {
		i := int(roundI32(v))
		if i < 0 || i >= len(names) {
			return "Unknown"
		}
		return names[i]
	}
	parse := func(text string) (float64, error) {
		text = strings.TrimSpace(text)
		for i, n := range names {
			if strings.EqualFold(text, n) {
				return float64(i), nil
			}
		}
		return 0, fmt.Errorf("unknown option %q", text)
	}

	return New(id, name).
		Range(0, float64(max(len(names)-1, 1))).
		Default(0).
		Formatter(format, parse)
}

// Toggle creates a builder for an on/off switch. Build it with BuildI32.
func Toggle(id uint32, name string, on bool) *Builder {
	def := 0.0
	if on {
		def = 1
	}
	return New(id, name).
		Range(0, 1).
		Default(def).
		Formatter(OnOffFormatter, OnOffParser)
}
