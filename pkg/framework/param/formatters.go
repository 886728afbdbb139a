package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/justyntemme/dawcore/pkg/dsp/gain"
)

// Display formatters and parsers for common parameter kinds. Formatters take
// the unit value, not the DSP value: decibels for a Decibels parameter.

// DecibelFormatter formats a level in dB. Levels at or below the -90 dB
// floor read as "-inf dB", matching the silence the DSP side produces.
func DecibelFormatter(db float64) string {
	if db <= gain.NegInfDB {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses "-6 dB", "-6db", "-6" or "-inf".
func DecibelParser(text string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.TrimSpace(strings.TrimSuffix(s, "db"))
	if s == "-inf" || s == "-∞" || s == "inf" {
		return gain.NegInfDB, nil
	}
	return strconv.ParseFloat(s, 64)
}

// FrequencyFormatter formats a frequency, switching to kHz at 1000 Hz.
func FrequencyFormatter(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// FrequencyParser parses "440", "440 Hz" or "2.5 kHz".
func FrequencyParser(text string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	scale := 1.0
	if strings.HasSuffix(s, "khz") {
		s = strings.TrimSuffix(s, "khz")
		scale = 1000
	} else {
		s = strings.TrimSuffix(s, "hz")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return v * scale, nil
}

// TimeFormatter formats a duration given in milliseconds.
func TimeFormatter(ms float64) string {
	switch {
	case ms < 1:
		return fmt.Sprintf("%.0f us", ms*1000)
	case ms < 1000:
		return fmt.Sprintf("%.1f ms", ms)
	default:
		return fmt.Sprintf("%.2f s", ms/1000)
	}
}

// TimeParser parses "250", "250 ms", "1.5 s" or "800 us" into milliseconds.
func TimeParser(text string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "ms"):
		s = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "us"), strings.HasSuffix(s, "µs"):
		s = strings.TrimSuffix(strings.TrimSuffix(s, "us"), "µs")
		scale = 0.001
	case strings.HasSuffix(s, "s"):
		s = strings.TrimSuffix(s, "s")
		scale = 1000
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return v * scale, nil
}

// PercentFormatter formats a value already in percent.
func PercentFormatter(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// PercentParser parses "50%" or "50".
func PercentParser(text string) (float64, error) {
	s := strings.TrimSuffix(strings.TrimSpace(text), "%")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// PanFormatter formats a pan position in [-100, 100].
func PanFormatter(pan float64) string {
	switch {
	case math.Abs(pan) < 0.5:
		return "C"
	case pan < 0:
		return fmt.Sprintf("%.0fL", -pan)
	default:
		return fmt.Sprintf("%.0fR", pan)
	}
}

// PanParser parses "C", "30L", "30R" or a signed number.
func PanParser(text string) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	sign := 1.0
	switch {
	case s == "C" || s == "CENTER":
		return 0, nil
	case strings.HasSuffix(s, "L"):
		s, sign = strings.TrimSuffix(s, "L"), -1
	case strings.HasSuffix(s, "R"):
		s = strings.TrimSuffix(s, "R")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}

// OnOffFormatter formats a switch.
func OnOffFormatter(v float64) string {
	if v >= 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser parses the usual spellings of on and off.
func OnOffParser(text string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	}
	return 0, fmt.Errorf("expected on or off, got %q", text)
}
