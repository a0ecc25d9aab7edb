package silence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TailPolicy decides what happens when the detector reports a final
// silence_start with no matching silence_end because the stream ends while
// still silent.
type TailPolicy string

const (
	// TailDrop discards the unmatched trailing start.
	TailDrop TailPolicy = "drop"
	// TailExtend synthesizes an end at the total stream duration.
	TailExtend TailPolicy = "extend"
)

// ParseTailPolicy validates a configured tail policy value.
func ParseTailPolicy(value string) (TailPolicy, error) {
	switch TailPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case TailDrop, "":
		return TailDrop, nil
	case TailExtend:
		return TailExtend, nil
	default:
		return "", fmt.Errorf("unsupported tail_silence policy %q", value)
	}
}

var (
	silenceStartPattern = regexp.MustCompile(`silence_start:\s*(-?[0-9]+(?:\.[0-9]+)?)`)
	silenceEndPattern   = regexp.MustCompile(`silence_end:\s*(-?[0-9]+(?:\.[0-9]+)?)`)
)

// ParseDetectorOutput extracts silence intervals from the diagnostic stream
// written by the silencedetect filter. Start and end markers are paired
// positionally; marker order in the stream is temporal order. total is the
// stream duration used when the tail policy extends an unmatched start.
func ParseDetectorOutput(diagnostics string, total float64, tail TailPolicy) ([]Interval, error) {
	starts, err := extractTimestamps(silenceStartPattern, diagnostics)
	if err != nil {
		return nil, fmt.Errorf("parse silence_start markers: %w", err)
	}
	ends, err := extractTimestamps(silenceEndPattern, diagnostics)
	if err != nil {
		return nil, fmt.Errorf("parse silence_end markers: %w", err)
	}

	if len(starts) == len(ends)+1 {
		switch tail {
		case TailExtend:
			ends = append(ends, total)
		default:
			starts = starts[:len(starts)-1]
		}
	}
	if len(starts) != len(ends) {
		return nil, fmt.Errorf("silencedetect output mismatch: %d starts, %d ends", len(starts), len(ends))
	}

	intervals := make([]Interval, 0, len(starts))
	for i := range starts {
		intervals = append(intervals, Interval{Start: starts[i], End: ends[i]})
	}
	return intervals, nil
}

func extractTimestamps(pattern *regexp.Regexp, text string) ([]float64, error) {
	matches := pattern.FindAllStringSubmatch(text, -1)
	values := make([]float64, 0, len(matches))
	for _, match := range matches {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return nil, fmt.Errorf("timestamp %q: %w", match[1], err)
		}
		values = append(values, value)
	}
	return values, nil
}
