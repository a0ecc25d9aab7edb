package config

import (
	"fmt"
)

// Validate checks value ranges after normalization.
func (c *Config) Validate() error {
	if c.Detection.NoiseDB >= 0 {
		return fmt.Errorf("detection.noise_db must be negative decibels, got %g", c.Detection.NoiseDB)
	}
	if c.Detection.MinSilence <= 0 {
		return fmt.Errorf("detection.min_silence must be positive seconds, got %g", c.Detection.MinSilence)
	}
	switch c.Detection.TailSilence {
	case "drop", "extend":
	default:
		return fmt.Errorf("detection.tail_silence must be %q or %q, got %q", "drop", "extend", c.Detection.TailSilence)
	}

	if c.Segments.MinDuration <= 0 {
		return fmt.Errorf("segments.min_duration must be positive seconds, got %g", c.Segments.MinDuration)
	}
	if c.Segments.Padding < 0 {
		return fmt.Errorf("segments.padding must not be negative, got %g", c.Segments.Padding)
	}
	if c.Segments.Workers < 0 {
		return fmt.Errorf("segments.workers must not be negative, got %d", c.Segments.Workers)
	}
	if c.Segments.CRF < 0 || c.Segments.CRF > 51 {
		return fmt.Errorf("segments.crf must be within 0..51, got %d", c.Segments.CRF)
	}

	if c.Tools.TimeoutSeconds < 0 {
		return fmt.Errorf("tools.timeout_seconds must not be negative, got %d", c.Tools.TimeoutSeconds)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "console", "json", c.Logging.Format)
	}

	return nil
}
