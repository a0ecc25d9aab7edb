// Package config loads, normalizes, and validates the TOML configuration
// that drives a pipeline run. A loaded Config is immutable for the duration
// of one run; command-line flags apply their overrides before validation.
package config
