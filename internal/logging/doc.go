// Package logging builds the slog loggers used across the pipeline: a
// console handler for interactive runs and a JSON handler for structured
// capture, plus attribute helpers and context-derived fields. Loggers are
// always passed explicitly; nothing in this repository logs through package
// globals.
package logging
