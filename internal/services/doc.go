// Package services defines the shared error taxonomy and context helpers
// used across pipeline stages. Stages tag failures with sentinel markers so
// the pipeline runner can classify them without string matching.
package services
