// Package preflight verifies that a run can proceed: required binaries on
// PATH, a writable working directory, and enough free disk space for the
// merged intermediate plus re-encoded segments.
package preflight
