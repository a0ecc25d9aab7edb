// Package ffprobe wraps metadata inspection of media containers via the
// ffprobe binary, decoding its JSON output into typed results.
package ffprobe
