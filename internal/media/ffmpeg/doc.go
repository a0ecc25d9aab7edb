// Package ffmpeg defines the narrow command-invocation surface the pipeline
// needs from the external media toolkit: merge, silence detection, duration
// query, trim/re-encode, and concatenation. The CLI implementation shells
// out to ffmpeg/ffprobe; tests substitute fake Toolkit implementations so
// no real binaries run.
package ffmpeg
