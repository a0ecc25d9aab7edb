// Package pipeline sequences one silence-removal run: preflight, input
// discovery, merge, silence detection, cut-list construction, concurrent
// segment re-encoding, concatenation, and the final report. The runner is
// the sole decider of what is fatal and always cleans up its intermediates
// before returning.
package pipeline
