// Package discovery locates timestamped recording fragments in a working
// directory. Recorder output names files by wall-clock start time, so
// lexical order equals chronological order.
package discovery
