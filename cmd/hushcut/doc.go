// Command hushcut merges timestamped screen recordings, removes silent
// intervals, and writes a single trimmed output file.
package main
