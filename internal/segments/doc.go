// Package segments re-encodes keep intervals into independent artifacts
// under a bounded worker pool and joins the surviving artifacts into the
// final output. Artifact order is carried by an explicit index, never by
// filename sorting.
package segments
