// Package history records finished pipeline runs in a SQLite database so
// past results can be listed without re-reading logs.
package history
