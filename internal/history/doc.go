// Package history records completed conversions in a local SQLite database so
// the web UI and the history command can show what was produced with which
// parameters. Recording is best-effort; a failed insert never fails the
// conversion that triggered it.
package history
