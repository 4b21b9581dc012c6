// Package logging assembles the structured slog loggers used across gifify.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// provides a no-op logger for tests. The console handler detects whether the
// destination is a terminal and enables colour only then.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits lines with the same shape.
package logging
