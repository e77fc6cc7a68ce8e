// Package logging assembles structured slog loggers used across Cuemix.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes context helpers so assembly code can tag log
// lines with template ids, bus ids, and run ids. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape as the rest of the system.
package logging
