// Package logging defines the pluggable warning sink threaded through
// every non-fatal failure path in the core (§7): pattern compile
// failures, activation/promotion parse failures, and input-range
// invariant violations. It is deliberately dependency-free so that
// pattern, detect, and compose can depend on it without creating an
// import cycle back through markercore, which re-exports Logger for
// callers.
package logging

// Logger receives observability warnings. It is never used for control
// flow: a nil-safe no-op Logger is always a legal substitute.
type Logger interface {
	Warn(msg string, fields ...any)
}

// Nop discards every warning. It is the default when no Logger is
// supplied.
type Nop struct{}

// Warn implements Logger.
func (Nop) Warn(string, ...any) {}
