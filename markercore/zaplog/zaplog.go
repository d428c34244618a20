// Package zaplog adapts go.uber.org/zap to markercore's Logger
// interface, the pluggable warning sink described in §7.
package zaplog

import "go.uber.org/zap"

// Adapter implements markercore.Logger over a *zap.SugaredLogger.
type Adapter struct {
	log *zap.SugaredLogger
}

// New wraps an existing zap logger. Passing nil is not valid; callers
// without a configured logger should leave markercore.Options.Logger
// unset instead, which defaults to a no-op sink.
func New(l *zap.Logger) *Adapter {
	return &Adapter{log: l.Sugar()}
}

// Warn implements markercore.Logger. fields is interpreted the same way
// as zap's SugaredLogger.Warnw: alternating key/value pairs.
func (a *Adapter) Warn(msg string, fields ...any) {
	a.log.Warnw(msg, fields...)
}
