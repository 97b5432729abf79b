package circuit

import (
	"fmt"
	"log/slog"
)

// Warning codes recorded by the circuit engine.
const (
	// WarnDetachedReference marks an operation added with a relation whose
	// reference is not part of the receiving circuit.
	WarnDetachedReference = "detached_reference"
	// WarnDroppedRelation marks a relation reference that could not be
	// resolved through a transfer table during a copy.
	WarnDroppedRelation = "dropped_relation"
)

// Warning records one structural anomaly the engine degraded around
// instead of failing.
type Warning struct {
	Code    string
	Message string
}

// WarningLog collects warnings, deduplicated per distinct subject so that
// repeated resolution of the same anomaly records it once. A nil log is
// valid and only emits to slog.
type WarningLog struct {
	seen    map[string]struct{}
	entries []Warning
}

// NewWarningLog creates an empty warning log.
func NewWarningLog() *WarningLog {
	return &WarningLog{seen: make(map[string]struct{})}
}

// Record stores a warning under a dedupe key and emits it through slog.
// Subsequent records with the same code and key are dropped silently.
func (l *WarningLog) Record(code, key, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if l == nil {
		slog.Warn(message, "code", code)
		return
	}
	dedupe := code + "|" + key
	if _, ok := l.seen[dedupe]; ok {
		return
	}
	l.seen[dedupe] = struct{}{}
	l.entries = append(l.entries, Warning{Code: code, Message: message})
	slog.Warn(message, "code", code)
}

// Entries returns the recorded warnings in record order.
func (l *WarningLog) Entries() []Warning {
	if l == nil {
		return nil
	}
	return l.entries
}

// Len returns the number of distinct warnings recorded.
func (l *WarningLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
