// Package diag provides the structured diagnostics of the linemax command:
// one JSON object per line on stderr, stamped with a per-run correlation id.
package diag

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Logger writes start/finish/error events for pipeline components.
type Logger struct {
	corrID string
	l      *slog.Logger
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger writing JSON lines to w at the given level. A
// fresh uuid identifies the run in every event.
func NewLogger(w io.Writer, level string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	id := uuid.NewString()
	return &Logger{corrID: id, l: slog.New(h).With(slog.String("corr_id", id))}
}

// CorrID returns the run's correlation id.
func (l *Logger) CorrID() string { return l.corrID }

// Enabled reports whether events at level would be written.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.l.Enabled(context.Background(), level)
}

// Start records a start event and returns a timer for Finish.
func (l *Logger) Start(comp, msg string, attrs ...slog.Attr) *Timer {
	l.event(slog.LevelInfo, comp, "start", msg, attrs...)
	return &Timer{l: l, comp: comp, t0: time.Now()}
}

// Debug records a debug event for comp.
func (l *Logger) Debug(comp, msg string, attrs ...slog.Attr) {
	l.event(slog.LevelDebug, comp, "debug", msg, attrs...)
}

// Error records an error event. The code comes from Classify.
func (l *Logger) Error(comp string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("code", string(Classify(err))), slog.String("err", err.Error()))
	l.event(slog.LevelError, comp, "error", "failed", attrs...)
}

func (l *Logger) event(level slog.Level, comp, stage, msg string, attrs ...slog.Attr) {
	attrs = append([]slog.Attr{slog.String("comp", comp), slog.String("stage", stage)}, attrs...)
	l.l.LogAttrs(context.Background(), level, msg, attrs...)
}

// Timer measures a start→finish span.
type Timer struct {
	l    *Logger
	comp string
	t0   time.Time
}

// Finish records the finish event with the elapsed time and an optional count.
func (t *Timer) Finish(msg string, count int64, attrs ...slog.Attr) {
	if t == nil || t.l == nil {
		return
	}
	attrs = append(attrs, slog.Int64("dur_ms", time.Since(t.t0).Milliseconds()), slog.Int64("count", count))
	t.l.event(slog.LevelInfo, t.comp, "finish", msg, attrs...)
}
