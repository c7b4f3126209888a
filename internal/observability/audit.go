package observability

import (
	"context"
	"log/slog"

	"zoocore/internal/core"
)

// AuditLogger writes audit entries as structured log records.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger returns an AuditLogger writing to logger.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger.With("component", "audit")}
}

// Record implements core.AuditRecorder.
func (a *AuditLogger) Record(ctx context.Context, entry core.AuditEntry) {
	attrs := []slog.Attr{
		slog.String("operation", entry.Operation),
		slog.String("entity", string(entry.Entity)),
		slog.String("action", string(entry.Action)),
		slog.String("id", entry.EntityID),
		slog.String("status", string(entry.Status)),
		slog.Duration("duration", entry.Duration),
		slog.Time("timestamp", entry.Timestamp),
	}
	level := slog.LevelInfo
	if entry.Status == core.AuditStatusError {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", entry.Error), slog.Int("violations", len(entry.Violations)))
	}
	a.logger.LogAttrs(ctx, level, "audit", attrs...)
}
