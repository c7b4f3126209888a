package core

import (
	"context"
	"time"
)

// Logger is the structured logger the service writes to. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// MetricsRecorder observes the outcome and latency of service operations.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// TraceSpan is ended once with the operation's error, if any.
type TraceSpan interface {
	End(err error)
}

// Tracer starts a span per service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

type noopTracer struct{}

type noopSpan struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

func (noopSpan) End(error) {}

// AuditStatus is the outcome recorded for a mutating operation.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry describes one mutating service call.
type AuditEntry struct {
	Operation  string        `json:"operation"`
	Entity     EntityType    `json:"entity"`
	Action     Action        `json:"action"`
	EntityID   string        `json:"entity_id,omitempty"`
	Status     AuditStatus   `json:"status"`
	Error      string        `json:"error,omitempty"`
	Violations []Violation   `json:"violations,omitempty"`
	Duration   time.Duration `json:"duration"`
	Timestamp  time.Time     `json:"timestamp"`
}

// AuditRecorder receives audit entries for mutating operations.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

type operationMeta struct {
	entity EntityType
	action Action
}

// auditedOperations maps mutating operation names to the record they touch.
var auditedOperations = map[string]operationMeta{
	"create_zoo":       {EntityZoo, ActionCreate},
	"update_zoo":       {EntityZoo, ActionUpdate},
	"delete_zoo":       {EntityZoo, ActionDelete},
	"create_enclosure": {EntityEnclosure, ActionCreate},
	"update_enclosure": {EntityEnclosure, ActionUpdate},
	"delete_enclosure": {EntityEnclosure, ActionDelete},
	"create_animal":    {EntityAnimal, ActionCreate},
	"update_animal":    {EntityAnimal, ActionUpdate},
	"delete_animal":    {EntityAnimal, ActionDelete},
	"create_category":  {EntityCategory, ActionCreate},
	"update_category":  {EntityCategory, ActionUpdate},
	"delete_category":  {EntityCategory, ActionDelete},
}
