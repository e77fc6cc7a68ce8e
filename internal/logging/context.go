package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldTemplate is the standardized structured logging key for template identifiers.
	FieldTemplate = "template"
	// FieldBus is the standardized structured logging key for bus/channel identifiers.
	FieldBus = "bus"
	// FieldMarker is the standardized structured logging key for marker labels.
	FieldMarker = "marker"
	// FieldRunID is the standardized structured logging key for assembly run identifiers.
	FieldRunID = "run_id"
)

type ctxKey int

const (
	templateKey ctxKey = iota
	runIDKey
)

// WithTemplate stores a template id on the context for log tagging.
func WithTemplate(ctx context.Context, templateID string) context.Context {
	return context.WithValue(ctx, templateKey, templateID)
}

// WithRunID stores an assembly run id on the context for log tagging.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := ctx.Value(templateKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldTemplate, id))
	}
	if id, ok := ctx.Value(runIDKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, attr := range fields {
		args = append(args, attr)
	}
	return logger.With(args...)
}
