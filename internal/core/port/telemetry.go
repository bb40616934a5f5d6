package port

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Telemetry lets the core emit spans, metrics and business events without
// knowing the backend.
type Telemetry interface {
	StartServiceSpan(ctx context.Context, service string, operation string, principalID string) (context.Context, trace.Span)
	RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error)
	RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]any)
	RecordError(ctx context.Context, operation string, err error, metadata map[string]any)
}
