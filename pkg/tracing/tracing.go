// Package tracing holds the span helpers shared by handlers and the
// database layer. Spans go to whichever provider is registered globally.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "joiner"

func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartHandlerSpan opens the span of a handler operation, named
// handler.<resource>.<operation>.
func StartHandlerSpan(ctx context.Context, resource, operation, method, route string) (context.Context, trace.Span) {
	return StartSpan(ctx, fmt.Sprintf("handler.%s.%s", resource, operation),
		attribute.String("handler.operation", operation),
		attribute.String("handler.method", method),
		attribute.String("handler.route", route),
	)
}

func FailSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the trace id of the span in ctx, or "" outside a trace.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

func WithSpan(ctx context.Context, name string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := StartSpan(ctx, name, attrs...)
	defer span.End()

	if err := fn(ctx); err != nil {
		FailSpan(span, err)
		return err
	}

	return nil
}

// DatabaseSpan runs fn inside a db.<table>.<operation> span.
func DatabaseSpan(ctx context.Context, system, table, operation string, fn func(context.Context) error) error {
	return WithSpan(ctx, fmt.Sprintf("db.%s.%s", table, operation), fn,
		attribute.String("db.system", system),
		attribute.String("db.sql.table", table),
		attribute.String("db.operation", operation),
	)
}
