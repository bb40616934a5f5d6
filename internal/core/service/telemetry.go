package service

import (
	"context"
	"time"

	"joiner/internal/core/port"
)

// observe opens a service span and returns the func that records the
// outcome of the operation and closes it.
func observe(ctx context.Context, telemetry port.Telemetry, service, operation, principalID string) (context.Context, func(*error)) {
	ctx, span := telemetry.StartServiceSpan(ctx, service, operation, principalID)
	start := time.Now()

	return ctx, func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}
		telemetry.RecordServiceOperation(ctx, service, operation, time.Since(start), err)
		span.End()
	}
}
