package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("championship-simulator/internal/usecase")

// startUsecaseSpan only traces calls that already belong to a trace, so the
// CLI and background projections do not emit root spans.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// failSpan marks span as failed and hands err back for returning.
func failSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
